package ledger

import "github.com/prometheus/client_golang/prometheus"

// metrics counts what moved. The counters exist even without a Registerer
// so call sites never nil-check; registration is opt-in via WithMetrics.
type metrics struct {
	donations      prometheus.Counter
	donatedTotal   prometheus.Counter
	feesTotal      prometheus.Counter
	votes          prometheus.Counter
	releases       prometheus.Counter
	releasedTotal  prometheus.Counter
	claims         prometheus.Counter
	rewardedTotal  prometheus.Counter
	failedOpsTotal *prometheus.CounterVec
}

func newMetrics() *metrics {
	return &metrics{
		donations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "givegate", Name: "donations_total",
			Help: "Accepted donations.",
		}),
		donatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "givegate", Name: "donated_amount_total",
			Help: "Net amount credited to projects.",
		}),
		feesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "givegate", Name: "fees_skimmed_total",
			Help: "Protocol fees skimmed into the reward pool.",
		}),
		votes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "givegate", Name: "votes_total",
			Help: "Milestone votes recorded.",
		}),
		releases: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "givegate", Name: "releases_total",
			Help: "Milestones released.",
		}),
		releasedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "givegate", Name: "released_amount_total",
			Help: "Amount paid out to NGOs.",
		}),
		claims: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "givegate", Name: "reward_claims_total",
			Help: "Reward claims paid.",
		}),
		rewardedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "givegate", Name: "rewarded_amount_total",
			Help: "Amount paid out of the reward pool.",
		}),
		failedOpsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "givegate", Name: "failed_operations_total",
			Help: "Rejected operations by error kind.",
		}, []string{"kind"}),
	}
}

func (m *metrics) register(reg prometheus.Registerer) {
	reg.MustRegister(
		m.donations, m.donatedTotal, m.feesTotal,
		m.votes, m.releases, m.releasedTotal,
		m.claims, m.rewardedTotal, m.failedOpsTotal,
	)
}

func (m *metrics) fail(err error) {
	m.failedOpsTotal.WithLabelValues(KindOf(err).String()).Inc()
}
