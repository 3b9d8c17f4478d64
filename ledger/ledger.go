// Package ledger implements the milestone-gated escrow that backs
// donor-approved fund releases: verified NGOs register projects split into
// milestones, donors contribute and earn tier-boosted voting weight,
// releasing a milestone's funds takes a donor-weighted quorum, and a
// protocol fee skimmed off every donation feeds a reward pool donors claim
// against.
//
// The ledger is a single-writer state machine. Every operation is
// presented as one indivisible step: it either commits all its bookkeeping
// or none of it. Value enters and leaves only through the Bank boundary.
package ledger

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// MaxFeeBps caps the protocol fee at 10%.
const MaxFeeBps = 1_000

// Params seed a ledger the first time it runs over an empty store. A
// store that was already initialized keeps its persisted configuration
// and the params only pin the expected owner.
type Params struct {
	Owner  Address
	FeeBps int64
	// Tiers overrides the default tier table on first initialization.
	Tiers *TierTable
}

// Ledger owns all escrow state and exposes one method per operation.
// Construct it with New; the zero value is not usable.
type Ledger struct {
	// mu serializes every operation, including the shared reward pool and
	// the Bank calls at the edges of value-moving operations. Holding it
	// across the transfer doubles as the reentrancy guard: a settlement
	// callback cannot observe partially-updated state because it cannot
	// get back in at all.
	mu      sync.Mutex
	state   State
	bank    Bank
	log     zerolog.Logger
	metrics *metrics
	now     func() int64
}

// Option tweaks ledger construction.
type Option func(*Ledger)

// WithBank wires the settlement boundary. Defaults to NopBank.
func WithBank(b Bank) Option {
	return func(l *Ledger) { l.bank = b }
}

// WithLogger wires event emission. Defaults to a nop logger.
func WithLogger(log zerolog.Logger) Option {
	return func(l *Ledger) { l.log = log }
}

// WithClock overrides the timestamp source, mainly for tests.
func WithClock(now func() int64) Option {
	return func(l *Ledger) { l.now = now }
}

// WithMetrics registers the ledger's counters on the given registerer.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(l *Ledger) { l.metrics.register(reg) }
}

// New opens a ledger over the given state. An empty store is seeded from
// params; a previously initialized store keeps its persisted governance
// record, and params.Owner must then match the persisted owner.
func New(state State, params Params, opts ...Option) (*Ledger, error) {
	if state == nil {
		return nil, errInputf("nil state")
	}
	if params.Owner.IsZero() {
		return nil, errInputf("owner account required")
	}
	if params.FeeBps < 0 || params.FeeBps > MaxFeeBps {
		return nil, errInputf("fee must be between 0 and %d bps", MaxFeeBps)
	}

	l := &Ledger{
		state:   state,
		bank:    NopBank{},
		log:     zerolog.Nop(),
		metrics: newMetrics(),
		now:     func() int64 { return time.Now().Unix() },
	}
	for _, opt := range opts {
		opt(l)
	}

	existing, err := getJSON[ledgerConfig](state, keyConfig)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Owner != params.Owner {
			return nil, errAuthf("store owned by %s, not %s", existing.Owner, params.Owner)
		}
		return l, nil
	}

	ov := newOverlay(state)
	cfg := &ledgerConfig{Owner: params.Owner, FeeBps: params.FeeBps}
	if err := saveConfig(ov, cfg); err != nil {
		return nil, err
	}
	tiers := DefaultTierTable()
	if params.Tiers != nil {
		tiers = *params.Tiers
	}
	if err := saveTiers(ov, &tiers); err != nil {
		return nil, err
	}
	if err := putAmount(ov, keyRewardPool, 0); err != nil {
		return nil, err
	}
	if err := ov.commit(); err != nil {
		return nil, err
	}
	l.log.Info().Str("event", "ledger_initialized").
		Str("owner", params.Owner.String()).
		Int64("fee_bps", params.FeeBps).
		Send()
	return l, nil
}

// fail funnels every rejection through one place so the failure counter
// stays honest.
func (l *Ledger) fail(err error) error {
	l.metrics.fail(err)
	return err
}

func requireOwner(cfg *ledgerConfig, caller Address) error {
	if caller != cfg.Owner {
		return errAuthf("caller %s is not the ledger owner", caller)
	}
	return nil
}

func requireNotPaused(cfg *ledgerConfig) error {
	if cfg.Paused {
		return errPausedf("ledger is paused")
	}
	return nil
}
