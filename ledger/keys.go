package ledger

// Storage key layout. One shape per entity so every record stays
// addressable by the identifiers the read surface exposes.
const (
	// keyConfig holds the singleton ledgerConfig (owner, pause, fee).
	keyConfig = "cfg:ledger"
	// keyTiers holds the full TierTable.
	keyTiers = "cfg:tiers"
	// keyRewardPool holds the global fee accumulator as a decimal string.
	keyRewardPool = "pool:rewards"
	// keyProjectCount holds the sequential project id counter.
	keyProjectCount = "count:proj"
	// keyProjectIndex holds the JSON list of all project ids.
	keyProjectIndex = "idx:projects"
)

func ngoKey(account Address) string {
	return "ngo:" + account.String()
}

func projectKey(id uint64) string {
	return "prj:" + uint64ToString(id)
}

func milestoneKey(id uint64, index int) string {
	return "ms:" + uint64ToString(id) + ":" + uint64ToString(uint64(index))
}

func contributionKey(id uint64, donor Address) string {
	return "contrib:" + uint64ToString(id) + ":" + donor.String()
}

func donorKey(account Address) string {
	return "donor:" + account.String()
}

func voteKey(id uint64, index int, donor Address) string {
	return "vote:" + uint64ToString(id) + ":" + uint64ToString(uint64(index)) + ":" + donor.String()
}
