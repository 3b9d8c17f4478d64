package ledger

import (
	"encoding/json"
	"strconv"
)

// Entity persistence helpers. Records are JSON blobs under the keys from
// keys.go; plain counters and amounts are decimal strings.

func putJSON[T any](st State, key string, v *T) error {
	b, err := json.Marshal(v)
	if err != nil {
		return errStoref("state: encode %s: %v", key, err)
	}
	return wrapStoreErr(st.Set(key, string(b)))
}

// getJSON returns nil without error when the key does not exist.
func getJSON[T any](st State, key string) (*T, error) {
	ptr, err := st.Get(key)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	if ptr == nil {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal([]byte(*ptr), &v); err != nil {
		return nil, errStoref("state: decode %s: %v", key, err)
	}
	return &v, nil
}

func putAmount(st State, key string, v Amount) error {
	return wrapStoreErr(st.Set(key, strconv.FormatInt(int64(v), 10)))
}

// getAmount defaults to zero for missing keys, matching "no record yet".
func getAmount(st State, key string) (Amount, error) {
	ptr, err := st.Get(key)
	if err != nil {
		return 0, wrapStoreErr(err)
	}
	if ptr == nil || *ptr == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(*ptr, 10, 64)
	if err != nil {
		return 0, errStoref("state: bad amount under %s: %v", key, err)
	}
	return Amount(n), nil
}

func putCount(st State, key string, n uint64) error {
	return wrapStoreErr(st.Set(key, strconv.FormatUint(n, 10)))
}

func getCount(st State, key string) (uint64, error) {
	ptr, err := st.Get(key)
	if err != nil {
		return 0, wrapStoreErr(err)
	}
	if ptr == nil || *ptr == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(*ptr, 10, 64)
	if err != nil {
		return 0, errStoref("state: bad counter under %s: %v", key, err)
	}
	return n, nil
}

func wrapStoreErr(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*Error); ok {
		return err
	}
	return errStoref("state: %v", err)
}

// loadProject resolves a project id or reports KindNotFound.
func loadProject(st State, id uint64) (*Project, error) {
	prj, err := getJSON[Project](st, projectKey(id))
	if err != nil {
		return nil, err
	}
	if prj == nil {
		return nil, errNotFoundf("project %d not found", id)
	}
	return prj, nil
}

func saveProject(st State, prj *Project) error {
	return putJSON(st, projectKey(prj.ID), prj)
}

// loadMilestone resolves a milestone by (project, index). Index range is
// the caller's concern; a missing record is KindNotFound either way.
func loadMilestone(st State, id uint64, index int) (*Milestone, error) {
	ms, err := getJSON[Milestone](st, milestoneKey(id, index))
	if err != nil {
		return nil, err
	}
	if ms == nil {
		return nil, errNotFoundf("project %d has no milestone %d", id, index)
	}
	return ms, nil
}

func saveMilestone(st State, id uint64, index int, ms *Milestone) error {
	return putJSON(st, milestoneKey(id, index), ms)
}

func loadNGO(st State, account Address) (*NGORecord, error) {
	return getJSON[NGORecord](st, ngoKey(account))
}

func saveNGO(st State, rec *NGORecord) error {
	return putJSON(st, ngoKey(rec.Account), rec)
}

// loadDonor falls back to a fresh bronze profile so first donations do not
// special-case the missing record.
func loadDonor(st State, account Address) (*DonorProfile, error) {
	prof, err := getJSON[DonorProfile](st, donorKey(account))
	if err != nil {
		return nil, err
	}
	if prof == nil {
		return &DonorProfile{Account: account, Tier: TierBronze}, nil
	}
	return prof, nil
}

func saveDonor(st State, prof *DonorProfile) error {
	return putJSON(st, donorKey(prof.Account), prof)
}

func loadConfig(st State) (*ledgerConfig, error) {
	cfg, err := getJSON[ledgerConfig](st, keyConfig)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, errStoref("state: ledger config missing (store not initialized)")
	}
	return cfg, nil
}

func saveConfig(st State, cfg *ledgerConfig) error {
	return putJSON(st, keyConfig, cfg)
}

func loadTiers(st State) (*TierTable, error) {
	tt, err := getJSON[TierTable](st, keyTiers)
	if err != nil {
		return nil, err
	}
	if tt == nil {
		return nil, errStoref("state: tier table missing (store not initialized)")
	}
	return tt, nil
}

func saveTiers(st State, tt *TierTable) error {
	return putJSON(st, keyTiers, tt)
}

// addProjectToIndex appends the id to the global listing, skipping dupes.
func addProjectToIndex(st State, id uint64) error {
	ids, err := loadProjectIndex(st)
	if err != nil {
		return err
	}
	for _, v := range ids {
		if v == id {
			return nil
		}
	}
	ids = append(ids, id)
	return putJSON(st, keyProjectIndex, &ids)
}

func loadProjectIndex(st State) ([]uint64, error) {
	ids, err := getJSON[[]uint64](st, keyProjectIndex)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		return []uint64{}, nil
	}
	return *ids, nil
}
