package ledger

import "sync"

// MemState is the in-process State used by tests and by embedders that do
// not need durability. Safe for concurrent readers outside the ledger's
// own serialization.
type MemState struct {
	mu sync.RWMutex
	db map[string]string
}

// NewMemState returns an empty in-memory store.
func NewMemState() *MemState {
	return &MemState{db: make(map[string]string)}
}

func (m *MemState) Set(key, value string) error {
	m.mu.Lock()
	m.db[key] = value
	m.mu.Unlock()
	return nil
}

func (m *MemState) Get(key string) (*string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.db[key]
	if !ok {
		return nil, nil
	}
	return &val, nil
}

func (m *MemState) Delete(key string) error {
	m.mu.Lock()
	delete(m.db, key)
	m.mu.Unlock()
	return nil
}

// Apply commits a staged write set under one lock hold.
func (m *MemState) Apply(writes map[string]*string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range writes {
		if v == nil {
			delete(m.db, k)
			continue
		}
		m.db[k] = *v
	}
	return nil
}

// Len reports the number of stored keys, handy in tests.
func (m *MemState) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.db)
}
