package ledger

// State is the key-value surface the ledger persists through. Get returns
// nil for missing keys. Implementations only need single-key operations;
// atomicity of whole operations is handled by the overlay below.
type State interface {
	Set(key, value string) error
	Get(key string) (*string, error)
	Delete(key string) error
}

// BatchState is an optional upgrade: stores that can apply a write set in
// one atomic step (a badger transaction, say) get handed the whole commit
// at once. A nil value in the set means delete.
type BatchState interface {
	State
	Apply(writes map[string]*string) error
}

// overlay stages writes on top of a base State. Every mutating operation
// runs against an overlay and commits only after all checks and
// bookkeeping succeeded, so no error path leaves partial state and batch
// operations are all-or-nothing by construction.
type overlay struct {
	base   State
	writes map[string]*string
}

func newOverlay(base State) *overlay {
	return &overlay{base: base, writes: map[string]*string{}}
}

func (o *overlay) Get(key string) (*string, error) {
	if v, ok := o.writes[key]; ok {
		return v, nil
	}
	return o.base.Get(key)
}

func (o *overlay) Set(key, value string) error {
	v := value
	o.writes[key] = &v
	return nil
}

func (o *overlay) Delete(key string) error {
	o.writes[key] = nil
	return nil
}

// commit flushes the staged writes into the base store, in one step when
// the base supports it.
func (o *overlay) commit() error {
	if len(o.writes) == 0 {
		return nil
	}
	if bs, ok := o.base.(BatchState); ok {
		return bs.Apply(o.writes)
	}
	for k, v := range o.writes {
		if v == nil {
			if err := o.base.Delete(k); err != nil {
				return err
			}
			continue
		}
		if err := o.base.Set(k, *v); err != nil {
			return err
		}
	}
	return nil
}
