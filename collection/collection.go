package collection

import (
	"iter"
	"log/slog"

	"github.com/fulldump/multiindex/index"
	"github.com/fulldump/multiindex/slab"
)

type Options struct {
	// Capacity preallocates the store and the hashed indexes.
	Capacity int

	// UncheckedUpdates trusts Update mutators to leave indexed fields alone
	// and skips verifying it.
	UncheckedUpdates bool

	Logger *slog.Logger
}

type IndexInfo struct {
	Name string     `json:"name"`
	Kind index.Kind `json:"kind"`
	Keys int        `json:"keys"`
}

// Container stores records of type R once and keeps one index per registered
// field in sync with them. Indexes are registered with HashedUnique,
// HashedNonUnique, OrderedUnique, OrderedNonUnique and their Func variants.
//
// A Container is not safe for concurrent use: writes need exclusive access
// and reads may only run alongside other reads.
type Container[R any] struct {
	store   *slab.Store[R]
	fields  []field[R]
	options Options
	logger  *slog.Logger
}

func New[R any](options *Options) *Container[R] {

	if options == nil {
		options = &Options{}
	}

	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Container[R]{
		store:   slab.New[R](options.Capacity),
		options: *options,
		logger:  logger,
	}
}

// Insert panics with *UniquenessError if a unique index already holds one
// of the keys of r. Nothing is modified in that case.
func (c *Container[R]) Insert(r R) {
	if err := c.TryInsert(r); err != nil {
		panic(err)
	}
}

// TryInsert validates the keys of r against every index and only then
// stores it.
func (c *Container[R]) TryInsert(r R) error {

	next := c.store.Next()
	for _, f := range c.fields {
		if err := f.check(&r, next); err != nil {
			return err
		}
	}

	id := c.store.Insert(r)
	stored := c.record("", id)
	for _, f := range c.fields {
		if err := f.insert(stored, id); err != nil {
			c.broken(f.name(), id, "insert after validation: "+err.Error())
		}
	}

	return nil
}

func (c *Container[R]) Len() int {
	return c.store.Len()
}

func (c *Container[R]) IsEmpty() bool {
	return c.store.IsEmpty()
}

func (c *Container[R]) Capacity() int {
	return c.store.Cap()
}

// Reserve makes room for additional records in the store and in the hashed
// indexes.
func (c *Container[R]) Reserve(additional int) {
	c.store.Reserve(additional)
	for _, f := range c.fields {
		f.reserve(additional)
	}
	c.logger.Debug("reserve", "additional", additional, "capacity", c.store.Cap())
}

func (c *Container[R]) ShrinkToFit() {
	c.store.ShrinkToFit()
	for _, f := range c.fields {
		f.shrink()
	}
	c.logger.Debug("shrink", "len", c.store.Len(), "capacity", c.store.Cap())
}

// Clear removes every record from the store and every index.
func (c *Container[R]) Clear() {
	n := c.store.Len()
	c.store.Clear()
	for _, f := range c.fields {
		f.clear()
	}
	c.logger.Debug("clear", "removed", n)
}

// All traverses copies of the records in storage order.
func (c *Container[R]) All() iter.Seq[R] {
	return func(yield func(R) bool) {
		for _, r := range c.store.All() {
			if !yield(*r) {
				return
			}
		}
	}
}

// AllMut traverses the records in storage order. Indexed fields must not be
// changed through the returned pointers.
func (c *Container[R]) AllMut() iter.Seq[*R] {
	return func(yield func(*R) bool) {
		for _, r := range c.store.All() {
			if !yield(r) {
				return
			}
		}
	}
}

func (c *Container[R]) Indexes() []IndexInfo {
	result := make([]IndexInfo, 0, len(c.fields))
	for _, f := range c.fields {
		result = append(result, IndexInfo{
			Name: f.name(),
			Kind: f.kind(),
			Keys: f.keys(),
		})
	}
	return result
}

// Check verifies that every record is indexed exactly once under its
// current key in every index and that no index refers to a vacant slot.
func (c *Container[R]) Check() error {
	for _, f := range c.fields {
		if err := f.verify(c.store); err != nil {
			return err
		}
	}
	return nil
}

func (c *Container[R]) field(name string) field[R] {
	for _, f := range c.fields {
		if f.name() == name {
			return f
		}
	}
	return nil
}

// record resolves a slot found through the index called name.
func (c *Container[R]) record(name string, id slab.Slot) *R {
	r, ok := c.store.Get(id)
	if !ok {
		c.broken(name, id, "indexed slot is vacant")
	}
	return r
}

func (c *Container[R]) removeSlot(name string, id slab.Slot) R {
	r := c.record(name, id)
	for _, f := range c.fields {
		if !f.remove(r, id) {
			c.broken(f.name(), id, "unable to find element despite being present in index '"+name+"'")
		}
	}
	return c.store.Remove(id)
}

// modifySlot mutates the record at id and reindexes every changed key. If a
// changed key collides, the record is restored and nothing is reindexed.
func (c *Container[R]) modifySlot(name string, id slab.Slot, mutate func(*R)) (R, error) {

	r := c.record(name, id)
	backup := *r
	for _, f := range c.fields {
		f.capture(r)
	}

	mutate(r)

	for _, f := range c.fields {
		if err := f.validate(r, id); err != nil {
			*r = backup
			return backup, err
		}
	}

	for _, f := range c.fields {
		if err := f.commit(r, id); err != nil {
			c.broken(f.name(), id, "reindex after validation: "+err.Error())
		}
	}

	return *r, nil
}

func (c *Container[R]) updateSlot(name string, id slab.Slot, mutate func(*R)) R {

	r := c.record(name, id)
	if c.options.UncheckedUpdates {
		mutate(r)
		return *r
	}

	backup := *r
	for _, f := range c.fields {
		f.capture(r)
	}

	mutate(r)

	for _, f := range c.fields {
		if f.changed(r) {
			*r = backup
			panic(&UpdateError{Index: f.name()})
		}
	}

	return *r
}

func (c *Container[R]) broken(name string, id slab.Slot, reason string) {
	err := &InvariantError{Index: name, Slot: id, Reason: reason}
	c.logger.Error("internal invariants broken", "index", name, "slot", id, "reason", reason)
	panic(err)
}

// records dereferences a slot traversal into copies of the records.
func records[R any, K any](c *Container[R], name string, seq iter.Seq2[K, slab.Slot]) iter.Seq[R] {
	return func(yield func(R) bool) {
		for _, id := range seq {
			if !yield(*c.record(name, id)) {
				return
			}
		}
	}
}
