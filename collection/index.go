package collection

import (
	"cmp"
	"fmt"

	"github.com/fulldump/multiindex/index"
	"github.com/fulldump/multiindex/slab"
)

// TraverseOptions selects a key range [From, To) of an ordered index.
type TraverseOptions[K any] = index.TraverseOptions[K]

// field binds one index to the record field it is built from. The key type
// is erased so the container can hold heterogeneous indexes.
type field[R any] interface {
	name() string
	kind() index.Kind
	keys() int

	check(r *R, id slab.Slot) error
	insert(r *R, id slab.Slot) error
	remove(r *R, id slab.Slot) bool

	// capture remembers the current key of r, changed, validate and commit
	// compare against it.
	capture(r *R)
	changed(r *R) bool
	validate(r *R, id slab.Slot) error
	commit(r *R, id slab.Slot) error

	clear()
	reserve(additional int)
	shrink()
	verify(store *slab.Store[R]) error
}

type fieldOf[R any, K any] struct {
	label string
	key   func(*R) K
	idx   index.Index[K]
	old   K
}

func (f *fieldOf[R, K]) name() string {
	return f.label
}

func (f *fieldOf[R, K]) kind() index.Kind {
	return f.idx.Kind()
}

func (f *fieldOf[R, K]) keys() int {
	return f.idx.Len()
}

func (f *fieldOf[R, K]) check(r *R, id slab.Slot) error {
	key := f.key(r)
	if err := f.idx.Check(key, id); err != nil {
		return &UniquenessError{Index: f.label, Key: key, Err: err}
	}
	return nil
}

func (f *fieldOf[R, K]) insert(r *R, id slab.Slot) error {
	return f.idx.Insert(f.key(r), id)
}

func (f *fieldOf[R, K]) remove(r *R, id slab.Slot) bool {
	return f.idx.Remove(f.key(r), id)
}

func (f *fieldOf[R, K]) capture(r *R) {
	f.old = f.key(r)
}

func (f *fieldOf[R, K]) changed(r *R) bool {
	return !f.idx.Equal(f.old, f.key(r))
}

func (f *fieldOf[R, K]) validate(r *R, id slab.Slot) error {
	if !f.changed(r) {
		return nil
	}
	return f.check(r, id)
}

func (f *fieldOf[R, K]) commit(r *R, id slab.Slot) error {
	return f.idx.Reindex(f.old, f.key(r), id)
}

func (f *fieldOf[R, K]) clear() {
	f.idx.Clear()
}

func (f *fieldOf[R, K]) reserve(additional int) {
	f.idx.Reserve(additional)
}

func (f *fieldOf[R, K]) shrink() {
	f.idx.ShrinkToFit()
}

// verify walks the whole index. Matching the slot count with the store and
// every indexed slot with the current key of its record means every record
// is indexed exactly once.
func (f *fieldOf[R, K]) verify(store *slab.Store[R]) (err error) {

	defer func() {
		if r := recover(); r != nil {
			err = &InvariantError{Index: f.label, Reason: fmt.Sprint(r)}
		}
	}()

	total := 0
	for key, id := range f.idx.All() {
		total++
		r, ok := store.Get(id)
		if !ok {
			return &InvariantError{Index: f.label, Slot: id, Reason: "indexed slot is vacant"}
		}
		if current := f.key(r); !f.idx.Equal(current, key) {
			return &InvariantError{Index: f.label, Slot: id, Reason: fmt.Sprintf("record with key '%v' is indexed under '%v'", current, key)}
		}
	}

	if total != store.Len() {
		return &InvariantError{Index: f.label, Reason: fmt.Sprintf("%d slots indexed for %d records", total, store.Len())}
	}

	return nil
}

// register indexes the records already stored before adding the field, a
// conflict leaves the container as it was.
func register[R any, K any](c *Container[R], name string, key func(*R) K, idx index.Index[K]) (*fieldOf[R, K], error) {

	if c.field(name) != nil {
		return nil, fmt.Errorf("index '%s': %w", name, ErrIndexExists)
	}

	f := &fieldOf[R, K]{
		label: name,
		key:   key,
		idx:   idx,
	}

	for id, r := range c.store.All() {
		if err := f.insert(r, id); err != nil {
			return nil, &UniquenessError{Index: name, Key: key(r), Err: err}
		}
	}

	c.fields = append(c.fields, f)
	c.logger.Debug("index registered", "name", name, "kind", idx.Kind().String(), "records", c.store.Len())

	return f, nil
}

func HashedUnique[R any, K comparable](c *Container[R], name string, key func(*R) K) (*UniqueIndex[R, K], error) {
	idx := index.NewHashedUnique[K](c.options.Capacity)
	f, err := register[R, K](c, name, key, idx)
	if err != nil {
		return nil, err
	}
	return &UniqueIndex[R, K]{container: c, field: f, index: idx}, nil
}

func HashedNonUnique[R any, K comparable](c *Container[R], name string, key func(*R) K) (*NonUniqueIndex[R, K], error) {
	idx := index.NewHashedNonUnique[K](c.options.Capacity)
	f, err := register[R, K](c, name, key, idx)
	if err != nil {
		return nil, err
	}
	return &NonUniqueIndex[R, K]{container: c, field: f, index: idx}, nil
}

func OrderedUnique[R any, K cmp.Ordered](c *Container[R], name string, key func(*R) K) (*OrderedUniqueIndex[R, K], error) {
	return OrderedUniqueFunc(c, name, key, cmp.Compare[K])
}

// OrderedUniqueFunc sorts keys with compare, which follows the cmp.Compare
// contract.
func OrderedUniqueFunc[R any, K any](c *Container[R], name string, key func(*R) K, compare func(a, b K) int) (*OrderedUniqueIndex[R, K], error) {
	idx := index.NewOrderedUnique[K](compare)
	f, err := register[R, K](c, name, key, idx)
	if err != nil {
		return nil, err
	}
	return &OrderedUniqueIndex[R, K]{
		UniqueIndex: UniqueIndex[R, K]{container: c, field: f, index: idx},
		ordered:     idx,
	}, nil
}

func OrderedNonUnique[R any, K cmp.Ordered](c *Container[R], name string, key func(*R) K) (*OrderedNonUniqueIndex[R, K], error) {
	return OrderedNonUniqueFunc(c, name, key, cmp.Compare[K])
}

func OrderedNonUniqueFunc[R any, K any](c *Container[R], name string, key func(*R) K, compare func(a, b K) int) (*OrderedNonUniqueIndex[R, K], error) {
	idx := index.NewOrderedNonUnique[K](compare)
	f, err := register[R, K](c, name, key, idx)
	if err != nil {
		return nil, err
	}
	return &OrderedNonUniqueIndex[R, K]{
		NonUniqueIndex: NonUniqueIndex[R, K]{container: c, field: f, index: idx},
		ordered:        idx,
	}, nil
}

// Must panics if err is not nil. It is meant for index registration on
// fresh containers.
func Must[T any](t T, err error) T {
	if err != nil {
		panic(err)
	}
	return t
}
