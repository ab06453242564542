package collection

import (
	"iter"

	"github.com/fulldump/multiindex/index"
)

// UniqueIndex accesses the container through a unique index.
type UniqueIndex[R any, K any] struct {
	container *Container[R]
	field     *fieldOf[R, K]
	index     index.Unique[K]
}

func (u *UniqueIndex[R, K]) Name() string {
	return u.field.label
}

func (u *UniqueIndex[R, K]) Get(key K) (R, bool) {
	id, ok := u.index.Get(key)
	if !ok {
		var zero R
		return zero, false
	}
	return *u.container.record(u.field.label, id), true
}

// GetMut gives direct access to the stored record. Indexed fields must not
// be changed through it, use Modify. The pointer is valid until the next
// insertion or capacity change.
func (u *UniqueIndex[R, K]) GetMut(key K) (*R, bool) {
	id, ok := u.index.Get(key)
	if !ok {
		return nil, false
	}
	return u.container.record(u.field.label, id), true
}

func (u *UniqueIndex[R, K]) Contains(key K) bool {
	return u.index.Has(key)
}

// Remove deletes the record from the store and from every index.
func (u *UniqueIndex[R, K]) Remove(key K) (R, bool) {
	id, ok := u.index.Get(key)
	if !ok {
		var zero R
		return zero, false
	}
	return u.container.removeSlot(u.field.label, id), true
}

// Modify applies mutate and reindexes the keys it changed. It panics with
// *UniquenessError if a new key collides, leaving the record untouched.
func (u *UniqueIndex[R, K]) Modify(key K, mutate func(*R)) (R, bool) {
	r, ok, err := u.TryModify(key, mutate)
	if err != nil {
		panic(err)
	}
	return r, ok
}

func (u *UniqueIndex[R, K]) TryModify(key K, mutate func(*R)) (R, bool, error) {
	id, ok := u.index.Get(key)
	if !ok {
		var zero R
		return zero, false, nil
	}
	r, err := u.container.modifySlot(u.field.label, id, mutate)
	return r, true, err
}

// Update applies mutate without reindexing, so it must only touch unindexed
// fields. Unless UncheckedUpdates is set, changing an indexed field restores
// the record and panics with *UpdateError.
func (u *UniqueIndex[R, K]) Update(key K, mutate func(*R)) (R, bool) {
	id, ok := u.index.Get(key)
	if !ok {
		var zero R
		return zero, false
	}
	return u.container.updateSlot(u.field.label, id, mutate), true
}

// All traverses the records in index order, hashed indexes have none.
func (u *UniqueIndex[R, K]) All() iter.Seq[R] {
	return records(u.container, u.field.label, u.index.All())
}

type OrderedUniqueIndex[R any, K any] struct {
	UniqueIndex[R, K]
	ordered index.UniqueOrdered[K]
}

func (u *OrderedUniqueIndex[R, K]) Backward() iter.Seq[R] {
	return records(u.container, u.field.label, u.ordered.Backward())
}

func (u *OrderedUniqueIndex[R, K]) Traverse(options TraverseOptions[K]) iter.Seq[R] {
	return records(u.container, u.field.label, u.ordered.Traverse(options))
}
