package collection

import (
	"iter"
	"slices"

	"github.com/fulldump/multiindex/index"
)

// NonUniqueIndex accesses the container through an index that groups
// records sharing a key. Groups are always visited in ascending slot order.
type NonUniqueIndex[R any, K any] struct {
	container *Container[R]
	field     *fieldOf[R, K]
	index     index.Index[K]
}

func (u *NonUniqueIndex[R, K]) Name() string {
	return u.field.label
}

// Get returns copies of every record under key, nil if there is none.
func (u *NonUniqueIndex[R, K]) Get(key K) []R {
	var result []R
	for id := range u.index.Slots(key) {
		result = append(result, *u.container.record(u.field.label, id))
	}
	return result
}

func (u *NonUniqueIndex[R, K]) GetMut(key K) []*R {
	var result []*R
	for id := range u.index.Slots(key) {
		result = append(result, u.container.record(u.field.label, id))
	}
	return result
}

func (u *NonUniqueIndex[R, K]) Count(key K) int {
	return u.index.Count(key)
}

func (u *NonUniqueIndex[R, K]) Contains(key K) bool {
	return u.index.Has(key)
}

// Remove deletes every record under key and returns them.
func (u *NonUniqueIndex[R, K]) Remove(key K) []R {
	ids := slices.Collect(u.index.Slots(key))
	if len(ids) == 0 {
		return nil
	}
	result := make([]R, 0, len(ids))
	for _, id := range ids {
		result = append(result, u.container.removeSlot(u.field.label, id))
	}
	return result
}

// Modify applies mutate to every record under key. It panics on the first
// uniqueness violation, the offending record is restored but the ones
// modified before it keep their changes.
func (u *NonUniqueIndex[R, K]) Modify(key K, mutate func(*R)) []R {
	result, err := u.TryModify(key, mutate)
	if err != nil {
		panic(err)
	}
	return result
}

// TryModify returns the records modified before the first violation along
// with the error.
func (u *NonUniqueIndex[R, K]) TryModify(key K, mutate func(*R)) ([]R, error) {
	ids := slices.Collect(u.index.Slots(key))
	if len(ids) == 0 {
		return nil, nil
	}
	result := make([]R, 0, len(ids))
	for _, id := range ids {
		r, err := u.container.modifySlot(u.field.label, id, mutate)
		if err != nil {
			return result, err
		}
		result = append(result, r)
	}
	return result, nil
}

func (u *NonUniqueIndex[R, K]) Update(key K, mutate func(*R)) []R {
	var result []R
	for id := range u.index.Slots(key) {
		result = append(result, u.container.updateSlot(u.field.label, id, mutate))
	}
	return result
}

func (u *NonUniqueIndex[R, K]) All() iter.Seq[R] {
	return records(u.container, u.field.label, u.index.All())
}

type OrderedNonUniqueIndex[R any, K any] struct {
	NonUniqueIndex[R, K]
	ordered index.Ordered[K]
}

// Backward visits keys in descending order and the records of each key in
// descending slot order.
func (u *OrderedNonUniqueIndex[R, K]) Backward() iter.Seq[R] {
	return records(u.container, u.field.label, u.ordered.Backward())
}

func (u *OrderedNonUniqueIndex[R, K]) Traverse(options TraverseOptions[K]) iter.Seq[R] {
	return records(u.container, u.field.label, u.ordered.Traverse(options))
}
