package index

import (
	"fmt"
	"iter"

	"github.com/google/btree"

	"github.com/fulldump/multiindex/slab"
)

const degree = 32

// --- OrderedUnique ---

type uniqueItem[K any] struct {
	key  K
	slot slab.Slot
}

type orderedUnique[K any] struct {
	btree   *btree.BTreeG[uniqueItem[K]]
	compare func(a, b K) int
}

// NewOrderedUnique keeps keys sorted by compare, which must follow the
// cmp.Compare contract.
func NewOrderedUnique[K any](compare func(a, b K) int) UniqueOrdered[K] {
	return &orderedUnique[K]{
		btree: btree.NewG(degree, func(a, b uniqueItem[K]) bool {
			return compare(a.key, b.key) < 0
		}),
		compare: compare,
	}
}

func (i *orderedUnique[K]) sealed() {}

func (i *orderedUnique[K]) Kind() Kind {
	return OrderedUnique
}

func (i *orderedUnique[K]) Len() int {
	return i.btree.Len()
}

func (i *orderedUnique[K]) Has(key K) bool {
	return i.btree.Has(uniqueItem[K]{key: key})
}

func (i *orderedUnique[K]) Count(key K) int {
	if i.Has(key) {
		return 1
	}
	return 0
}

func (i *orderedUnique[K]) Get(key K) (slab.Slot, bool) {
	item, exists := i.btree.Get(uniqueItem[K]{key: key})
	return item.slot, exists
}

func (i *orderedUnique[K]) Check(key K, id slab.Slot) error {
	if current, exists := i.Get(key); exists && current != id {
		return fmt.Errorf("%w: %v", ErrKeyExists, key)
	}
	return nil
}

func (i *orderedUnique[K]) Insert(key K, id slab.Slot) error {
	if i.Has(key) {
		return fmt.Errorf("%w: %v", ErrKeyExists, key)
	}
	i.btree.ReplaceOrInsert(uniqueItem[K]{key: key, slot: id})
	return nil
}

func (i *orderedUnique[K]) Remove(key K, id slab.Slot) bool {
	current, exists := i.Get(key)
	if !exists || current != id {
		return false
	}
	i.btree.Delete(uniqueItem[K]{key: key})
	return true
}

func (i *orderedUnique[K]) Reindex(oldKey, newKey K, id slab.Slot) error {
	return reindex[K](i, oldKey, newKey, id)
}

func (i *orderedUnique[K]) Slots(key K) iter.Seq[slab.Slot] {
	id, exists := i.Get(key)
	if !exists {
		return emptySeq
	}
	return single(id)
}

func (i *orderedUnique[K]) All() iter.Seq2[K, slab.Slot] {
	return i.Traverse(TraverseOptions[K]{})
}

func (i *orderedUnique[K]) Backward() iter.Seq2[K, slab.Slot] {
	return i.Traverse(TraverseOptions[K]{Reverse: true})
}

func (i *orderedUnique[K]) Traverse(options TraverseOptions[K]) iter.Seq2[K, slab.Slot] {
	return func(yield func(K, slab.Slot) bool) {
		traverse(i.btree, i.compare, options,
			func(key K) uniqueItem[K] { return uniqueItem[K]{key: key} },
			func(item uniqueItem[K]) K { return item.key },
			func(item uniqueItem[K]) bool {
				return yield(item.key, item.slot)
			},
		)
	}
}

func (i *orderedUnique[K]) Equal(a, b K) bool {
	return i.compare(a, b) == 0
}

func (i *orderedUnique[K]) Clear() {
	i.btree.Clear(false)
}

// B-trees allocate per node, there is nothing to reserve.
func (i *orderedUnique[K]) Reserve(additional int) {}

func (i *orderedUnique[K]) ShrinkToFit() {}

// --- OrderedNonUnique ---

type groupItem[K any] struct {
	key   K
	slots slots
}

type orderedNonUnique[K any] struct {
	btree   *btree.BTreeG[groupItem[K]]
	compare func(a, b K) int
}

func NewOrderedNonUnique[K any](compare func(a, b K) int) Ordered[K] {
	return &orderedNonUnique[K]{
		btree: btree.NewG(degree, func(a, b groupItem[K]) bool {
			return compare(a.key, b.key) < 0
		}),
		compare: compare,
	}
}

func (i *orderedNonUnique[K]) sealed() {}

func (i *orderedNonUnique[K]) Kind() Kind {
	return OrderedNonUnique
}

func (i *orderedNonUnique[K]) Len() int {
	return i.btree.Len()
}

func (i *orderedNonUnique[K]) Has(key K) bool {
	return i.btree.Has(groupItem[K]{key: key})
}

func (i *orderedNonUnique[K]) group(key K) (slots, bool) {
	item, exists := i.btree.Get(groupItem[K]{key: key})
	return item.slots, exists
}

func (i *orderedNonUnique[K]) Count(key K) int {
	group, exists := i.group(key)
	if !exists {
		return 0
	}
	return group.len()
}

func (i *orderedNonUnique[K]) Check(key K, id slab.Slot) error {
	return nil
}

func (i *orderedNonUnique[K]) Insert(key K, id slab.Slot) error {
	group, exists := i.group(key)
	if !exists {
		i.btree.ReplaceOrInsert(groupItem[K]{key: key, slots: newSlots(id)})
		return nil
	}
	group.add(id)
	return nil
}

func (i *orderedNonUnique[K]) Remove(key K, id slab.Slot) bool {
	group, exists := i.group(key)
	if !exists {
		return false
	}
	if !group.remove(id) {
		return false
	}
	if group.isEmpty() {
		i.btree.Delete(groupItem[K]{key: key})
	}
	return true
}

func (i *orderedNonUnique[K]) Reindex(oldKey, newKey K, id slab.Slot) error {
	return reindex[K](i, oldKey, newKey, id)
}

func (i *orderedNonUnique[K]) Slots(key K) iter.Seq[slab.Slot] {
	group, exists := i.group(key)
	if !exists {
		return emptySeq
	}
	return func(yield func(slab.Slot) bool) {
		group.ascend(yield)
	}
}

func (i *orderedNonUnique[K]) All() iter.Seq2[K, slab.Slot] {
	return i.Traverse(TraverseOptions[K]{})
}

func (i *orderedNonUnique[K]) Backward() iter.Seq2[K, slab.Slot] {
	return i.Traverse(TraverseOptions[K]{Reverse: true})
}

// Traverse mirrors the outer order in the inner one: reverse traversals
// visit the slots of each key in descending order too.
func (i *orderedNonUnique[K]) Traverse(options TraverseOptions[K]) iter.Seq2[K, slab.Slot] {
	return func(yield func(K, slab.Slot) bool) {
		traverse(i.btree, i.compare, options,
			func(key K) groupItem[K] { return groupItem[K]{key: key} },
			func(item groupItem[K]) K { return item.key },
			func(item groupItem[K]) bool {
				return flatten(item.key, item.slots, options.Reverse, yield)
			},
		)
	}
}

func (i *orderedNonUnique[K]) Equal(a, b K) bool {
	return i.compare(a, b) == 0
}

func (i *orderedNonUnique[K]) Clear() {
	i.btree.Clear(false)
}

func (i *orderedNonUnique[K]) Reserve(additional int) {}

func (i *orderedNonUnique[K]) ShrinkToFit() {
	i.btree.Ascend(func(item groupItem[K]) bool {
		item.slots.optimize()
		return true
	})
}

// traverse walks the items whose key is in [From, To), both bounds optional.
func traverse[T any, K any](tree *btree.BTreeG[T], compare func(a, b K) int, options TraverseOptions[K], pivot func(K) T, keyOf func(T) K, f func(T) bool) {

	hasFrom := options.From != nil
	hasTo := options.To != nil

	if options.Reverse {
		iterator := func(item T) bool {
			key := keyOf(item)
			if hasFrom && compare(key, *options.From) < 0 {
				return false
			}
			if hasTo && compare(key, *options.To) >= 0 {
				return true // upper bound is exclusive
			}
			return f(item)
		}
		if hasTo {
			tree.DescendLessOrEqual(pivot(*options.To), iterator)
		} else {
			tree.Descend(iterator)
		}
		return
	}

	iterator := btree.ItemIteratorG[T](f)
	switch {
	case hasFrom && hasTo:
		tree.AscendRange(pivot(*options.From), pivot(*options.To), iterator)
	case hasFrom:
		tree.AscendGreaterOrEqual(pivot(*options.From), iterator)
	case hasTo:
		tree.AscendLessThan(pivot(*options.To), iterator)
	default:
		tree.Ascend(iterator)
	}
}
