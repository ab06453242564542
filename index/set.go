package index

import (
	"fmt"
	"iter"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/fulldump/multiindex/slab"
)

// slots is the set of slots sharing a key in non unique indexes.
type slots struct {
	rb *roaring.Bitmap
}

func newSlots(id slab.Slot) slots {
	return slots{rb: roaring.BitmapOf(uint32(id))}
}

func (s slots) add(id slab.Slot) {
	s.rb.Add(uint32(id))
}

// remove returns false if id was not in the set
func (s slots) remove(id slab.Slot) bool {
	return s.rb.CheckedRemove(uint32(id))
}

func (s slots) len() int {
	return int(s.rb.GetCardinality())
}

func (s slots) isEmpty() bool {
	return s.rb.IsEmpty()
}

func (s slots) optimize() {
	s.rb.RunOptimize()
}

func (s slots) ascend(yield func(slab.Slot) bool) bool {
	it := s.rb.Iterator()
	for it.HasNext() {
		if !yield(slab.Slot(it.Next())) {
			return false
		}
	}
	return true
}

func (s slots) descend(yield func(slab.Slot) bool) bool {
	it := s.rb.ReverseIterator()
	for it.HasNext() {
		if !yield(slab.Slot(it.Next())) {
			return false
		}
	}
	return true
}

// flatten visits every slot of a group, the outer traversal only moves to
// the next key once the inner one is exhausted.
func flatten[K any](key K, s slots, reverse bool, yield func(K, slab.Slot) bool) bool {
	if s.isEmpty() {
		panic(fmt.Errorf("%w: %v", ErrEmptySet, key))
	}
	visit := func(id slab.Slot) bool {
		return yield(key, id)
	}
	if reverse {
		return s.descend(visit)
	}
	return s.ascend(visit)
}

func emptySeq(yield func(slab.Slot) bool) {}

func single(id slab.Slot) iter.Seq[slab.Slot] {
	return func(yield func(slab.Slot) bool) {
		yield(id)
	}
}
