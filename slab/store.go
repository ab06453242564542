package slab

import (
	"fmt"
	"iter"
	"slices"
)

// Slot identifies a record position inside a Store. It is stable while the
// record is alive and may be handed to another record after removal.
type Slot uint32

type entry[R any] struct {
	value  R
	active bool
}

// Store is an arena of records addressed by Slot with free slot reuse.
// It is not safe for concurrent use.
type Store[R any] struct {
	records  []entry[R]
	freeList []Slot // stack of removed slots
	len      int
}

func New[R any](capacity int) *Store[R] {
	return &Store[R]{
		records:  make([]entry[R], 0, capacity),
		freeList: make([]Slot, 0),
	}
}

// Insert stores r in a reclaimed slot if there is one, or at the end.
func (s *Store[R]) Insert(r R) Slot {

	var id Slot
	if n := len(s.freeList); n > 0 {
		id = s.freeList[n-1] // pop
		s.freeList = s.freeList[:n-1]
	} else {
		id = Slot(len(s.records))
		s.records = append(s.records, entry[R]{})
	}

	s.records[id] = entry[R]{
		value:  r,
		active: true,
	}
	s.len++

	return id
}

// Next is the slot the following Insert will use.
func (s *Store[R]) Next() Slot {
	if n := len(s.freeList); n > 0 {
		return s.freeList[n-1]
	}
	return Slot(len(s.records))
}

// Get returns a pointer to the record stored at id. The pointer is only valid
// until the next Insert, Reserve, ShrinkToFit or Clear.
func (s *Store[R]) Get(id Slot) (*R, bool) {
	if !s.Has(id) {
		return nil, false
	}
	return &s.records[id].value, true
}

func (s *Store[R]) Has(id Slot) bool {
	return int(id) < len(s.records) && s.records[id].active
}

// Remove frees the slot and returns its record. The slot must be alive.
func (s *Store[R]) Remove(id Slot) R {
	if !s.Has(id) {
		panic(fmt.Sprintf("slab: remove of vacant slot %d", id))
	}

	r := s.records[id].value
	s.records[id] = entry[R]{} // release references for the GC
	s.freeList = append(s.freeList, id) // push
	s.len--

	return r
}

func (s *Store[R]) Len() int {
	return s.len
}

func (s *Store[R]) IsEmpty() bool {
	return s.len == 0
}

// Cap is the number of records the store can hold without growing.
func (s *Store[R]) Cap() int {
	return cap(s.records)
}

// Reserve makes room for at least additional more records.
func (s *Store[R]) Reserve(additional int) {
	if additional <= 0 {
		return
	}
	free := len(s.freeList) + cap(s.records) - len(s.records)
	if free >= additional {
		return
	}
	s.records = slices.Grow(s.records, additional-len(s.freeList))
}

// ShrinkToFit drops trailing vacant slots and releases unused capacity.
func (s *Store[R]) ShrinkToFit() {

	last := len(s.records)
	for last > 0 && !s.records[last-1].active {
		last--
	}

	records := make([]entry[R], last)
	copy(records, s.records[:last])
	s.records = records

	s.rebuildFreeList()
}

// rebuildFreeList keeps the lowest vacant slot on top of the stack.
func (s *Store[R]) rebuildFreeList() {
	freeList := make([]Slot, 0, len(s.records)-s.len)
	for i := len(s.records) - 1; i >= 0; i-- {
		if !s.records[i].active {
			freeList = append(freeList, Slot(i))
		}
	}
	s.freeList = freeList
}

// Clear removes every record keeping the allocated capacity.
func (s *Store[R]) Clear() {
	clear(s.records)
	s.records = s.records[:0]
	s.freeList = s.freeList[:0]
	s.len = 0
}

// All traverses live records in storage order, which is not meaningful to
// callers beyond being deterministic.
func (s *Store[R]) All() iter.Seq2[Slot, *R] {
	return func(yield func(Slot, *R) bool) {
		for i := range s.records {
			if !s.records[i].active {
				continue
			}
			if !yield(Slot(i), &s.records[i].value) {
				return
			}
		}
	}
}
