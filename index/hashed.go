package index

import (
	"fmt"
	"iter"
	"maps"

	"github.com/fulldump/multiindex/slab"
)

// --- HashedUnique ---

type hashedUnique[K comparable] struct {
	entries map[K]slab.Slot
}

func NewHashedUnique[K comparable](capacity int) Unique[K] {
	return &hashedUnique[K]{
		entries: make(map[K]slab.Slot, capacity),
	}
}

func (i *hashedUnique[K]) sealed() {}

func (i *hashedUnique[K]) Kind() Kind {
	return HashedUnique
}

func (i *hashedUnique[K]) Len() int {
	return len(i.entries)
}

func (i *hashedUnique[K]) Has(key K) bool {
	_, exists := i.entries[key]
	return exists
}

func (i *hashedUnique[K]) Count(key K) int {
	if i.Has(key) {
		return 1
	}
	return 0
}

func (i *hashedUnique[K]) Get(key K) (slab.Slot, bool) {
	id, exists := i.entries[key]
	return id, exists
}

func (i *hashedUnique[K]) Check(key K, id slab.Slot) error {
	if key != key {
		return fmt.Errorf("%w: %v", ErrInvalidKey, key)
	}
	if current, exists := i.entries[key]; exists && current != id {
		return fmt.Errorf("%w: %v", ErrKeyExists, key)
	}
	return nil
}

func (i *hashedUnique[K]) Insert(key K, id slab.Slot) error {
	if key != key {
		return fmt.Errorf("%w: %v", ErrInvalidKey, key)
	}
	if _, exists := i.entries[key]; exists {
		return fmt.Errorf("%w: %v", ErrKeyExists, key)
	}
	i.entries[key] = id
	return nil
}

func (i *hashedUnique[K]) Remove(key K, id slab.Slot) bool {
	current, exists := i.entries[key]
	if !exists || current != id {
		return false
	}
	delete(i.entries, key)
	return true
}

func (i *hashedUnique[K]) Reindex(oldKey, newKey K, id slab.Slot) error {
	return reindex[K](i, oldKey, newKey, id)
}

func (i *hashedUnique[K]) Slots(key K) iter.Seq[slab.Slot] {
	id, exists := i.entries[key]
	if !exists {
		return emptySeq
	}
	return single(id)
}

func (i *hashedUnique[K]) All() iter.Seq2[K, slab.Slot] {
	return maps.All(i.entries)
}

func (i *hashedUnique[K]) Equal(a, b K) bool {
	return a == b
}

func (i *hashedUnique[K]) Clear() {
	clear(i.entries)
}

// Go maps cannot grow in place, reserving rebuilds the table once.
func (i *hashedUnique[K]) Reserve(additional int) {
	if additional <= 0 {
		return
	}
	entries := make(map[K]slab.Slot, len(i.entries)+additional)
	maps.Copy(entries, i.entries)
	i.entries = entries
}

func (i *hashedUnique[K]) ShrinkToFit() {
	entries := make(map[K]slab.Slot, len(i.entries))
	maps.Copy(entries, i.entries)
	i.entries = entries
}

// --- HashedNonUnique ---

type hashedNonUnique[K comparable] struct {
	entries map[K]slots
}

func NewHashedNonUnique[K comparable](capacity int) Index[K] {
	return &hashedNonUnique[K]{
		entries: make(map[K]slots, capacity),
	}
}

func (i *hashedNonUnique[K]) sealed() {}

func (i *hashedNonUnique[K]) Kind() Kind {
	return HashedNonUnique
}

func (i *hashedNonUnique[K]) Len() int {
	return len(i.entries)
}

func (i *hashedNonUnique[K]) Has(key K) bool {
	_, exists := i.entries[key]
	return exists
}

func (i *hashedNonUnique[K]) Count(key K) int {
	group, exists := i.entries[key]
	if !exists {
		return 0
	}
	return group.len()
}

func (i *hashedNonUnique[K]) Check(key K, id slab.Slot) error {
	if key != key {
		return fmt.Errorf("%w: %v", ErrInvalidKey, key)
	}
	return nil
}

func (i *hashedNonUnique[K]) Insert(key K, id slab.Slot) error {
	if key != key {
		return fmt.Errorf("%w: %v", ErrInvalidKey, key)
	}
	group, exists := i.entries[key]
	if !exists {
		i.entries[key] = newSlots(id)
		return nil
	}
	group.add(id)
	return nil
}

func (i *hashedNonUnique[K]) Remove(key K, id slab.Slot) bool {
	group, exists := i.entries[key]
	if !exists {
		return false
	}
	if !group.remove(id) {
		return false
	}
	if group.isEmpty() {
		delete(i.entries, key)
	}
	return true
}

func (i *hashedNonUnique[K]) Reindex(oldKey, newKey K, id slab.Slot) error {
	return reindex[K](i, oldKey, newKey, id)
}

func (i *hashedNonUnique[K]) Slots(key K) iter.Seq[slab.Slot] {
	group, exists := i.entries[key]
	if !exists {
		return emptySeq
	}
	return func(yield func(slab.Slot) bool) {
		group.ascend(yield)
	}
}

func (i *hashedNonUnique[K]) All() iter.Seq2[K, slab.Slot] {
	return func(yield func(K, slab.Slot) bool) {
		for key, group := range i.entries {
			if !flatten(key, group, false, yield) {
				return
			}
		}
	}
}

func (i *hashedNonUnique[K]) Equal(a, b K) bool {
	return a == b
}

func (i *hashedNonUnique[K]) Clear() {
	clear(i.entries)
}

func (i *hashedNonUnique[K]) Reserve(additional int) {
	if additional <= 0 {
		return
	}
	entries := make(map[K]slots, len(i.entries)+additional)
	maps.Copy(entries, i.entries)
	i.entries = entries
}

func (i *hashedNonUnique[K]) ShrinkToFit() {
	entries := make(map[K]slots, len(i.entries))
	for key, group := range i.entries {
		group.optimize()
		entries[key] = group
	}
	i.entries = entries
}
