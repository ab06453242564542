package index

import (
	"errors"
	"fmt"
	"iter"

	"github.com/fulldump/multiindex/slab"
)

var (
	ErrKeyExists = errors.New("key already exists")

	// ErrInvalidKey is returned for hashed keys that are not equal to
	// themselves (NaN), they could never be looked up or removed again.
	ErrInvalidKey = errors.New("key is not equal to itself")

	ErrNotIndexed = errors.New("slot is not indexed under key")
	ErrEmptySet   = errors.New("key maps to an empty slot set")
)

type Kind int

const (
	HashedUnique Kind = iota
	HashedNonUnique
	OrderedUnique
	OrderedNonUnique
)

func (k Kind) String() string {
	switch k {
	case HashedUnique:
		return "hashed_unique"
	case HashedNonUnique:
		return "hashed_non_unique"
	case OrderedUnique:
		return "ordered_unique"
	case OrderedNonUnique:
		return "ordered_non_unique"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k Kind) Unique() bool {
	return k == HashedUnique || k == OrderedUnique
}

func (k Kind) Ordered() bool {
	return k == OrderedUnique || k == OrderedNonUnique
}

// Index maps keys to slots. Unique variants hold one slot per key, non unique
// variants hold a non empty set of slots per key.
//
// The set of implementations is closed, see the New* constructors.
type Index[K any] interface {
	Kind() Kind

	// Len is the number of distinct keys.
	Len() int
	Has(key K) bool
	// Count is the number of slots stored under key.
	Count(key K) int

	// Check reports whether Insert(key, id) would succeed, without mutating.
	Check(key K, id slab.Slot) error
	Insert(key K, id slab.Slot) error
	// Remove returns false if id was not stored under key.
	Remove(key K, id slab.Slot) bool
	// Reindex moves id from oldKey to newKey. On error nothing changes.
	Reindex(oldKey, newKey K, id slab.Slot) error

	// Slots traverses the slots stored under key in ascending order.
	Slots(key K) iter.Seq[slab.Slot]
	// All traverses every (key, slot) pair in index order. Hashed indexes
	// have no defined order across keys.
	All() iter.Seq2[K, slab.Slot]

	Equal(a, b K) bool

	Clear()
	Reserve(additional int)
	ShrinkToFit()

	sealed()
}

type Unique[K any] interface {
	Index[K]
	Get(key K) (slab.Slot, bool)
}

type Ordered[K any] interface {
	Index[K]
	Backward() iter.Seq2[K, slab.Slot]
	Traverse(options TraverseOptions[K]) iter.Seq2[K, slab.Slot]
}

type UniqueOrdered[K any] interface {
	Unique[K]
	Ordered[K]
}

// TraverseOptions selects the keys in [From, To). A nil bound is open.
type TraverseOptions[K any] struct {
	From    *K
	To      *K
	Reverse bool
}

func reindex[K any](idx Index[K], oldKey, newKey K, id slab.Slot) error {
	if idx.Equal(oldKey, newKey) {
		return nil
	}
	if err := idx.Check(newKey, id); err != nil {
		return err
	}
	if !idx.Remove(oldKey, id) {
		return fmt.Errorf("%w: %v", ErrNotIndexed, oldKey)
	}
	return idx.Insert(newKey, id)
}
