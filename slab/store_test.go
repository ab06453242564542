package slab

import (
	"testing"

	"github.com/fulldump/biff"
)

func collect[R any](s *Store[R]) map[Slot]R {
	result := map[Slot]R{}
	for id, r := range s.All() {
		result[id] = *r
	}
	return result
}

func TestStore(t *testing.T) {

	biff.Alternative("Store", func(a *biff.A) {

		s := New[string](4)
		biff.AssertTrue(s.IsEmpty())
		biff.AssertEqual(s.Cap(), 4)

		a.Alternative("Insert", func(a *biff.A) {
			a0 := s.Insert("a")
			b1 := s.Insert("b")
			c2 := s.Insert("c")
			biff.AssertEqual(a0, Slot(0))
			biff.AssertEqual(b1, Slot(1))
			biff.AssertEqual(c2, Slot(2))
			biff.AssertEqual(s.Len(), 3)

			a.Alternative("Get", func(a *biff.A) {
				r, ok := s.Get(b1)
				biff.AssertTrue(ok)
				biff.AssertEqual(*r, "b")

				_, ok = s.Get(Slot(99))
				biff.AssertFalse(ok)
			})

			a.Alternative("Get mutable", func(a *biff.A) {
				r, _ := s.Get(c2)
				*r = "C"
				r, _ = s.Get(c2)
				biff.AssertEqual(*r, "C")
			})

			a.Alternative("Remove and reuse", func(a *biff.A) {
				biff.AssertEqual(s.Remove(b1), "b")
				biff.AssertEqual(s.Len(), 2)
				biff.AssertFalse(s.Has(b1))

				_, ok := s.Get(b1)
				biff.AssertFalse(ok)

				d := s.Insert("d")
				biff.AssertEqual(d, b1)
				biff.AssertEqual(collect(s), map[Slot]string{0: "a", 1: "d", 2: "c"})
			})

			a.Alternative("Last freed slot is reused first", func(a *biff.A) {
				s.Remove(a0)
				s.Remove(c2)
				biff.AssertEqual(s.Next(), c2)
				biff.AssertEqual(s.Insert("x"), c2)
				biff.AssertEqual(s.Insert("y"), a0)
				biff.AssertEqual(s.Next(), Slot(3))
				biff.AssertEqual(s.Insert("z"), Slot(3))
			})

			a.Alternative("Remove vacant slot panics", func(a *biff.A) {
				s.Remove(b1)
				biff.AssertNotNil(catchPanic(func() { s.Remove(b1) }))
				biff.AssertNotNil(catchPanic(func() { s.Remove(Slot(42)) }))
				biff.AssertEqual(s.Len(), 2)
			})

			a.Alternative("Clear", func(a *biff.A) {
				s.Clear()
				biff.AssertEqual(s.Len(), 0)
				biff.AssertTrue(s.IsEmpty())
				biff.AssertEqual(len(collect(s)), 0)
				biff.AssertEqual(s.Insert("again"), Slot(0))
			})

			a.Alternative("ShrinkToFit", func(a *biff.A) {
				s.Remove(c2)
				s.Remove(a0)
				s.ShrinkToFit()
				biff.AssertEqual(s.Cap(), 2)
				biff.AssertEqual(s.Len(), 1)

				// the hole at 0 stays reusable, the trailing one is gone
				biff.AssertEqual(s.Insert("x"), a0)
				biff.AssertEqual(s.Insert("y"), Slot(2))
				biff.AssertEqual(collect(s), map[Slot]string{0: "x", 1: "b", 2: "y"})
			})

			a.Alternative("Traverse in storage order", func(a *biff.A) {
				slots := []Slot{}
				for id := range s.All() {
					slots = append(slots, id)
				}
				biff.AssertEqual(slots, []Slot{0, 1, 2})
			})

			a.Alternative("Traverse can stop", func(a *biff.A) {
				n := 0
				for range s.All() {
					n++
					break
				}
				biff.AssertEqual(n, 1)
			})
		})

		a.Alternative("Reserve", func(a *biff.A) {
			s.Reserve(100)
			biff.AssertTrue(s.Cap() >= 100)

			capacity := s.Cap()
			for i := 0; i < 100; i++ {
				s.Insert("item")
			}
			biff.AssertEqual(s.Cap(), capacity)
			biff.AssertEqual(s.Len(), 100)
		})

		a.Alternative("Reserve counts reclaimable slots", func(a *biff.A) {
			for i := 0; i < 4; i++ {
				s.Insert("item")
			}
			s.Remove(1)
			s.Remove(2)
			s.Reserve(2)
			biff.AssertEqual(s.Cap(), 4)
		})
	})
}

func catchPanic(f func()) (recovered interface{}) {
	defer func() {
		recovered = recover()
	}()
	f()
	return
}
