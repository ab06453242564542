package orderbook

import (
	"errors"
	"slices"
	"testing"

	"github.com/fulldump/biff"

	"github.com/fulldump/multiindex/collection"
	"github.com/fulldump/multiindex/index"
)

func orderIDs(orders []Order) []uint32 {
	result := []uint32{}
	for _, o := range orders {
		result = append(result, o.ID)
	}
	return result
}

func TestBook_Walkthrough(t *testing.T) {

	book := New(nil)

	o1 := Order{ID: 1, Ref: "r1", Timestamp: 111, Trader: "John", Price: 10}
	o2 := Order{ID: 2, Ref: "r2", Timestamp: 22, Trader: "Tom", Price: 20}

	book.Insert(o1)
	biff.AssertNil(book.TryInsert(o2))

	biff.AssertEqual(orderIDs(slices.Collect(book.IterByTimestamp())), []uint32{2, 1})
	biff.AssertEqual(orderIDs(slices.Collect(book.IterByTimestampReverse())), []uint32{1, 2})
	biff.AssertEqual(len(slices.Collect(book.IterByOrderID())), 2)
	biff.AssertEqual(orderIDs(slices.Collect(book.Iter())), []uint32{1, 2})

	got, ok := book.GetByOrderID(1)
	biff.AssertTrue(ok)
	biff.AssertEqual(got.Trader, "John")

	modified, ok := book.ModifyByOrderID(1, func(o *Order) {
		o.ID = 7
		o.Timestamp = 77
		o.Trader = "Tom"
	})
	biff.AssertTrue(ok)
	biff.AssertEqual(modified.ID, uint32(7))
	biff.AssertEqual(book.CountByTraderName("Tom"), 2)
	biff.AssertEqual(book.CountByTraderName("John"), 0)

	updated, ok := book.UpdateByOrderID(7, func(note *string) {
		*note = "TestNote"
	})
	biff.AssertTrue(ok)
	biff.AssertEqual(updated.Note, "TestNote")

	toms := book.RemoveByTraderName("Tom")
	biff.AssertEqual(len(toms), 2)
	biff.AssertEqual(book.Len(), 0)

	o3 := Order{ID: 3, Ref: "r3", Timestamp: 33, Trader: "Jimbo"}
	book.Insert(o3)
	removed, ok := book.RemoveByTimestamp(33)
	biff.AssertTrue(ok)
	biff.AssertEqual(removed, o3)

	biff.AssertTrue(book.IsEmpty())
	biff.AssertNil(book.Check())
}

func TestBook_Indexes(t *testing.T) {

	biff.Alternative("Book", func(a *biff.A) {

		book := New(&collection.Options{Capacity: 8})
		book.Insert(Order{ID: 1, Ref: "a", Timestamp: 1, Trader: "ann", Price: 100})
		book.Insert(Order{ID: 2, Ref: "b", Timestamp: 2, Trader: "bob", Price: 100})
		book.Insert(Order{ID: 3, Ref: "c", Timestamp: 3, Trader: "ann", Price: 50})

		a.Alternative("By ref", func(a *biff.A) {
			o, ok := book.GetByRef("b")
			biff.AssertTrue(ok)
			biff.AssertEqual(o.ID, uint32(2))

			ptr, ok := book.GetMutByRef("b")
			biff.AssertTrue(ok)
			ptr.Note = "mut"

			o, _ = book.UpdateByRef("b", func(note *string) { *note += "!" })
			biff.AssertEqual(o.Note, "mut!")

			_, ok = book.ModifyByRef("b", func(o *Order) { o.Ref = "bb" })
			biff.AssertTrue(ok)
			biff.AssertFalse(book.byRef.Contains("b"))

			_, _, err := book.TryModifyByRef("bb", func(o *Order) { o.Ref = "a" })
			biff.AssertTrue(errors.Is(err, index.ErrKeyExists))

			o, ok = book.RemoveByRef("bb")
			biff.AssertTrue(ok)
			biff.AssertEqual(o.ID, uint32(2))
			biff.AssertEqual(len(slices.Collect(book.IterByRef())), 2)
		})

		a.Alternative("By price", func(a *biff.A) {
			biff.AssertEqual(orderIDs(book.GetByPrice(100)), []uint32{1, 2})
			biff.AssertEqual(orderIDs(slices.Collect(book.IterByPrice())), []uint32{3, 1, 2})
			biff.AssertEqual(orderIDs(slices.Collect(book.IterByPriceReverse())), []uint32{2, 1, 3})

			from := int64(60)
			biff.AssertEqual(orderIDs(slices.Collect(book.TraverseByPrice(collection.TraverseOptions[int64]{From: &from}))), []uint32{1, 2})

			for _, o := range book.GetMutByPrice(50) {
				o.Note = "cheap"
			}
			biff.AssertEqual(book.UpdateByPrice(50, func(note *string) { *note += "!" })[0].Note, "cheap!")

			raised := book.ModifyByPrice(100, func(o *Order) { o.Price = 110 })
			biff.AssertEqual(orderIDs(raised), []uint32{1, 2})
			biff.AssertEqual(book.CountByPrice(110), 2)

			_, err := book.TryModifyByPrice(110, func(o *Order) { o.Timestamp = 3 })
			biff.AssertTrue(errors.Is(err, index.ErrKeyExists))

			biff.AssertEqual(orderIDs(book.RemoveByPrice(110)), []uint32{1, 2})
			biff.AssertEqual(book.Len(), 1)
		})

		a.Alternative("By trader", func(a *biff.A) {
			biff.AssertEqual(orderIDs(book.GetByTraderName("ann")), []uint32{1, 3})
			biff.AssertEqual(len(book.GetMutByTraderName("bob")), 1)

			notes := book.UpdateByTraderName("ann", func(note *string) { *note = "ann" })
			biff.AssertEqual(len(notes), 2)

			moved := book.ModifyByTraderName("bob", func(o *Order) { o.Trader = "ann" })
			biff.AssertEqual(orderIDs(moved), []uint32{2})
			biff.AssertEqual(book.CountByTraderName("ann"), 3)

			_, err := book.TryModifyByTraderName("ann", func(o *Order) { o.ID = 1 })
			biff.AssertTrue(errors.Is(err, index.ErrKeyExists))
			biff.AssertEqual(len(slices.Collect(book.IterByTraderName())), 3)
		})

		a.Alternative("By timestamp", func(a *biff.A) {
			ptr, ok := book.GetMutByTimestamp(3)
			biff.AssertTrue(ok)
			biff.AssertEqual(ptr.ID, uint32(3))

			o, ok := book.UpdateByTimestamp(3, func(note *string) { *note = "last" })
			biff.AssertTrue(ok)
			biff.AssertEqual(o.Note, "last")

			to := uint64(3)
			biff.AssertEqual(orderIDs(slices.Collect(book.TraverseByTimestamp(collection.TraverseOptions[uint64]{To: &to, Reverse: true}))), []uint32{2, 1})

			_, _, err := book.TryModifyByTimestamp(3, func(o *Order) { o.Timestamp = 1 })
			biff.AssertTrue(errors.Is(err, index.ErrKeyExists))

			_, ok = book.ModifyByTimestamp(3, func(o *Order) { o.Timestamp = 0 })
			biff.AssertTrue(ok)
			first, _ := book.GetByTimestamp(0)
			biff.AssertEqual(first.ID, uint32(3))
		})

		a.Alternative("By order id", func(a *biff.A) {
			ptr, ok := book.GetMutByOrderID(1)
			biff.AssertTrue(ok)
			ptr.Note = "x"

			_, _, err := book.TryModifyByOrderID(1, func(o *Order) { o.ID = 2 })
			biff.AssertTrue(errors.Is(err, index.ErrKeyExists))

			o, ok := book.RemoveByOrderID(1)
			biff.AssertTrue(ok)
			biff.AssertEqual(o.Note, "x")
		})

		a.Alternative("Capacity", func(a *biff.A) {
			biff.AssertEqual(book.Capacity(), 8)
			book.Reserve(100)
			biff.AssertTrue(book.Capacity() >= 103)
			book.RemoveByOrderID(3)
			book.ShrinkToFit()
			biff.AssertEqual(book.Capacity(), 2)
		})

		a.Alternative("IterMut", func(a *biff.A) {
			for o := range book.IterMut() {
				o.Note = "seen"
			}
			for o := range book.Iter() {
				biff.AssertEqual(o.Note, "seen")
			}
		})

		a.Alternative("Clear", func(a *biff.A) {
			book.Clear()
			biff.AssertEqual(book.Len(), 0)
			_, ok := book.GetByRef("a")
			biff.AssertFalse(ok)
			biff.AssertEqual(len(book.Indexes()), 5)
		})

		a.Alternative("Duplicated timestamp", func(a *biff.A) {
			err := book.TryInsert(Order{ID: 9, Ref: "z", Timestamp: 2})
			uniquenessError := &collection.UniquenessError{}
			biff.AssertTrue(errors.As(err, &uniquenessError))
			biff.AssertEqual(uniquenessError.Index, IndexTimestamp)
			biff.AssertEqual(book.Len(), 3)
		})

		biff.AssertNil(book.Check())
	})
}
