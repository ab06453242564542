package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fulldump/biff"

	"github.com/fulldump/multiindex/collection"
	"github.com/fulldump/multiindex/index"
	"github.com/fulldump/multiindex/orderbook"
)

func newTestService() *Service {
	s := NewService(orderbook.New(nil), nil)
	s.now = func() time.Time {
		return time.Unix(0, 1000)
	}
	return s
}

func ids(orders []orderbook.Order) []uint32 {
	result := []uint32{}
	for _, o := range orders {
		result = append(result, o.ID)
	}
	return result
}

func TestService(t *testing.T) {

	biff.Alternative("Service", func(a *biff.A) {

		s := newTestService()
		biff.AssertNil(s.Seed())

		a.Alternative("Insert fills defaults", func(a *biff.A) {
			order, err := s.Insert(orderbook.Order{Trader: "Ann", Price: 10})
			biff.AssertNil(err)
			biff.AssertEqual(order.ID, uint32(4))
			biff.AssertEqual(order.Timestamp, uint64(1000))
			biff.AssertEqual(len(order.Ref), 36)

			stored, err := s.GetByRef(order.Ref)
			biff.AssertNil(err)
			biff.AssertEqual(stored, order)
		})

		a.Alternative("Insert conflict", func(a *biff.A) {
			_, err := s.Insert(orderbook.Order{ID: 2, Trader: "Ann"})
			biff.AssertTrue(errors.Is(err, ErrorOrderConflict))
			biff.AssertTrue(errors.Is(err, index.ErrKeyExists))

			uniquenessError := &collection.UniquenessError{}
			biff.AssertTrue(errors.As(err, &uniquenessError))
			biff.AssertEqual(uniquenessError.Index, orderbook.IndexOrderID)
			biff.AssertEqual(s.Stats().Len, 3)
		})

		a.Alternative("Get missing", func(a *biff.A) {
			_, err := s.Get(99)
			biff.AssertEqual(err, ErrorOrderNotFound)
			_, err = s.GetByRef("nope")
			biff.AssertEqual(err, ErrorOrderNotFound)
			_, err = s.Remove(99)
			biff.AssertEqual(err, ErrorOrderNotFound)
			_, err = s.SetNote(99, "x")
			biff.AssertEqual(err, ErrorOrderNotFound)
			_, err = s.Patch(99, &Patch{})
			biff.AssertEqual(err, ErrorOrderNotFound)
		})

		a.Alternative("Patch", func(a *biff.A) {
			id := uint32(7)
			trader := "Tom"
			order, err := s.Patch(1, &Patch{ID: &id, Trader: &trader})
			biff.AssertNil(err)
			biff.AssertEqual(order.ID, uint32(7))
			biff.AssertEqual(ids(s.TraderOrders("Tom")), []uint32{7, 2})
		})

		a.Alternative("Patch conflict", func(a *biff.A) {
			timestamp := uint64(22)
			_, err := s.Patch(1, &Patch{Timestamp: &timestamp})
			biff.AssertTrue(errors.Is(err, ErrorOrderConflict))

			order, _ := s.Get(1)
			biff.AssertEqual(order.Timestamp, uint64(111))
		})

		a.Alternative("SetNote", func(a *biff.A) {
			order, err := s.SetNote(3, "hello")
			biff.AssertNil(err)
			biff.AssertEqual(order.Note, "hello")
		})

		a.Alternative("Remove trader orders", func(a *biff.A) {
			removed := s.RemoveTraderOrders("John")
			biff.AssertEqual(ids(removed), []uint32{1})
			biff.AssertEqual(len(s.TraderOrders("John")), 0)
			biff.AssertEqual(ids(s.GetByPrice(100)), []uint32{3})
		})

		a.Alternative("Traverse by timestamp", func(a *biff.A) {
			result := []orderbook.Order{}
			err := s.Traverse(NewQuery(), func(o orderbook.Order) bool {
				result = append(result, o)
				return true
			})
			biff.AssertNil(err)
			biff.AssertEqual(ids(result), []uint32{2, 3, 1})
		})

		a.Alternative("Traverse reverse with skip and limit", func(a *biff.A) {
			query := NewQuery()
			query.Index = orderbook.IndexPrice
			query.Reverse = true
			query.Skip = 1
			query.Limit = 1

			result := []orderbook.Order{}
			err := s.Traverse(query, func(o orderbook.Order) bool {
				result = append(result, o)
				return true
			})
			biff.AssertNil(err)
			biff.AssertEqual(ids(result), []uint32{3})
		})

		a.Alternative("Traverse with filter", func(a *biff.A) {
			query := NewQuery()
			query.Filter = map[string]interface{}{
				"trader_name": "John",
			}

			result := []orderbook.Order{}
			err := s.Traverse(query, func(o orderbook.Order) bool {
				result = append(result, o)
				return true
			})
			biff.AssertNil(err)
			biff.AssertEqual(ids(result), []uint32{1})
		})

		a.Alternative("Traverse unknown index", func(a *biff.A) {
			query := NewQuery()
			query.Index = "color"
			err := s.Traverse(query, func(o orderbook.Order) bool { return true })
			biff.AssertTrue(errors.Is(err, ErrorIndexNotFound))
			biff.AssertEqual(err.Error(), "index not found: 'color', must be [order_id|price|ref|timestamp|trader_name]")
		})

		a.Alternative("Traverse hashed index backwards", func(a *biff.A) {
			query := NewQuery()
			query.Index = orderbook.IndexTraderName
			query.Reverse = true
			err := s.Traverse(query, func(o orderbook.Order) bool { return true })
			biff.AssertTrue(errors.Is(err, ErrorReverseNotKnown))
		})

		a.Alternative("Stats", func(a *biff.A) {
			stats := s.Stats()
			biff.AssertEqual(stats.Len, 3)
			biff.AssertTrue(stats.Healthy)
			biff.AssertEqual(len(stats.Indexes), 5)
		})

		a.Alternative("Clear and shrink", func(a *biff.A) {
			biff.AssertEqual(s.Clear(), 3)
			stats := s.Shrink()
			biff.AssertEqual(stats.Len, 0)
			biff.AssertEqual(stats.Capacity, 0)

			order, err := s.Insert(orderbook.Order{Trader: "Ann"})
			biff.AssertNil(err)
			biff.AssertEqual(order.ID, uint32(1))
		})
	})
}

func TestService_Concurrency(t *testing.T) {

	s := NewService(orderbook.New(nil), nil)

	n := 100
	wg := &sync.WaitGroup{}
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, err := s.Insert(orderbook.Order{Timestamp: uint64(i + 1), Trader: "same"})
			biff.AssertNil(err)
		}(i)
		go func() {
			defer wg.Done()
			s.TraderOrders("same")
		}()
	}
	wg.Wait()

	biff.AssertEqual(len(s.TraderOrders("same")), n)
	biff.AssertTrue(s.Stats().Healthy)
}
