package orderbook

import (
	"fmt"
	"testing"

	"github.com/fulldump/multiindex/collection"
)

const datasetSize = 1024

func preload(b *testing.B, size int) *Book {
	b.Helper()

	book := New(&collection.Options{Capacity: size})
	for i := 0; i < size; i++ {
		err := book.TryInsert(Order{
			ID:        uint32(i),
			Ref:       fmt.Sprintf("ref-%d", i),
			Timestamp: uint64(i),
			Trader:    fmt.Sprintf("trader-%d", i%16),
			Price:     int64(100 + i%10),
		})
		if err != nil {
			b.Fatalf("preload: %v", err)
		}
	}
	return book
}

func BenchmarkInsert(b *testing.B) {

	book := New(nil)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		book.Insert(Order{
			ID:        uint32(i),
			Ref:       fmt.Sprintf("ref-%d", i),
			Timestamp: uint64(i),
			Trader:    "trader",
			Price:     int64(i % 10),
		})
	}
}

func BenchmarkModifyPrice(b *testing.B) {

	book := preload(b, datasetSize)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		book.ModifyByOrderID(uint32(i%datasetSize), func(o *Order) {
			o.Price = int64(i % 100)
		})
	}
}

func BenchmarkUpdateNote(b *testing.B) {

	book := preload(b, datasetSize)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		book.UpdateByOrderID(uint32(i%datasetSize), func(note *string) {
			*note = "n"
		})
	}
}

func BenchmarkIterByPrice(b *testing.B) {

	book := preload(b, datasetSize)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		for range book.IterByPrice() {
		}
	}
}
