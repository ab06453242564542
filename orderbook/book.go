package orderbook

import (
	"iter"

	"github.com/fulldump/multiindex/collection"
)

type Book struct {
	container   *collection.Container[Order]
	byOrderID   *collection.UniqueIndex[Order, uint32]
	byRef       *collection.UniqueIndex[Order, string]
	byTimestamp *collection.OrderedUniqueIndex[Order, uint64]
	byTrader    *collection.NonUniqueIndex[Order, string]
	byPrice     *collection.OrderedNonUniqueIndex[Order, int64]
}

func New(options *collection.Options) *Book {
	c := collection.New[Order](options)
	return &Book{
		container:   c,
		byOrderID:   collection.Must(collection.HashedUnique(c, IndexOrderID, func(o *Order) uint32 { return o.ID })),
		byRef:       collection.Must(collection.HashedUnique(c, IndexRef, func(o *Order) string { return o.Ref })),
		byTimestamp: collection.Must(collection.OrderedUnique(c, IndexTimestamp, func(o *Order) uint64 { return o.Timestamp })),
		byTrader:    collection.Must(collection.HashedNonUnique(c, IndexTraderName, func(o *Order) string { return o.Trader })),
		byPrice:     collection.Must(collection.OrderedNonUnique(c, IndexPrice, func(o *Order) int64 { return o.Price })),
	}
}

func note(mutate func(*string)) func(*Order) {
	return func(o *Order) {
		mutate(&o.Note)
	}
}

// Insert panics with *collection.UniquenessError if the order collides on
// order_id, ref or timestamp.
func (b *Book) Insert(o Order) {
	b.container.Insert(o)
}

func (b *Book) TryInsert(o Order) error {
	return b.container.TryInsert(o)
}

func (b *Book) Len() int {
	return b.container.Len()
}

func (b *Book) IsEmpty() bool {
	return b.container.IsEmpty()
}

func (b *Book) Capacity() int {
	return b.container.Capacity()
}

func (b *Book) Reserve(additional int) {
	b.container.Reserve(additional)
}

func (b *Book) ShrinkToFit() {
	b.container.ShrinkToFit()
}

func (b *Book) Clear() {
	b.container.Clear()
}

func (b *Book) Iter() iter.Seq[Order] {
	return b.container.All()
}

// IterMut must not be used to change indexed fields.
func (b *Book) IterMut() iter.Seq[*Order] {
	return b.container.AllMut()
}

func (b *Book) Indexes() []collection.IndexInfo {
	return b.container.Indexes()
}

func (b *Book) Check() error {
	return b.container.Check()
}

// --- order_id ---

func (b *Book) GetByOrderID(id uint32) (Order, bool) {
	return b.byOrderID.Get(id)
}

func (b *Book) GetMutByOrderID(id uint32) (*Order, bool) {
	return b.byOrderID.GetMut(id)
}

func (b *Book) RemoveByOrderID(id uint32) (Order, bool) {
	return b.byOrderID.Remove(id)
}

func (b *Book) ModifyByOrderID(id uint32, mutate func(*Order)) (Order, bool) {
	return b.byOrderID.Modify(id, mutate)
}

func (b *Book) TryModifyByOrderID(id uint32, mutate func(*Order)) (Order, bool, error) {
	return b.byOrderID.TryModify(id, mutate)
}

func (b *Book) UpdateByOrderID(id uint32, mutate func(note *string)) (Order, bool) {
	return b.byOrderID.Update(id, note(mutate))
}

func (b *Book) IterByOrderID() iter.Seq[Order] {
	return b.byOrderID.All()
}

// --- ref ---

func (b *Book) GetByRef(ref string) (Order, bool) {
	return b.byRef.Get(ref)
}

func (b *Book) GetMutByRef(ref string) (*Order, bool) {
	return b.byRef.GetMut(ref)
}

func (b *Book) RemoveByRef(ref string) (Order, bool) {
	return b.byRef.Remove(ref)
}

func (b *Book) ModifyByRef(ref string, mutate func(*Order)) (Order, bool) {
	return b.byRef.Modify(ref, mutate)
}

func (b *Book) TryModifyByRef(ref string, mutate func(*Order)) (Order, bool, error) {
	return b.byRef.TryModify(ref, mutate)
}

func (b *Book) UpdateByRef(ref string, mutate func(note *string)) (Order, bool) {
	return b.byRef.Update(ref, note(mutate))
}

func (b *Book) IterByRef() iter.Seq[Order] {
	return b.byRef.All()
}

// --- timestamp ---

func (b *Book) GetByTimestamp(timestamp uint64) (Order, bool) {
	return b.byTimestamp.Get(timestamp)
}

func (b *Book) GetMutByTimestamp(timestamp uint64) (*Order, bool) {
	return b.byTimestamp.GetMut(timestamp)
}

func (b *Book) RemoveByTimestamp(timestamp uint64) (Order, bool) {
	return b.byTimestamp.Remove(timestamp)
}

func (b *Book) ModifyByTimestamp(timestamp uint64, mutate func(*Order)) (Order, bool) {
	return b.byTimestamp.Modify(timestamp, mutate)
}

func (b *Book) TryModifyByTimestamp(timestamp uint64, mutate func(*Order)) (Order, bool, error) {
	return b.byTimestamp.TryModify(timestamp, mutate)
}

func (b *Book) UpdateByTimestamp(timestamp uint64, mutate func(note *string)) (Order, bool) {
	return b.byTimestamp.Update(timestamp, note(mutate))
}

func (b *Book) IterByTimestamp() iter.Seq[Order] {
	return b.byTimestamp.All()
}

func (b *Book) IterByTimestampReverse() iter.Seq[Order] {
	return b.byTimestamp.Backward()
}

func (b *Book) TraverseByTimestamp(options collection.TraverseOptions[uint64]) iter.Seq[Order] {
	return b.byTimestamp.Traverse(options)
}

// --- trader_name ---

func (b *Book) GetByTraderName(name string) []Order {
	return b.byTrader.Get(name)
}

func (b *Book) GetMutByTraderName(name string) []*Order {
	return b.byTrader.GetMut(name)
}

func (b *Book) CountByTraderName(name string) int {
	return b.byTrader.Count(name)
}

func (b *Book) RemoveByTraderName(name string) []Order {
	return b.byTrader.Remove(name)
}

func (b *Book) ModifyByTraderName(name string, mutate func(*Order)) []Order {
	return b.byTrader.Modify(name, mutate)
}

func (b *Book) TryModifyByTraderName(name string, mutate func(*Order)) ([]Order, error) {
	return b.byTrader.TryModify(name, mutate)
}

func (b *Book) UpdateByTraderName(name string, mutate func(note *string)) []Order {
	return b.byTrader.Update(name, note(mutate))
}

func (b *Book) IterByTraderName() iter.Seq[Order] {
	return b.byTrader.All()
}

// --- price ---

func (b *Book) GetByPrice(price int64) []Order {
	return b.byPrice.Get(price)
}

func (b *Book) GetMutByPrice(price int64) []*Order {
	return b.byPrice.GetMut(price)
}

func (b *Book) CountByPrice(price int64) int {
	return b.byPrice.Count(price)
}

func (b *Book) RemoveByPrice(price int64) []Order {
	return b.byPrice.Remove(price)
}

func (b *Book) ModifyByPrice(price int64, mutate func(*Order)) []Order {
	return b.byPrice.Modify(price, mutate)
}

func (b *Book) TryModifyByPrice(price int64, mutate func(*Order)) ([]Order, error) {
	return b.byPrice.TryModify(price, mutate)
}

func (b *Book) UpdateByPrice(price int64, mutate func(note *string)) []Order {
	return b.byPrice.Update(price, note(mutate))
}

func (b *Book) IterByPrice() iter.Seq[Order] {
	return b.byPrice.All()
}

func (b *Book) IterByPriceReverse() iter.Seq[Order] {
	return b.byPrice.Backward()
}

func (b *Book) TraverseByPrice(options collection.TraverseOptions[int64]) iter.Seq[Order] {
	return b.byPrice.Traverse(options)
}
