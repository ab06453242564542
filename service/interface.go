package service

import (
	"errors"

	"github.com/fulldump/multiindex/orderbook"
)

var (
	ErrorOrderNotFound   = errors.New("order not found")
	ErrorOrderConflict   = errors.New("order conflict")
	ErrorIndexNotFound   = errors.New("index not found")
	ErrorReverseNotKnown = errors.New("index has no order to reverse")
)

type Servicer interface {
	Insert(order orderbook.Order) (orderbook.Order, error)
	Get(id uint32) (orderbook.Order, error)
	GetByRef(ref string) (orderbook.Order, error)
	GetByPrice(price int64) []orderbook.Order
	Remove(id uint32) (orderbook.Order, error)
	Patch(id uint32, patch *Patch) (orderbook.Order, error)
	SetNote(id uint32, note string) (orderbook.Order, error)
	TraderOrders(name string) []orderbook.Order
	RemoveTraderOrders(name string) []orderbook.Order
	Traverse(query *Query, f func(order orderbook.Order) bool) error
	Stats() *Stats
	Clear() int
	Shrink() *Stats
}
