package service

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fulldump/multiindex/collection"
	"github.com/fulldump/multiindex/orderbook"
)

// Service gives concurrent access to a single order book. Writes hold the
// exclusive lock, reads share it.
type Service struct {
	book   *orderbook.Book
	mutex  sync.RWMutex
	nextID uint32
	logger *slog.Logger
	now    func() time.Time
}

func NewService(book *orderbook.Book, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		book:   book,
		nextID: 1,
		logger: logger,
		now:    time.Now,
	}
}

type Patch struct {
	ID        *uint32 `json:"order_id"`
	Ref       *string `json:"ref"`
	Timestamp *uint64 `json:"timestamp"`
	Trader    *string `json:"trader_name"`
	Price     *int64  `json:"price"`
	Note      *string `json:"note"`
}

func (p *Patch) apply(o *orderbook.Order) {
	if p.ID != nil {
		o.ID = *p.ID
	}
	if p.Ref != nil {
		o.Ref = *p.Ref
	}
	if p.Timestamp != nil {
		o.Timestamp = *p.Timestamp
	}
	if p.Trader != nil {
		o.Trader = *p.Trader
	}
	if p.Price != nil {
		o.Price = *p.Price
	}
	if p.Note != nil {
		o.Note = *p.Note
	}
}

type Stats struct {
	Len      int                    `json:"len"`
	Capacity int                    `json:"capacity"`
	Indexes  []collection.IndexInfo `json:"indexes"`
	Healthy  bool                   `json:"healthy"`
	Problem  string                 `json:"problem,omitempty"`
}

func conflict(err error) error {
	return fmt.Errorf("%w: %w", ErrorOrderConflict, err)
}

// Insert fills the missing order_id, ref and timestamp before storing the
// order.
func (s *Service) Insert(order orderbook.Order) (orderbook.Order, error) {

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if order.ID == 0 {
		for {
			order.ID = s.nextID
			s.nextID++
			if _, exists := s.book.GetByOrderID(order.ID); !exists {
				break
			}
		}
	}
	if order.Ref == "" {
		order.Ref = uuid.NewString()
	}
	if order.Timestamp == 0 {
		order.Timestamp = uint64(s.now().UnixNano())
	}

	err := s.book.TryInsert(order)
	if err != nil {
		s.logger.Info("insert rejected", "order_id", order.ID, "error", err)
		return orderbook.Order{}, conflict(err)
	}

	s.logger.Debug("order inserted", "order_id", order.ID, "ref", order.Ref)
	return order, nil
}

func (s *Service) Get(id uint32) (orderbook.Order, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	order, exists := s.book.GetByOrderID(id)
	if !exists {
		return order, ErrorOrderNotFound
	}
	return order, nil
}

func (s *Service) GetByRef(ref string) (orderbook.Order, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	order, exists := s.book.GetByRef(ref)
	if !exists {
		return order, ErrorOrderNotFound
	}
	return order, nil
}

func (s *Service) GetByPrice(price int64) []orderbook.Order {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.book.GetByPrice(price)
}

func (s *Service) Remove(id uint32) (orderbook.Order, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	order, exists := s.book.RemoveByOrderID(id)
	if !exists {
		return order, ErrorOrderNotFound
	}
	s.logger.Debug("order removed", "order_id", id)
	return order, nil
}

func (s *Service) Patch(id uint32, patch *Patch) (orderbook.Order, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	order, exists, err := s.book.TryModifyByOrderID(id, patch.apply)
	if !exists {
		return order, ErrorOrderNotFound
	}
	if err != nil {
		return order, conflict(err)
	}
	return order, nil
}

func (s *Service) SetNote(id uint32, note string) (orderbook.Order, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	order, exists := s.book.UpdateByOrderID(id, func(current *string) {
		*current = note
	})
	if !exists {
		return order, ErrorOrderNotFound
	}
	return order, nil
}

func (s *Service) TraderOrders(name string) []orderbook.Order {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.book.GetByTraderName(name)
}

func (s *Service) RemoveTraderOrders(name string) []orderbook.Order {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	removed := s.book.RemoveByTraderName(name)
	s.logger.Debug("trader orders removed", "trader_name", name, "removed", len(removed))
	return removed
}

func (s *Service) Stats() *Stats {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.stats()
}

func (s *Service) stats() *Stats {
	stats := &Stats{
		Len:      s.book.Len(),
		Capacity: s.book.Capacity(),
		Indexes:  s.book.Indexes(),
		Healthy:  true,
	}
	if err := s.book.Check(); err != nil {
		s.logger.Error("order book check failed", "error", err)
		stats.Healthy = false
		stats.Problem = err.Error()
	}
	return stats
}

// Clear returns the number of removed orders.
func (s *Service) Clear() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	n := s.book.Len()
	s.book.Clear()
	s.nextID = 1
	return n
}

func (s *Service) Shrink() *Stats {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.book.ShrinkToFit()
	return s.stats()
}

// Seed inserts the orders of the classic walkthrough, useful to play with a
// fresh server.
func (s *Service) Seed() error {
	orders := []orderbook.Order{
		{ID: 1, Timestamp: 111, Trader: "John", Price: 100},
		{ID: 2, Timestamp: 22, Trader: "Tom", Price: 120},
		{ID: 3, Timestamp: 33, Trader: "Jimbo", Price: 100},
	}
	for _, order := range orders {
		if _, err := s.Insert(order); err != nil {
			return fmt.Errorf("seed order %d: %w", order.ID, err)
		}
	}
	return nil
}
