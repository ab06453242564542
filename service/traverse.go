package service

import (
	"fmt"
	"iter"
	"strings"

	"github.com/SierraSoftworks/connor"

	"github.com/fulldump/multiindex/orderbook"
	"github.com/fulldump/multiindex/utils"
)

type Query struct {
	Index   string                 `json:"index"`
	Reverse bool                   `json:"reverse"`
	Filter  map[string]interface{} `json:"filter"`
	Skip    int64                  `json:"skip"`
	Limit   int64                  `json:"limit"`
}

func NewQuery() *Query {
	return &Query{
		Index:  orderbook.IndexTimestamp,
		Filter: map[string]interface{}{},
		Limit:  -1,
	}
}

type traversal struct {
	forward  func(b *orderbook.Book) iter.Seq[orderbook.Order]
	backward func(b *orderbook.Book) iter.Seq[orderbook.Order]
}

var traversals = map[string]traversal{
	orderbook.IndexOrderID:    {forward: (*orderbook.Book).IterByOrderID},
	orderbook.IndexRef:        {forward: (*orderbook.Book).IterByRef},
	orderbook.IndexTimestamp:  {forward: (*orderbook.Book).IterByTimestamp, backward: (*orderbook.Book).IterByTimestampReverse},
	orderbook.IndexTraderName: {forward: (*orderbook.Book).IterByTraderName},
	orderbook.IndexPrice:      {forward: (*orderbook.Book).IterByPrice, backward: (*orderbook.Book).IterByPriceReverse},
}

func (s *Service) sequence(name string, reverse bool) (iter.Seq[orderbook.Order], error) {

	t, exists := traversals[name]
	if !exists {
		return nil, fmt.Errorf("%w: '%s', must be [%s]", ErrorIndexNotFound, name, strings.Join(utils.GetKeys(traversals), "|"))
	}

	if !reverse {
		return t.forward(s.book), nil
	}
	if t.backward == nil {
		return nil, fmt.Errorf("%w: '%s'", ErrorReverseNotKnown, name)
	}
	return t.backward(s.book), nil
}

// Traverse visits the orders in the order of query.Index that match the
// filter, after skipping query.Skip of them. A negative limit means no limit.
func (s *Service) Traverse(query *Query, f func(order orderbook.Order) bool) error {

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	seq, err := s.sequence(query.Index, query.Reverse)
	if err != nil {
		return err
	}

	hasFilter := len(query.Filter) > 0

	skip := query.Skip
	limit := query.Limit
	for order := range seq {

		if limit == 0 {
			break
		}

		if hasFilter {
			data := map[string]interface{}{}
			if err := utils.Remarshal(order, &data); err != nil {
				return fmt.Errorf("remarshal order %d: %w", order.ID, err)
			}
			match, err := connor.Match(query.Filter, data)
			if err != nil {
				return fmt.Errorf("match: %w", err)
			}
			if !match {
				continue
			}
		}

		if skip > 0 {
			skip--
			continue
		}

		limit--
		if !f(order) {
			break
		}
	}

	return nil
}
