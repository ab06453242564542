package apiordersv1

import (
	"context"

	"github.com/fulldump/multiindex/orderbook"
)

type noteInput struct {
	Note string `json:"note"`
}

// note only touches the unindexed field, the indexes are left alone.
func note(ctx context.Context, input *noteInput) (*orderbook.Order, error) {

	id, err := orderID(ctx)
	if err != nil {
		return nil, err
	}

	order, err := GetServicer(ctx).SetNote(id, input.Note)
	if err != nil {
		return nil, err
	}

	return &order, nil
}
