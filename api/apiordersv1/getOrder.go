package apiordersv1

import (
	"context"

	"github.com/fulldump/multiindex/orderbook"
)

func getOrder(ctx context.Context) (*orderbook.Order, error) {

	id, err := orderID(ctx)
	if err != nil {
		return nil, err
	}

	order, err := GetServicer(ctx).Get(id)
	if err != nil {
		return nil, err
	}

	return &order, nil
}
