package apiordersv1

import (
	"context"

	"github.com/fulldump/multiindex/orderbook"
)

func removeOrder(ctx context.Context) (*orderbook.Order, error) {

	id, err := orderID(ctx)
	if err != nil {
		return nil, err
	}

	order, err := GetServicer(ctx).Remove(id)
	if err != nil {
		return nil, err
	}

	return &order, nil
}
