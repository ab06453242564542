package apiordersv1

import (
	"context"

	"github.com/fulldump/multiindex/orderbook"
	"github.com/fulldump/multiindex/service"
)

// patchOrder changes any field, indexed ones included. A change that would
// duplicate order_id, ref or timestamp is rejected as a whole.
func patchOrder(ctx context.Context, input *service.Patch) (*orderbook.Order, error) {

	id, err := orderID(ctx)
	if err != nil {
		return nil, err
	}

	order, err := GetServicer(ctx).Patch(id, input)
	if err != nil {
		return nil, err
	}

	return &order, nil
}
