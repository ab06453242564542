package apiordersv1

import (
	"context"

	"github.com/fulldump/box"

	"github.com/fulldump/multiindex/orderbook"
)

func getOrderByRef(ctx context.Context) (*orderbook.Order, error) {

	ref := box.GetUrlParameter(ctx, "ref")

	order, err := GetServicer(ctx).GetByRef(ref)
	if err != nil {
		return nil, err
	}

	return &order, nil
}
