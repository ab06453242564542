package apiordersv1

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fulldump/box"

	"github.com/fulldump/multiindex/orderbook"
)

func getOrdersByPrice(ctx context.Context) ([]orderbook.Order, error) {

	param := box.GetUrlParameter(ctx, "price")
	price, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: price '%s' is not a valid int64", ErrBadRequest, param)
	}

	return nonNil(GetServicer(ctx).GetByPrice(price)), nil
}

func nonNil(orders []orderbook.Order) []orderbook.Order {
	if orders == nil {
		return []orderbook.Order{}
	}
	return orders
}
