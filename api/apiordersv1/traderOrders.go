package apiordersv1

import (
	"context"

	"github.com/fulldump/box"

	"github.com/fulldump/multiindex/orderbook"
)

func listTraderOrders(ctx context.Context) []orderbook.Order {
	name := box.GetUrlParameter(ctx, "traderName")
	return nonNil(GetServicer(ctx).TraderOrders(name))
}

func removeTraderOrders(ctx context.Context) []orderbook.Order {
	name := box.GetUrlParameter(ctx, "traderName")
	return nonNil(GetServicer(ctx).RemoveTraderOrders(name))
}
