package apiordersv1

import (
	"github.com/fulldump/box"

	"github.com/fulldump/multiindex/service"
)

func BuildV1Orders(v1 *box.R, s service.Servicer) *box.R {

	orders := v1.Resource("/orders").
		WithActions(
			box.Get(listOrders),
			box.Post(insertOrder),
			box.ActionPost(find),
			box.ActionPost(clearOrders).WithName("clear"),
			box.ActionPost(shrink),
		)

	v1.Resource("/orders/{orderId}").
		WithActions(
			box.Get(getOrder),
			box.Delete(removeOrder),
			box.Patch(patchOrder),
			box.ActionPost(note),
		)

	v1.Resource("/orders/by-ref/{ref}").
		WithActions(
			box.Get(getOrderByRef),
		)

	v1.Resource("/orders/by-price/{price}").
		WithActions(
			box.Get(getOrdersByPrice),
		)

	v1.Resource("/traders/{traderName}/orders").
		WithActions(
			box.Get(listTraderOrders),
			box.Delete(removeTraderOrders),
		)

	v1.Resource("/stats").
		WithActions(
			box.Get(stats),
		)

	return orders
}
