package apiordersv1

import (
	"context"
	"net/http"

	"github.com/fulldump/multiindex/orderbook"
)

func insertOrder(ctx context.Context, w http.ResponseWriter, input *orderbook.Order) (*orderbook.Order, error) {

	order, err := GetServicer(ctx).Insert(*input)
	if err != nil {
		return nil, err
	}

	w.WriteHeader(http.StatusCreated)
	return &order, nil
}
