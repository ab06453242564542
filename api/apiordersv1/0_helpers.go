package apiordersv1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/fulldump/box"
	"github.com/go-json-experiment/json"

	"github.com/fulldump/multiindex/orderbook"
)

var ErrBadRequest = errors.New("bad request")

func orderID(ctx context.Context) (uint32, error) {
	param := box.GetUrlParameter(ctx, "orderId")
	id, err := strconv.ParseUint(param, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: order id '%s' is not a valid uint32", ErrBadRequest, param)
	}
	return uint32(id), nil
}

// writeOrder streams one order per line.
func writeOrder(w http.ResponseWriter) func(order orderbook.Order) bool {
	return func(order orderbook.Order) bool {
		data, err := json.Marshal(order)
		if err != nil {
			return false
		}
		w.Write(data)
		w.Write([]byte("\n"))
		return true
	}
}
