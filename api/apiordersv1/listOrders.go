package apiordersv1

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/fulldump/multiindex/service"
)

// listOrders walks the whole book, by default in timestamp order.
// Query parameters: index, reverse, skip and limit.
func listOrders(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	query := service.NewQuery()

	params := r.URL.Query()
	if index := params.Get("index"); index != "" {
		query.Index = index
	}

	var err error
	if reverse := params.Get("reverse"); reverse != "" {
		query.Reverse, err = strconv.ParseBool(reverse)
		if err != nil {
			return fmt.Errorf("%w: reverse: %w", ErrBadRequest, err)
		}
	}
	if skip := params.Get("skip"); skip != "" {
		query.Skip, err = strconv.ParseInt(skip, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: skip: %w", ErrBadRequest, err)
		}
	}
	if limit := params.Get("limit"); limit != "" {
		query.Limit, err = strconv.ParseInt(limit, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: limit: %w", ErrBadRequest, err)
		}
	}

	return GetServicer(ctx).Traverse(query, writeOrder(w))
}
