package apiordersv1

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/go-json-experiment/json"

	"github.com/fulldump/multiindex/service"
)

func find(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	requestBody, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}

	query := service.NewQuery()
	if len(requestBody) > 0 {
		err = json.Unmarshal(requestBody, query)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBadRequest, err)
		}
	}

	return GetServicer(ctx).Traverse(query, writeOrder(w))
}
