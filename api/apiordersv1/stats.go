package apiordersv1

import (
	"context"

	"github.com/fulldump/multiindex/service"
)

func stats(ctx context.Context) *service.Stats {
	return GetServicer(ctx).Stats()
}

type clearOutput struct {
	Removed int `json:"removed"`
}

func clearOrders(ctx context.Context) *clearOutput {
	return &clearOutput{
		Removed: GetServicer(ctx).Clear(),
	}
}

func shrink(ctx context.Context) *service.Stats {
	return GetServicer(ctx).Shrink()
}
