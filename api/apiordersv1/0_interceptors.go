package apiordersv1

import (
	"context"

	"github.com/fulldump/multiindex/service"
)

const ContextServicerKey = "5b0b8c3e-8a41-4c57-9a0e-5f3f3e0c6a11"

func SetServicer(ctx context.Context, s service.Servicer) context.Context {
	return context.WithValue(ctx, ContextServicerKey, s)
}

func GetServicer(ctx context.Context) service.Servicer {
	return ctx.Value(ContextServicerKey).(service.Servicer)
}
