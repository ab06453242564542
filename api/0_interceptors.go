package api

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/fulldump/box"
)

// RecoverFromPanic turns a panic into a box error, it must be placed inside
// PrettyErrorInterceptor to be rendered.
func RecoverFromPanic(l *slog.Logger) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {
			defer func() {
				if r := recover(); r != nil {
					l.Error("panic", "error", r, "stack", string(debug.Stack()))
					box.SetError(ctx, fmt.Errorf("panic: %v", r))
				}
			}()
			next(ctx)
		}
	}
}

func AccessLog(l *slog.Logger) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {
			r := box.GetRequest(ctx)
			now := time.Now()
			defer func() {
				l.Info("access",
					"remote", formatRemoteAddr(r),
					"method", r.Method,
					"url", r.URL.String(),
					"latency", time.Since(now),
				)
			}()

			next(ctx)
		}
	}
}

func formatRemoteAddr(r *http.Request) string {
	xorigin := strings.TrimSpace(strings.Split(
		r.Header.Get("X-Forwarded-For"), ",")[0])
	if xorigin != "" {
		return xorigin
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
