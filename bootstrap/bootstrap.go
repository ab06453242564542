package bootstrap

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/fulldump/box"

	"github.com/fulldump/multiindex/api"
	"github.com/fulldump/multiindex/collection"
	"github.com/fulldump/multiindex/configuration"
	"github.com/fulldump/multiindex/orderbook"
	"github.com/fulldump/multiindex/service"
)

var VERSION = "dev"

// NewLogger builds the process logger from the log_level and log_json
// settings. Unknown levels fall back to info.
func NewLogger(c *configuration.Configuration) *slog.Logger {

	level := slog.LevelInfo
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		level = slog.LevelInfo
	}

	options := &slog.HandlerOptions{Level: level}
	if c.LogJSON {
		return slog.New(slog.NewJSONHandler(os.Stdout, options))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, options))
}

// Build wires the order book, the service and the HTTP api.
func Build(c *configuration.Configuration, logger *slog.Logger) (*box.B, error) {

	book := orderbook.New(&collection.Options{
		Capacity:         c.Capacity,
		UncheckedUpdates: c.UncheckedUpdates,
		Logger:           logger.With("component", "orderbook"),
	})

	s := service.NewService(book, logger.With("component", "service"))
	if c.Seed {
		if err := s.Seed(); err != nil {
			return nil, err
		}
		logger.Info("seeded", "orders", s.Stats().Len)
	}

	b := api.Build(s, VERSION, c.ApiKey, c.ApiSecret)
	if c.EnableCompression {
		b.WithInterceptors(api.Compression)
	}
	accessLogger := logger.With("component", "http")
	b.WithInterceptors(
		api.AccessLog(accessLogger),
		api.PrettyErrorInterceptor,
		api.RecoverFromPanic(accessLogger),
	)

	return b, nil
}

func Bootstrap(c *configuration.Configuration) (start, stop func()) {

	logger := NewLogger(c)

	b, err := Build(c, logger)
	if err != nil {
		logger.Error("build", "error", err)
		os.Exit(-1)
	}

	s := &http.Server{
		Addr:     c.HttpAddr,
		Handler:  box.Box2Http(b),
		ErrorLog: slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	ln, err := net.Listen("tcp", c.HttpAddr)
	if err != nil {
		logger.Error("listen", "addr", c.HttpAddr, "error", err)
		os.Exit(-1)
	}
	logger.Info("listening", "addr", c.HttpAddr)

	stop = func() {
		s.Shutdown(context.Background())
	}

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		for {
			sig := <-signalChan
			logger.Info("signal received", "signal", sig.String())
			stop()
		}
	}()

	start = func() {

		wg := &sync.WaitGroup{}

		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Serve(ln)
			if err != nil && err != http.ErrServerClosed {
				logger.Error("serve", "error", err)
			}
		}()

		wg.Wait()
	}

	return
}
