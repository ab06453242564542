package api

import (
	"log/slog"
	"testing"

	"github.com/fulldump/apitest"
	"github.com/fulldump/biff"

	"github.com/fulldump/multiindex/orderbook"
	"github.com/fulldump/multiindex/service"
)

func TestAcceptance(t *testing.T) {

	biff.Alternative("Setup", func(a *biff.A) {

		discard := slog.New(slog.DiscardHandler)

		s := service.NewService(orderbook.New(nil), discard)

		b := Build(s, "test", "", "")
		b.WithInterceptors(
			AccessLog(discard),
			PrettyErrorInterceptor,
			RecoverFromPanic(discard),
		)

		api := apitest.NewWithHandler(b)

		service.Acceptance(a, func(method, path string) *apitest.Request {
			return api.Request(method, "/v1"+path)
		})

	})
}

func TestNotImplemented(t *testing.T) {

	b := Build(service.NewService(orderbook.New(nil), nil), "test", "", "")
	b.WithInterceptors(PrettyErrorInterceptor)

	api := apitest.NewWithHandler(b)

	resp := api.Request("GET", "/v1/collections").Do()
	biff.AssertEqual(resp.StatusCode, 501)
	biff.AssertEqualJson(resp.BodyJson(), map[string]any{
		"error": map[string]any{
			"message":     "not implemented",
			"description": "this endpoint does not exist, please check /openapi.json",
		},
	})

	resp = api.Request("GET", "/release").Do()
	biff.AssertEqual(resp.StatusCode, 200)
	biff.AssertEqual(resp.BodyJson(), "test")
}

func TestCompression(t *testing.T) {

	b := Build(service.NewService(orderbook.New(nil), nil), "test", "", "")
	b.WithInterceptors(Compression, PrettyErrorInterceptor)

	api := apitest.NewWithHandler(b)

	resp := api.Request("GET", "/v1/stats").
		WithHeader("Accept-Encoding", "deflate, gzip;q=0.8").
		Do()
	biff.AssertEqual(resp.StatusCode, 200)
	biff.AssertEqual(resp.Header.Get("Content-Encoding"), "gzip")
	biff.AssertEqual(resp.Header.Get("Vary"), "Accept-Encoding")

	resp = api.Request("GET", "/v1/stats").Do()
	biff.AssertEqual(resp.Header.Get("Content-Encoding"), "")
}
