package api

import (
	"net/http"
	"testing"

	"github.com/fulldump/apitest"
	"github.com/fulldump/biff"

	"github.com/fulldump/multiindex/orderbook"
	"github.com/fulldump/multiindex/service"
)

func TestAuthentication(t *testing.T) {

	biff.Alternative("Authentication", func(a *biff.A) {

		s := service.NewService(orderbook.New(nil), nil)

		apiKey := "my-key"
		apiSecret := "my-secret"

		b := Build(s, "test", apiKey, apiSecret)
		b.WithInterceptors(
			PrettyErrorInterceptor,
		)

		api := apitest.NewWithHandler(b)

		a.Alternative("Missing headers", func(a *biff.A) {
			resp := api.Request("GET", "/v1/stats").Do()
			biff.AssertEqual(resp.StatusCode, http.StatusUnauthorized)
			biff.AssertEqualJson(resp.BodyJson(), map[string]any{
				"error": map[string]any{
					"message":     "unauthorized",
					"description": "user is not authenticated",
				},
			})
		})

		a.Alternative("Wrong Key", func(a *biff.A) {
			resp := api.Request("GET", "/v1/stats").
				WithHeader("X-Api-Key", "wrong-key").
				WithHeader("X-Api-Secret", apiSecret).
				Do()
			biff.AssertEqual(resp.StatusCode, http.StatusUnauthorized)
		})

		a.Alternative("Wrong Secret", func(a *biff.A) {
			resp := api.Request("GET", "/v1/stats").
				WithHeader("X-Api-Key", apiKey).
				WithHeader("X-Api-Secret", "wrong-secret").
				Do()
			biff.AssertEqual(resp.StatusCode, http.StatusUnauthorized)
		})

		a.Alternative("Correct credentials", func(a *biff.A) {
			resp := api.Request("GET", "/v1/stats").
				WithHeader("X-Api-Key", apiKey).
				WithHeader("X-Api-Secret", apiSecret).
				Do()
			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson().(map[string]any)["len"], 0)
		})

		a.Alternative("Release is public", func(a *biff.A) {
			resp := api.Request("GET", "/release").Do()
			biff.AssertEqual(resp.StatusCode, http.StatusOK)
		})

	})
}
