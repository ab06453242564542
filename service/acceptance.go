package service

import (
	stdjson "encoding/json"
	"net/http"
	"strings"

	"github.com/fulldump/apitest"
	"github.com/fulldump/biff"
	"github.com/go-json-experiment/json"
)

type JSON = map[string]interface{}

// lines decodes a newline delimited JSON body.
func lines(body string) []interface{} {
	result := []interface{}{}
	for _, line := range strings.Split(strings.TrimSpace(body), "\n") {
		if line == "" {
			continue
		}
		var item interface{}
		json.Unmarshal([]byte(line), &item)
		result = append(result, item)
	}
	return result
}

func Acceptance(a *biff.A, apiRequest func(method, path string) *apitest.Request) {

	john := JSON{"order_id": 1, "ref": "r-1", "timestamp": 111, "trader_name": "John", "price": 100, "note": ""}
	tom := JSON{"order_id": 2, "ref": "r-2", "timestamp": 22, "trader_name": "Tom", "price": 120, "note": ""}
	jimbo := JSON{"order_id": 3, "ref": "r-3", "timestamp": 33, "trader_name": "Jimbo", "price": 100, "note": ""}

	a.Alternative("Insert order", func(a *biff.A) {
		resp := apiRequest("POST", "/orders").
			WithBodyJson(john).Do()
		Save(resp, "Insert order", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusCreated)
		biff.AssertEqualJson(resp.BodyJson(), john)

		a.Alternative("Retrieve order", func(a *biff.A) {
			resp := apiRequest("GET", "/orders/1").Do()
			Save(resp, "Retrieve order", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), john)
		})

		a.Alternative("Retrieve order by ref", func(a *biff.A) {
			resp := apiRequest("GET", "/orders/by-ref/r-1").Do()
			Save(resp, "Retrieve order by ref", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), john)
		})

		a.Alternative("Retrieve missing order", func(a *biff.A) {
			resp := apiRequest("GET", "/orders/42").Do()
			Save(resp, "Retrieve order - not found", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
			biff.AssertEqualJson(resp.BodyJson(), JSON{
				"error": JSON{
					"message":     "order not found",
					"description": "order not found",
				},
			})
		})

		a.Alternative("Retrieve order with a bad id", func(a *biff.A) {
			resp := apiRequest("GET", "/orders/abc").Do()
			biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
		})

		a.Alternative("Insert duplicated order", func(a *biff.A) {
			duplicated := JSON{"order_id": 1, "timestamp": 5, "trader_name": "Tom"}
			resp := apiRequest("POST", "/orders").
				WithBodyJson(duplicated).Do()
			Save(resp, "Insert order - conflict", `
				Every order_id, ref and timestamp must be unique, the order is
				rejected before touching any index.
			`)

			biff.AssertEqual(resp.StatusCode, http.StatusConflict)
			biff.AssertEqualJson(resp.BodyJson(), JSON{
				"error": JSON{
					"message":     "order conflict: uniqueness constraint violated on field 'order_id' with value '1': key already exists: 1",
					"description": "another order already has order_id '1'",
				},
			})

			resp = apiRequest("GET", "/stats").Do()
			biff.AssertEqualJson(resp.BodyJson().(JSON)["len"], 1)
		})

		a.Alternative("Patch order", func(a *biff.A) {
			resp := apiRequest("PATCH", "/orders/1").
				WithBodyJson(JSON{"order_id": 7, "timestamp": 77, "trader_name": "Tom"}).Do()
			Save(resp, "Patch order", `
				Indexed fields are reindexed in a single step.
			`)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), JSON{"order_id": 7, "ref": "r-1", "timestamp": 77, "trader_name": "Tom", "price": 100, "note": ""})

			resp = apiRequest("GET", "/orders/1").Do()
			biff.AssertEqual(resp.StatusCode, http.StatusNotFound)

			resp = apiRequest("GET", "/orders/7").Do()
			biff.AssertEqual(resp.StatusCode, http.StatusOK)
		})

		a.Alternative("Set note", func(a *biff.A) {
			resp := apiRequest("POST", "/orders/1:note").
				WithBodyJson(JSON{"note": "TestNote"}).Do()
			Save(resp, "Set note", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqual(resp.BodyJson().(JSON)["note"], "TestNote")
		})

		a.Alternative("Delete order", func(a *biff.A) {
			resp := apiRequest("DELETE", "/orders/1").Do()
			Save(resp, "Delete order", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), john)

			resp = apiRequest("GET", "/orders/by-ref/r-1").Do()
			biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
		})
	})

	a.Alternative("Insert many", func(a *biff.A) {

		for _, order := range []JSON{john, tom, jimbo} {
			resp := apiRequest("POST", "/orders").WithBodyJson(order).Do()
			biff.AssertEqual(resp.StatusCode, http.StatusCreated)
		}

		a.Alternative("List orders", func(a *biff.A) {
			resp := apiRequest("GET", "/orders").Do()
			Save(resp, "List orders", `
				Orders are listed by timestamp unless another index is given.
			`)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(lines(resp.BodyString()), []JSON{tom, jimbo, john})
		})

		a.Alternative("List orders by price reversed", func(a *biff.A) {
			resp := apiRequest("GET", "/orders?index=price&reverse=true&limit=2").Do()
			Save(resp, "List orders - by price reversed", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(lines(resp.BodyString()), []JSON{tom, jimbo})
		})

		a.Alternative("List orders by unknown index", func(a *biff.A) {
			resp := apiRequest("GET", "/orders?index=color").Do()
			biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
		})

		a.Alternative("Find", func(a *biff.A) {
			resp := apiRequest("POST", "/orders:find").
				WithBodyJson(JSON{
					"index": "price",
					"skip":  1,
					"limit": 10,
					"filter": JSON{
						"price": 100,
					},
				}).Do()
			Save(resp, "Find", `
				The filter follows the MongoDB query syntax.
			`)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(lines(resp.BodyString()), []JSON{jimbo})
		})

		a.Alternative("Find with malformed body", func(a *biff.A) {
			resp := apiRequest("POST", "/orders:find").
				WithBodyString(`{"index":`).Do()
			biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
		})

		a.Alternative("Orders by price", func(a *biff.A) {
			resp := apiRequest("GET", "/orders/by-price/100").Do()
			Save(resp, "Orders by price", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), []JSON{john, jimbo})

			resp = apiRequest("GET", "/orders/by-price/1").Do()
			biff.AssertEqual(resp.BodyString(), "[]\n")
		})

		a.Alternative("Trader orders", func(a *biff.A) {
			resp := apiRequest("GET", "/traders/Tom/orders").Do()
			Save(resp, "Trader orders", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), []JSON{tom})
		})

		a.Alternative("Remove trader orders", func(a *biff.A) {
			resp := apiRequest("PATCH", "/orders/1").
				WithBodyJson(JSON{"trader_name": "Tom"}).Do()
			biff.AssertEqual(resp.StatusCode, http.StatusOK)

			resp = apiRequest("DELETE", "/traders/Tom/orders").Do()
			Save(resp, "Remove trader orders", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqual(len(resp.BodyJson().([]interface{})), 2)

			resp = apiRequest("GET", "/traders/Tom/orders").Do()
			biff.AssertEqual(resp.BodyString(), "[]\n")
		})

		a.Alternative("Patch into a taken timestamp", func(a *biff.A) {
			resp := apiRequest("PATCH", "/orders/3").
				WithBodyJson(JSON{"timestamp": 22, "note": "lost"}).Do()
			Save(resp, "Patch order - conflict", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusConflict)

			resp = apiRequest("GET", "/orders/3").Do()
			biff.AssertEqualJson(resp.BodyJson(), jimbo)
		})

		a.Alternative("Stats", func(a *biff.A) {
			resp := apiRequest("GET", "/stats").Do()
			Save(resp, "Stats", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)

			body := resp.BodyJson().(JSON)
			capacity, err := body["capacity"].(stdjson.Number).Int64()
			biff.AssertNil(err)
			biff.AssertTrue(capacity >= 3)
			delete(body, "capacity")

			biff.AssertEqualJson(body, JSON{
				"len":     3,
				"healthy": true,
				"indexes": []JSON{
					{"name": "order_id", "kind": "hashed_unique", "keys": 3},
					{"name": "ref", "kind": "hashed_unique", "keys": 3},
					{"name": "timestamp", "kind": "ordered_unique", "keys": 3},
					{"name": "trader_name", "kind": "hashed_non_unique", "keys": 3},
					{"name": "price", "kind": "ordered_non_unique", "keys": 2},
				},
			})
		})

		a.Alternative("Clear", func(a *biff.A) {
			resp := apiRequest("POST", "/orders:clear").Do()
			Save(resp, "Clear", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), JSON{"removed": 3})

			resp = apiRequest("GET", "/orders/1").Do()
			biff.AssertEqual(resp.StatusCode, http.StatusNotFound)

			resp = apiRequest("POST", "/orders:shrink").Do()
			Save(resp, "Shrink", ``)
			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson().(JSON)["capacity"], 0)
		})
	})
}
