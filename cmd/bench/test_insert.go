package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/go-json-experiment/json"
)

// insertOrders posts c.N orders with distinct timestamps, spread over
// c.Traders traders and ten price levels.
func insertOrders(c Config, client *http.Client) {

	items := c.N

	Parallel(c.Workers, func(worker int) {
		for {
			n := atomic.AddInt64(&items, -1)
			if n < 0 {
				break
			}

			payload, _ := json.Marshal(JSON{
				"timestamp":   n + 1,
				"trader_name": fmt.Sprintf("trader-%d", n%int64(c.Traders)),
				"price":       100 + n%10,
			})

			resp, err := client.Post(c.Base+"/v1/orders", "application/json", bytes.NewReader(payload))
			if err != nil {
				fmt.Println("ERROR: do request:", err.Error())
				os.Exit(4)
			}
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()

			if resp.StatusCode != http.StatusCreated {
				fmt.Println("ERROR: bad status:", resp.Status)
			}
		}
	})
}

func TestInsert(c Config) {

	client := NewClient()
	defer client.CloseIdleConnections()

	t0 := time.Now()
	insertOrders(c, client)
	report("sent", c.N, time.Since(t0))
}
