package main

import (
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"
)

// TestRemove fills the book and then drops every trader with a group removal.
func TestRemove(c Config) {

	client := NewClient()
	defer client.CloseIdleConnections()

	req, err := http.NewRequest(http.MethodPost, c.Base+"/v1/orders:clear", nil)
	if err != nil {
		fmt.Println("ERROR: new request:", err.Error())
		return
	}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Println("ERROR: do request:", err.Error())
		return
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	insertOrders(c, client)

	trader := int64(-1)
	t0 := time.Now()
	Parallel(c.Workers, func(worker int) {
		for {
			t := atomic.AddInt64(&trader, 1)
			if t >= int64(c.Traders) {
				break
			}

			url := fmt.Sprintf("%s/v1/traders/trader-%d/orders", c.Base, t)
			req, err := http.NewRequest(http.MethodDelete, url, nil)
			if err != nil {
				fmt.Println("ERROR: new request:", err.Error())
				continue
			}

			resp, err := client.Do(req)
			if err != nil {
				fmt.Println("ERROR: do request:", err.Error())
				continue
			}
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				fmt.Println("ERROR: bad status:", resp.Status)
			}
		}
	})

	report("removed", c.N, time.Since(t0))
}
