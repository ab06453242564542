package main

import (
	"net/http"
	"sync"

	"github.com/fulldump/multiindex/bootstrap"
	"github.com/fulldump/multiindex/configuration"
)

type JSON = map[string]any

func Parallel(workers int, f func(worker int)) {
	wg := &sync.WaitGroup{}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			f(i)
		}(i)
	}
	wg.Wait()
}

func NewClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			MaxConnsPerHost:     1024,
			MaxIdleConnsPerHost: 1024,
			MaxIdleConns:        1024,
		},
	}
}

// CreateServer starts an in process server unless c.Base points to a running
// one.
func CreateServer(c *Config) (stop func()) {

	if c.Base != "" {
		return func() {}
	}

	conf := configuration.Default()
	conf.HttpAddr = "127.0.0.1:8081"
	conf.LogLevel = "warn"
	conf.ShowBanner = false
	conf.EnableCompression = false
	conf.Capacity = int(c.N)
	c.Base = "http://" + conf.HttpAddr

	start, stop := bootstrap.Bootstrap(conf)
	go start()

	return stop
}
