package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/fulldump/goconfig"
)

type Config struct {
	Test    string `usage:"name of the test: ALL | INSERT | REMOVE"`
	Base    string `usage:"base URL, empty starts a local server"`
	N       int64  `usage:"number of orders"`
	Workers int    `usage:"number of workers"`
	Traders int    `usage:"number of distinct traders"`
}

func main() {

	c := Config{
		Test:    "insert",
		Base:    "",
		N:       100_000,
		Workers: 16,
		Traders: 100,
	}
	goconfig.Read(&c)

	stop := CreateServer(&c)
	defer stop()

	switch strings.ToUpper(c.Test) {
	case "ALL":
		TestInsert(c)
		TestRemove(c)
	case "INSERT":
		TestInsert(c)
	case "REMOVE":
		TestRemove(c)
	default:
		log.Fatalf("Unknown test %s", c.Test)
	}

}

func report(action string, n int64, took time.Duration) {
	fmt.Println(action+":", n)
	fmt.Println("took:", took)
	fmt.Printf("Throughput: %.2f orders/sec\n", float64(n)/took.Seconds())
}
