package main

import (
	"fmt"
	"os"

	"github.com/fulldump/goconfig"
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/fulldump/multiindex/bootstrap"
	"github.com/fulldump/multiindex/configuration"
)

var banner = `
  ___          _           ___           _   
 / _ \ _ _ __| |___ _ _  | _ ) ___  ___| |__
| (_) | '_/ _' / -_) '_| | _ \/ _ \/ _ \ / /
 \___/|_| \__,_\___|_|   |___/\___/\___/_\_\
                         version ` + bootstrap.VERSION + `
`

func main() {

	c := configuration.Default()
	goconfig.Read(c)

	if c.Version {
		fmt.Println("Version:", bootstrap.VERSION)
		return
	}

	if c.ShowBanner {
		fmt.Println(banner)
	}

	if c.ShowConfig {
		json.MarshalWrite(os.Stdout, c, jsontext.WithIndent("    "))
		fmt.Println()
	}

	start, _ := bootstrap.Bootstrap(c)
	start()
}
