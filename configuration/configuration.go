package configuration

type Configuration struct {
	HttpAddr          string `json:"http_addr" usage:"HTTP address"`
	Capacity          int    `json:"capacity" usage:"orders to reserve room for at startup"`
	UncheckedUpdates  bool   `json:"unchecked_updates" usage:"skip the indexed field check after note updates"`
	Seed              bool   `json:"seed" usage:"insert the three walkthrough orders at startup"`
	LogLevel          string `json:"log_level" usage:"log level: debug, info, warn or error"`
	LogJSON           bool   `json:"log_json" usage:"write logs as JSON lines"`
	EnableCompression bool   `json:"enable_compression" usage:"gzip responses when the client accepts it"`
	ApiKey            string `json:"api_key" usage:"required X-Api-Key header, empty disables authentication"`
	ApiSecret         string `json:"api_secret" usage:"required X-Api-Secret header"`
	Version           bool   `json:"version" usage:"show version and exit"`
	ShowBanner        bool   `json:"show_banner" usage:"show big banner"`
	ShowConfig        bool   `json:"show_config" usage:"print config"`
}

func Default() *Configuration {
	return &Configuration{
		HttpAddr:          "127.0.0.1:8080",
		LogLevel:          "info",
		EnableCompression: true,
		ShowBanner:        true,
	}
}
