package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

var dotenvFile = ".env"

// parseEnv reads MERCURY_SERVER_ADDR, MERCURY_ONLINE_CHECK_INTERVAL and
// MERCURY_REQUEST_TIMEOUT, after loading dotenvFile if it exists.
func parseEnv(cfg *Config) {
	_ = godotenv.Load(dotenvFile)

	if v, ok := os.LookupEnv("MERCURY_SERVER_ADDR"); ok {
		cfg.ServerEndpointAddr = v
	}
	for name, dst := range map[string]*time.Duration{
		"MERCURY_ONLINE_CHECK_INTERVAL": &cfg.OnlineCheckInterval,
		"MERCURY_REQUEST_TIMEOUT":       &cfg.RequestTimeout,
	} {
		if v, ok := os.LookupEnv(name); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				panic(err)
			}
			*dst = d
		}
	}
}
