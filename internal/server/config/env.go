package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "MERCURY_"

// dotenvFile is loaded before reading variables; a missing file is ignored.
var dotenvFile = ".env"

// parseEnv overlays MERCURY_* environment variables. Values from dotenvFile
// never override variables that are already set. Malformed numeric or
// boolean values panic, matching the JSON and flag layers.
func parseEnv(cfg *Config) {
	_ = godotenv.Load(dotenvFile)

	str := func(name string, dst *string) {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			*dst = v
		}
	}
	dur := func(name string, dst *time.Duration) {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				panic(err)
			}
			*dst = d
		}
	}
	num := func(name string, dst *int) {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				panic(err)
			}
			*dst = n
		}
	}
	flag := func(name string, dst *bool) {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				panic(err)
			}
			*dst = b
		}
	}

	str("ENDPOINT_ADDR_GRPC", &cfg.EndpointAddrGRPC)
	str("DATABASE_DSN", &cfg.DatabaseDSN)
	str("SECRET_KEY", &cfg.SecretKey)
	dur("TOKEN_VALIDITY_DURATION", &cfg.TokenValidityDuration)
	str("ONLINE_ADDRESS", &cfg.OnlineAddress)
	str("EMAIL_SERVICE", &cfg.EmailService)
	str("EMAIL_ADDRESS", &cfg.EmailAddress)
	str("EMAIL_PASSWORD", &cfg.EmailPassword)
	str("SMTP_HOST", &cfg.SMTPHost)
	num("SMTP_PORT", &cfg.SMTPPort)
	flag("SMTP_IMPLICIT_TLS", &cfg.SMTPImplicitTLS)
	str("EMAIL_STORED_FILE", &cfg.EmailStoredFile)
	dur("EMAIL_RETRY_INTERVAL", &cfg.EmailRetryInterval)
	str("S3_ROOT_USER", &cfg.S3RootUser)
	str("S3_ROOT_PASSWORD", &cfg.S3RootPassword)
	str("S3_BUCKET", &cfg.S3Bucket)
	str("S3_REGION", &cfg.S3Region)
	str("S3_BASE_ENDPOINT", &cfg.S3BaseEndpoint)
	str("SLACK_WEBHOOK", &cfg.SlackWebhook)
	num("HASH_WORKERS", &cfg.HashWorkers)
	str("LOG_BACKEND", &cfg.LogBackend)
}
