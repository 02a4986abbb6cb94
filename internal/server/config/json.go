package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/mercury/internal/flagx"
	"github.com/dmitrijs2005/mercury/internal/timex"
)

// JsonConfig mirrors Config for decoding. Pointer fields distinguish "absent"
// from a zero value, so a partial file only overrides what it names.
type JsonConfig struct {
	EndpointAddrGRPC      *string         `json:"endpoint_addr_grpc"`
	DatabaseDSN           *string         `json:"database_dsn"`
	SecretKey             *string         `json:"secret_key"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration"`
	OnlineAddress         *string         `json:"online_address"`
	EmailService          *string         `json:"email_service"`
	EmailAddress          *string         `json:"email_address"`
	EmailPassword         *string         `json:"email_password"`
	SMTPHost              *string         `json:"smtp_host"`
	SMTPPort              *int            `json:"smtp_port"`
	SMTPImplicitTLS       *bool           `json:"smtp_implicit_tls"`
	EmailStoredFile       *string         `json:"email_stored_file"`
	EmailRetryInterval    *timex.Duration `json:"email_retry_interval"`
	S3RootUser            *string         `json:"s3_root_user"`
	S3RootPassword        *string         `json:"s3_root_password"`
	S3Bucket              *string         `json:"s3_bucket"`
	S3Region              *string         `json:"s3_region"`
	S3BaseEndpoint        *string         `json:"s3_base_endpoint"`
	SlackWebhook          *string         `json:"slack_webhook"`
	HashWorkers           *int            `json:"hash_workers"`
	LogBackend            *string         `json:"log_backend"`
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// parseJson overlays the file named by -c/-config, if any. An unreadable or
// malformed file panics.
func parseJson(config *Config) {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	set(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	set(&config.DatabaseDSN, c.DatabaseDSN)
	set(&config.SecretKey, c.SecretKey)
	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	set(&config.OnlineAddress, c.OnlineAddress)
	set(&config.EmailService, c.EmailService)
	set(&config.EmailAddress, c.EmailAddress)
	set(&config.EmailPassword, c.EmailPassword)
	set(&config.SMTPHost, c.SMTPHost)
	set(&config.SMTPPort, c.SMTPPort)
	set(&config.SMTPImplicitTLS, c.SMTPImplicitTLS)
	set(&config.EmailStoredFile, c.EmailStoredFile)
	if c.EmailRetryInterval != nil {
		config.EmailRetryInterval = c.EmailRetryInterval.Duration
	}
	set(&config.S3RootUser, c.S3RootUser)
	set(&config.S3RootPassword, c.S3RootPassword)
	set(&config.S3Bucket, c.S3Bucket)
	set(&config.S3Region, c.S3Region)
	set(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	set(&config.SlackWebhook, c.SlackWebhook)
	set(&config.HashWorkers, c.HashWorkers)
	set(&config.LogBackend, c.LogBackend)
}
