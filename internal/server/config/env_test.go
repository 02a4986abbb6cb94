package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useDotenv(t *testing.T, content string) {
	t.Helper()
	orig := dotenvFile
	t.Cleanup(func() { dotenvFile = orig })

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	dotenvFile = path
}

func TestParseEnv(t *testing.T) {
	useDotenv(t, "")

	t.Setenv("MERCURY_ENDPOINT_ADDR_GRPC", ":6000")
	t.Setenv("MERCURY_TOKEN_VALIDITY_DURATION", "30m")
	t.Setenv("MERCURY_EMAIL_SERVICE", "ses")
	t.Setenv("MERCURY_SMTP_PORT", "465")
	t.Setenv("MERCURY_SMTP_IMPLICIT_TLS", "true")
	t.Setenv("MERCURY_EMAIL_RETRY_INTERVAL", "90s")
	t.Setenv("MERCURY_HASH_WORKERS", "3")
	t.Setenv("MERCURY_SLACK_WEBHOOK", "https://hooks.slack.example/env")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, ":6000", c.EndpointAddrGRPC)
	assert.Equal(t, 30*time.Minute, c.TokenValidityDuration)
	assert.Equal(t, EmailServiceSES, c.EmailService)
	assert.Equal(t, 465, c.SMTPPort)
	assert.True(t, c.SMTPImplicitTLS)
	assert.Equal(t, 90*time.Second, c.EmailRetryInterval)
	assert.Equal(t, 3, c.HashWorkers)
	assert.Equal(t, "https://hooks.slack.example/env", c.SlackWebhook)
	assert.Equal(t, "secretKey", c.SecretKey, "unset variables keep defaults")
}

func TestParseEnv_Dotenv(t *testing.T) {
	useDotenv(t, "MERCURY_SMTP_HOST=smtp.dotenv.example\nMERCURY_S3_BUCKET=images\n")
	t.Setenv("MERCURY_S3_BUCKET", "from-process")
	t.Cleanup(func() { _ = os.Unsetenv("MERCURY_SMTP_HOST") })

	var c Config
	parseEnv(&c)

	assert.Equal(t, "smtp.dotenv.example", c.SMTPHost)
	assert.Equal(t, "from-process", c.S3Bucket, "process env is not overridden by .env")
}

func TestParseEnv_Malformed(t *testing.T) {
	useDotenv(t, "")
	t.Setenv("MERCURY_SMTP_PORT", "abc")

	var c Config
	require.Panics(t, func() { parseEnv(&c) })
}
