package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expected    *Config
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"mercury",
				"-a", "127.0.0.1:9090", "-d", "db", "-s", "secret", "-t", "15",
				"-o", "https://mercury.example", "-m", "ses", "-r", "60", "-w", "2", "-l", "zap",
				"-u", "user", "-p", "password", "-b", "bucket", "-g", "us-west-1", "-e", "http://endpoint",
			},
			expected: &Config{
				EndpointAddrGRPC:      "127.0.0.1:9090",
				DatabaseDSN:           "db",
				SecretKey:             "secret",
				TokenValidityDuration: 15 * time.Minute,
				OnlineAddress:         "https://mercury.example",
				EmailService:          "ses",
				EmailRetryInterval:    time.Minute,
				HashWorkers:           2,
				LogBackend:            "zap",
				S3RootUser:            "user",
				S3RootPassword:        "password",
				S3Bucket:              "bucket",
				S3Region:              "us-west-1",
				S3BaseEndpoint:        "http://endpoint",
			},
		},
		{
			name: "foreign flags ignored",
			args: []string{"mercury", "-c", "cfg.json", "-x", "1", "-t", "5"},
			expected: &Config{
				TokenValidityDuration: 5 * time.Minute,
			},
		},
		{
			name:        "non-numeric duration",
			args:        []string{"mercury", "-t", "soon"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := os.Args
			t.Cleanup(func() { os.Args = orig })
			os.Args = tt.args

			config := &Config{}
			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			require.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
