package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/mercury/internal/flagx"
)

var flagNames = []string{"-a", "-d", "-s", "-t", "-o", "-m", "-r", "-w", "-l", "-u", "-p", "-b", "-g", "-e"}

// parseFlags overlays short command-line flags:
//
//	-a string   gRPC bind address
//	-d string   PostgreSQL DSN
//	-s string   JWT secret key
//	-t int      token validity, minutes
//	-o string   online address used in mailed links
//	-m string   email service (smtp|ses)
//	-r int      stored email retry interval, seconds
//	-w int      password hashing workers
//	-l string   log backend (slog|zap)
//	-u, -p, -b, -g, -e   S3 user, password, bucket, region, endpoint
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], flagNames)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	tokenMinutes := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token validity (in minutes)")
	fs.StringVar(&config.OnlineAddress, "o", config.OnlineAddress, "public address used in emailed links")
	fs.StringVar(&config.EmailService, "m", config.EmailService, "email service: smtp or ses")
	retrySeconds := fs.Int("r", int(config.EmailRetryInterval.Seconds()), "stored email retry interval (in seconds)")
	fs.IntVar(&config.HashWorkers, "w", config.HashWorkers, "password hashing workers")
	fs.StringVar(&config.LogBackend, "l", config.LogBackend, "log backend: slog or zap")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenMinutes) * time.Minute
	config.EmailRetryInterval = time.Duration(*retrySeconds) * time.Second
}
