package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/vigilkeeper/internal/flagx"
)

var knownFlags = []string{
	"-d", "-b", "-dsn",
	"-s3-bucket", "-s3-region", "-s3-endpoint", "-s3-prefix",
	"-k", "-m", "-l", "-t",
}

// parseFlags populates Config fields from command-line flags.
//
// Only the flags listed in knownFlags are considered (see flagx.FilterArgs),
// so -c/-config and anything else on the command line is left alone. S3
// credentials are JSON-only to keep them out of shell history.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.GeneralBackend, "b", cfg.GeneralBackend, "general tier backend: sqlite, postgres or s3")
	fs.StringVar(&cfg.DatabaseDSN, "dsn", cfg.DatabaseDSN, "postgres DSN for the postgres backend")
	fs.StringVar(&cfg.S3Bucket, "s3-bucket", cfg.S3Bucket, "bucket for the s3 backend")
	fs.StringVar(&cfg.S3Region, "s3-region", cfg.S3Region, "region for the s3 backend")
	fs.StringVar(&cfg.S3BaseEndpoint, "s3-endpoint", cfg.S3BaseEndpoint, "custom endpoint for S3-compatible storage")
	fs.StringVar(&cfg.S3Prefix, "s3-prefix", cfg.S3Prefix, "object key prefix for the s3 backend")
	fs.StringVar(&cfg.TokenSecret, "k", cfg.TokenSecret, "HMAC secret used to verify access tokens")
	fs.StringVar(&cfg.MetricsAddr, "m", cfg.MetricsAddr, "address to serve /metrics on (empty disables)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn, error")
	timeout := fs.Int("t", int(cfg.OperationTimeout.Seconds()), "storage operation timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OperationTimeout = time.Duration(*timeout) * time.Second
}
