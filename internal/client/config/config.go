package config

import "time"

// Config holds runtime settings for the vigil CLI.
//
// DataDir hosts the local SQLite file (secure tier and keyring). The general
// tier lives there too unless GeneralBackend selects postgres or s3.
type Config struct {
	DataDir        string
	GeneralBackend string
	DatabaseDSN    string

	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
	S3Prefix       string

	TokenSecret      string
	MetricsAddr      string
	LogLevel         string
	OperationTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = "~/.vigil"
	c.GeneralBackend = "sqlite"
	c.S3Region = "us-east-1"
	c.S3Prefix = "vigil/"
	c.LogLevel = "info"
	c.OperationTimeout = 5 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
