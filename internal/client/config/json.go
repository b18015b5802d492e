package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/vigilkeeper/internal/flagx"
	"github.com/dmitrijs2005/vigilkeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// OperationTimeout accepts "5s" style strings or integer nanoseconds.
type JsonConfig struct {
	DataDir        string `json:"data_dir"`
	GeneralBackend string `json:"general_backend"`
	DatabaseDSN    string `json:"database_dsn"`

	S3Bucket       string `json:"s3_bucket"`
	S3Region       string `json:"s3_region"`
	S3BaseEndpoint string `json:"s3_base_endpoint"`
	S3AccessKey    string `json:"s3_access_key"`
	S3SecretKey    string `json:"s3_secret_key"`
	S3Prefix       string `json:"s3_prefix"`

	TokenSecret      string         `json:"token_secret"`
	MetricsAddr      string         `json:"metrics_addr"`
	LogLevel         string         `json:"log_level"`
	OperationTimeout timex.Duration `json:"operation_timeout"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Keys missing from the file keep their current value.
// Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlay(&cfg.DataDir, jc.DataDir)
	overlay(&cfg.GeneralBackend, jc.GeneralBackend)
	overlay(&cfg.DatabaseDSN, jc.DatabaseDSN)
	overlay(&cfg.S3Bucket, jc.S3Bucket)
	overlay(&cfg.S3Region, jc.S3Region)
	overlay(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	overlay(&cfg.S3AccessKey, jc.S3AccessKey)
	overlay(&cfg.S3SecretKey, jc.S3SecretKey)
	overlay(&cfg.S3Prefix, jc.S3Prefix)
	overlay(&cfg.TokenSecret, jc.TokenSecret)
	overlay(&cfg.MetricsAddr, jc.MetricsAddr)
	overlay(&cfg.LogLevel, jc.LogLevel)
	if jc.OperationTimeout.Duration > 0 {
		cfg.OperationTimeout = jc.OperationTimeout.Duration
	}
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
