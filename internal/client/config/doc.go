// Package config loads runtime configuration for the vigil CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string            data directory (default ~/.vigil)
//	-b string            general tier backend: sqlite, postgres, s3
//	-dsn string          postgres DSN
//	-s3-bucket string    bucket for the s3 backend
//	-s3-region string    region for the s3 backend
//	-s3-endpoint string  endpoint of an S3-compatible service
//	-s3-prefix string    object key prefix
//	-k string            access token HMAC secret
//	-m string            metrics listen address
//	-l string            log level
//	-t int               storage operation timeout (seconds)
//
// # JSON schema
//
//	{
//	  "data_dir": "~/.vigil",
//	  "general_backend": "s3",
//	  "s3_bucket": "vigil-kiosk",
//	  "s3_base_endpoint": "http://127.0.0.1:9000",
//	  "s3_access_key": "minio",
//	  "s3_secret_key": "minio123",
//	  "token_secret": "change-me",
//	  "operation_timeout": "5s"
//	}
//
// This package does not read environment variables; the AWS SDK may still
// pick up credentials from its own default chain when none are configured.
package config
