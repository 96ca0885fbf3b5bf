// Package config handles configuration for the studynotes server,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Storage backends understood by StorageBackend.
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// Config holds runtime settings for the server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the web application.
//   - EndpointAddrGRPCHealth: bind address for the gRPC health service; empty disables it.
//   - DatabaseDSN: postgres:// DSN (pgx) or an SQLite file path.
//   - SecretKey: HMAC secret for signing session tokens. Do not use the default in prod.
//   - SessionValidityDuration: lifetime of a login session.
//   - UploadDir: directory for the local blob store.
//   - StorageBackend: "local" or "s3".
//   - S3RootUser / S3RootPassword / S3Bucket / S3Region / S3BaseEndpoint: object storage settings.
//   - SummarySentences / SentenceWindow / QuestionLimit / QuestionMinLength: text heuristics.
//   - MaxPDFPages: how many leading PDF pages are read.
//   - MaxUploadSize: upload body limit in bytes; 0 means unlimited.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	EndpointAddrHTTP        string
	EndpointAddrGRPCHealth  string
	DatabaseDSN             string
	SecretKey               string
	SessionValidityDuration time.Duration
	UploadDir               string
	StorageBackend          string
	S3RootUser              string
	S3RootPassword          string
	S3Bucket                string
	S3Region                string
	S3BaseEndpoint          string
	SummarySentences        int
	SentenceWindow          int
	QuestionLimit           int
	QuestionMinLength       int
	MaxPDFPages             int
	MaxUploadSize           int64
	LogLevel                string
}

// LoadDefaults populates Config with development defaults.
// NOTE: SecretKey must be overridden outside development.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.EndpointAddrGRPCHealth = ""
	c.DatabaseDSN = "studynotes.db"
	c.SecretKey = "secretKey"
	c.SessionValidityDuration = 24 * time.Hour
	c.UploadDir = "uploads"
	c.StorageBackend = StorageLocal
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "uploads"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.SummarySentences = 5
	c.SentenceWindow = 30
	c.QuestionLimit = 5
	c.QuestionMinLength = 30
	c.MaxPDFPages = 10
	c.MaxUploadSize = 0
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
