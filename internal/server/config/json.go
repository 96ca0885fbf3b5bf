package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/studynotes/internal/flagx"
	"github.com/dmitrijs2005/studynotes/internal/timex"
)

// JsonConfig mirrors Config for JSON decoding. Pointer fields distinguish
// "absent" from a zero value, so a partial file only overrides what it names.
type JsonConfig struct {
	EndpointAddrHTTP        *string         `json:"endpoint_addr_http"`
	EndpointAddrGRPCHealth  *string         `json:"endpoint_addr_grpc_health"`
	DatabaseDSN             *string         `json:"database_dsn"`
	SecretKey               *string         `json:"secret_key"`
	SessionValidityDuration *timex.Duration `json:"session_validity_duration"`
	UploadDir               *string         `json:"upload_dir"`
	StorageBackend          *string         `json:"storage_backend"`
	S3RootUser              *string         `json:"s3_root_user"`
	S3RootPassword          *string         `json:"s3_root_password"`
	S3Bucket                *string         `json:"s3_bucket"`
	S3Region                *string         `json:"s3_region"`
	S3BaseEndpoint          *string         `json:"s3_base_endpoint"`
	SummarySentences        *int            `json:"summary_sentences"`
	SentenceWindow          *int            `json:"sentence_window"`
	QuestionLimit           *int            `json:"question_limit"`
	QuestionMinLength       *int            `json:"question_min_length"`
	MaxPDFPages             *int            `json:"max_pdf_pages"`
	MaxUploadSize           *int64          `json:"max_upload_size"`
	LogLevel                *string         `json:"log_level"`
}

// parseJson overlays values from the JSON file named by -c/-config (or
// $STUDYNOTES_CONFIG). Without a path nothing happens; an unreadable or
// invalid file panics, like a bad flag does.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPCHealth, c.EndpointAddrGRPCHealth)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.SessionValidityDuration != nil {
		config.SessionValidityDuration = c.SessionValidityDuration.Duration
	}
	setString(&config.UploadDir, c.UploadDir)
	setString(&config.StorageBackend, c.StorageBackend)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setInt(&config.SummarySentences, c.SummarySentences)
	setInt(&config.SentenceWindow, c.SentenceWindow)
	setInt(&config.QuestionLimit, c.QuestionLimit)
	setInt(&config.QuestionMinLength, c.QuestionMinLength)
	setInt(&config.MaxPDFPages, c.MaxPDFPages)
	if c.MaxUploadSize != nil {
		config.MaxUploadSize = *c.MaxUploadSize
	}
	setString(&config.LogLevel, c.LogLevel)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
