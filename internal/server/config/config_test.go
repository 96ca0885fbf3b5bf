package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.EndpointAddrHTTP)
	assert.Equal(t, "", c.EndpointAddrGRPCHealth)
	assert.Equal(t, "studynotes.db", c.DatabaseDSN)
	assert.Equal(t, "secretKey", c.SecretKey)
	assert.Equal(t, 24*time.Hour, c.SessionValidityDuration)
	assert.Equal(t, "uploads", c.UploadDir)
	assert.Equal(t, StorageLocal, c.StorageBackend)
	assert.Equal(t, "us-east-1", c.S3Region)
	assert.Equal(t, 5, c.SummarySentences)
	assert.Equal(t, 30, c.SentenceWindow)
	assert.Equal(t, 5, c.QuestionLimit)
	assert.Equal(t, 30, c.QuestionMinLength)
	assert.Equal(t, 10, c.MaxPDFPages)
	assert.Equal(t, int64(0), c.MaxUploadSize)
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"server"}
	t.Setenv("STUDYNOTES_CONFIG", "")

	c := LoadConfig()
	require.NotNil(t, c, "LoadConfig must not return nil")

	var want Config
	want.LoadDefaults()
	assert.Equal(t, want, *c)
}
