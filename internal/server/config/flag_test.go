package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	base := func() *Config {
		c := &Config{}
		c.LoadDefaults()
		return c
	}

	tests := []struct {
		name        string
		args        []string
		expected    func() *Config
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd",
				"-a", "127.0.0.1:9090", "-m", ":50051", "-d", "postgres://db", "-s", "secret",
				"-t", "90", "-f", "/srv/uploads", "-o", "s3", "-u", "user", "-p", "password",
				"-b", "bucket", "-g", "us-west-1", "-e", "http://endpoint", "-l", "debug",
			},
			expected: func() *Config {
				c := base()
				c.EndpointAddrHTTP = "127.0.0.1:9090"
				c.EndpointAddrGRPCHealth = ":50051"
				c.DatabaseDSN = "postgres://db"
				c.SecretKey = "secret"
				c.SessionValidityDuration = 90 * time.Minute
				c.UploadDir = "/srv/uploads"
				c.StorageBackend = StorageS3
				c.S3RootUser = "user"
				c.S3RootPassword = "password"
				c.S3Bucket = "bucket"
				c.S3Region = "us-west-1"
				c.S3BaseEndpoint = "http://endpoint"
				c.LogLevel = "debug"
				return c
			},
		},
		{
			name:     "unknown flags are filtered out",
			args:     []string{"cmd", "-x", "1", "-c", "conf.json", "-a", ":9000"},
			expected: func() *Config { c := base(); c.EndpointAddrHTTP = ":9000"; return c },
		},
		{
			name:        "bad integer panics",
			args:        []string{"cmd", "-t", "soon"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origArgs := os.Args
			t.Cleanup(func() { os.Args = origArgs })
			os.Args = tt.args

			config := base()

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}

			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected(), config))
		})
	}
}
