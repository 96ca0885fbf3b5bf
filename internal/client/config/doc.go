// Package config loads runtime configuration for the studynotes CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via -c/-config or
//     $STUDYNOTES_CONFIG.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the server (e.g. http://127.0.0.1:8080)
//	-u string   account email
//	-t int      request timeout (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration, so the timeout can be a string like
// "30s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "email": "me@example.com",
//	  "request_timeout": "30s"
//	}
//
// Arguments that are not flags end up in Config.Args.
package config
