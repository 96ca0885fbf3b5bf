package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/studynotes/internal/flagx"
)

var clientFlags = []string{"-a", "-u", "-t"}

// parseFlags populates selected Config fields from command-line flags and
// collects the remaining positional arguments.
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], clientFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "server base URL")
	fs.StringVar(&cfg.Email, "u", cfg.Email, "account email")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	cfg.Args = flagx.Positional(os.Args[1:], append([]string{"-c", "-config", "--config"}, clientFlags...))
}
