package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"

	"github.com/dmitrijs2005/studynotes/internal/logging"
	"github.com/dmitrijs2005/studynotes/internal/server"
	"github.com/dmitrijs2005/studynotes/internal/server/config"
	"github.com/joho/godotenv"
)

func main() {
	// .env may name the config file via STUDYNOTES_CONFIG, so load it first.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("error loading .env: %v", err)
	}

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewJSONLogger(os.Stdout, cfg.LogLevel)

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

	app.Run(ctx)
}
