package main

import (
	"os"

	"github.com/iamasit07/connect4-engine/internal/config"
	"github.com/iamasit07/connect4-engine/pkg/logx"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()
	logx.Configure(config.GetEnv("LOG_LEVEL", "warn"), os.Stderr)

	app := newApp(os.Stdin, os.Stdout)
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("connect4 failed")
	}
}
