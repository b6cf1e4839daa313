package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"railtracker/internal/chart"
	"railtracker/internal/config"
	"railtracker/internal/pipeline"
	"railtracker/internal/store"
)

func main() {
	if os.Getenv("RAILTRACKER_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	if os.Getenv("RAILTRACKER_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:  "railtracker",
		Usage: "plot the collected fare history, one line per train connection",
		Action: func(c *cli.Context) error {
			cfgPath := "railtracker.yaml"
			if v := os.Getenv("CONFIG_PATH"); v != "" {
				cfgPath = v
			}
			cfg, err := config.Load(cfgPath)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to load config")
			}
			if err := cfg.Validate(); err != nil {
				log.Fatal().Err(err).Msg("Invalid config")
			}

			runner := &pipeline.Runner{
				Loader:    store.NewSQLiteLoader(cfg.Database.SQLitePath),
				Presenter: chart.NewWindowPresenter(),
				Options: chart.Options{
					Route:    cfg.Chart.Route,
					Currency: cfg.Chart.Currency,
					Width:    cfg.Chart.Width,
					Height:   cfg.Chart.Height,
					Location: cfg.Location(),
				},
				Out: os.Stdout,
			}

			outcome, err := runner.Run(c.Context)
			if err != nil {
				log.Error().Err(err).Str("outcome", outcome.String()).Str("database", cfg.Database.SQLitePath).Send()
			}
			if code := outcome.ExitCode(); code != 0 {
				return cli.Exit("", code)
			}
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Send()
	}
}
