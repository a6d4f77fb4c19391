// This program performs administrative tasks for the venue allotment service.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ardanlabs/conf"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"venue-allotment/backend/internal/commands"
	"venue-allotment/backend/internal/pkg/config"
	"venue-allotment/backend/internal/pkg/repository/postgresql"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Timestamp().Logger()

	if err := run(log); err != nil {
		if !errors.Is(err, commands.ErrHelp) {
			log.Error().Err(err).Msg("admin")
			os.Exit(1)
		}
	}
}

func run(log zerolog.Logger) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Wrap(err, "loading .env")
	}

	var cfg struct {
		DB struct {
			User         string        `conf:"default:postgres"`
			Password     string        `conf:"default:postgres,noprint"`
			Host         string        `conf:"default:localhost"`
			Port         string        `conf:"default:5432"`
			Name         string        `conf:"default:venue_allotment"`
			DisableTLS   bool          `conf:"default:true"`
			QueryTimeout time.Duration `conf:"default:30s"`
			ConfigFile   string        `conf:"default:config.yaml"`
		}
		Args conf.Args
	}

	const prefix = "VENUE"
	if err := conf.Parse(os.Args[1:], prefix, &cfg); err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			usage, err := conf.Usage(prefix, &cfg)
			if err != nil {
				return errors.Wrap(err, "generating config usage")
			}
			fmt.Println(usage)
			fmt.Println("commands:\n  migrate    apply pending schema migrations")
			return commands.ErrHelp
		}
		return errors.Wrap(err, "parsing config")
	}

	overlay, err := config.NewConfig(cfg.DB.ConfigFile)
	if err != nil {
		return err
	}
	overlay.Apply(&cfg.DB.User, &cfg.DB.Password, &cfg.DB.Host, &cfg.DB.Port, &cfg.DB.Name, &cfg.DB.DisableTLS)

	switch cfg.Args.Num(0) {
	case "migrate":
		db, err := postgresql.NewDB(postgresql.Config{
			User:         cfg.DB.User,
			Password:     cfg.DB.Password,
			Host:         cfg.DB.Host,
			Port:         cfg.DB.Port,
			Name:         cfg.DB.Name,
			DisableTLS:   cfg.DB.DisableTLS,
			QueryTimeout: cfg.DB.QueryTimeout,
		}, log)
		if err != nil {
			return errors.Wrap(err, "connecting to db")
		}
		defer db.Close()

		if err = commands.MigrateUP(context.Background(), db, log); err != nil {
			return errors.Wrap(err, "migrating database")
		}
		log.Info().Msg("migrations complete")
	default:
		fmt.Println("commands:\n  migrate    apply pending schema migrations")
		return commands.ErrHelp
	}

	return nil
}
