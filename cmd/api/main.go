package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardanlabs/conf"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"venue-allotment/backend/foundation/web"
	"venue-allotment/backend/internal/auth"
	"venue-allotment/backend/internal/commands"
	"venue-allotment/backend/internal/middleware"
	"venue-allotment/backend/internal/pkg/config"
	"venue-allotment/backend/internal/pkg/repository/postgresql"
	"venue-allotment/backend/internal/router"
	"venue-allotment/backend/internal/service/allocation"
)

type Config struct {
	Web struct {
		APIHost         string        `conf:"default:0.0.0.0:8000"`
		ReadTimeout     time.Duration `conf:"default:10s"`
		WriteTimeout    time.Duration `conf:"default:30s"`
		ShutdownTimeout time.Duration `conf:"default:10s"`
		CORSOrigins     []string      `conf:"default:http://localhost:3000"`
	}
	Auth struct {
		SigningKey    string        `conf:"noprint"`
		TokenLifetime time.Duration `conf:"default:24h"`
	}
	DB struct {
		User         string        `conf:"default:postgres"`
		Password     string        `conf:"default:postgres,noprint"`
		Host         string        `conf:"default:localhost"`
		Port         string        `conf:"default:5432"`
		Name         string        `conf:"default:venue_allotment"`
		DisableTLS   bool          `conf:"default:true"`
		QueryTimeout time.Duration `conf:"default:5s"`
		Debug        bool          `conf:"default:false"`
		ConfigFile   string        `conf:"default:config.yaml"`
		AutoMigrate  bool          `conf:"default:true"`
	}
	Redis struct {
		Addr     string `conf:"default:localhost:6379"`
		Password string `conf:"noprint"`
		DB       int    `conf:"default:0"`
	}
	Allocation struct {
		Seed int64 `conf:"default:0"`
	}
	Export struct {
		PDFFont string `conf:"help:path to a UTF-8 TrueType font for PDF exports"`
	}
	Log struct {
		Level   string `conf:"default:info"`
		Console bool   `conf:"default:false"`
	}
}

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Str("service", "venue-allotment").Logger()

	if err := run(log); err != nil {
		if !errors.Is(err, commands.ErrHelp) {
			log.Error().Err(err).Msg("shutting down")
			os.Exit(1)
		}
	}
}

func run(log zerolog.Logger) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Wrap(err, "loading .env")
	}

	var cfg Config
	const prefix = "VENUE"
	if err := conf.Parse(os.Args[1:], prefix, &cfg); err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			usage, err := conf.Usage(prefix, &cfg)
			if err != nil {
				return errors.Wrap(err, "generating config usage")
			}
			fmt.Println(usage)
			return commands.ErrHelp
		}
		return errors.Wrap(err, "parsing config")
	}

	overlay, err := config.NewConfig(cfg.DB.ConfigFile)
	if err != nil {
		return err
	}
	overlay.Apply(&cfg.DB.User, &cfg.DB.Password, &cfg.DB.Host, &cfg.DB.Port, &cfg.DB.Name, &cfg.DB.DisableTLS)

	if cfg.Log.Console {
		log = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log = log.Level(level)

	out, err := conf.String(&cfg)
	if err != nil {
		return errors.Wrap(err, "generating config for output")
	}
	log.Info().Msgf("config:\n%v", out)

	// =========================================================================
	// Database

	db, err := postgresql.NewDB(postgresql.Config{
		User:         cfg.DB.User,
		Password:     cfg.DB.Password,
		Host:         cfg.DB.Host,
		Port:         cfg.DB.Port,
		Name:         cfg.DB.Name,
		DisableTLS:   cfg.DB.DisableTLS,
		QueryTimeout: cfg.DB.QueryTimeout,
		Debug:        cfg.DB.Debug,
	}, log)
	if err != nil {
		return errors.Wrap(err, "connecting to db")
	}
	defer db.Close()

	if cfg.DB.AutoMigrate {
		if err = commands.MigrateUP(context.Background(), db, log); err != nil {
			return errors.Wrap(err, "migrating db")
		}
	}

	// =========================================================================
	// Redis

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	// =========================================================================
	// Auth

	a, err := auth.New(cfg.Auth.SigningKey, cfg.Auth.TokenLifetime, auth.NewRedisRevoker(rdb))
	if err != nil {
		return errors.Wrap(err, "constructing auth")
	}

	// =========================================================================
	// API

	gin.SetMode(gin.ReleaseMode)
	app := web.NewApp(log, middleware.Logger(log))

	router.NewRouter(app, db, rdb, a, allocation.NewSource(cfg.Allocation.Seed), cfg.Web.CORSOrigins, cfg.Export.PDFFont).Init()

	api := http.Server{
		Addr:         cfg.Web.APIHost,
		Handler:      app,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info().Str("addr", api.Addr).Msg("api listening")
		serverErrors <- api.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return errors.Wrap(err, "server error")

	case sig := <-shutdown:
		log.Info().Str("signal", sig.String()).Msg("shutdown started")

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		if err := api.Shutdown(ctx); err != nil {
			_ = api.Close()
			return errors.Wrap(err, "could not stop server gracefully")
		}
		log.Info().Msg("shutdown complete")
	}

	return nil
}
