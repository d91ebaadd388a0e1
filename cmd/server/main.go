package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/hongminglow/developers-api/internal/config"
	"github.com/hongminglow/developers-api/internal/logging"
	"github.com/hongminglow/developers-api/internal/server"
	"github.com/hongminglow/developers-api/internal/service"
	"github.com/hongminglow/developers-api/internal/storage"
	"github.com/hongminglow/developers-api/internal/storage/memory"
	"github.com/hongminglow/developers-api/internal/storage/postgres"
	"github.com/hongminglow/developers-api/internal/storage/sqlite"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_FILE"), "optional YAML config file; its values override the environment")
	flag.Parse()

	envErr := godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.WithError(err).Fatal("init logger")
	}
	if envErr != nil {
		log.Debug("no .env file found; relying on existing environment")
	}

	ctx := context.Background()
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.WithError(err).WithField("driver", cfg.StoreDriver).Fatal("init store")
	}
	defer closeStore()

	svc := service.NewDeveloperService(store, log)
	srv := server.New(cfg, svc, log)

	go func() {
		log.WithFields(logrus.Fields{"addr": cfg.HTTPAddress(), "driver": cfg.StoreDriver}).Info("developers API listening")
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("http server error")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.WithError(err).Warn("graceful shutdown error")
	}
}

// openStore builds the configured storage backend and returns its release func.
func openStore(ctx context.Context, cfg config.Config) (storage.DeveloperStore, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		s, err := postgres.NewDeveloperStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.DriverSQLite:
		s, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case config.DriverMemory:
		return memory.New(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
