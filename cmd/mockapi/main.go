package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/hongminglow/ubu-lite/internal/config"
	"github.com/hongminglow/ubu-lite/internal/logging"
	"github.com/hongminglow/ubu-lite/internal/market"
	"github.com/hongminglow/ubu-lite/internal/server"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.LoadMock()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if envErr != nil {
		log.Debug("no .env file found; relying on existing environment")
	}

	m := market.New(market.WithPublishableKey(cfg.PublishableKey))
	srv := server.New(cfg, m, log)

	go func() {
		log.WithField("addr", cfg.HTTPAddress()).Info("UBU Lite mock API listening")
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("http server error")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.WithError(err).Error("graceful shutdown error")
	}
}
