// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lisajluo/aeroplane-chess/service/internal/auth"
	"github.com/lisajluo/aeroplane-chess/service/internal/cache"
	"github.com/lisajluo/aeroplane-chess/service/internal/config"
	"github.com/lisajluo/aeroplane-chess/service/internal/game"
	"github.com/lisajluo/aeroplane-chess/service/internal/ws"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	log, err := config.NewLogger(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("configure logging")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var publish game.PublishFunc
	if cfg.RedisAddr != "" {
		feed, err := cache.NewFeed(ctx, cfg.RedisAddr, cfg.RedisStream)
		if err != nil {
			log.WithError(err).Fatal("connect move feed")
		}
		defer feed.Close()
		publish = feed.Publish
		log.WithFields(logrus.Fields{"addr": cfg.RedisAddr, "stream": cfg.RedisStream}).Info("publishing moves")
	}

	games := game.NewManager(log, publish, cfg.MatchRetention)
	srv := ws.NewServer(log, games, auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL), cfg.Origins)
	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.WithField("addr", cfg.Addr).Info("referee listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("serve")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("shutdown")
	}
}
