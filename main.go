package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"restaurant/configs"
	"restaurant/middlewares"
	"restaurant/routes"
	"restaurant/ws"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := configs.LoadConfig()
	log := configs.NewLogger(cfg)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		if cfg.JWTSecret == "changeme" {
			log.Fatal("JWT_SECRET must be set in production")
		}
	}

	// DB
	db, err := configs.ConnectionDB(cfg)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	if err := configs.SetupDatabase(db); err != nil {
		log.WithError(err).Fatal("migration failed")
	}
	if err := configs.SeedAdmin(db, cfg); err != nil {
		log.WithError(err).Fatal("seed admin failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := ws.NewFloorHub()
	go hub.Run(ctx)

	// HTTP
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.MetricsMiddleware())

	if err := routes.RegisterRoutes(r, db, cfg, hub); err != nil {
		log.WithError(err).Fatal("register routes failed")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.WithField("addr", srv.Addr).Info("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
