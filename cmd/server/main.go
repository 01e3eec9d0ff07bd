package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/cardano2vn/group-signup/config"
	"github.com/cardano2vn/group-signup/internal/captcha"
	"github.com/cardano2vn/group-signup/internal/handlers"
	"github.com/cardano2vn/group-signup/internal/middleware"
	"github.com/cardano2vn/group-signup/internal/registration"
	"github.com/cardano2vn/group-signup/internal/roster"
	"github.com/cardano2vn/group-signup/internal/routes"
	"github.com/cardano2vn/group-signup/internal/storage"
)

func main() {
	cfg := config.Load()

	store, err := storage.New(context.Background(), cfg)
	if err != nil {
		slog.Error("Failed to create store", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	rdb := config.ConnectRedis(cfg.RedisAddr)

	rosterReader := roster.New(store, rdb, cfg)
	verifier := captcha.NewRecaptcha(cfg.RecaptchaSecretKey)
	service := registration.New(store, rosterReader, verifier, cfg)

	gate := &middleware.ReadyGate{}
	r := gin.Default()
	routes.SetupRoutes(r, gate, routes.Handlers{
		Groups:     handlers.NewGroupHandler(rosterReader),
		Students:   handlers.NewStudentHandler(rosterReader),
		Register:   handlers.NewRegisterHandler(service),
		SiteConfig: handlers.NewConfigHandler(cfg),
	})

	// Header-row check runs in the background; API requests get 503
	// until it completes. A failed init is fatal, a restart retries.
	go func() {
		if err := store.Init(context.Background()); err != nil {
			slog.Error("Failed to initialize store", "backend", cfg.StoreBackend, "error", err)
			os.Exit(1)
		}
		gate.MarkReady()
		slog.Info("Store initialized, accepting registrations",
			"backend", cfg.StoreBackend,
			"groups", cfg.Groups,
			"capacity", cfg.MaxStudentsPerGroup)
	}()

	slog.Info("Starting server", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
