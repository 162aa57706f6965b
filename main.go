package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/shuckfest/leaderboard/config"
	"github.com/shuckfest/leaderboard/db"
	"github.com/shuckfest/leaderboard/handlers"
	applog "github.com/shuckfest/leaderboard/logger"
	"github.com/shuckfest/leaderboard/metrics"
	"github.com/shuckfest/leaderboard/ws"
)

func main() {
	cfg := config.Load()
	logger, err := applog.New(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	bdb := db.Setup(cfg)
	defer bdb.Close()

	if err := db.CreateTables(context.Background(), bdb); err != nil {
		logger.Fatal("create tables failed", zap.Error(err))
	}

	m := metrics.New()

	hub := ws.NewHub(logger, m)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	h := handlers.New(bdb, hub, m)

	e := echo.New()
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.Int("status", v.Status),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			switch {
			case v.Status >= 500:
				logger.Error("http request", fields...)
			case v.Status >= 400:
				logger.Warn("http request", fields...)
			default:
				logger.Info("http request", fields...)
			}
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"*"},
	}))

	// Leaderboard data
	e.GET("/getData", h.GetData)
	e.POST("/updateData", h.UpdateData)
	e.DELETE("/deleteData", h.DeleteData)
	e.GET("/getLeaderboard", h.GetLeaderboard)

	// Display round
	e.GET("/getDisplayRound", h.GetDisplayRound)
	e.POST("/updateRound", h.UpdateRound)

	// Contestant admin
	e.GET("/api/contestants", h.ListContestants)
	e.POST("/api/contestants", h.AddContestant)
	e.PUT("/api/contestants", h.UpdateContestant)
	e.DELETE("/api/contestants", h.DeleteContestant)

	// Viewer push channel and scrape endpoint
	e.GET("/ws", echo.WrapHandler(hub))
	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	// Viewer and admin pages
	if cfg.PublicDir != "" {
		e.Static("/", cfg.PublicDir)
	}

	if cfg.Debug {
		logger.Info("starting server", zap.String("mode", "debug"), zap.String("addr", cfg.Port))
		if err := e.Start(cfg.Port); err != nil {
			logger.Fatal("server exited", zap.Error(err))
		}
		return
	}

	autoTLS := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		Cache:      autocert.DirCache(".cache"),
		HostPolicy: autocert.HostWhitelist(cfg.TLSDomains...),
	}

	s := &http.Server{
		Addr:         ":443",
		Handler:      e,
		TLSConfig:    autoTLS.TLSConfig(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	if err := s.ListenAndServeTLS("", ""); err != http.ErrServerClosed {
		logger.Error("tls server exited", zap.Error(err))
		os.Exit(1)
	}
}
