package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"billable/infrastructure/audit"
	"billable/infrastructure/cache"
	"billable/infrastructure/config"
	httpserver "billable/infrastructure/http"
	"billable/infrastructure/rbac"
	"billable/infrastructure/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}
	setupLogger(cfg.LogFormat)

	db, err := sqlite.OpenDB(cfg.SQLitePath)
	if err != nil {
		slog.Error("open db", slog.String("path", cfg.SQLitePath), slog.Any("err", err))
		os.Exit(1)
	}
	defer db.Close()

	if err := sqlite.ApplyMigrations(context.Background(), db, cfg.MigrationsDir); err != nil {
		slog.Error("apply migrations", slog.Any("err", err))
		os.Exit(1)
	}

	sessionCache := cache.NewUserSessionCache()
	userCache := cache.NewUserCache()
	rbacCache := cache.NewRbacRolesCache()
	rbacSvc := rbac.New(rbacCache)
	auditSvc := audit.NewService()

	server := httpserver.NewServer(cfg.AppAddr, db, sessionCache, userCache, rbacSvc, rbacCache, auditSvc)
	if err := server.Start(); err != nil {
		slog.Error("start server", slog.Any("err", err))
		os.Exit(1)
	}
	slog.Info("billable listening", slog.String("addr", cfg.AppAddr))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	if err := server.Stop(); err != nil {
		slog.Error("graceful shutdown error", slog.Any("err", err))
	}
}

func setupLogger(format string) {
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(handler))
}
