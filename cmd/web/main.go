package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"volnasup.ru/shop/internal/config"
	apphttp "volnasup.ru/shop/internal/http"
	"volnasup.ru/shop/internal/mailer"
	"volnasup.ru/shop/internal/storage"
)

func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if cfg.DBDSN == "" {
		log.Fatal("DB_DSN environment variable is required")
	}
	db, err := gorm.Open(mysql.Open(cfg.DBDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	store, err := storage.New(context.Background(), cfg.Storage)
	if err != nil {
		log.Fatalf("failed to init storage: %v", err)
	}

	mail := mailer.NewSMTPMailer(cfg.SMTP)

	r := apphttp.NewRouter(cfg, logger, db, store, mail)

	logger.Info("server starting", "addr", cfg.Addr, "env", cfg.Env, "tz", cfg.ShopLoc.String())
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
