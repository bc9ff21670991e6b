package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clientdesk/internal/auth"
	"clientdesk/internal/config"
	"clientdesk/internal/db"
	"clientdesk/internal/models"
	"clientdesk/internal/observability"
	"clientdesk/internal/policy"
	"clientdesk/internal/storage"
	"clientdesk/internal/view"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var (
	migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")
	seedOnlyFlag    = flag.Bool("seed-only", false, "Run DB seed and exit")
)

func main() {
	flag.Parse()

	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("load config")
	}
	if !cfg.App.Dev {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	view.SetDev(cfg.App.Dev)

	conn, err := db.Connect(cfg.Database.DSN())
	if err != nil {
		log.WithError(err).Fatal("connect database")
	}

	// MIGRATIONS=1 runs the versioned SQL migrations; otherwise
	// AutoMigrate covers the dev loop.
	applySchema := func() error {
		if cfg.App.Migrations {
			return db.MigrateSQL(cfg.Database.URL())
		}
		return db.Migrate(conn)
	}

	if *migrateOnlyFlag {
		if err := applySchema(); err != nil {
			log.WithError(err).Fatal("migrate")
		}
		log.Info("migrations completed")
		return
	}
	if *seedOnlyFlag {
		if err := db.Seed(conn); err != nil {
			log.WithError(err).Fatal("seed")
		}
		log.Info("seeding completed")
		return
	}

	if err := applySchema(); err != nil {
		log.WithError(err).Fatal("migrate")
	}
	log.Info("migrations completed")
	if err := db.Seed(conn); err != nil {
		log.WithError(err).Fatal("seed")
	}

	// Sessions of removed employees stop working on their next request.
	auth.SetEmployeeVerifier(func(ctx context.Context, id uint) bool {
		var count int64
		conn.Model(&models.Employee{}).Where("id = ?", id).Count(&count)
		return count > 0
	})

	store, err := storage.NewDiskStore(cfg.Storage.Root, cfg.Storage.PublicBase)
	if err != nil {
		log.WithError(err).Fatal("init object storage")
	}

	authGate := policy.NewAuthGate(conn, 5*time.Minute)
	metrics, metricsHandler := observability.NewMetrics()

	app := NewApp(conn, authGate, store, store.Root(), metricsHandler, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      observability.Middleware(log, metrics)(app),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Server.Port).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("shutdown")
	}
	log.Info("server stopped gracefully")
}
