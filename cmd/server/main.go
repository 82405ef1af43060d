package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/killshot-app/killshot/backup"
	"github.com/killshot-app/killshot/config"
	"github.com/killshot-app/killshot/db"
	_ "github.com/killshot-app/killshot/logging"
	"github.com/killshot-app/killshot/notify"
	"github.com/killshot-app/killshot/secrets"
	"github.com/killshot-app/killshot/server"
	"github.com/killshot-app/killshot/services/events"
	"github.com/killshot-app/killshot/services/expenses"
	"github.com/killshot-app/killshot/services/groups"

	"github.com/sirupsen/logrus"
)

func main() {
	ctx := context.Background()

	conf, err := config.Load()
	if err != nil {
		logrus.Fatalf("error loading config: %v", err)
	}

	// the signing key comes from Secret Manager when a secret ID is
	// configured, from the config file otherwise
	jwtSecret := []byte(conf.Auth.JWTSecret)
	var secretsService secrets.Service
	if conf.Auth.JWTSecretID != "" {
		secretsService, err = secrets.NewService(ctx)
		if err != nil {
			logrus.Fatalf("error creating secrets service: %v", err)
		}
		defer secretsService.Close()
		jwtSecret, err = secretsService.ReadBinary(ctx, conf.Auth.JWTSecretID)
		if err != nil {
			logrus.Fatalf("error reading jwt secret: %v", err)
		}
	}
	if len(jwtSecret) == 0 {
		logrus.Fatal("no jwt secret configured")
	}

	var backupManager backup.Manager
	if conf.Backup.Bucket != "" {
		backupManager, err = backup.NewManager(ctx, conf.Backup.Bucket, conf.Backup.Object)
		if err != nil {
			logrus.Fatalf("error creating backup manager: %v", err)
		}
		defer backupManager.Close()
	}

	restored, err := backup.RestoreIfMissing(ctx, backupManager, conf.Database.Path)
	if err != nil {
		logrus.Fatalf("error restoring database from backup: %v", err)
	}
	if restored {
		logrus.Infof("database restored from backup into %s", conf.Database.Path)
	}

	database, err := db.New(conf.Database.Path)
	if err != nil {
		logrus.Fatalf("error opening database: %v", err)
	}
	defer database.Close()

	eventsService, err := events.NewService(ctx, conf.ProjectID)
	if err != nil {
		logrus.Fatalf("error creating events service: %v", err)
	}
	defer eventsService.Close()

	var notifier expenses.Notifier
	if conf.Telegram.Token != "" {
		telegram, err := notify.NewTelegram(conf.Telegram.Token, conf.Telegram.ChatID)
		if err != nil {
			logrus.Fatalf("error creating Telegram notifier: %v", err)
		}
		notifier = telegram
	}

	srv := server.New(
		conf,
		jwtSecret,
		groups.NewService(database),
		expenses.NewService(database, eventsService, notifier),
		backupManager,
		secretsService,
	)

	httpServer := &http.Server{
		Addr:    conf.Server.Addr,
		Handler: srv.Handler(),
	}

	go func() {
		logrus.Infof("listening on %s", conf.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("error serving http: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logrus.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("error shutting down http server: %v", err)
	}
}
