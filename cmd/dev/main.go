package main

import (
	"context"
	"net/http"
	"os"

	"github.com/killshot-app/killshot/config"
	"github.com/killshot-app/killshot/db"
	_ "github.com/killshot-app/killshot/logging"
	"github.com/killshot-app/killshot/secrets"
	"github.com/killshot-app/killshot/server"
	"github.com/killshot-app/killshot/services/events"
	"github.com/killshot-app/killshot/services/expenses"
	"github.com/killshot-app/killshot/services/groups"

	"github.com/sirupsen/logrus"
)

// Local runner: mock secrets, no events, no Telegram, no backups.
func main() {
	ctx := context.Background()

	if os.Getenv("CONF_FILE") == "" {
		os.Setenv("CONF_FILE", "config.dev.yml")
	}
	conf, err := config.Load()
	if err != nil {
		logrus.Fatalf("error loading config: %v", err)
	}

	secretsService := secrets.NewMockService()
	defer secretsService.Close()
	jwtSecret, err := secretsService.ReadBinary(ctx, "jwt-secret")
	if err != nil {
		logrus.Fatalf("error generating jwt secret: %v", err)
	}

	database, err := db.New(conf.Database.Path)
	if err != nil {
		logrus.Fatalf("error opening database: %v", err)
	}
	defer database.Close()

	eventsService, err := events.NewService(ctx, "" /*projectID*/)
	if err != nil {
		logrus.Fatalf("error creating events service: %v", err)
	}
	defer eventsService.Close()

	srv := server.New(
		conf,
		jwtSecret,
		groups.NewService(database),
		expenses.NewService(database, eventsService, nil /*notifier*/),
		nil, /*backupManager*/
		nil, /*secretsService*/
	)

	logrus.Infof("listening on %s", conf.Server.Addr)
	if err := http.ListenAndServe(conf.Server.Addr, srv.Handler()); err != nil {
		logrus.Fatal(err)
	}
}
