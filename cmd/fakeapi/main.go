package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"marketadmin/internal/api"
	"marketadmin/internal/app/config"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	log.Info("App start")

	cfg, err := config.NewConfig(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatal(err)
	}
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := api.StartServer(ctx, cfg); err != nil {
		log.Fatal(err)
	}
	log.Info("App terminated")
}
