package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"marketadmin/internal/app/cli"

	log "github.com/sirupsen/logrus"
)

func main() {
	log.SetOutput(os.Stderr)
	log.SetLevel(log.WarnLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := cli.Execute(ctx, cli.Deps{}, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
