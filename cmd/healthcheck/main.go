package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/gophauth/internal/client/config"
	"github.com/dmitrijs2005/gophauth/internal/client/grpcclient"
	"github.com/dmitrijs2005/gophauth/internal/client/healthcheck"
	"github.com/dmitrijs2005/gophauth/internal/logging"
)

func main() {

	cfg := config.LoadConfig()

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Printf("%v", err)
		os.Exit(2)
	}
	logger := logging.NewJSONLogger(os.Stdout, level)

	client, err := grpcclient.New(cfg.ServerEndpointAddr)
	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := healthcheck.NewProber(client, logger, cfg.ProbeInterval, cfg.ConnectTimeout)
	if err := p.Run(ctx); err != nil {
		logger.Error(ctx, "health check stopped", "error", err.Error())
		stop()
		client.Close()
		os.Exit(1)
	}

}
