package main

import (
	"context"
	"fine-bot/bot"
	"fine-bot/config"
	"fine-bot/handlers"
	"fine-bot/keepalive"
	"fine-bot/metrics"
	"fine-bot/utils/database/fines"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	metrics.Init()

	store, err := fines.Open(cfg.FinesFile)
	if err != nil {
		log.Fatalf("Error opening fines file: %v", err)
	}
	log.Printf("Fine records stored in %s", store.Path())

	b, err := bot.New(cfg, store)
	if err != nil {
		log.Fatalf("Error creating bot: %v", err)
	}

	handlers.Register(b)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return keepalive.Serve(gctx, cfg.KeepAliveAddr, keepalive.NewHandler(time.Now()))
	})
	g.Go(func() error {
		return b.Run(gctx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Bot stopped: %v", err)
	}
}
