package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var telemetry *Telemetry
	if cfg.Telemetry.Enabled {
		t, shutdown, err := newTelemetry(ctx, cfg.Telemetry)
		if err != nil {
			log.Fatalf("telemetry: %v", err)
		}
		defer shutdown(context.Background())
		telemetry = t
	}

	events := make(chan Event, queueDepth)

	// All tasks share fate: the first one to return (the server exiting,
	// console EOF, or a failed forward) cancels the rest, which also kills
	// the subprocess via its command context.
	group, ctx := errgroup.WithContext(ctx)

	server, err := StartServer(ctx, cfg.Server.Command, cfg.Server.Args, events)
	if err != nil {
		log.Fatalf("server: %v", err)
	}

	discord, err := NewDiscordChannel(cfg.Discord.Token, events)
	if err != nil {
		log.Fatalf("discord: %v", err)
	}

	console := NewConsole(os.Stdin, events)
	bridge := NewBridge(events, discord, server.Stdin, os.Stdout,
		cfg.Discord.GeneralChannel, cfg.Discord.ServerChannel, telemetry)

	group.Go(func() error { return server.Run(ctx) })
	group.Go(func() error { return console.Run(ctx) })
	group.Go(func() error { return discord.Start(ctx) })
	group.Go(func() error { return bridge.Run(ctx) })

	log.Printf("mc-sync started (general=%d, server=%d, command=%s)",
		cfg.Discord.GeneralChannel, cfg.Discord.ServerChannel, cfg.Server.Command)

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("fatal: %v", err)
	}
	log.Println("shutting down")
}
