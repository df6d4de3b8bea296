package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"split-ca/internal/app"
	"split-ca/internal/compositor"
	"split-ca/internal/console"
	"split-ca/internal/core"
	"split-ca/internal/rules"
	"split-ca/internal/servicepoint"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	level, _ := cfg.Level()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(cfg, level); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(cfg *app.Config, level slog.Level) error {
	compression, _ := servicepoint.ParseCompression(cfg.Compress)
	conn, err := servicepoint.Dial(cfg.Destination, compression)
	if err != nil {
		return err
	}
	defer conn.Close()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := core.NewRNG(seed)
	compCfg, err := cfg.Compositor(rules.NewSynthesizer(rng))
	if err != nil {
		return err
	}

	con, err := console.Open(level)
	if err != nil {
		return err
	}
	defer con.Close()
	log := con.Logger()
	stderr := slog.Default()
	slog.SetDefault(log)
	defer slog.SetDefault(stderr)

	comp, err := compositor.New(compCfg, rng, log)
	if err != nil {
		return err
	}
	pacer := core.NewPacer(cfg.TPS)
	a := app.New(comp, conn, con, pacer, log)
	log.Info("connected", "destination", conn.RemoteAddr().String(), "seed", seed, "compress", compression.String())
	log.Info("press h for help")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return con.Run(ctx) })
	g.Go(func() error {
		defer con.Close()
		return a.Run(ctx)
	})
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
