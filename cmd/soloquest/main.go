package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"soloquest/arise"
	"soloquest/server"
	"soloquest/store"
)

const version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:           "soloquest",
	Short:         "Solo Quest, a gamified personal task tracker",
	Long:          "Solo Quest is a single-user task tracker with RPG progression: quests, EXP, essence, achievements, loot chests and streaks, served over a local HTTP API.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()
	cfg := server.LoadConfig()

	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()

	var opts []arise.Option
	if cfg.Seed != 0 {
		opts = append(opts, arise.WithRand(rand.New(rand.NewSource(cfg.Seed))))
	}
	hub, err := arise.Init(logger, arise.NewCatalog(), opts...)
	if err != nil {
		return err
	}

	st, err := store.New(cfg.DataDir, cfg.CoversDir, logger)
	if err != nil {
		return err
	}

	srv, err := server.New(cfg, hub, st, logger)
	if err != nil {
		return err
	}

	// The sweep handles day boundaries: streak bookkeeping and repeatable
	// resets. Run it once at startup so a stopped server catches up, then
	// on the cron schedule.
	srv.Sweep()
	sched := cron.New()
	if _, err := sched.AddFunc(cfg.SweepSpec, srv.Sweep); err != nil {
		return err
	}
	sched.Start()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run() }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		sched.Stop()
		return err
	case sig := <-stop:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	<-sched.Stop().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func main() {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(newServeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
