package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"demo-pool/internal/api"
	"demo-pool/internal/auth"
	"demo-pool/internal/config"
	"demo-pool/internal/logger"
	"demo-pool/internal/messaging"
	"demo-pool/internal/metrics"
	"demo-pool/internal/pool"
	"demo-pool/internal/seeder"
	"demo-pool/internal/storage"
	"demo-pool/internal/worker"
)

const usage = `demopool manages the self-service demo instance pool.

Usage:
  demopool serve                 run the API server, sweeper and queue worker
  demopool add <count> [--queue] add demo instances to the pool (1-100)
  demopool refresh               run one maintenance sweep and print a summary
  demopool populate [count]      pre-populate the pool (default: target size)

Flags:
  --config path                  config file (default "config.yaml")
`

func main() {
	cmd := "serve"
	args := os.Args[1:]
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd = args[0]
		args = args[1:]
	}

	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "path to config file")
	useQueue := fs.Bool("queue", false, "add via queue instead of synchronously")
	positional, err := splitArgs(fs, args)
	if err != nil {
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	metrics.Init()

	switch cmd {
	case "serve":
		err = runServe(cfg, log)
	case "add":
		err = runAdd(cfg, log, positional, *useQueue)
	case "refresh":
		err = runRefresh(cfg, log)
	case "populate":
		err = runPopulate(cfg, log, positional)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Error(cmd+" failed", zap.Error(err))
		os.Exit(1)
	}
}

// splitArgs parses flags and collects positional arguments, resuming flag
// parsing after each one. The flag package stops at the first non-flag
// argument, which would silently drop flags in "add 5 --queue".
func splitArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	var positional []string
	for fs.NArg() > 0 {
		rest := fs.Args()
		positional = append(positional, rest[0])
		if err := fs.Parse(rest[1:]); err != nil {
			return nil, err
		}
	}
	return positional, nil
}

func runServe(cfg *config.Config, log *zap.Logger) error {
	db, err := storage.NewStorage(cfg.Database.URL, cfg.Demo.Domain)
	if err != nil {
		return fmt.Errorf("init db: %w", err)
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		return err
	}
	log.Info("PostgreSQL connected, migrations applied")

	rabbit, err := messaging.NewRabbitClient(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue)
	if err != nil {
		return fmt.Errorf("init rabbitmq: %w", err)
	}
	defer rabbit.Close()
	log.Info("RabbitMQ connected", zap.String("queue", cfg.RabbitMQ.Queue))

	seed, err := seeder.New(db, cfg, log)
	if err != nil {
		return err
	}

	tokens := auth.NewTokenManager(cfg.Auth.TokenSecret, cfg.Demo.SessionTTL.Std())
	poolSvc := pool.New(db, seed, rabbit, tokens, cfg, log)

	replenishWorker, err := worker.Start(rabbit, poolSvc, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Periodic maintenance sweep.
	go func() {
		ticker := time.NewTicker(cfg.Demo.SweepInterval.Std())
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				report, err := poolSvc.Sweep(ctx)
				if err != nil {
					log.Error("scheduled sweep had failures", zap.Error(err))
				}
				log.Info("scheduled sweep completed",
					zap.Int("released", report.Released),
					zap.Int("deleted", report.Deleted),
					zap.Int("replenished", report.Replenished),
					zap.Int("enqueued", report.Enqueued))
			}
		}
	}()

	apiHandler := api.NewAPI(poolSvc, cfg, log)
	server := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: apiHandler.Router(),
	}

	go func() {
		log.Info("starting API server", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP shutdown error", zap.Error(err))
	}
	replenishWorker.Stop()

	log.Info("graceful shutdown complete")
	return nil
}

func runAdd(cfg *config.Config, log *zap.Logger, args []string, useQueue bool) error {
	count := 5
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid count %q", args[0])
		}
		count = n
	}
	if count < 1 || count > 100 {
		return fmt.Errorf("count must be between 1 and 100, got %d", count)
	}

	if useQueue {
		rabbit, err := messaging.NewRabbitClient(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue)
		if err != nil {
			return fmt.Errorf("init rabbitmq: %w", err)
		}
		defer rabbit.Close()

		if err := rabbit.EnqueueReplenish(count); err != nil {
			return err
		}
		fmt.Printf("Dispatched job to create %d demo instances. Check the queue worker for progress.\n", count)
		return nil
	}

	seed, db, err := newSeeder(cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Printf("Creating %d demo instances...\n", count)
	for i := 0; i < count; i++ {
		if _, err := seed.Seed(context.Background(), 1); err != nil {
			return err
		}
		fmt.Printf("  %d/%d\n", i+1, count)
	}
	fmt.Printf("Successfully created %d demo instances.\n", count)
	return nil
}

func runRefresh(cfg *config.Config, log *zap.Logger) error {
	db, err := storage.NewStorage(cfg.Database.URL, cfg.Demo.Domain)
	if err != nil {
		return fmt.Errorf("init db: %w", err)
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		return err
	}

	seed, err := seeder.New(db, cfg, log)
	if err != nil {
		return err
	}

	// The queue is optional here: large gaps fall back to inline seeding
	// when no broker is reachable.
	var queue pool.Enqueuer
	rabbit, err := messaging.NewRabbitClient(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue)
	if err != nil {
		log.Warn("rabbitmq unavailable, replenishing inline", zap.Error(err))
	} else {
		defer rabbit.Close()
		queue = rabbit
	}

	tokens := auth.NewTokenManager(cfg.Auth.TokenSecret, cfg.Demo.SessionTTL.Std())
	poolSvc := pool.New(db, seed, queue, tokens, cfg, log)

	report, sweepErr := poolSvc.Sweep(context.Background())
	available, active, err := poolSvc.Counts(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Sweep completed: released=%d deleted=%d replenished=%d enqueued=%d\n",
		report.Released, report.Deleted, report.Replenished, report.Enqueued)
	fmt.Printf("Pool status: available=%d active=%d target=%d\n",
		available, active, poolSvc.Target())
	return sweepErr
}

func runPopulate(cfg *config.Config, log *zap.Logger, args []string) error {
	if !cfg.Demo.Enabled {
		return fmt.Errorf("demo mode is disabled")
	}

	count := cfg.Demo.PoolSize
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid count %q", args[0])
		}
		count = n
	}

	seed, db, err := newSeeder(cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Printf("Creating %d demo instances...\n", count)
	for i := 0; i < count; i++ {
		if _, err := seed.Seed(context.Background(), 1); err != nil {
			return err
		}
		fmt.Printf("  %d/%d\n", i+1, count)
	}
	fmt.Println("Demo pool populated.")
	return nil
}

func newSeeder(cfg *config.Config, log *zap.Logger) (*seeder.Seeder, *storage.Storage, error) {
	db, err := storage.NewStorage(cfg.Database.URL, cfg.Demo.Domain)
	if err != nil {
		return nil, nil, fmt.Errorf("init db: %w", err)
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, nil, err
	}
	seed, err := seeder.New(db, cfg, log)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return seed, db, nil
}
