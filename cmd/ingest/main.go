package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"payroll-gini/internal/config"
	"payroll-gini/internal/observability"
	"payroll-gini/internal/pipeline"
	"payroll-gini/internal/storage/migrations"
	pgstore "payroll-gini/internal/storage/postgres"
)

func main() {
	// Parse flags
	input := flag.String("input", "", "CSV file of team seasons to ingest")
	configPath := flag.String("config", "", "Optional YAML config file")
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string (overrides config)")
	contentID := flag.Bool("content-id", true, "Derive batch id from record content (re-ingest of same data fails)")
	verify := flag.Bool("verify", false, "Read the batch back after storing and compare it to the input")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Error: --input is required")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *postgresDSN != "" {
		cfg.Postgres.DSN = *postgresDSN
	}
	if cfg.Postgres.DSN == "" {
		fmt.Fprintln(os.Stderr, "Error: --postgres-dsn or postgres.dsn is required")
		os.Exit(1)
	}

	logger := log.New(os.Stderr, "[ingest] ", cfg.Logging.PrefixFlags)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.Postgres.Timeout)
	defer cancel()

	pool, err := pgstore.NewPool(ctx, cfg.Postgres.DSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to postgres: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.Postgres.Migrate {
		if err := migrations.RunPostgresMigrations(ctx, pool, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error running migrations: %v\n", err)
			os.Exit(1)
		}
	}

	m := observability.NewMetrics("")
	ingester := pipeline.NewIngester(pgstore.NewTeamSeasonStore(pool)).
		WithLogger(logger).
		WithMetrics(m)
	if *contentID {
		ingester = ingester.WithContentIDs()
	}
	if *verify {
		ingester = ingester.WithVerification()
	}

	batch, err := ingester.Ingest(ctx, *input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error ingesting %s: %v\n", *input, err)
		os.Exit(1)
	}

	if cfg.Metrics.PushgatewayURL != "" {
		if err := m.Push(ctx, cfg.Metrics.PushgatewayURL, cfg.Metrics.Job); err != nil {
			logger.Printf("Warning: %v", err)
		}
	}

	fmt.Println(batch.ID)
}
