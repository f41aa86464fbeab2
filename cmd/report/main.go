package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"payroll-gini/internal/config"
	"payroll-gini/internal/observability"
	"payroll-gini/internal/pipeline"
	"payroll-gini/internal/plot"
	pgstore "payroll-gini/internal/storage/postgres"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "", "Optional YAML config file")
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string (overrides config)")
	batchID := flag.String("batch", "", "Stored batch id (default: latest batch)")
	input := flag.String("input", "", "Read records from this CSV instead of PostgreSQL")
	chartPath := flag.String("chart", "", "Write chart to this file (.png, .jpg, .svg)")
	csvPath := flag.String("csv", "", "Write season summaries to this CSV file")
	pushgateway := flag.String("pushgateway", "", "Prometheus Pushgateway URL (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *postgresDSN != "" {
		cfg.Postgres.DSN = *postgresDSN
	}
	if *pushgateway != "" {
		cfg.Metrics.PushgatewayURL = *pushgateway
	}

	logger := log.New(os.Stderr, "[report] ", cfg.Logging.PrefixFlags)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Select record source
	var source pipeline.RecordSource
	if *input != "" {
		source = pipeline.CSVSource{Path: *input}
	} else {
		if cfg.Postgres.DSN == "" {
			fmt.Fprintln(os.Stderr, "Error: --input or a PostgreSQL DSN (--postgres-dsn / postgres.dsn) is required")
			os.Exit(1)
		}

		var id uuid.UUID
		if *batchID != "" {
			id, err = uuid.Parse(*batchID)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: invalid --batch %q: %v\n", *batchID, err)
				os.Exit(1)
			}
		}

		dbCtx, cancel := context.WithTimeout(ctx, cfg.Postgres.Timeout)
		defer cancel()
		pool, err := pgstore.NewPool(dbCtx, cfg.Postgres.DSN)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error connecting to postgres: %v\n", err)
			os.Exit(1)
		}
		defer pool.Close()

		source = pipeline.StoreSource{Store: pgstore.NewTeamSeasonStore(pool), BatchID: id}
		ctx = dbCtx
	}

	m := observability.NewMetrics("")
	p := pipeline.New(source, pipeline.Options{
		HeaderEvery: cfg.Report.HeaderEvery,
		ChartPath:   *chartPath,
		CSVPath:     *csvPath,
		Plot: plot.Options{
			WidthIn:  cfg.Plot.WidthIn,
			HeightIn: cfg.Plot.HeightIn,
			DPI:      cfg.Plot.DPI,
		},
	}).WithLogger(logger).WithMetrics(m)

	_, runErr := p.Run(ctx, os.Stdout)

	// Push metrics for failed runs too.
	if cfg.Metrics.PushgatewayURL != "" {
		if err := m.Push(ctx, cfg.Metrics.PushgatewayURL, cfg.Metrics.Job); err != nil {
			logger.Printf("Warning: %v", err)
		}
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running report: %v\n", runErr)
		os.Exit(1)
	}
}
