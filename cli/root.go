// Package cli implements the librarium command line interface: direct
// subcommands for every catalog, lending, and report operation, plus an
// interactive numbered menu.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // sqlite driver
	"github.com/spf13/cobra"

	"librarium/catalog"
	"librarium/catalog/csvengine"
	"librarium/catalog/sqlengine"
	"librarium/config"
	"librarium/ledger"
	"librarium/registry"
	"librarium/report"
)

const defaultConfigPath = "librarium.yaml"

// tableStore is satisfied by both storage engines.
type tableStore interface {
	ReadAll(ctx context.Context, table catalog.Table) (catalog.Rows, error)
	WriteAll(ctx context.Context, table catalog.Table, rows catalog.Rows) error
}

// app bundles the wired components every command works against.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   tableStore
	books   registry.BookRegistry
	members registry.MemberRegistry
	ledger  ledger.Ledger
	reports report.Generator
	closeDB func()
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "librarium",
		Short:         "Manage a library of books, members, and borrow transactions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "Path to the configuration file")

	rootCmd.AddCommand(newMenuCmd(&configPath))
	rootCmd.AddCommand(newBooksCmd(&configPath))
	rootCmd.AddCommand(newMembersCmd(&configPath))
	rootCmd.AddCommand(newBorrowCmd(&configPath))
	rootCmd.AddCommand(newReturnCmd(&configPath))
	rootCmd.AddCommand(newTransactionsCmd(&configPath))
	rootCmd.AddCommand(newReportCmd(&configPath))

	return rootCmd
}

// buildApp loads the configuration, sets up logging, opens the configured
// storage engine, and wires the registries, ledger, and report generator.
// The returned closeDB must be called when the command is done.
func buildApp(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	store, closeDB, err := openStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	books, err := registry.NewBookRegistry(store, registry.WithLogger(logger))
	if err != nil {
		closeDB()
		return nil, err
	}

	members, err := registry.NewMemberRegistry(store, registry.WithLogger(logger))
	if err != nil {
		closeDB()
		return nil, err
	}

	lgr, err := ledger.NewLedger(store, books, members, ledger.WithLogger(logger))
	if err != nil {
		closeDB()
		return nil, err
	}

	reports, err := report.NewGenerator(store, report.WithLogger(logger))
	if err != nil {
		closeDB()
		return nil, err
	}

	return &app{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		books:   books,
		members: members,
		ledger:  lgr,
		reports: reports,
		closeDB: closeDB,
	}, nil
}

func openStore(cfg *config.Config, logger *slog.Logger) (tableStore, func(), error) {
	switch cfg.Storage.Engine {
	case config.EngineCSV:
		store, err := csvengine.NewStore(cfg.Storage.DataDir, csvengine.WithLogger(logger))
		if err != nil {
			return nil, nil, err
		}

		return store, func() {}, nil

	case config.EngineSQLite:
		db, err := sqlx.Open("sqlite3", cfg.Storage.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}

		store, err := sqlengine.NewStoreFromSQLX(db,
			sqlengine.WithDialect(sqlengine.DialectSQLite),
			sqlengine.WithLogger(logger))
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}

		return store, func() { _ = db.Close() }, nil

	case config.EnginePostgres:
		pool, err := pgxpool.New(context.Background(), cfg.Storage.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open postgres pool: %w", err)
		}

		store, err := sqlengine.NewStoreFromPGXPool(pool,
			sqlengine.WithDialect(sqlengine.DialectPostgres),
			sqlengine.WithLogger(logger))
		if err != nil {
			pool.Close()
			return nil, nil, err
		}

		return store, pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unsupported storage engine: %q", cfg.Storage.Engine)
	}
}
