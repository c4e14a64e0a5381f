// Command bikeshare-import copies a rental dataset into the SQLite snapshot
// served by the sqlite backend.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"bikeshare/internal/backend"
	"bikeshare/internal/cli"
	"bikeshare/internal/dataset"
	applog "bikeshare/internal/log"
	"bikeshare/internal/storage"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL")).WithComponent(applog.ComponentImport)
	cfg := cli.LoadAndValidateConfig(logger)

	from := flag.String("from", cfg.DataBackend, "source backend: "+strings.Join(backend.GetBackendTypeStrings(), ", "))
	location := flag.String("source", cfg.DataSource, "source file path or URL")
	sheet := flag.String("sheet", cfg.XLSXSheet, "worksheet name for xlsx sources")
	dbPath := flag.String("db", cfg.SQLiteDBPath, "SQLite snapshot path")
	flag.Parse()

	if backend.BackendType(*from) == backend.SQLiteBackend {
		fmt.Fprintln(os.Stderr, "bikeshare-import: -from sqlite would import the snapshot into itself")
		os.Exit(2)
	}

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", applog.FieldError, err)
		os.Exit(1)
	}
	backendCfg.Type = backend.BackendType(*from)
	backendCfg.Location = *location
	backendCfg.XLSXSheet = *sheet

	ctx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout+time.Minute)
	defer cancel()

	source := cli.OpenSource(ctx, logger, backendCfg)
	defer source.Close()

	records, err := dataset.NewLoader(source.Source, logger).WithTimeout(cfg.FetchTimeout).Load(ctx)
	if err != nil {
		logger.Error("Failed to load source dataset", applog.FieldError, err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(*dbPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", applog.FieldError, err, "path", *dbPath)
		os.Exit(1)
	}
	defer repo.Close()

	switch prev, err := repo.LastImport(ctx); {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		logger.Warn("Could not read previous import", applog.FieldError, err)
	default:
		logger.Info("Replacing snapshot",
			applog.FieldSource, prev.Source,
			applog.FieldRecords, prev.Records,
			"imported_at", prev.ImportedAt)
	}

	label := source.Source.Backend() + ":" + source.Source.Location()
	if err := repo.ReplaceRecords(ctx, label, records); err != nil {
		logger.Error("Import failed", applog.FieldError, err, applog.FieldOperation, applog.OpImport)
		os.Exit(1)
	}

	logger.Info("Import complete",
		applog.FieldSource, label,
		applog.FieldRecords, len(records),
		"path", *dbPath)
}
