package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"bikeshare/internal/core"
	"bikeshare/internal/dataset"
	applog "bikeshare/internal/log"

	_ "modernc.org/sqlite"
)

// SQLiteRepository holds an imported snapshot of the daily dataset.
type SQLiteRepository struct {
	db      *sql.DB
	path    string
	queries *Queries
}

var _ dataset.Source = (*SQLiteRepository)(nil)

// NewSQLiteRepository opens the snapshot for writing, creating the file and
// applying migrations as needed. Only the import tool uses it.
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		path:    dbPath,
		queries: New(db),
	}, nil
}

// OpenSnapshot opens an existing snapshot read-only. It neither creates the
// file nor migrates it.
func OpenSnapshot(dbPath string) (*SQLiteRepository, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}

	db, err := sql.Open("sqlite", "file:"+filepath.ToSlash(dbPath)+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		path:    dbPath,
		queries: New(db),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) Backend() string { return "sqlite" }

func (r *SQLiteRepository) Location() string { return r.path }

// ReplaceRecords swaps the stored snapshot for records in one transaction
// and records the import run.
func (r *SQLiteRepository) ReplaceRecords(ctx context.Context, source string, records []core.RentalRecord) error {
	for i, rec := range records {
		if err := rec.Validate(); err != nil {
			return &core.MalformedRowError{Line: i + 1, Err: err}
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	q := r.queries.WithTx(tx)
	if err := q.DeleteAllRentals(ctx); err != nil {
		return fmt.Errorf("clear rentals: %w", err)
	}
	for _, rec := range records {
		err := q.InsertRental(ctx, InsertRentalParams{
			Dteday: rec.Date.String(),
			Season: int64(rec.Season),
			Yr:     int64(rec.Year),
			Mnth:   int64(rec.Month),
			Cnt:    rec.Count,
		})
		if err != nil {
			return fmt.Errorf("insert rental: %w", err)
		}
	}
	if err := q.InsertImportRun(ctx, source, int64(len(records))); err != nil {
		return fmt.Errorf("record import run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	slog.InfoContext(ctx, "Snapshot replaced",
		applog.FieldComponent, applog.ComponentStorage,
		applog.FieldOperation, applog.OpImport,
		applog.FieldSource, source,
		applog.FieldRecords, len(records),
		"db", r.path)
	return nil
}

// Load implements dataset.Source. An empty snapshot is an error: the
// import tool has not been run against this database.
func (r *SQLiteRepository) Load(ctx context.Context) ([]core.RentalRecord, error) {
	rows, err := r.queries.ListRentals(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rentals: %w", err)
	}
	if len(rows) == 0 {
		return nil, errors.New("snapshot is empty")
	}

	out := make([]core.RentalRecord, 0, len(rows))
	for i, row := range rows {
		rec := core.RentalRecord{
			Season: core.SeasonCode(row.Season),
			Year:   core.YearCode(row.Yr),
			Month:  core.MonthCode(row.Mnth),
			Count:  row.Cnt,
		}
		if row.Dteday != "" {
			d, err := core.ParseDate(row.Dteday)
			if err != nil {
				return nil, &core.MalformedRowError{Line: i + 1, Column: "dteday", Value: row.Dteday, Err: err}
			}
			rec.Date = d
		}
		if err := rec.Validate(); err != nil {
			return nil, &core.MalformedRowError{Line: i + 1, Err: err}
		}
		out = append(out, rec)
	}
	return out, nil
}

// LastImport returns the most recent import run, or sql.ErrNoRows.
func (r *SQLiteRepository) LastImport(ctx context.Context) (ImportRun, error) {
	return r.queries.LatestImportRun(ctx)
}
