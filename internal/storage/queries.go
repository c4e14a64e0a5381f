package storage

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

type DailyRental struct {
	ID     int64
	Dteday string
	Season int64
	Yr     int64
	Mnth   int64
	Cnt    int64
}

type ImportRun struct {
	ID         int64
	Source     string
	Records    int64
	ImportedAt string
}

const deleteAllRentals = `DELETE FROM daily_rentals`

func (q *Queries) DeleteAllRentals(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteAllRentals)
	return err
}

const insertRental = `INSERT INTO daily_rentals (dteday, season, yr, mnth, cnt) VALUES (?, ?, ?, ?, ?)`

type InsertRentalParams struct {
	Dteday string
	Season int64
	Yr     int64
	Mnth   int64
	Cnt    int64
}

func (q *Queries) InsertRental(ctx context.Context, arg InsertRentalParams) error {
	_, err := q.db.ExecContext(ctx, insertRental, arg.Dteday, arg.Season, arg.Yr, arg.Mnth, arg.Cnt)
	return err
}

const listRentals = `SELECT id, dteday, season, yr, mnth, cnt FROM daily_rentals ORDER BY id`

func (q *Queries) ListRentals(ctx context.Context) ([]DailyRental, error) {
	rows, err := q.db.QueryContext(ctx, listRentals)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []DailyRental
	for rows.Next() {
		var i DailyRental
		if err := rows.Scan(&i.ID, &i.Dteday, &i.Season, &i.Yr, &i.Mnth, &i.Cnt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countRentals = `SELECT COUNT(*) FROM daily_rentals`

func (q *Queries) CountRentals(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countRentals)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const insertImportRun = `INSERT INTO import_runs (source, records) VALUES (?, ?)`

func (q *Queries) InsertImportRun(ctx context.Context, source string, records int64) error {
	_, err := q.db.ExecContext(ctx, insertImportRun, source, records)
	return err
}

const latestImportRun = `SELECT id, source, records, imported_at FROM import_runs ORDER BY id DESC LIMIT 1`

func (q *Queries) LatestImportRun(ctx context.Context) (ImportRun, error) {
	row := q.db.QueryRowContext(ctx, latestImportRun)
	var i ImportRun
	err := row.Scan(&i.ID, &i.Source, &i.Records, &i.ImportedAt)
	return i, err
}
