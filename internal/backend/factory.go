package backend

import (
	"context"
	"fmt"
	"log/slog"

	"bikeshare/internal/dataset"
	"bikeshare/internal/dataset/csvsource"
	"bikeshare/internal/dataset/google"
	"bikeshare/internal/dataset/xlsx"
	applog "bikeshare/internal/log"
	"bikeshare/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger.With(applog.FieldComponent, applog.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case CSVBackend:
		return f.createCSVBackend(config)
	case XLSXBackend:
		return f.createXLSXBackend(config)
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	case SheetsBackend:
		return f.createSheetsBackend(ctx, config)
	case MemoryBackend:
		return f.createMemoryBackend()
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createCSVBackend(config Config) (*BackendResult, error) {
	src := csvsource.New(config.Location, csvsource.NewHTTPClient(config.FetchTimeout))

	f.logger.Info("Initialized csv backend", "location", config.Location, "remote", src.IsRemote())

	return &BackendResult{Source: src}, nil
}

func (f *DefaultFactory) createXLSXBackend(config Config) (*BackendResult, error) {
	src := xlsx.New(config.Location, config.XLSXSheet)

	f.logger.Info("Initialized xlsx backend", "location", src.Location())

	return &BackendResult{Source: src}, nil
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*BackendResult, error) {
	repo, err := storage.OpenSnapshot(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite snapshot: %w", err)
	}

	f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath, "read_only", true)

	return &BackendResult{
		Source:  repo,
		Cleanup: repo.Close,
	}, nil
}

func (f *DefaultFactory) createSheetsBackend(ctx context.Context, config Config) (*BackendResult, error) {
	cli, err := google.New(ctx, google.Config{
		SpreadsheetID:   config.GoogleSpreadsheetID,
		Range:           config.GoogleSheetRange,
		CredentialsJSON: config.GoogleServiceAccountJSON,
		CredentialsFile: config.GoogleServiceAccountFile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
	}

	f.logger.Info("Initialized Google Sheets backend", "location", cli.Location())

	return &BackendResult{Source: cli}, nil
}

func (f *DefaultFactory) createMemoryBackend() (*BackendResult, error) {
	src := dataset.NewMemorySource("sample", dataset.SampleRecords())

	f.logger.Info("Initialized memory backend with sample data")

	return &BackendResult{Source: src}, nil
}
