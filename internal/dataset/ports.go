package dataset

import (
	"context"

	"bikeshare/internal/core"
)

// Source reads the full rental dataset from one location.
type Source interface {
	// Load returns every record in source order.
	Load(ctx context.Context) ([]core.RentalRecord, error)

	// Backend names the kind of source (csv, xlsx, sheets, sqlite, memory).
	Backend() string

	// Location identifies the source for logging and memoization.
	Location() string
}
