package dataset

import (
	"context"
	"time"

	"bikeshare/internal/cache"
	"bikeshare/internal/core"
	applog "bikeshare/internal/log"
	"bikeshare/internal/metrics"
)

// loaded is shared by every Loader in the process: a source is read at most
// once per location for the lifetime of the program.
var loaded = cache.NewMemo[[]core.RentalRecord]()

// DefaultTimeout bounds a single read of a source.
const DefaultTimeout = 30 * time.Second

// Loader reads a Source once and serves the memoized records afterwards.
type Loader struct {
	source  Source
	memo    *cache.Memo[[]core.RentalRecord]
	timeout time.Duration
	log     *applog.StructuredLogger
}

// NewLoader creates a loader backed by the process-wide memo.
func NewLoader(source Source, logger *applog.Logger) *Loader {
	return newLoader(source, loaded, logger)
}

func newLoader(source Source, memo *cache.Memo[[]core.RentalRecord], logger *applog.Logger) *Loader {
	if logger == nil {
		logger = applog.Default()
	}
	return &Loader{
		source:  source,
		memo:    memo,
		timeout: DefaultTimeout,
		log:     applog.NewStructuredLogger(logger.WithComponent(applog.ComponentDataset)),
	}
}

// WithTimeout sets the bound on one read of the source. Zero disables it.
func (l *Loader) WithTimeout(d time.Duration) *Loader {
	l.timeout = d
	return l
}

// Load returns the full record sequence. A failed read, including one that
// runs past the loader timeout, is reported as a *core.DataUnavailableError;
// nothing is retried. When ctx ends before the read finishes Load returns
// ctx.Err() and the read continues for other callers.
func (l *Loader) Load(ctx context.Context) ([]core.RentalRecord, error) {
	key := l.source.Backend() + ":" + l.source.Location()

	records, _, err := l.memo.GetOrLoad(ctx, key, l.read)
	if err != nil {
		return nil, err
	}

	out := make([]core.RentalRecord, len(records))
	copy(out, records)
	return out, nil
}

// Loaded reports whether the source has already been read successfully.
func (l *Loader) Loaded() bool {
	_, ok := l.memo.Get(l.source.Backend() + ":" + l.source.Location())
	return ok
}

func (l *Loader) read(ctx context.Context) ([]core.RentalRecord, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	start := time.Now()
	records, err := l.source.Load(ctx)
	elapsed := time.Since(start)
	metrics.RecordDatasetLoad(l.source.Backend(), len(records), elapsed, err)

	if err != nil {
		err = core.Unavailable(l.source.Location(), err)
		l.log.LogError(ctx, "Dataset load failed", err, applog.ComponentDataset, applog.OpLoad,
			applog.NewFields().WithSource(l.source.Backend(), l.source.Location()))
		return nil, err
	}

	l.log.LogDatasetLoaded(ctx, l.source.Backend(), l.source.Location(), len(records), elapsed.Milliseconds())
	return records, nil
}
