package dataset

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikeshare/internal/cache"
	"bikeshare/internal/core"
)

type countingSource struct {
	calls   int32
	records []core.RentalRecord
	err     error
}

func (s *countingSource) Load(context.Context) ([]core.RentalRecord, error) {
	atomic.AddInt32(&s.calls, 1)
	return s.records, s.err
}
func (s *countingSource) Backend() string  { return "test" }
func (s *countingSource) Location() string { return "counting" }

func TestLoaderMemoizes(t *testing.T) {
	src := &countingSource{records: SampleRecords()}
	l := newLoader(src, cache.NewMemo[[]core.RentalRecord](), nil)

	assert.False(t, l.Loaded())
	first, err := l.Load(context.Background())
	require.NoError(t, err)
	second, err := l.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&src.calls))
	assert.True(t, l.Loaded())
}

func TestLoaderReturnsCopies(t *testing.T) {
	l := newLoader(&countingSource{records: SampleRecords()}, cache.NewMemo[[]core.RentalRecord](), nil)

	first, err := l.Load(context.Background())
	require.NoError(t, err)
	first[0].Count = -1

	second, err := l.Load(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, int64(-1), second[0].Count)
}

func TestLoaderWrapsFailures(t *testing.T) {
	src := &countingSource{err: errors.New("connection refused")}
	l := newLoader(src, cache.NewMemo[[]core.RentalRecord](), nil)

	_, err := l.Load(context.Background())
	require.Error(t, err)

	var du *core.DataUnavailableError
	require.True(t, errors.As(err, &du))
	assert.Equal(t, "counting", du.Source)
	assert.False(t, l.Loaded())
}

func TestLoaderSharedMemoAcrossLoaders(t *testing.T) {
	memo := cache.NewMemo[[]core.RentalRecord]()
	src := &countingSource{records: SampleRecords()}

	_, err := newLoader(src, memo, nil).Load(context.Background())
	require.NoError(t, err)
	_, err = newLoader(src, memo, nil).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&src.calls))
}

func TestMemorySourceRejectsInvalidRecords(t *testing.T) {
	src := NewMemorySource("bad", []core.RentalRecord{{Season: 9, Year: 0, Month: 1}})
	_, err := NewLoader(src, nil).Load(context.Background())

	var mr *core.MalformedRowError
	require.True(t, errors.As(err, &mr))
	assert.True(t, core.IsDataUnavailable(err))
}

type slowSource struct{ countingSource }

func (s *slowSource) Load(ctx context.Context) ([]core.RentalRecord, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestLoaderTimeoutIsDataUnavailable(t *testing.T) {
	l := newLoader(&slowSource{}, cache.NewMemo[[]core.RentalRecord](), nil).WithTimeout(10 * time.Millisecond)

	_, err := l.Load(context.Background())
	assert.True(t, core.IsDataUnavailable(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
