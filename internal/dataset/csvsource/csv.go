package csvsource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"bikeshare/internal/core"
	"bikeshare/internal/dataset"
)

// Source reads the daily dataset from a local CSV file or an HTTP(S) URL.
type Source struct {
	location string
	client   *http.Client
}

var _ dataset.Source = (*Source)(nil)

// New creates a CSV source. Locations starting with http:// or https:// are
// fetched with client (a pooled default is used when nil); anything else is
// treated as a file path.
func New(location string, client *http.Client) *Source {
	if client == nil {
		client = NewHTTPClient(30 * time.Second)
	}
	return &Source{location: strings.TrimSpace(location), client: client}
}

func (s *Source) Backend() string  { return "csv" }
func (s *Source) Location() string { return s.location }

// IsRemote reports whether the location is an HTTP(S) URL.
func (s *Source) IsRemote() bool {
	l := strings.ToLower(s.location)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

func (s *Source) Load(ctx context.Context) ([]core.RentalRecord, error) {
	rc, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	df, err := ReadFrame(rc)
	if err != nil {
		return nil, err
	}
	return FromFrame(df)
}

func (s *Source) open(ctx context.Context) (io.ReadCloser, error) {
	if !s.IsRemote() {
		f, err := os.Open(s.location)
		if err != nil {
			return nil, fmt.Errorf("open dataset file: %w", err)
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.location, nil)
	if err != nil {
		return nil, fmt.Errorf("build dataset request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, text/plain, */*")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch dataset: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch dataset: unexpected status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// ReadFrame parses CSV into a DataFrame with every column kept as a string
// and no NaN markers, so type problems surface as row errors carrying the
// original cell text. A row with the wrong number of fields is reported as
// a *core.MalformedRowError.
func ReadFrame(r io.Reader) (dataframe.DataFrame, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		var pe *csv.ParseError
		if errors.As(df.Err, &pe) {
			return df, &core.MalformedRowError{Line: pe.Line, Err: pe.Err}
		}
		return df, fmt.Errorf("parse csv: %w", df.Err)
	}
	return df, nil
}

// FromFrame converts a DataFrame of the daily dataset into records.
func FromFrame(df dataframe.DataFrame) ([]core.RentalRecord, error) {
	records := df.Records()
	if len(records) == 0 {
		return nil, fmt.Errorf("parse csv: no header row")
	}
	// Line 1 is the header.
	return dataset.ParseTable(records[0], records[1:], 2)
}

// NewHTTPClient creates an HTTP client with connection pooling and timeouts
// suited to fetching a dataset file.
func NewHTTPClient(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   2,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: timeout,
		ForceAttemptHTTP2:     true,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}
