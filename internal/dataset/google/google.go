package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"bikeshare/internal/core"
	"bikeshare/internal/dataset"
	applog "bikeshare/internal/log"
)

// DefaultRange covers the sixteen columns of the daily dataset.
const DefaultRange = "day!A:P"

// Config describes where the dataset lives in Google Sheets and how to
// authenticate. Exactly one of CredentialsJSON or CredentialsFile is needed.
type Config struct {
	SpreadsheetID   string
	Range           string
	CredentialsJSON string
	CredentialsFile string
}

// Client reads the dataset from a spreadsheet range whose first row is the header.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	rng           string
}

var _ dataset.Source = (*Client)(nil)

// New creates a read-only Sheets client using service account credentials.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet ID")
	}

	credentialsJSON, err := readCredentials(cfg)
	if err != nil {
		return nil, err
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	slog.InfoContext(ctx, "Google Sheets service created",
		applog.FieldComponent, applog.ComponentSheets,
		"spreadsheet_id", cfg.SpreadsheetID)
	return NewWithService(svc, cfg.SpreadsheetID, cfg.Range), nil
}

// NewWithService wraps an existing Sheets service.
func NewWithService(svc *gsheet.Service, spreadsheetID, rng string) *Client {
	if strings.TrimSpace(rng) == "" {
		rng = DefaultRange
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID, rng: rng}
}

func readCredentials(cfg Config) ([]byte, error) {
	switch {
	case strings.TrimSpace(cfg.CredentialsJSON) != "":
		return []byte(cfg.CredentialsJSON), nil
	case strings.TrimSpace(cfg.CredentialsFile) != "":
		b, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return b, nil
	default:
		return nil, errors.New("missing service account credentials")
	}
}

func (c *Client) Backend() string { return "sheets" }

func (c *Client) Location() string {
	return fmt.Sprintf("sheets:%s/%s", c.spreadsheetID, c.rng)
}

func (c *Client) Load(ctx context.Context) ([]core.RentalRecord, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}

	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, c.rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.rng, err)
	}
	if len(resp.Values) == 0 {
		return nil, fmt.Errorf("range %s is empty", c.rng)
	}

	rows := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		rows[i] = toStrings(row)
	}
	return dataset.ParseTable(rows[0], rows[1:], 2)
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}
