package http

import (
	"errors"
	"net/url"
	"reflect"
	"testing"

	"bikeshare/internal/core"
	"bikeshare/internal/services"
)

func TestParseSelection(t *testing.T) {
	tests := []struct {
		name    string
		query   url.Values
		want    services.Selection
		wantErr error
	}{
		{
			name:  "defaults",
			query: url.Values{},
			want:  services.Selection{Year: 1},
		},
		{
			name:  "calendar year",
			query: url.Values{"year": {"2011"}},
			want:  services.Selection{Year: 0},
		},
		{
			name:  "repeated and comma separated months",
			query: url.Values{"year": {"2012"}, "month": {"3,1", "3", " 12 "}},
			want:  services.Selection{Year: 1, Months: []core.MonthCode{3, 1, 12}},
		},
		{
			name:  "blank month ignored",
			query: url.Values{"month": {""}},
			want:  services.Selection{Year: 1},
		},
		{
			name:    "year out of range",
			query:   url.Values{"year": {"2013"}},
			wantErr: core.ErrInvalidYear,
		},
		{
			name:    "month out of range",
			query:   url.Values{"month": {"0"}},
			wantErr: core.ErrInvalidMonth,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSelection(tt.query, 1)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				var pe *ParamError
				if !errors.As(err, &pe) {
					t.Fatalf("expected *ParamError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSelection() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseSelectionNonNumeric(t *testing.T) {
	_, err := ParseSelection(url.Values{"year": {"twenty"}}, 0)
	var pe *ParamError
	if !errors.As(err, &pe) || pe.Param != "year" || pe.Value != "twenty" {
		t.Fatalf("unexpected error %v", err)
	}
	if statusFor(err) != 400 {
		t.Errorf("statusFor = %d, want 400", statusFor(err))
	}
}

func TestSelectionQueryRoundTrip(t *testing.T) {
	sel := services.Selection{Year: 1, Months: []core.MonthCode{2, 11}}
	q := SelectionQuery(sel)
	if q.Encode() != "month=2&month=11&year=2012" {
		t.Fatalf("unexpected query %q", q.Encode())
	}
	got, err := ParseSelection(q, 0)
	if err != nil || !reflect.DeepEqual(got, sel) {
		t.Fatalf("round trip = %+v, %v", got, err)
	}
}
