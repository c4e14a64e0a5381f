package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordDatasetLoad(t *testing.T) {
	before := testutil.ToFloat64(DatasetLoadsTotal.WithLabelValues("csv", "failure"))
	RecordDatasetLoad("csv", 0, time.Millisecond, errors.New("missing file"))
	after := testutil.ToFloat64(DatasetLoadsTotal.WithLabelValues("csv", "failure"))
	if after != before+1 {
		t.Fatalf("failure counter = %v, want %v", after, before+1)
	}

	RecordDatasetLoad("csv", 731, time.Millisecond, nil)
	if got := testutil.ToFloat64(DatasetRecords.WithLabelValues("csv")); got != 731 {
		t.Fatalf("records gauge = %v, want 731", got)
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/seasons", "200"))
	RecordHTTPRequest("GET", "/api/seasons", 200, 5*time.Millisecond)
	if got := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/seasons", "200")); got != before+1 {
		t.Fatalf("request counter = %v, want %v", got, before+1)
	}
}
