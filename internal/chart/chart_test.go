package chart

import (
	"bytes"
	"errors"
	"testing"

	"bikeshare/internal/core"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestSeasonBars(t *testing.T) {
	bars := SeasonBars([]core.SeasonSummary{
		{Season: core.Spring, Year: 1, Total: 100},
		{Season: core.Fall, Year: 1, Total: 800},
	})
	if len(bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(bars))
	}
	if bars[1].Label != "Fall 800" || bars[1].Value != 800 {
		t.Errorf("unexpected bar: %+v", bars[1])
	}
}

func TestMonthBars(t *testing.T) {
	bars := MonthBars([]core.MonthSummary{{Month: 9, Year: 0, Total: 0}})
	if bars[0].Label != "Sep 0" {
		t.Errorf("unexpected label %q", bars[0].Label)
	}
}

func TestRenderPNG(t *testing.T) {
	tests := []struct {
		name string
		bars []Bar
	}{
		{"several", []Bar{{"Spring 100", 100}, {"Summer 250", 250}, {"Fall 800", 800}, {"Winter 90", 90}}},
		{"single", []Bar{{"Jan 5", 5}}},
		{"all zero", []Bar{{"Jan 0", 0}, {"Feb 0", 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Render(&buf, "Bike Rentals", "Bike Rented", tt.bars); err != nil {
				t.Fatalf("render: %v", err)
			}
			if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
				t.Fatal("output is not a PNG")
			}
		})
	}
}

func TestRenderNoData(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, "empty", "", nil); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatal("nothing should be written")
	}
}

func TestAxisMax(t *testing.T) {
	if axisMax(0) != 1 {
		t.Errorf("axisMax(0) = %v", axisMax(0))
	}
	if axisMax(100) != 110 {
		t.Errorf("axisMax(100) = %v", axisMax(100))
	}
}
