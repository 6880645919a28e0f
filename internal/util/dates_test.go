package util

import (
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func TestParseDateRange_DateOnlyEndIsInclusive(t *testing.T) {
	start, hasStart, end, hasEnd, err := ParseDateRange(strPtr("2025-01-01"), strPtr("2025-01-31"))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !hasStart || !hasEnd {
		t.Fatalf("hasStart=%v hasEnd=%v, want both true", hasStart, hasEnd)
	}
	if start != time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("start = %v", start)
	}
	// end date widened by one day so the 31st is fully covered
	if end != time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("endExclusive = %v", end)
	}
}

func TestParseDateRange_RFC3339EndIsExclusive(t *testing.T) {
	_, _, end, hasEnd, err := ParseDateRange(nil, strPtr("2025-01-31T12:00:00Z"))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !hasEnd {
		t.Fatal("expected hasEnd")
	}
	if end != time.Date(2025, 1, 31, 12, 0, 0, 0, time.UTC) {
		t.Fatalf("endExclusive = %v", end)
	}
}

func TestParseDateRange_SwapsReversedBounds(t *testing.T) {
	start, _, end, _, err := ParseDateRange(strPtr("2025-03-01"), strPtr("2025-01-01"))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !start.Before(end) {
		t.Fatalf("expected start %v before end %v", start, end)
	}
}

func TestParseDateRange_InvalidInput(t *testing.T) {
	_, _, _, _, err := ParseDateRange(strPtr("not-a-date"), nil)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestParseDateRange_NilInputs(t *testing.T) {
	_, hasStart, _, hasEnd, err := ParseDateRange(nil, nil)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if hasStart || hasEnd {
		t.Fatalf("expected no bounds, got hasStart=%v hasEnd=%v", hasStart, hasEnd)
	}
}
