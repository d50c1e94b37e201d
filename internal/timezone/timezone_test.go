package timezone

import (
	"testing"
	"time"
)

func TestToday(t *testing.T) {
	// 20:00 UTC is already the next day in Vietnam.
	now := time.Date(2026, 5, 1, 20, 0, 0, 0, time.UTC)
	got := Today(now)
	if got.Day() != 2 || got.Hour() != 0 || got.Location() != ICT {
		t.Fatalf("unexpected today %v", got)
	}
}

func TestParseAndFormat(t *testing.T) {
	d, err := ParseDate("2026-05-02")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if FormatDate(d) != "Sat, 02 May 2026" {
		t.Fatalf("unexpected format %q", FormatDate(d))
	}
	if _, err := ParseDate("02/05/2026"); err == nil {
		t.Fatalf("expected error for wrong layout")
	}
	if got := FormatDateTime(time.Date(2026, 5, 2, 1, 30, 0, 0, time.UTC)); got != "02 May 2026 08:30 ICT" {
		t.Fatalf("unexpected datetime %q", got)
	}
}
