package admin

import (
	"testing"
	"time"
)

func TestParseTimeNullable(t *testing.T) {
	got, err := parseTimeNullable("")
	if err != nil || got != nil {
		t.Fatalf("empty input want (nil, nil), got (%v, %v)", got, err)
	}

	got, err = parseTimeNullable("2026-09-01T10:30:00Z")
	if err != nil {
		t.Fatalf("parse rfc3339 failed: %v", err)
	}
	want := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)
	if got == nil || !got.Equal(want) {
		t.Fatalf("parsed time want %v got %v", want, got)
	}

	if _, err := parseTimeNullable("01/09/2026"); err == nil {
		t.Fatalf("expected error for non-rfc3339 input")
	}
}
