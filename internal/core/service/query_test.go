package service

import (
	"testing"
	"time"

	"github.com/fittrack/exercise-tracker/internal/core/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleLog() []domain.Exercise {
	return []domain.Exercise{
		{Description: "swim", Duration: 45, Date: day(2024, time.January, 20)},
		{Description: "run", Duration: 30, Date: day(2024, time.January, 1)},
		{Description: "lift", Duration: 60, Date: day(2024, time.January, 10)},
	}
}

func TestFilterLog_SortsAscending(t *testing.T) {
	entries, total := filterLog(sampleLog(), domain.DateRange{}, 0)

	if total != 3 || len(entries) != 3 {
		t.Fatalf("expected 3 entries, got total=%d len=%d", total, len(entries))
	}
	if entries[0].Description != "run" || entries[1].Description != "lift" || entries[2].Description != "swim" {
		t.Fatalf("unexpected order: %+v", entries)
	}
}

func TestFilterLog_FromBound(t *testing.T) {
	window := domain.DateRange{From: day(2024, time.January, 5)}
	entries, total := filterLog(sampleLog(), window, 0)

	if total != 2 {
		t.Fatalf("expected 2 matches, got %d", total)
	}
	if entries[0].Description != "lift" || entries[1].Description != "swim" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestFilterLog_ToBoundInclusive(t *testing.T) {
	window := domain.DateRange{To: day(2024, time.January, 10)}
	entries, total := filterLog(sampleLog(), window, 0)

	if total != 2 {
		t.Fatalf("expected 2 matches, got %d", total)
	}
	// the entry dated exactly on the to day is included
	if entries[1].Description != "lift" {
		t.Fatalf("expected lift as last entry, got %+v", entries)
	}
}

func TestFilterLog_LimitKeepsEarliest(t *testing.T) {
	entries, total := filterLog(sampleLog(), domain.DateRange{}, 1)

	if len(entries) != 1 || entries[0].Description != "run" {
		t.Fatalf("expected earliest entry only, got %+v", entries)
	}
	// count reports pre-limit matches
	if total != 3 {
		t.Fatalf("expected pre-limit count 3, got %d", total)
	}
}

func TestFilterLog_EqualDatesKeepAppendOrder(t *testing.T) {
	log := []domain.Exercise{
		{Description: "first", Duration: 10, Date: day(2024, time.May, 1)},
		{Description: "second", Duration: 20, Date: day(2024, time.May, 1)},
		{Description: "third", Duration: 30, Date: day(2024, time.May, 1)},
	}

	entries, _ := filterLog(log, domain.DateRange{}, 0)
	for i, want := range []string{"first", "second", "third"} {
		if entries[i].Description != want {
			t.Fatalf("tie-break broke append order: %+v", entries)
		}
	}
}

func TestFilterLog_NoMatches(t *testing.T) {
	window := domain.DateRange{From: day(2030, time.January, 1)}
	entries, total := filterLog(sampleLog(), window, 0)

	if total != 0 || len(entries) != 0 {
		t.Fatalf("expected empty result, got total=%d len=%d", total, len(entries))
	}
}

func TestParseLimit(t *testing.T) {
	cases := map[string]int{
		"":    0,
		"abc": 0,
		"-3":  0,
		"0":   0,
		"1":   1,
		"25":  25,
	}
	for raw, want := range cases {
		if got := parseLimit(raw); got != want {
			t.Errorf("parseLimit(%q) = %d, want %d", raw, got, want)
		}
	}
}
