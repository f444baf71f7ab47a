package domain_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/liftworks/service-api/internal/domain"
)

var idTime = time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)

func TestFormatDatedID(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		n      int64
		want   string
	}{
		{"single digit pads to three", domain.PrefixCallback, 7, "CB-20260115-007"},
		{"three digits unchanged", domain.PrefixRepair, 123, "RP-20260115-123"},
		{"past the pad width it widens", domain.PrefixCallback, 1234, "CB-20260115-1234"},
		{"adhoc service prefix", domain.PrefixService, 1, "SV-20260115-001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := domain.FormatDatedID(tt.prefix, idTime, tt.n); got != tt.want {
				t.Errorf("FormatDatedID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatScheduleID(t *testing.T) {
	if got, want := domain.FormatScheduleID(idTime, 42), "SRV-20260115-0042"; got != want {
		t.Errorf("FormatScheduleID() = %q, want %q", got, want)
	}
}

func TestFormatJobNumber(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{1, "JB-0001"},
		{999, "JB-0999"},
		{12345, "JB-12345"},
	}
	for _, tt := range tests {
		if got := domain.FormatJobNumber(tt.n); got != tt.want {
			t.Errorf("FormatJobNumber(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatComplaintID(t *testing.T) {
	if got, want := domain.FormatComplaintID(14), "COMP-014"; got != want {
		t.Errorf("FormatComplaintID() = %q, want %q", got, want)
	}
}

func TestDateKey(t *testing.T) {
	if got, want := domain.DateKey(idTime), "20260115"; got != want {
		t.Errorf("DateKey() = %q, want %q", got, want)
	}
}

func TestRandomDatedID(t *testing.T) {
	pattern := regexp.MustCompile(`^RPT-20260115-[A-Z0-9]{5}$`)
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := domain.RandomDatedID(domain.PrefixReport, idTime)
		if !pattern.MatchString(id) {
			t.Fatalf("RandomDatedID() = %q, does not match %v", id, pattern)
		}
		seen[id] = true
	}
	// 100 draws from a 36^5 space colliding down to a handful would mean
	// the suffix is not actually random.
	if len(seen) < 90 {
		t.Errorf("RandomDatedID() produced only %d distinct ids in 100 draws", len(seen))
	}
}
