package services

import (
	"reflect"
	"testing"
)

func TestNormalizeDates(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		want  []string
	}{
		{
			name:  "sorts and dedups",
			dates: []string{"2026-03-02", "2026-03-01", "2026-03-02"},
			want:  []string{"2026-03-01", "2026-03-02"},
		},
		{
			name:  "drops junk",
			dates: []string{"2026-03-01", "not-a-date", ""},
			want:  []string{"2026-03-01"},
		},
		{
			name:  "empty input",
			dates: nil,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDates(tt.dates); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("NormalizeDates() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConsecutiveDays(t *testing.T) {
	tests := []struct {
		name   string
		first  string
		second string
		want   bool
	}{
		{name: "next day", first: "2026-01-01", second: "2026-01-02", want: true},
		{name: "month boundary", first: "2026-01-31", second: "2026-02-01", want: true},
		{name: "gap", first: "2026-01-01", second: "2026-01-03", want: false},
		{name: "same day", first: "2026-01-01", second: "2026-01-01", want: false},
		{name: "reversed", first: "2026-01-02", second: "2026-01-01", want: false},
		{name: "invalid input", first: "junk", second: "2026-01-01", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConsecutiveDays(tt.first, tt.second); got != tt.want {
				t.Fatalf("ConsecutiveDays(%q, %q) = %v, want %v", tt.first, tt.second, got, tt.want)
			}
		})
	}
}

func TestNightsBetween(t *testing.T) {
	if got := NightsBetween("2026-01-02", "2026-01-05"); got != 3 {
		t.Fatalf("expected 3 nights, got %d", got)
	}
	if got := NightsBetween("2026-01-02", "2026-01-02"); got != 0 {
		t.Fatalf("expected 0 nights for same day, got %d", got)
	}
	if got := NightsBetween("junk", "2026-01-02"); got != 0 {
		t.Fatalf("expected 0 nights for invalid input, got %d", got)
	}
}

func TestEnumerateDatesInRange(t *testing.T) {
	got := EnumerateDatesInRange("2026-02-27", "2026-03-02")
	want := []string{"2026-02-27", "2026-02-28", "2026-03-01", "2026-03-02"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("EnumerateDatesInRange() = %v, want %v", got, want)
	}

	if got := EnumerateDatesInRange("2026-03-02", "2026-03-01"); got != nil {
		t.Fatalf("expected nil for inverted range, got %v", got)
	}
}
