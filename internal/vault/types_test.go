package vault

import (
	"testing"
	"time"
)

func TestWallet_AvailableGramsNeverNegative(t *testing.T) {
	w := Wallet{GoldGrams: 1, LockedGrams: 3}
	if got := w.AvailableGrams(); got != 0 {
		t.Fatalf("AvailableGrams = %v, want 0", got)
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"", time.Time{}},
		{"garbage", time.Time{}},
		{"2024-03-01T12:00:00Z", time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)},
		{"2024-03-01T12:00:00.5Z", time.Date(2024, 3, 1, 12, 0, 0, 500000000, time.UTC)},
		{"2025-01-01", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		if got := parseTime(tt.in); !got.Equal(tt.want) {
			t.Errorf("parseTime(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTransaction_ParsedCreatedAt(t *testing.T) {
	tx := Transaction{CreatedAt: "2024-03-01T08:30:00Z"}
	if got := tx.ParsedCreatedAt(); got.Hour() != 8 || got.Minute() != 30 {
		t.Fatalf("ParsedCreatedAt = %v", got)
	}
}
