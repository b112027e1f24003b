package textproc_test

import (
	"testing"

	"github.com/omarayman-74/egyptian-id-ocr/internal/idcard/textproc"
)

func TestCleanID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int64
	}{
		{"single arabic run", "٢٩٠٠١٠١٠١٢٣٤٥٦", 29001010123456},
		// Blocks read right-to-left: later runs are the leading digits.
		{"split runs reversed", "٣٤ ١٢", 1234},
		{"noise letters stripped", "ب٣٤ م١٢", 1234},
		{"punctuation stripped fuses runs", "٣٤-١٢", 3412},
		{"western fallback", "id 29001", 29001},
		{"western with punctuation", "29-001", 29001},
		{"nothing usable", "شط", 0},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := textproc.CleanID(tt.in); got != tt.want {
				t.Errorf("CleanID(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestBirthdateFromID(t *testing.T) {
	tests := []struct {
		name string
		id   int64
		want string
	}{
		{"1900s century marker", 29001010123456, "1990-01-01"},
		{"2000s century marker", 30105150123456, "2001-05-15"},
		{"legacy six digit past century", 850101, "1985-01-01"},
		{"legacy six digit current century", 120315, "2012-03-15"},
		{"invalid month", 2901301, "0"},
		{"invalid day", 2900230, "0"},
		{"too few digits", 12345, "0"},
		{"zero", 0, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := textproc.BirthdateFromID(tt.id); got != tt.want {
				t.Errorf("BirthdateFromID(%d) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}
