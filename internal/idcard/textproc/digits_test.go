package textproc_test

import (
	"reflect"
	"testing"

	"github.com/omarayman-74/egyptian-id-ocr/internal/idcard/textproc"
)

func TestDigitConversion(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		western string
		arabic  string
	}{
		{"arabic digits", "٢٩٠٠١٢٣", "2900123", "٢٩٠٠١٢٣"},
		{"western digits", "25", "25", "٢٥"},
		{"mixed with text", "م ٢٥ شارع 7", "م 25 شارع 7", "م ٢٥ شارع ٧"},
		{"no digits", "شارع", "شارع", "شارع"},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := textproc.ToWesternDigits(tt.in); got != tt.western {
				t.Errorf("ToWesternDigits(%q) = %q, want %q", tt.in, got, tt.western)
			}
			if got := textproc.ToArabicDigits(tt.in); got != tt.arabic {
				t.Errorf("ToArabicDigits(%q) = %q, want %q", tt.in, got, tt.arabic)
			}
		})
	}
}

func TestArabicLetterCount(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"محمد", 4},
		{"abc", 0},
		{"محمد على", 7},
		// Arabic-indic digits sit inside the Arabic block and count.
		{"م ٥", 2},
		{"", 0},
	}

	for _, tt := range tests {
		if got := textproc.ArabicLetterCount(tt.in); got != tt.want {
			t.Errorf("ArabicLetterCount(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestArabicWords(t *testing.T) {
	got := textproc.ArabicWords("محمد على م 12")
	want := []string{"محمد", "على"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ArabicWords = %v, want %v", got, want)
	}
}

func TestIsArabicDigit(t *testing.T) {
	if !textproc.IsArabicDigit('٥') {
		t.Error("IsArabicDigit('٥') = false, want true")
	}
	if textproc.IsArabicDigit('5') {
		t.Error("IsArabicDigit('5') = true, want false")
	}
	if textproc.IsArabicDigit('م') {
		t.Error("IsArabicDigit('م') = true, want false")
	}
}
