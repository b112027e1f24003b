package textproc_test

import (
	"reflect"
	"testing"

	"github.com/omarayman-74/egyptian-id-ocr/internal/idcard/textproc"
)

func TestMarkerNumber(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		marker string
		want   string
	}{
		{"space separated", "العمرانية م ٢٥", "م", "٢٥"},
		{"hyphen attached", "م-٥", "م", "٥"},
		{"tatweel separator", "الجيزة ـق ٣٧", "ق", "٣٧"},
		{"western digits", "الجيزة ق 37", "ق", "37"},
		{"marker inside word ignored", "العمرانية", "م", ""},
		{"no number", "شارع م", "م", ""},
		{"wrong marker", "شارع ق ٥", "م", ""},
		{"empty", "", "م", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := textproc.MarkerNumber(tt.in, tt.marker); got != tt.want {
				t.Errorf("MarkerNumber(%q, %q) = %q, want %q", tt.in, tt.marker, got, tt.want)
			}
		})
	}
}

func TestClosestNumberAfterMarker(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		marker string
		want   string
	}{
		{"nearest run wins", "م ٥٥ ٢٥٣", "م", "٥٥"},
		{"run before marker counts", "٣٤ م ١٢", "م", "١٢"},
		{"survives stray gap", "الجيزة م  ٢٥", "م", "٢٥"},
		{"no standalone marker", "العمرانية ٢٥", "م", ""},
		{"no short run", "م ٥", "م", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := textproc.ClosestNumberAfterMarker(tt.in, tt.marker); got != tt.want {
				t.Errorf("ClosestNumberAfterMarker(%q, %q) = %q, want %q", tt.in, tt.marker, got, tt.want)
			}
		})
	}
}

func TestBestNumber(t *testing.T) {
	tests := []struct {
		name         string
		numA, numB   string
		runsA, runsB []string
		want         string
	}{
		{"longer candidate wins", "5", "25", []string{"5"}, []string{"25"}, "25"},
		{"equal length keeps first", "25", "37", []string{"25"}, []string{"37"}, "25"},
		{"single digit extended", "5", "", []string{"5", "3"}, nil, "53"},
		{"single digit replaced by last two-digit run", "5", "", []string{"5"}, []string{"40"}, "40"},
		{"lone single digit stays", "5", "", []string{"5"}, nil, "5"},
		{"both empty", "", "", nil, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := textproc.BestNumber(tt.numA, tt.numB, tt.runsA, tt.runsB); got != tt.want {
				t.Errorf("BestNumber(%q, %q) = %q, want %q", tt.numA, tt.numB, got, tt.want)
			}
		})
	}
}

func TestDigitRuns(t *testing.T) {
	got := textproc.DigitRuns("م ٢٥ شارع 7 ق٣")
	want := []string{"25", "7", "3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DigitRuns = %v, want %v", got, want)
	}
}
