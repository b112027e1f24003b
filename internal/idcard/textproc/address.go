package textproc

import (
	"strings"
	"unicode/utf8"
)

// markerNumber is one reconciled marker/number pair. The number is kept
// in Arabic-indic digits for output.
type markerNumber struct {
	marker string
	number string
}

// ChooseAddress builds a single clean address from both OCR readings of
// the address lines. Locality and marker/number pairs are reconciled
// independently and serialized as "locality م ٥ -ق ٢٦": the first pair
// follows the locality, later pairs carry a dash prefix.
//
// Returns the sentinel "0" when neither source has any usable text.
func ChooseAddress(rawA, rawB string) string {
	addrA := SanitizeAddress(rawA)
	addrB := SanitizeAddress(rawB)
	if addrA == "" && addrB == "" {
		return "0"
	}

	locality := PickLocality(addrA, addrB)

	runsA := DigitRuns(addrA)
	runsB := DigitRuns(addrB)

	var pairs []markerNumber
	for _, marker := range Markers {
		numA := MarkerNumber(addrA, marker)
		numB := MarkerNumber(addrB, marker)
		if numA == "" && numB == "" {
			continue
		}

		// The nearest-number scan beats the adjacent match: it survives
		// a stray space between marker and digits.
		nearA := ClosestNumberAfterMarker(addrA, marker)
		nearB := ClosestNumberAfterMarker(addrB, marker)
		if nearA == "" {
			nearA = numA
		}
		if nearB == "" {
			nearB = numB
		}

		best := BestNumber(ToWesternDigits(nearA), ToWesternDigits(nearB), runsA, runsB)
		if best != "" {
			pairs = append(pairs, markerNumber{marker: marker, number: ToArabicDigits(best)})
		}
	}

	var result string
	switch {
	case len(pairs) == 0:
		result = locality
		if result == "" {
			result = addrB
		}
		if result == "" {
			result = addrA
		}
	default:
		var sb strings.Builder
		sb.WriteString(locality)
		for i, p := range pairs {
			if i == 0 {
				sb.WriteString(" " + p.marker + " " + p.number)
			} else {
				sb.WriteString(" -" + p.marker + " " + p.number)
			}
		}
		result = strings.TrimSpace(sb.String())
	}

	// Defensive final pass: whatever slipped through stays inside the
	// trusted alphabet.
	result = latinLetterRe.ReplaceAllString(result, "")
	result = addressNoiseRe.ReplaceAllString(result, " ")
	return collapseSpaces(result)
}

// LongestLine returns the longest of the given lines by character count,
// preferring the earliest on ties. Used when the identifier region read
// fragments into several strings.
func LongestLine(lines []string) string {
	best := ""
	bestLen := -1
	for _, l := range lines {
		if n := utf8.RuneCountInString(l); n > bestLen {
			best = l
			bestLen = n
		}
	}
	return best
}
