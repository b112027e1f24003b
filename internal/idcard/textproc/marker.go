package textproc

import (
	"regexp"
	"unicode/utf8"
)

// Markers are the single-letter address markers: م (building), ق (plot)
// and ك (block). Each may label a 1-3 digit number in either digit script.
var Markers = []string{"م", "ق", "ك"}

var (
	adjacentNumberRe   = map[string]*regexp.Regexp{}
	standaloneMarkerRe = map[string]*regexp.Regexp{}

	shortDigitRunRe = regexp.MustCompile(`[0-9٠-٩]{2,3}`)
	digitRunRe      = regexp.MustCompile(`[0-9٠-٩]+`)
)

func init() {
	for _, m := range Markers {
		// Marker anchored at start or after a separator, optionally a
		// separator/colon, then 1-3 digits in either script.
		adjacentNumberRe[m] = regexp.MustCompile(`(?:^|[\s\-ـ])` + m + `\s*[\-ـ:]?\s*([0-9٠-٩]{1,3})`)
		standaloneMarkerRe[m] = regexp.MustCompile(`(?:^|[\s\-ـ])` + m + `(?:[\s\-ـ]|$)`)
	}
}

// MarkerNumber returns the digit group immediately following the marker,
// or "" when the marker has no adjacent number.
func MarkerNumber(s, marker string) string {
	re, ok := adjacentNumberRe[marker]
	if !ok {
		return ""
	}
	m := re.FindStringSubmatch(SanitizeAddress(s))
	if m == nil {
		return ""
	}
	return m[1]
}

// ClosestNumberAfterMarker locates the standalone marker and returns the
// 2-3 digit run with the smallest character distance from it, breaking
// ties by first occurrence. Recovers numbers the adjacent match misses
// when OCR inserted a space or stray glyph between marker and digits.
func ClosestNumberAfterMarker(s, marker string) string {
	re, ok := standaloneMarkerRe[marker]
	if !ok {
		return ""
	}
	s = SanitizeAddress(s)

	loc := re.FindStringIndex(s)
	if loc == nil {
		return ""
	}
	markerIdx := runeIndex(s, loc[0])
	if first, _ := utf8.DecodeRuneInString(s[loc[0]:]); isSeparator(first) {
		markerIdx++
	}

	best := ""
	bestDist := -1
	for _, run := range shortDigitRunRe.FindAllStringIndex(s, -1) {
		dist := runeIndex(s, run[0]) - markerIdx
		if dist < 0 {
			dist = -dist
		}
		if bestDist == -1 || dist < bestDist {
			bestDist = dist
			best = s[run[0]:run[1]]
		}
	}
	return best
}

// BestNumber reconciles the two per-source candidates for one marker.
// The longer candidate wins. A single-digit winner is extended with any
// other single-digit run from either source; if it is still one digit
// and a 2-digit run exists anywhere, the most recently seen 2-digit run
// is substituted. This tolerates OCR splitting a two-digit block into
// two single-character reads. Inputs are Western-digit strings.
func BestNumber(numA, numB string, runsA, runsB []string) string {
	var candidates []string
	for _, c := range []string{numA, numB} {
		if c != "" {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return ""
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if utf8.RuneCountInString(c) > utf8.RuneCountInString(best) {
			best = c
		}
	}
	if utf8.RuneCountInString(best) >= 2 {
		return best
	}

	all := make([]string, 0, len(runsA)+len(runsB))
	all = append(all, runsA...)
	all = append(all, runsB...)

	for _, d := range all {
		if utf8.RuneCountInString(d) == 1 && d != best {
			return best + d
		}
	}
	for i := len(all) - 1; i >= 0; i-- {
		if utf8.RuneCountInString(all[i]) == 2 {
			return all[i]
		}
	}
	return best
}

// DigitRuns returns every digit run in s, normalized to Western digits.
func DigitRuns(s string) []string {
	runs := digitRunRe.FindAllString(s, -1)
	for i, r := range runs {
		runs[i] = ToWesternDigits(r)
	}
	return runs
}

func isSeparator(r rune) bool {
	return r == ' ' || r == '-' || r == 'ـ'
}

// runeIndex converts a byte offset into a rune offset. Distances between
// marker and digit positions must be counted in characters, not bytes:
// Arabic runes are two bytes wide and would skew the comparison.
func runeIndex(s string, byteIdx int) int {
	return utf8.RuneCountInString(s[:byteIdx])
}
