package textproc

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

var (
	// The prefix heuristic stops at the first marker or digit. The ك
	// marker is deliberately absent: it is too common as a word-initial
	// letter to be a safe stop glyph mid-word.
	prefixStopRe = regexp.MustCompile(`[مق0-9٠-٩]`)

	// Up to four consecutive Arabic words of two or more letters.
	arabicPhraseRe = regexp.MustCompile(`[\x{0600}-\x{06FF}]{2,}(?:\s+[\x{0600}-\x{06FF}]{2,}){0,3}`)

	// Marker with an attached or nearby digit group, anchored at start,
	// space or hyphen. The consumed anchor is restored on replacement.
	markerComboRe = regexp.MustCompile(`(^|[\s-])[مقك]\s*[\-ـ:]?\s*[0-9٠-٩]+`)

	eitherDigitRe = regexp.MustCompile(`[0-9٠-٩]`)
	separatorRe   = regexp.MustCompile(`[\-ـ]+`)
	nonLocalityRe = regexp.MustCompile(`[^\x{0600}-\x{06FF}\s]`)
)

// LocalityPrefix returns the address part before the first marker or digit,
// reduced to Arabic letters and spaces. Often the area name on cards where
// the locality is written first.
func LocalityPrefix(s string) string {
	s = SanitizeAddress(s)
	if loc := prefixStopRe.FindStringIndex(s); loc != nil {
		s = s[:loc[0]]
	}
	return collapseSpaces(nonArabicRe.ReplaceAllString(s, " "))
}

// LongestArabicPhrase picks the highest-ranked run of Arabic words after
// digits, standalone markers and separators are stripped. Ranking is by
// (Arabic letter count, word count, character length), descending.
func LongestArabicPhrase(s string) string {
	s = SanitizeAddress(s)
	if s == "" {
		return ""
	}
	s = eitherDigitRe.ReplaceAllString(s, " ")
	s = removeStandaloneMarkers(s, "مق")
	s = separatorRe.ReplaceAllString(s, " ")
	s = collapseSpaces(s)

	phrases := arabicPhraseRe.FindAllString(s, -1)
	if len(phrases) == 0 {
		return ""
	}
	for i, p := range phrases {
		phrases[i] = collapseSpaces(p)
	}
	sortByStrength(phrases)
	return phrases[0]
}

// AllLocalityParts keeps the full descriptive text of an address: marker
// plus digit combinations, standalone digit runs, standalone markers and
// separators are removed, everything else outside the Arabic block is
// dropped. Recovers multi-part localities (area, district, governorate)
// that the prefix heuristic truncates at the first number.
func AllLocalityParts(s string) string {
	s = SanitizeAddress(s)
	s = markerComboRe.ReplaceAllString(s, "${1} ")
	s = removeStandaloneDigitRuns(s)
	s = removeStandaloneMarkers(s, "مقك")
	s = separatorRe.ReplaceAllString(s, " ")
	s = nonLocalityRe.ReplaceAllString(s, " ")
	return collapseSpaces(s)
}

// PickLocality pools locality candidates from both OCR sources, removes
// duplicates preserving first occurrence, and picks the strongest by
// (Arabic letter count, word count, length). A winner with fewer than 3
// Arabic letters is too weak to trust; fall back to whichever sanitized
// source has the higher letter count.
func PickLocality(a, b string) string {
	var cands []string
	for _, src := range []string{a, b} {
		if full := AllLocalityParts(src); full != "" {
			cands = append(cands, full)
		}
		cands = append(cands, LocalityPrefix(src), LongestArabicPhrase(src))
	}

	seen := make(map[string]bool)
	uniq := cands[:0]
	for _, c := range cands {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		uniq = append(uniq, c)
	}
	if len(uniq) == 0 {
		return ""
	}
	sortByStrength(uniq)

	best := uniq[0]
	if ArabicLetterCount(best) < 3 {
		rawA, rawB := SanitizeAddress(a), SanitizeAddress(b)
		if ArabicLetterCount(rawA) >= ArabicLetterCount(rawB) {
			best = rawA
		} else {
			best = rawB
		}
	}
	return strings.TrimSpace(best)
}

// sortByStrength orders candidates by (Arabic letter count, word count,
// character length), descending. Stable so earlier sources win ties.
func sortByStrength(cands []string) {
	sort.SliceStable(cands, func(i, j int) bool {
		ci, cj := ArabicLetterCount(cands[i]), ArabicLetterCount(cands[j])
		if ci != cj {
			return ci > cj
		}
		wi, wj := len(strings.Fields(cands[i])), len(strings.Fields(cands[j]))
		if wi != wj {
			return wi > wj
		}
		return utf8.RuneCountInString(cands[i]) > utf8.RuneCountInString(cands[j])
	})
}

// removeStandaloneMarkers drops marker runes that stand alone between
// separators or string edges. Marker letters inside words stay: م and ك
// are ordinary letters when attached to a word.
func removeStandaloneMarkers(s, markers string) string {
	runes := []rune(s)
	out := make([]rune, 0, len(runes))
	for i, r := range runes {
		if strings.ContainsRune(markers, r) && isBoundaryAt(runes, i-1) && isBoundaryAt(runes, i+1) {
			out = append(out, ' ')
			continue
		}
		out = append(out, r)
	}
	return string(out)
}

// removeStandaloneDigitRuns drops digit runs (either script) delimited by
// separators or string edges. Digits fused to a word are left alone; the
// caller's later filters decide their fate.
func removeStandaloneDigitRuns(s string) string {
	runes := []rune(s)
	out := make([]rune, 0, len(runes))
	for i := 0; i < len(runes); i++ {
		if !isEitherDigit(runes[i]) {
			out = append(out, runes[i])
			continue
		}
		j := i
		for j < len(runes) && isEitherDigit(runes[j]) {
			j++
		}
		if isBoundaryAt(runes, i-1) && isBoundaryAt(runes, j) {
			out = append(out, ' ')
		} else {
			out = append(out, runes[i:j]...)
		}
		i = j - 1
	}
	return string(out)
}

func isBoundaryAt(runes []rune, i int) bool {
	if i < 0 || i >= len(runes) {
		return true
	}
	return runes[i] == ' ' || runes[i] == '-'
}

func isEitherDigit(r rune) bool {
	return (r >= '0' && r <= '9') || IsArabicDigit(r)
}
