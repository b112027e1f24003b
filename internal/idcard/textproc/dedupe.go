package textproc

import (
	"regexp"
	"strings"
)

var (
	fusedMarkerNumberRe = regexp.MustCompile(`^([مقك])([0-9٠-٩]+)$`)
	digitsTokenRe       = regexp.MustCompile(`^[0-9٠-٩]+$`)
)

// CollapseDuplicates removes words and marker/number pairs that occur more
// than once in an assembled address, keeping only the last occurrence.
// The same physical line is often captured by both crops and concatenated;
// the later read of a region tends to be the more complete one.
//
// Standalone markers, bare numbers and separators are never deduplicated:
// two different pairs may legitimately share a marker or a number.
// A no-op on addresses without repeated values, and idempotent.
func CollapseDuplicates(address string) string {
	if address == "" || address == "0" {
		return address
	}

	// Separate dash-fused markers ("-ق٢٦" reads as one token otherwise)
	// so pair tokens classify consistently.
	normalized := address
	for _, m := range Markers {
		normalized = strings.ReplaceAll(normalized, "-"+m, "- "+m)
		normalized = strings.ReplaceAll(normalized, "ـ"+m, "ـ "+m)
	}

	parts := strings.Fields(normalized)
	if len(parts) <= 1 {
		return address
	}

	// Occurrences per normalized value; a marker-plus-number pair spans
	// two token positions.
	occurrences := make(map[string][][]int)
	record := func(key string, pos ...int) {
		occurrences[key] = append(occurrences[key], pos)
	}

	for i := 0; i < len(parts); {
		word := parts[i]

		if m := fusedMarkerNumberRe.FindStringSubmatch(word); m != nil {
			record(m[1]+" "+m[2], i)
			i++
			continue
		}
		if isMarkerToken(word) && i+1 < len(parts) && digitsTokenRe.MatchString(parts[i+1]) {
			record(word+" "+parts[i+1], i, i+1)
			i += 2
			continue
		}
		if isMarkerToken(word) || word == "-" || word == "ـ" || digitsTokenRe.MatchString(word) {
			i++
			continue
		}
		record(word, i)
		i++
	}

	removed := make(map[int]bool)
	for _, occs := range occurrences {
		if len(occs) <= 1 {
			continue
		}
		for _, occ := range occs[:len(occs)-1] {
			for _, pos := range occ {
				removed[pos] = true
			}
		}
	}

	kept := make([]string, 0, len(parts))
	for i, p := range parts {
		if !removed[i] {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

func isMarkerToken(s string) bool {
	for _, m := range Markers {
		if s == m {
			return true
		}
	}
	return false
}
