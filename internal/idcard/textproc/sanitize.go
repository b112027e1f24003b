package textproc

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	latinLetterRe = regexp.MustCompile(`[a-zA-Z]`)
	// Everything outside the trusted address alphabet: Arabic block,
	// digits in either script, whitespace, hyphen and tatweel.
	addressNoiseRe = regexp.MustCompile(`[^\x{0600}-\x{06FF}0-9٠-٩\s\-ـ]`)
	nonArabicRe    = regexp.MustCompile(`[^\x{0600}-\x{06FF}\s]`)

	noiseGlyphs = strings.NewReplacer("؟", " ", "?", " ", ">", " ", "<", " ")
)

// SanitizeAddress strips an address string down to the alphabet the domain
// trusts: Arabic letters, digits in either script, whitespace and the two
// separator glyphs. Known OCR garbage is replaced first so adjacent tokens
// do not fuse. Idempotent.
func SanitizeAddress(s string) string {
	s = noiseGlyphs.Replace(s)
	s = latinLetterRe.ReplaceAllString(s, " ")
	s = addressNoiseRe.ReplaceAllString(s, " ")
	return collapseSpaces(s)
}

// CleanName keeps only Arabic letters and whitespace.
func CleanName(s string) string {
	s = nonArabicRe.ReplaceAllString(s, " ")
	return collapseSpaces(s)
}

// BestText picks the more trustworthy of two readings of the same text:
// the one with more Arabic letters, then the longer one.
func BestText(a, b string) string {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if a == "" && b == "" {
		return ""
	}
	ca, cb := ArabicLetterCount(a), ArabicLetterCount(b)
	if ca != cb {
		if ca > cb {
			return a
		}
		return b
	}
	if utf8.RuneCountInString(a) >= utf8.RuneCountInString(b) {
		return a
	}
	return b
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
