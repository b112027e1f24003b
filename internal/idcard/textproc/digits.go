// Package textproc implements the dual-source reconciliation engine for
// Egyptian ID card text: digit-script conversion, sanitization, address
// marker/number extraction, locality selection, duplicate collapsing and
// national-ID / birthdate decoding.
//
// Both OCR engines emit noisy Arabic text mixing Western (0-9) and
// Arabic-indic (٠-٩) digits. Everything here is a pure function over
// strings; no state is shared between invocations.
package textproc

import (
	"regexp"
	"strings"
)

const (
	westernDigits = "0123456789"
	arabicDigits  = "٠١٢٣٤٥٦٧٨٩"
)

var (
	toWestern = newDigitMapper(arabicDigits, westernDigits)
	toArabic  = newDigitMapper(westernDigits, arabicDigits)

	arabicLetterRe = regexp.MustCompile(`[\x{0600}-\x{06FF}]`)
	arabicWordRe   = regexp.MustCompile(`[\x{0600}-\x{06FF}]{2,}`)
)

func newDigitMapper(from, to string) func(rune) rune {
	m := make(map[rune]rune, 10)
	toRunes := []rune(to)
	for i, r := range []rune(from) {
		m[r] = toRunes[i]
	}
	return func(r rune) rune {
		if mapped, ok := m[r]; ok {
			return mapped
		}
		return r
	}
}

// ToWesternDigits converts Arabic-indic digits to Western digits.
// All other characters pass through unchanged.
func ToWesternDigits(s string) string {
	return strings.Map(toWestern, s)
}

// ToArabicDigits converts Western digits to Arabic-indic digits.
// All other characters pass through unchanged.
func ToArabicDigits(s string) string {
	return strings.Map(toArabic, s)
}

// ArabicLetterCount counts characters in the Arabic Unicode block.
// The block includes Arabic-indic digits and the tatweel; that is
// intentional, the reconciliation tie-breaks depend on it.
func ArabicLetterCount(s string) int {
	return len(arabicLetterRe.FindAllString(s, -1))
}

// ArabicWords returns maximal runs of two or more Arabic-block characters.
func ArabicWords(s string) []string {
	return arabicWordRe.FindAllString(s, -1)
}

// IsArabicDigit reports whether r is an Arabic-indic digit.
func IsArabicDigit(r rune) bool {
	return r >= '٠' && r <= '٩'
}
