package textproc

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Arabic letters and punctuation the identifier region read may pick up
// around the national ID digits.
const idNoiseLetters = "ابتثجحخدذرزسشصضطظعغفقكلمنهوي"
const asciiPunct = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

var (
	arabicDigitRunRe  = regexp.MustCompile(`[٠-٩]+`)
	westernNonDigitRe = regexp.MustCompile(`[^0-9]`)
)

// CleanID extracts the national ID number from a raw identifier read.
//
// Arabic-indic digit runs are collected, the run order is reversed, and
// the runs are concatenated before parsing: the OCR reading direction
// emits the card's numeral blocks right-to-left, so a two-block read
// ["34", "12"] is really the number 1234. When the read contains no
// Arabic-indic runs the string is assumed to already be Western digits
// and is stripped down to them directly. Returns 0 when nothing parses.
func CleanID(raw string) int64 {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(idNoiseLetters, r) || strings.ContainsRune(asciiPunct, r) {
			return -1
		}
		return r
	}, raw)

	if runs := arabicDigitRunRe.FindAllString(cleaned, -1); len(runs) > 0 {
		var sb strings.Builder
		for i := len(runs) - 1; i >= 0; i-- {
			sb.WriteString(runs[i])
		}
		n, err := strconv.ParseInt(ToWesternDigits(sb.String()), 10, 64)
		if err != nil {
			return 0
		}
		return n
	}

	digits := westernNonDigitRe.ReplaceAllString(cleaned, "")
	if digits == "" {
		return 0
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// BirthdateFromID decodes the birth date encoded in a national ID.
//
// The modern scheme starts with a century marker ('2' for the 1900s,
// '3' for the 2000s) followed by YYMMDD. Identifiers without a marker
// fall back to the legacy 6-digit YYMMDD scheme, with the century chosen
// so the year is not in the future. Returns the sentinel "0" when too
// few digits remain or the encoded date is not a real calendar date.
func BirthdateFromID(id int64) string {
	digits := westernNonDigitRe.ReplaceAllString(ToWesternDigits(strconv.FormatInt(id, 10)), "")

	if len(digits) >= 7 && (digits[0] == '2' || digits[0] == '3') {
		century := 1900
		if digits[0] == '3' {
			century = 2000
		}
		yy := atoi(digits[1:3])
		mm := atoi(digits[3:5])
		dd := atoi(digits[5:7])
		return isoDate(century+yy, mm, dd)
	}

	if len(digits) >= 6 {
		yy := atoi(digits[0:2])
		mm := atoi(digits[2:4])
		dd := atoi(digits[4:6])
		century := 1900
		if yy <= time.Now().Year()%100 {
			century = 2000
		}
		return isoDate(century+yy, mm, dd)
	}

	return "0"
}

// isoDate formats the date as YYYY-MM-DD, or "0" when the components do
// not form a valid calendar date. time.Date normalizes out-of-range
// components instead of failing, so validity is checked by round-trip.
func isoDate(year, month, day int) string {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return "0"
	}
	return t.Format("2006-01-02")
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
