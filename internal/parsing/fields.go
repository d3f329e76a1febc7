// Package parsing normalizes the free-text metadata fields of catalog records
// (fee strings, percentile strings, package strings) into numbers.
//
// Every parser here is total: any input, including the empty string and
// strings with no digits at all, yields a non-negative number. Catalog data is
// scraped and messy; a parse failure must never fail a request, so failures
// collapse to 0. Parsers are idempotent — feeding a parser its own output
// (formatted back to a string) yields the same value.
package parsing

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	feeRun     = regexp.MustCompile(`\d[\d,]*`)
	digitRun   = regexp.MustCompile(`\d+`)
	decimalRun = regexp.MustCompile(`\d+(?:\.\d+)?`)

	nonNumeric = regexp.MustCompile(`[^\d.]`)
	leadFloat  = regexp.MustCompile(`^(?:\d+(?:\.\d*)?|\.\d+)`)
)

// ParseAnnualFees extracts an integer fee from strings like
// "₹1,20,000 per year" (→ 120000). Commas are grouping noise and stripped.
func ParseAnnualFees(s string) int {
	if s == "" {
		return 0
	}
	run := feeRun.FindString(s)
	if run == "" {
		return 0
	}
	fee, err := strconv.Atoi(strings.ReplaceAll(run, ",", ""))
	if err != nil || fee < 0 {
		return 0
	}
	return fee
}

// ParseScore extracts an integer threshold from strings like "75%" or
// "92 percentile". The same rule serves minimum-12th-score requirements,
// entrance-exam percentile cutoffs, and placement rates.
func ParseScore(s string) int {
	if s == "" {
		return 0
	}
	run := digitRun.FindString(s)
	if run == "" {
		return 0
	}
	score, err := strconv.Atoi(run)
	if err != nil {
		return 0
	}
	return score
}

// ParsePercentage parses a questionnaire percentage string ("85.5%",
// "around 88"). Unlike the catalog parsers it is NOT total: every non-digit,
// non-dot character is stripped first (so interleaved letters concatenate the
// remaining digits) and -1 is returned when nothing numeric survives. Callers
// feed the sentinel to the eligibility band, which reads it as borderline.
func ParsePercentage(s string) float64 {
	stripped := nonNumeric.ReplaceAllString(s, "")
	run := leadFloat.FindString(stripped)
	if run == "" {
		return -1
	}
	value, err := strconv.ParseFloat(run, 64)
	if err != nil {
		return -1
	}
	return value
}

// ParsePackage extracts a salary package figure. If the source string
// contains the letter "l" in any case (as in "6.5 LPA" or "6.5 lakh") the
// value is scaled to rupees by 100000; otherwise the bare number is returned
// as-is. A package quoted in lakhs without the unit letter therefore stays
// under-scaled — that asymmetry is long-standing observed behavior and is
// pinned by a regression test rather than fixed.
func ParsePackage(s string) float64 {
	if s == "" {
		return 0
	}
	run := decimalRun.FindString(s)
	if run == "" {
		return 0
	}
	value, err := strconv.ParseFloat(run, 64)
	if err != nil || value < 0 {
		return 0
	}
	if strings.Contains(strings.ToLower(s), "l") {
		return value * 100000
	}
	return value
}
