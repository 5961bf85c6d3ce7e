// Package parse normalizes the numeric string formats that show up in
// financial documents: currency symbols, thousands separators, accounting
// negatives, percent signs and K/M/B unit suffixes.
package parse

import (
	"strconv"
	"strings"
)

// currencyStripper removes currency glyphs, thousands separators and
// whitespace in one pass.
var currencyStripper = strings.NewReplacer(
	"$", "",
	"€", "",
	"£", "",
	"¥", "",
	",", "",
	" ", "",
	"\t", "",
)

// ParseFinancialNumber converts a raw string value to millions of currency
// (or a bare percentage when a trailing % is present). Returns nil when the
// input is empty or not a recognizable number; it never fails loudly.
//
// Canonical unit is millions: a trailing "M" is a no-op, "B" scales by 1000,
// "K" scales by 0.001. A value wrapped in parentheses is negated, per
// accounting convention. Order matters: currency/comma/paren handling runs
// before percent detection, which runs before suffix detection.
func ParseFinancialNumber(value string) *float64 {
	str := currencyStripper.Replace(strings.TrimSpace(value))
	if str == "" {
		return nil
	}

	negative := false
	if strings.HasPrefix(str, "(") && strings.HasSuffix(str, ")") {
		negative = true
		str = strings.Trim(str, "()")
	}

	isPercent := strings.Contains(str, "%")
	str = strings.ReplaceAll(str, "%", "")

	multiplier := 1.0
	switch {
	case hasSuffixFold(str, "m"):
		str = str[:len(str)-1] // already millions
	case hasSuffixFold(str, "b"):
		multiplier = 1000 // billions to millions
		str = str[:len(str)-1]
	case hasSuffixFold(str, "k"):
		multiplier = 0.001 // thousands to millions
		str = str[:len(str)-1]
	}

	num, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return nil
	}
	if negative {
		num = -num
	}
	if isPercent {
		// Percentages carry no magnitude scaling.
		return &num
	}
	num *= multiplier
	return &num
}

func hasSuffixFold(s, suffix string) bool {
	return len(s) > len(suffix) &&
		strings.EqualFold(s[len(s)-len(suffix):], suffix)
}
