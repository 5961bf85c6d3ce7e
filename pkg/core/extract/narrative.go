package extract

import (
	"regexp"
	"strconv"
	"strings"

	"dealscope/pkg/core/parse"
	"dealscope/pkg/models"
)

// =============================================================================
// NARRATIVE EXTRACTION - unstructured document text to canonical financials
//
// Two-phase strategy, first-match-wins:
//  1. Table-line scan: favors the right-most numeric column of tabular PDF
//     extracts (typically the most recent period).
//  2. Regex pattern cascade over the full text as fallback.
// =============================================================================

// plausible magnitude window for line-scan values; filters out years,
// footnote markers and page numbers.
const (
	minPlausibleValue = 0
	maxPlausibleValue = 100000
)

var (
	lineNumberToken = regexp.MustCompile(`[\d,]+\.?\d*`)
	billionsMarker  = regexp.MustCompile(`(?i)\(\$b\)|billion`)
	linePercent     = regexp.MustCompile(`([\d.]+)%`)
)

// lineLabels drives the table-line scan: each target field with the label
// pattern that claims a line. Each field is claimed by only the first
// matching line.
var lineLabels = []struct {
	Field   string
	Pattern *regexp.Regexp
}{
	{"revenue", regexp.MustCompile(`(?i)total\s+revenue|revenue\s*\(`)},
	{"ebitda", regexp.MustCompile(`(?i)ebitda`)},
	{"net_income", regexp.MustCompile(`(?i)net\s+income`)},
	{"total_assets", regexp.MustCompile(`(?i)total\s+assets`)},
	{"total_liabilities", regexp.MustCompile(`(?i)total\s+liabilities`)},
	{"cash_flow", regexp.MustCompile(`(?i)cash\s+flow`)},
}

var lineGrowthLabel = regexp.MustCompile(`(?i)revenue\s+growth|yoy`)

// fieldPattern is one entry of the regex cascade: a compiled pattern whose
// first capture group is the numeric value and whose optional second group
// is a unit word ("billion"/"b" scales the result ×1000).
type fieldPattern struct {
	Field    string
	Patterns []*regexp.Regexp
}

const (
	numGroup  = `([\d,]+\.?\d*)`
	currency  = `[\$€£¥]?\s*`
	sep       = `[:\s\-]*`
	unitGroup = `\s*(million|m\b|billion|b\b)?`
)

// textPatterns is evaluated in order per field; the first matching pattern
// wins. Patterns tolerate currency symbols, comma separators and unit words.
var textPatterns = []fieldPattern{
	{"revenue", compilePatterns(
		`(?:total\s+)?(?:net\s+)?revenue`+sep+currency+numGroup+unitGroup,
		`(?:total\s+)?(?:net\s+)?sales`+sep+currency+numGroup+unitGroup,
		`revenues?[:\s]+`+currency+numGroup,
	)},
	{"ebitda", compilePatterns(
		`ebitda`+sep+currency+numGroup+unitGroup,
		`earnings?\s+before`+sep+currency+numGroup,
		`operating\s+(?:income|profit)`+sep+currency+numGroup,
	)},
	{"net_income", compilePatterns(
		`net\s+(?:income|profit|earnings?)`+sep+currency+numGroup+unitGroup,
		`(?:after[\-\s]tax\s+)?income`+sep+currency+numGroup,
	)},
	{"total_assets", compilePatterns(
		`total\s+assets`+sep+currency+numGroup+unitGroup,
		`assets[:\s]+`+currency+numGroup+unitGroup,
	)},
	{"total_liabilities", compilePatterns(
		`total\s+(?:liabilities|debt)`+sep+currency+numGroup+unitGroup,
		`(?:long[\-\s]term\s+)?debt`+sep+currency+numGroup,
	)},
	{"current_assets", compilePatterns(
		`current\s+assets` + sep + currency + numGroup + unitGroup,
	)},
	{"current_liabilities", compilePatterns(
		`current\s+liabilities` + sep + currency + numGroup + unitGroup,
	)},
	{"cash_flow", compilePatterns(
		`(?:operating\s+)?cash\s*flow`+sep+currency+numGroup+unitGroup,
		`(?:free\s+)?cash\s*flow`+sep+currency+numGroup,
	)},
}

var growthPatterns = compilePatterns(
	`(?:revenue\s+)?growth`+sep+numGroup+`%?`,
	`yoy`+sep+numGroup+`%?`,
	`year[\-\s]over[\-\s]year`+sep+numGroup+`%?`,
)

func compilePatterns(exprs ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		compiled[i] = regexp.MustCompile(`(?i)` + expr)
	}
	return compiled
}

// FromText extracts canonical financials from unstructured document text.
// Absence of any match yields nil for that field, never an error.
func FromText(text string) *models.CanonicalFinancials {
	if data := scanTableLines(text); data != nil && data.Revenue != nil {
		applyEstimates(data)
		data.DataSource = models.SourceTextTable
		return data
	}
	return scanPatterns(text)
}

// scanTableLines walks the text line by line and claims each target field
// from the first line whose label matches, taking the right-most plausible
// numeric token on that line. Returns nil when nothing was found.
func scanTableLines(text string) *models.CanonicalFinancials {
	data := &models.CanonicalFinancials{}
	found := false

	for _, line := range strings.Split(text, "\n") {
		tokens := lineNumberToken.FindAllString(line, -1)
		if len(tokens) == 0 {
			continue
		}
		scale := 1.0
		if billionsMarker.MatchString(line) {
			scale = 1000
		}

		for _, label := range lineLabels {
			if !label.Pattern.MatchString(line) {
				continue
			}
			target := fieldSlot(data, label.Field)
			if *target != nil {
				continue // first matching line wins
			}
			if v := parse.ParseFinancialNumber(latestToken(tokens)); v != nil {
				scaled := *v * scale
				*target = &scaled
				found = true
			}
		}

		if data.RevenueGrowth == nil && lineGrowthLabel.MatchString(line) {
			if m := linePercent.FindStringSubmatch(line); m != nil {
				if pct, err := strconv.ParseFloat(m[1], 64); err == nil {
					data.RevenueGrowth = &pct
					found = true
				}
			}
		}
	}

	if !found {
		return nil
	}
	return data
}

// latestToken picks the last token within the plausible magnitude window,
// which in tabular PDF extracts is usually the most recent period's column.
// Falls back to the first token when nothing is in range.
func latestToken(tokens []string) string {
	latest := ""
	for _, tok := range tokens {
		n, err := strconv.ParseFloat(strings.ReplaceAll(tok, ",", ""), 64)
		if err != nil {
			continue
		}
		if n > minPlausibleValue && n < maxPlausibleValue {
			latest = tok
		}
	}
	if latest == "" {
		return tokens[0]
	}
	return latest
}

// scanPatterns runs the regex cascade over the full raw text.
func scanPatterns(text string) *models.CanonicalFinancials {
	data := &models.CanonicalFinancials{DataSource: models.SourceText}

	for _, fp := range textPatterns {
		*fieldSlot(data, fp.Field) = matchCascade(text, fp.Patterns)
	}

	for _, p := range growthPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			data.RevenueGrowth = parse.ParseFinancialNumber(m[1])
			break
		}
	}

	applyEstimates(data)
	return data
}

// matchCascade returns the first pattern's parsed value, scaling ×1000 when
// the captured unit word denotes billions.
func matchCascade(text string, patterns []*regexp.Regexp) *float64 {
	for _, p := range patterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v := parse.ParseFinancialNumber(m[1])
		if v == nil {
			continue
		}
		if len(m) > 2 {
			unit := strings.ToLower(m[2])
			if unit == "billion" || unit == "b" {
				*v *= 1000
			}
		}
		return v
	}
	return nil
}

// applyEstimates back-fills missing fields from already-known drivers using
// the fixed conversion ratios shared with the tabular path.
func applyEstimates(data *models.CanonicalFinancials) {
	if data.NetIncome == nil && data.EBITDA != nil {
		data.NetIncome = scaled(*data.EBITDA, 0.6)
	}
	if data.CashFlow == nil && data.EBITDA != nil {
		data.CashFlow = scaled(*data.EBITDA, 0.65)
	}
	if data.CurrentAssets == nil && data.TotalAssets != nil {
		data.CurrentAssets = scaled(*data.TotalAssets, 0.35)
	}
	if data.CurrentLiabilities == nil && data.TotalLiabilities != nil {
		data.CurrentLiabilities = scaled(*data.TotalLiabilities, 0.4)
	}
}

func scaled(v, ratio float64) *float64 {
	out := v * ratio
	return &out
}

// fieldSlot maps a canonical field name to its slot on the struct, keeping
// the label/pattern tables data-driven.
func fieldSlot(data *models.CanonicalFinancials, field string) **float64 {
	switch field {
	case "revenue":
		return &data.Revenue
	case "ebitda":
		return &data.EBITDA
	case "net_income":
		return &data.NetIncome
	case "total_assets":
		return &data.TotalAssets
	case "total_liabilities":
		return &data.TotalLiabilities
	case "current_assets":
		return &data.CurrentAssets
	case "current_liabilities":
		return &data.CurrentLiabilities
	case "cash_flow":
		return &data.CashFlow
	}
	return nil
}
