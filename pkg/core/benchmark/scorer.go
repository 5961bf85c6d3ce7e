package benchmark

import (
	"fmt"
	"math"

	"dealscope/pkg/core/metrics"
	"dealscope/pkg/models"
)

// Valuation dead zone: ±15% around the sector average counts as Fair Value,
// so the classification does not flip-flop on noise.
const (
	undervaluedBand = 0.85
	overvaluedBand  = 1.15
)

// Scorer classifies deals against an injected benchmark table. It holds no
// other state; the same inputs always produce the same summary.
type Scorer struct {
	table Table
}

// NewScorer creates a scorer over the given table. A nil table falls back
// to the built-in defaults.
func NewScorer(table Table) *Scorer {
	if table == nil {
		table = DefaultTable()
	}
	return &Scorer{table: table}
}

// DealSummary benchmarks the extracted financials for a sector: valuation
// status, deal signal, 0-100 health score and a templated insight line.
func (s *Scorer) DealSummary(fin *models.CanonicalFinancials, sector string) *models.DealSummary {
	bm := s.table.Lookup(sector)

	var evProxy, debtToEbitda *float64
	if ev := metrics.EnterpriseValueProxy(fin); ev != nil && fin.EBITDA != nil && *fin.EBITDA != 0 {
		v := *ev / *fin.EBITDA
		evProxy = &v
	}
	if fin != nil && fin.TotalLiabilities != nil && fin.EBITDA != nil && *fin.EBITDA != 0 {
		v := *fin.TotalLiabilities / *fin.EBITDA
		debtToEbitda = &v
	}

	valuation := models.ValuationFair
	if evProxy != nil && bm.EVToEBITDA != 0 {
		switch {
		case *evProxy < bm.EVToEBITDA*undervaluedBand:
			valuation = models.ValuationUndervalued
		case *evProxy > bm.EVToEBITDA*overvaluedBand:
			valuation = models.ValuationOvervalued
		}
	}

	// Signal precedence: the Attractive branch is checked first, and the
	// Cautious leverage check only runs if it was not taken. An undervalued
	// but over-levered deal therefore lands on Cautious, not Attractive.
	signal := models.SignalNeutral
	if valuation == models.ValuationUndervalued && debtToEbitda != nil && *debtToEbitda < bm.DebtToEBITDA {
		signal = models.SignalAttractive
	} else if valuation == models.ValuationOvervalued || (debtToEbitda != nil && *debtToEbitda > bm.DebtToEBITDA*1.5) {
		signal = models.SignalCautious
	}

	score := healthScore(fin, bm, evProxy, debtToEbitda)

	status := models.HealthStrong
	if score < 60 {
		status = models.HealthWeak
	} else if score < 75 {
		status = models.HealthModerate
	}

	return &models.DealSummary{
		HealthScore:     score,
		HealthStatus:    status,
		ValuationStatus: valuation,
		DealSignal:      signal,
		EVToEBITDA:      formatMultiple(evProxy),
		SectorAvgEV:     fmt.Sprintf("%.1f", bm.EVToEBITDA),
		ImpliedEV:       impliedEV(fin),
		Insight:         insight(valuation, signal, bm, evProxy, debtToEbitda),
	}
}

// healthScore composes the 0-100 score: 50 base points plus valuation (0-30),
// leverage (0-30) and profitability (0-20) components. A component whose
// inputs are unavailable contributes a neutral partial score, never zero.
// The clamp matters: base 50 plus all three maxed is 110.
func healthScore(fin *models.CanonicalFinancials, bm models.SectorBenchmark, evProxy, debtToEbitda *float64) int {
	score := 50.0

	if evProxy != nil && bm.EVToEBITDA != 0 {
		switch ratio := *evProxy / bm.EVToEBITDA; {
		case ratio < 0.7:
			score += 30
		case ratio < 0.85:
			score += 25
		case ratio < 1.0:
			score += 20
		case ratio < 1.15:
			score += 10
		}
	} else {
		score += 15
	}

	if debtToEbitda != nil && bm.DebtToEBITDA != 0 {
		switch ratio := *debtToEbitda / bm.DebtToEBITDA; {
		case ratio < 0.7:
			score += 30
		case ratio < 0.9:
			score += 25
		case ratio < 1.1:
			score += 20
		case ratio < 1.3:
			score += 10
		}
	} else {
		score += 15
	}

	if fin != nil && fin.NetIncome != nil && fin.Revenue != nil && *fin.Revenue != 0 {
		switch margin := *fin.NetIncome / *fin.Revenue * 100; {
		case margin > 15:
			score += 20
		case margin > 10:
			score += 15
		case margin > 5:
			score += 10
		default:
			score += 5
		}
	} else {
		score += 10
	}

	return int(math.Min(100, math.Round(score)))
}

func impliedEV(fin *models.CanonicalFinancials) string {
	ev := metrics.EnterpriseValueProxy(fin)
	if ev == nil {
		return "N/A"
	}
	return fmt.Sprintf("$%.0fM", math.Round(*ev))
}

func formatMultiple(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", *v)
}

// insight selects one of the fixed templates; it is interpolation over the
// computed ratios, not text generation.
func insight(valuation, signal string, bm models.SectorBenchmark, evProxy, debtToEbitda *float64) string {
	switch {
	case valuation == models.ValuationUndervalued && signal == models.SignalAttractive && evProxy != nil:
		return fmt.Sprintf("Company trading below sector multiple; attractive leverage profile with %.1fx vs sector average %.1fx.",
			*evProxy, bm.EVToEBITDA)
	case valuation == models.ValuationOvervalued:
		return "Company trading above sector average; premium valuation may reflect growth expectations or sector positioning."
	case debtToEbitda != nil && *debtToEbitda > bm.DebtToEBITDA*1.3:
		return fmt.Sprintf("Elevated leverage levels require attention; debt-to-EBITDA of %.1fx exceeds sector norm.",
			*debtToEbitda)
	default:
		return "Company shows balanced financial profile."
	}
}
