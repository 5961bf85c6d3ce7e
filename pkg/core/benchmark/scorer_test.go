package benchmark

import (
	"strings"
	"testing"

	"dealscope/pkg/models"
)

func fp(v float64) *float64 { return &v }

func TestDealSummaryUndervaluedButOverLevered(t *testing.T) {
	// evProxy = ((200+50)/2)/20 = 6.25 < 8.5*0.85, so Undervalued.
	// debtToEbitda = 2.5 fails the Attractive gate (>= 1.5) and trips the
	// Cautious leverage check (2.5 > 1.5*1.5): precedence must land Cautious.
	fin := &models.CanonicalFinancials{
		Revenue:          fp(100),
		EBITDA:           fp(20),
		NetIncome:        fp(12),
		TotalAssets:      fp(200),
		TotalLiabilities: fp(50),
	}

	sum := NewScorer(nil).DealSummary(fin, "Technology")
	if sum.ValuationStatus != models.ValuationUndervalued {
		t.Errorf("ValuationStatus = %q, want %q", sum.ValuationStatus, models.ValuationUndervalued)
	}
	if sum.DealSignal != models.SignalCautious {
		t.Errorf("DealSignal = %q, want %q", sum.DealSignal, models.SignalCautious)
	}
	if sum.EVToEBITDA != "6.3" {
		t.Errorf("EVToEBITDA = %q, want %q", sum.EVToEBITDA, "6.3")
	}
	if sum.SectorAvgEV != "8.5" {
		t.Errorf("SectorAvgEV = %q, want %q", sum.SectorAvgEV, "8.5")
	}
	if sum.ImpliedEV != "$125M" {
		t.Errorf("ImpliedEV = %q, want %q", sum.ImpliedEV, "$125M")
	}
	// 50 base + 25 valuation (ratio 0.74) + 0 leverage (ratio 1.67) + 15 margin (12%)
	if sum.HealthScore != 90 {
		t.Errorf("HealthScore = %d, want 90", sum.HealthScore)
	}
}

func TestDealSummaryAttractive(t *testing.T) {
	fin := &models.CanonicalFinancials{
		Revenue:          fp(100),
		EBITDA:           fp(20),
		NetIncome:        fp(20),
		TotalAssets:      fp(100),
		TotalLiabilities: fp(20),
	}

	sum := NewScorer(nil).DealSummary(fin, "Technology")
	if sum.ValuationStatus != models.ValuationUndervalued {
		t.Errorf("ValuationStatus = %q, want Undervalued", sum.ValuationStatus)
	}
	if sum.DealSignal != models.SignalAttractive {
		t.Errorf("DealSignal = %q, want Attractive", sum.DealSignal)
	}
	// All three components maxed: 50+30+30+20 = 130 raw, clamped to 100.
	if sum.HealthScore != 100 {
		t.Errorf("HealthScore = %d, want exactly 100", sum.HealthScore)
	}
	if sum.HealthStatus != models.HealthStrong {
		t.Errorf("HealthStatus = %q, want Strong", sum.HealthStatus)
	}
	if !strings.Contains(sum.Insight, "below sector multiple") {
		t.Errorf("Insight = %q, want the undervalued template", sum.Insight)
	}
}

func TestDealSummaryDeadZoneBoundary(t *testing.T) {
	// evProxy = ((80+50)/2)/10 = 6.5, exactly the Multi-Sector average:
	// the boundary itself stays Fair Value.
	fin := &models.CanonicalFinancials{
		EBITDA:           fp(10),
		TotalAssets:      fp(80),
		TotalLiabilities: fp(50),
	}

	sum := NewScorer(nil).DealSummary(fin, "Multi-Sector")
	if sum.ValuationStatus != models.ValuationFair {
		t.Errorf("ValuationStatus = %q, want Fair Value at the boundary", sum.ValuationStatus)
	}
}

func TestDealSummaryUnknownSectorFallsBack(t *testing.T) {
	fin := &models.CanonicalFinancials{
		EBITDA:           fp(10),
		TotalAssets:      fp(80),
		TotalLiabilities: fp(50),
	}

	known := NewScorer(nil).DealSummary(fin, "Multi-Sector")
	unknown := NewScorer(nil).DealSummary(fin, "Cryptocurrency")
	if known.SectorAvgEV != unknown.SectorAvgEV {
		t.Errorf("unknown sector should use the Multi-Sector benchmark, got %q vs %q",
			unknown.SectorAvgEV, known.SectorAvgEV)
	}
}

func TestDealSummaryMissingInputs(t *testing.T) {
	sum := NewScorer(nil).DealSummary(nil, "Technology")
	if sum.ValuationStatus != models.ValuationFair {
		t.Errorf("ValuationStatus = %q, want Fair Value", sum.ValuationStatus)
	}
	if sum.DealSignal != models.SignalNeutral {
		t.Errorf("DealSignal = %q, want Neutral", sum.DealSignal)
	}
	if sum.EVToEBITDA != "N/A" || sum.ImpliedEV != "N/A" {
		t.Errorf("expected N/A display values, got ev=%q implied=%q", sum.EVToEBITDA, sum.ImpliedEV)
	}
	// Neutral partial scores: 50 + 15 + 15 + 10.
	if sum.HealthScore != 90 {
		t.Errorf("HealthScore = %d, want 90", sum.HealthScore)
	}
}

func TestDealSummaryCustomTable(t *testing.T) {
	table := Table{
		"Widgets":     {EVToEBITDA: 4.0, DebtToEBITDA: 1.0},
		DefaultSector: {EVToEBITDA: 6.5, DebtToEBITDA: 2.5},
	}
	fin := &models.CanonicalFinancials{
		EBITDA:           fp(10),
		TotalAssets:      fp(80),
		TotalLiabilities: fp(50),
	}

	sum := NewScorer(table).DealSummary(fin, "Widgets")
	// evProxy 6.5 > 4.0*1.15
	if sum.ValuationStatus != models.ValuationOvervalued {
		t.Errorf("ValuationStatus = %q, want Overvalued against the custom table", sum.ValuationStatus)
	}
	if sum.DealSignal != models.SignalCautious {
		t.Errorf("DealSignal = %q, want Cautious", sum.DealSignal)
	}
}
