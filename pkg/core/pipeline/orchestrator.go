// Package pipeline wires extraction, metric derivation, benchmarking,
// narrative generation and storage into one deal run.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"dealscope/pkg/core/analyzer"
	"dealscope/pkg/core/benchmark"
	"dealscope/pkg/core/extract"
	"dealscope/pkg/core/llm"
	"dealscope/pkg/core/metrics"
	"dealscope/pkg/core/store"
	"dealscope/pkg/models"
)

// Orchestrator manages the end-to-end data flow:
// Extraction -> Metrics -> Benchmark Scoring -> Narrative -> Storage.
type Orchestrator struct {
	scorer   *benchmark.Scorer
	analyzer *analyzer.Analyzer
	repo     store.DealRepository
}

// NewOrchestrator creates an orchestrator with default dependencies: the
// built-in benchmark table, an in-memory repository and the given LLM
// provider (nil means the narrative layer uses its templates).
func NewOrchestrator(provider llm.Provider) *Orchestrator {
	return &Orchestrator{
		scorer:   benchmark.NewScorer(nil),
		analyzer: analyzer.New(provider),
		repo:     store.NewMemoryRepo(),
	}
}

// SetRepository allows injecting a custom repository (e.g., Postgres, or a
// stub for testing).
func (o *Orchestrator) SetRepository(repo store.DealRepository) {
	o.repo = repo
}

// SetBenchmarks replaces the sector benchmark table used for scoring.
func (o *Orchestrator) SetBenchmarks(table benchmark.Table) {
	o.scorer = benchmark.NewScorer(table)
}

// Run executes the full pipeline for one document. content is whatever the
// ingestion layer produced: []models.RawRecord for tabular input, a string
// for narrative text. Extraction failing to determine revenue is the only
// fatal condition; every later stage degrades instead of failing.
func (o *Orchestrator) Run(ctx context.Context, content any, fileName, sector string) (*models.Deal, error) {
	if sector == "" {
		sector = benchmark.DefaultSector
	}
	fmt.Printf("Starting deal pipeline for %s (sector: %s)...\n", fileName, sector)
	start := time.Now()

	// 1. Extraction
	fin := extract.FinancialData(content)
	if fin == nil || fin.Revenue == nil {
		return nil, fmt.Errorf("no revenue could be determined from %s", fileName)
	}
	fmt.Printf("Extraction complete via %s path\n", fin.DataSource)

	// 2. Metric derivation
	derived := metrics.Calculate(fin)

	// 3. Benchmark scoring
	summary := o.scorer.DealSummary(fin, sector)
	fmt.Printf("Scoring complete: %s / %s (health %d/100)\n",
		summary.ValuationStatus, summary.DealSignal, summary.HealthScore)

	// 4. Narrative
	analysis := o.analyzer.Analyze(ctx, derived, summary, fileName, sector)

	deal := &models.Deal{
		ID:           uuid.NewString(),
		CompanyName:  analyzer.CompanyNameFromFile(fileName),
		FileName:     fileName,
		Sector:       sector,
		DateUploaded: time.Now(),
		Financials:   fin,
		Metrics:      derived,
		Summary:      summary,
		Analysis:     analysis,
	}

	// 5. Storage
	if o.repo != nil {
		if err := o.repo.Save(ctx, deal); err != nil {
			fmt.Printf("Warning: failed to persist deal %s: %v\n", deal.ID, err)
		}
	}

	fmt.Printf("Pipeline completed for %s in %v\n", fileName, time.Since(start))
	return deal, nil
}
