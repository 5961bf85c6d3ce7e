package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"dealscope/pkg/core/benchmark"
	"dealscope/pkg/core/ingest"
	"dealscope/pkg/core/llm"
	"dealscope/pkg/core/pipeline"
	"dealscope/pkg/core/store"
	"dealscope/pkg/models"
)

func main() {
	sector := flag.String("sector", "", "industry sector for benchmarking (default: Multi-Sector)")
	benchmarksPath := flag.String("benchmarks", "", "optional YAML file with sector benchmark overrides")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatal("Usage: pipeline [-sector NAME] [-benchmarks FILE] <document.csv|.pdf|.html|.txt>")
	}
	filePath := flag.Arg(0)
	fileName := filepath.Base(filePath)

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, assuming environment variables are set.")
	}

	fmt.Println("🚀 Deal Scope Pipeline Starting...")

	// 1. Ingestion: turn the document into extractor input
	content, err := loadContent(filePath)
	if err != nil {
		log.Fatalf("Ingestion failed for %s: %v", filePath, err)
	}

	// 2. Orchestrator wiring
	var provider llm.Provider
	if os.Getenv("GEMINI_API_KEY") != "" {
		provider = &llm.GeminiProvider{}
		fmt.Println("🤖 LLM narrative enabled (Gemini)")
	} else {
		fmt.Println("📋 No GEMINI_API_KEY set, using templated narrative")
	}

	orch := pipeline.NewOrchestrator(provider)

	if *benchmarksPath != "" {
		table, err := benchmark.LoadTable(*benchmarksPath)
		if err != nil {
			log.Fatalf("Failed to load benchmarks: %v", err)
		}
		orch.SetBenchmarks(table)
	}

	ctx := context.Background()
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		repo, err := store.NewPostgresRepo(ctx, dsn)
		if err != nil {
			log.Fatalf("Database connection failed: %v", err)
		}
		defer repo.Close()
		orch.SetRepository(repo)
		fmt.Println("💾 Persisting deals to Postgres")
	}

	// 3. Run
	deal, err := orch.Run(ctx, content, fileName, *sector)
	if err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}

	printReport(deal)
}

// loadContent dispatches on file extension: CSV becomes tabular records,
// everything else is reduced to plain text for the narrative extractor.
func loadContent(path string) (any, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ingest.DecodeCSVFile(path)
	case ".pdf":
		return ingest.ExtractPDFText(path)
	case ".html", ".htm":
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return ingest.ExtractHTMLText(string(raw))
	default:
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return string(raw), nil
	}
}

func printReport(deal *models.Deal) {
	fmt.Println("\n################################################################################")
	fmt.Println("                      DEAL SCOPE - SCREENING REPORT")
	fmt.Printf("                      Target: %s (%s)\n", deal.CompanyName, deal.Sector)
	fmt.Println("################################################################################")

	fin := deal.Financials
	m := deal.Metrics
	sum := deal.Summary

	fmt.Println("\n[1] EXTRACTED FINANCIALS")
	fmt.Printf("Source:              %s", fin.DataSource)
	if fin.RowCount > 0 {
		fmt.Printf(" (%d rows)", fin.RowCount)
	}
	fmt.Println()
	printMoney("Revenue", fin.Revenue)
	printMoney("EBITDA", fin.EBITDA)
	printMoney("Net Income", fin.NetIncome)
	printMoney("Total Assets", fin.TotalAssets)
	printMoney("Total Liabilities", fin.TotalLiabilities)
	printMoney("Cash Flow", fin.CashFlow)

	fmt.Println("\n[2] DERIVED METRICS")
	printPct("Revenue Growth", m.RevenueGrowth)
	printPct("Profit Margin", m.ProfitMargin)
	printRatio("Debt Ratio", m.DebtRatio)
	printRatio("Current Ratio", m.CurrentRatio)
	printMult("EV/EBITDA", m.EVToEBITDA)
	printMult("Debt/EBITDA", m.DebtToEBITDA)

	fmt.Println("\n[3] BENCHMARK SCORING")
	fmt.Printf("Health Score:        %d/100 (%s)\n", sum.HealthScore, sum.HealthStatus)
	fmt.Printf("Valuation:           %s (vs sector avg %sx)\n", sum.ValuationStatus, sum.SectorAvgEV)
	fmt.Printf("Implied EV:          %s\n", sum.ImpliedEV)
	fmt.Printf("Deal Signal:         %s\n", sum.DealSignal)
	fmt.Printf("Insight:             %s\n", sum.Insight)

	if a := deal.Analysis; a != nil {
		fmt.Println("\n[4] ANALYSIS")
		fmt.Println(a.Summary)
		fmt.Println("\nRisks:")
		for _, r := range a.Risks {
			fmt.Printf("  - %s\n", r)
		}
		fmt.Println("\nOpportunities:")
		for _, o := range a.Opportunities {
			fmt.Printf("  - %s\n", o)
		}
	}

	fmt.Printf("\n[Done] Deal %s analyzed.\n", deal.ID)
}

func printMoney(label string, v *float64) {
	if v == nil {
		fmt.Printf("%-20s N/A\n", label+":")
		return
	}
	fmt.Printf("%-20s $ %10.1f M\n", label+":", *v)
}

func printPct(label string, v *float64) {
	if v == nil {
		fmt.Printf("%-20s N/A\n", label+":")
		return
	}
	fmt.Printf("%-20s %10.1f%%\n", label+":", *v)
}

func printRatio(label string, v *float64) {
	if v == nil {
		fmt.Printf("%-20s N/A\n", label+":")
		return
	}
	fmt.Printf("%-20s %10.2f\n", label+":", *v)
}

func printMult(label string, v *float64) {
	if v == nil {
		fmt.Printf("%-20s N/A\n", label+":")
		return
	}
	fmt.Printf("%-20s %10.1fx\n", label+":", *v)
}
