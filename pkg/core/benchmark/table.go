// Package benchmark holds the sector reference multiples and the scorer
// that classifies a deal against them.
package benchmark

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"dealscope/pkg/models"
)

// DefaultSector is the guaranteed fallback entry every table carries.
const DefaultSector = "Multi-Sector"

// Table maps sector names to their reference multiples. Built once at
// startup and passed into the scorer; never mutated afterwards.
type Table map[string]models.SectorBenchmark

// DefaultTable returns the built-in sector benchmarks.
func DefaultTable() Table {
	return Table{
		"Healthcare":  {EVToEBITDA: 5.0, DebtToEBITDA: 3.0},
		"Technology":  {EVToEBITDA: 8.5, DebtToEBITDA: 1.5},
		"Consumer":    {EVToEBITDA: 7.2, DebtToEBITDA: 2.2},
		"Industrial":  {EVToEBITDA: 6.0, DebtToEBITDA: 2.8},
		"Financial":   {EVToEBITDA: 4.5, DebtToEBITDA: 4.0},
		DefaultSector: {EVToEBITDA: 6.5, DebtToEBITDA: 2.5},
	}
}

// Lookup resolves a sector, falling back to the Multi-Sector entry for
// unknown keys. Unrecognized sectors are never an error.
func (t Table) Lookup(sector string) models.SectorBenchmark {
	if b, ok := t[sector]; ok {
		return b
	}
	return t[DefaultSector]
}

// LoadTable reads a sector benchmark table from a YAML file, e.g.:
//
//	Technology:
//	  evToEbitda: 8.5
//	  debtToEbitda: 1.5
//
// The Multi-Sector fallback entry is filled from the defaults when the file
// does not define one, so Lookup always has somewhere to land.
func LoadTable(path string) (Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read benchmark table: %w", err)
	}

	table := Table{}
	if err := yaml.Unmarshal(raw, &table); err != nil {
		return nil, fmt.Errorf("failed to parse benchmark table: %w", err)
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("benchmark table %s defines no sectors", path)
	}
	if _, ok := table[DefaultSector]; !ok {
		table[DefaultSector] = DefaultTable()[DefaultSector]
	}
	return table, nil
}
