package extract

import (
	"dealscope/pkg/models"
)

// FinancialData dispatches to the right extraction strategy based on input
// shape: row-oriented records go to the tabular path, a text blob goes to
// the narrative path. Anything else returns nil, which callers must treat
// as "no financial data could be extracted". This is the only branch point
// between the two strategies; it carries no other logic.
func FinancialData(content any) *models.CanonicalFinancials {
	switch c := content.(type) {
	case []models.RawRecord:
		return FromCSV(c)
	case []map[string]string:
		rows := make([]models.RawRecord, len(c))
		for i, row := range c {
			rows[i] = models.RawRecord(row)
		}
		return FromCSV(rows)
	case string:
		return FromText(c)
	default:
		return nil
	}
}
