// Package utils carries the small response-hygiene helpers the narrative
// layer needs: lenient JSON parsing for LLM output and markdown cleanup.
package utils

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// RepairJSON attempts to fix the usual LLM JSON defects: single quotes,
// unquoted keys, trailing commas, unclosed brackets, markdown fences.
func RepairJSON(malformed string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformed)
	if err != nil {
		return "", fmt.Errorf("json repair failed: %w", err)
	}
	return repaired, nil
}

// SmartParse tries multiple strategies to get a model response into schema:
// strict JSON first, then repaired JSON, then Hjson as the most lenient
// fallback. Returns an error only when every strategy fails.
func SmartParse(input string, schema interface{}) error {
	if err := json.Unmarshal([]byte(input), schema); err == nil {
		return nil
	}

	// Repair can turn prose into a bare JSON scalar; only an object or array
	// can satisfy a response schema.
	if repaired, err := RepairJSON(input); err == nil {
		trimmed := strings.TrimSpace(repaired)
		if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
			if err := json.Unmarshal([]byte(trimmed), schema); err == nil {
				return nil
			}
		}
	}

	if err := hjson.Unmarshal([]byte(input), schema); err == nil {
		return nil
	}

	return fmt.Errorf("response is not parseable as JSON, repaired JSON, or Hjson")
}
