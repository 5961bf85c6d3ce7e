package ingest

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// noiseSelectors are elements that never carry financial figures and only
// pollute the line scan.
var noiseSelectors = []string{"script", "style", "noscript", "header", "footer", "nav"}

// ExtractHTMLText flattens an HTML document (e.g. a filing or an exported
// report) into line-oriented plain text for the narrative extractor.
// Block elements become line breaks so table rows keep their row shape.
func ExtractHTMLText(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	var sb strings.Builder

	// Table rows first-class: one row per line, cells joined by spaces,
	// which is exactly the shape the table-line scan expects.
	doc.Find("tr").Each(func(i int, row *goquery.Selection) {
		var cells []string
		row.Find("td, th").Each(func(j int, cell *goquery.Selection) {
			if txt := strings.TrimSpace(cell.Text()); txt != "" {
				cells = append(cells, txt)
			}
		})
		if len(cells) > 0 {
			sb.WriteString(strings.Join(cells, "   "))
			sb.WriteString("\n")
		}
	})

	// Then the prose, block by block.
	doc.Find("p, h1, h2, h3, h4, li, div").Each(func(i int, sel *goquery.Selection) {
		// Skip containers: only leaf-ish blocks contribute, otherwise a big
		// wrapper div duplicates everything inside it.
		if sel.Children().Length() > 0 && sel.Is("div") {
			return
		}
		if sel.Closest("tr").Length() > 0 {
			return // already captured by the row pass
		}
		if txt := strings.TrimSpace(sel.Text()); txt != "" {
			sb.WriteString(txt)
			sb.WriteString("\n")
		}
	})

	text := sb.String()
	if strings.TrimSpace(text) == "" {
		// Tag soup with no recognizable blocks: take whatever text is left.
		text = strings.TrimSpace(doc.Text())
	}
	return text, nil
}
