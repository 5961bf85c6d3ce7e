package ingest

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// minUsableText is the threshold below which a PDF extraction is treated
// as failed and the raw-bytes fallback kicks in.
const minUsableText = 10

// ExtractPDFText pulls the text layer out of a PDF file. When the library
// cannot produce usable text (encrypted, scanned, corrupt), it falls back
// to interpreting the raw bytes as UTF-8 so the narrative extractor still
// gets something to scan. Layout recovery is best-effort only.
func ExtractPDFText(path string) (string, error) {
	text, err := extractTextLayer(path)
	if err == nil && len(strings.TrimSpace(text)) >= minUsableText {
		return text, nil
	}

	raw, readErr := os.ReadFile(path)
	if readErr != nil {
		if err != nil {
			return "", fmt.Errorf("pdf extraction failed: %w", err)
		}
		return "", fmt.Errorf("pdf fallback read failed: %w", readErr)
	}
	return string(toValidUTF8(raw)), nil
}

// extractTextLayer walks every page collecting plain text. The pdf library
// panics on some corrupt files (e.g. bad zlib streams), so recover turns
// that into an error.
func extractTextLayer(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("panic during PDF extraction: %v", r)
		}
	}()

	f, r, openErr := pdf.Open(path)
	if openErr != nil {
		return "", fmt.Errorf("failed to open PDF: %w", openErr)
	}
	defer f.Close()

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, pageErr := page.GetPlainText(nil)
		if pageErr != nil {
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// toValidUTF8 drops invalid byte sequences so the salvage text is at least
// scannable by the regex cascade.
func toValidUTF8(raw []byte) []byte {
	if utf8.Valid(raw) {
		return raw
	}
	return []byte(strings.ToValidUTF8(string(raw), ""))
}
