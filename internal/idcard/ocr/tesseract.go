package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract is the general OCR engine, backed by a local Tesseract
// install through gosseract. A fresh client is created per call: the
// CGo client is not safe for concurrent reuse, and per-call setup cost
// is negligible next to recognition time.
type Tesseract struct {
	lang string
}

// NewTesseract creates a Tesseract engine for the given traineddata
// language (e.g. "ara").
func NewTesseract(lang string) *Tesseract {
	return &Tesseract{lang: lang}
}

// ReadLines runs sparse-text recognition over the region and returns the
// raw output split on newlines. Empty lines are preserved: the line
// count, blanks included, is what the orchestrator's state selection
// keys on.
func (t *Tesseract) ReadLines(ctx context.Context, region Region) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.lang); err != nil {
		return nil, fmt.Errorf("tesseract: set language %q: %w", t.lang, err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SPARSE_TEXT); err != nil {
		return nil, fmt.Errorf("tesseract: set page seg mode: %w", err)
	}
	if err := client.SetImageFromBytes(region.Image); err != nil {
		return nil, fmt.Errorf("tesseract: set image for region %q: %w", region.Label, err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("tesseract: recognize region %q: %w", region.Label, err)
	}
	return strings.Split(text, "\n"), nil
}
