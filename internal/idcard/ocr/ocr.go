// Package ocr defines the contracts for the two OCR engines and the
// region provider the extraction engine consumes. The engines are black
// boxes producing text lines; everything downstream treats their output
// as untrusted.
package ocr

import "context"

// Region is one cropped sub-region of the card image.
type Region struct {
	Label string
	Image []byte
}

// CardRegions holds the two sub-regions the extractor reads: the
// name/address text block and the national ID strip.
type CardRegions struct {
	Text Region
	ID   Region
}

// Thresholds tunes the deep engine's detector sensitivity. The identifier
// strip needs a far lower low-text bound than the name block: the ID
// digits are printed small and tight.
type Thresholds struct {
	Text    float64 `json:"text_threshold"`
	Width   float64 `json:"width_ths"`
	LowText float64 `json:"low_text"`
}

// Threshold presets per region type.
var (
	NameRegionThresholds = Thresholds{Text: 0.18, Width: 0.9, LowText: 0.17}
	IDRegionThresholds   = Thresholds{Text: 0.27, Width: 0.8, LowText: 0.008}
)

// LineReader is the general-purpose OCR engine: whole-line granularity,
// no tuning knobs.
type LineReader interface {
	ReadLines(ctx context.Context, region Region) ([]string, error)
}

// ThresholdLineReader is the deep-learning OCR engine: returns line or
// token fragments, sensitivity tuned per region type.
type ThresholdLineReader interface {
	ReadLines(ctx context.Context, region Region, t Thresholds) ([]string, error)
}

// RegionProvider crops a full card image into the regions the extractor
// reads. Background removal, rotation and binarization happen behind
// this interface.
type RegionProvider interface {
	Regions(ctx context.Context, image []byte) (CardRegions, error)
}

// WholeImage is a RegionProvider that hands the uncropped image to every
// region. Used when an upstream stage already cropped the capture, and
// in tests.
type WholeImage struct{}

func (WholeImage) Regions(_ context.Context, image []byte) (CardRegions, error) {
	return CardRegions{
		Text: Region{Label: "text", Image: image},
		ID:   Region{Label: "id", Image: image},
	}, nil
}
