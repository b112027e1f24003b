package processor

import (
	"context"

	"github.com/omarayman-74/egyptian-id-ocr/internal/idcard/domain"
)

// Processor extracts a FieldRecord from a card image.
// Data-quality problems surface inside the record (sentinels and the
// error flag); a returned error means an unexpected processing fault
// (engine transport failure, internal panic), never bad card data.
type Processor interface {
	// Process extracts structured fields from card image bytes.
	// The image data should NOT be retained after processing.
	Process(ctx context.Context, image []byte) (*domain.FieldRecord, error)

	// Name returns the processor name for logging
	Name() string
}
