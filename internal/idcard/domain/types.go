package domain

import "time"

// ReadState classifies how much usable structure the general OCR engine
// recovered from the card's text region.
type ReadState string

const (
	// ReadStateFull means the general engine returned the expected line
	// count for a clean capture and fields can be taken positionally.
	ReadStateFull ReadState = "full"
	// ReadStateDegraded means any other line count; fields are recovered
	// from the deep engine with the general engine as a secondary source.
	ReadStateDegraded ReadState = "degraded"
	// ReadStateFailed means neither engine produced usable text.
	ReadStateFailed ReadState = "failed"
)

// FullReadLineCount is the line count the general engine produces for a
// clean front-side capture (two name lines, two address lines, blanks
// between them, trailing newline artifacts).
const FullReadLineCount = 8

// FieldRecord is the final extraction output for one card image.
// Sentinel "0" marks a field that could not be determined; ID 0 likewise.
type FieldRecord struct {
	FirstName  string    `json:"first_name"`
	SecondName string    `json:"second_name"`
	Address    string    `json:"address"`
	ID         int64     `json:"id"`
	Birthdate  string    `json:"birthdate"`
	Error      int       `json:"error"`
	Message    string    `json:"message,omitempty"`
	State      ReadState `json:"-"`
}

// NewFieldRecord returns a record with every field at its sentinel value.
func NewFieldRecord() *FieldRecord {
	return &FieldRecord{
		FirstName:  "0",
		SecondName: "0",
		Address:    "0",
		ID:         0,
		Birthdate:  "0",
	}
}

// ExtractionStatus represents the processing state of an extraction job
type ExtractionStatus string

const (
	StatusProcessing ExtractionStatus = "processing"
	StatusCompleted  ExtractionStatus = "completed"
	StatusFailed     ExtractionStatus = "failed"
)

// ExtractionJob represents a complete extraction job
type ExtractionJob struct {
	JobID     string           `json:"job_id"`
	Status    ExtractionStatus `json:"status"`
	Record    *FieldRecord     `json:"record,omitempty"`
	Error     string           `json:"error,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}
