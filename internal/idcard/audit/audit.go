package audit

import (
	"context"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/omarayman-74/egyptian-id-ocr/pkg/errors"
	"github.com/omarayman-74/egyptian-id-ocr/pkg/logger"
)

// Entry records the outcome of one extraction without any card content.
// Only the job ID, the error flag and timing are persisted; names,
// addresses and identifiers never reach the database.
type Entry struct {
	JobID      string    `db:"job_id"`
	ErrorFlag  int       `db:"error_flag"`
	DurationMS int64     `db:"duration_ms"`
	CreatedAt  time.Time `db:"created_at"`
}

// Repository persists extraction audit entries
type Repository struct {
	db  *sqlx.DB
	log *logger.Logger
}

// NewRepository creates a new audit repository
func NewRepository(db *sqlx.DB, log *logger.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.WithComponent("audit_repository"),
	}
}

// Record inserts an audit entry for a finished extraction
func (r *Repository) Record(ctx context.Context, entry Entry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO extraction_audit (job_id, error_flag, duration_ms, created_at)
		VALUES (:job_id, :error_flag, :duration_ms, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return errors.Wrap(err, "INTERNAL_ERROR", "failed to record audit entry", http.StatusInternalServerError)
	}
	return nil
}

// RecentFailures returns the number of flagged extractions in the given window
func (r *Repository) RecentFailures(ctx context.Context, window time.Duration) (int, error) {
	query := `
		SELECT COUNT(*) FROM extraction_audit
		WHERE error_flag = 1 AND created_at >= $1`

	var count int
	since := time.Now().UTC().Add(-window)
	if err := r.db.GetContext(ctx, &count, query, since); err != nil {
		return 0, errors.Wrap(err, "INTERNAL_ERROR", "failed to count recent failures", http.StatusInternalServerError)
	}
	return count, nil
}
