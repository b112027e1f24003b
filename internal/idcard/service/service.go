package service

import (
	"context"
	"time"

	"github.com/omarayman-74/egyptian-id-ocr/internal/idcard/audit"
	"github.com/omarayman-74/egyptian-id-ocr/internal/idcard/domain"
	"github.com/omarayman-74/egyptian-id-ocr/internal/idcard/processor"
	"github.com/omarayman-74/egyptian-id-ocr/internal/idcard/storage"
	"github.com/omarayman-74/egyptian-id-ocr/pkg/errors"
	"github.com/omarayman-74/egyptian-id-ocr/pkg/logger"
)

// Service orchestrates ID card extraction jobs
type Service struct {
	store     *storage.TempStorage
	processor processor.Processor
	auditRepo *audit.Repository
	log       *logger.Logger
	timeout   time.Duration
}

// New creates a new extraction service. auditRepo may be nil when the
// database is disabled.
func New(store *storage.TempStorage, proc processor.Processor, auditRepo *audit.Repository, log *logger.Logger) *Service {
	return &Service{
		store:     store,
		processor: proc,
		auditRepo: auditRepo,
		log:       log.WithComponent("idcard_service"),
		timeout:   2 * time.Minute,
	}
}

// StartExtraction creates a job and processes the card image asynchronously.
// The image slice is owned by the service from this point on and is zeroed
// once processing finishes.
func (s *Service) StartExtraction(ctx context.Context, image []byte) (*domain.ExtractionJob, error) {
	if len(image) == 0 {
		return nil, errors.BadRequest("image is empty")
	}

	job := &domain.ExtractionJob{
		JobID:     storage.GenerateJobID(),
		Status:    domain.StatusProcessing,
		CreatedAt: time.Now().UTC(),
	}
	s.store.StoreJob(job)

	s.log.Info().
		Str("job_id", job.JobID).
		Int("image_bytes", len(image)).
		Msg("Extraction job created")

	go s.processAsync(job.JobID, image)

	return job, nil
}

// GetJob returns the current state of an extraction job
func (s *Service) GetJob(jobID string) (*domain.ExtractionJob, error) {
	job := s.store.GetJob(jobID)
	if job == nil {
		return nil, errors.NotFound("extraction job")
	}
	return job, nil
}

func (s *Service) processAsync(jobID string, image []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	defer storage.ZeroBytes(image)

	start := time.Now()
	record, err := s.processor.Process(ctx, image)
	duration := time.Since(start)

	if err != nil {
		s.log.Error().
			Err(err).
			Str("job_id", jobID).
			Dur("duration", duration).
			Msg("Extraction failed")

		// Callers still get a well-formed record on engine faults,
		// with every field at its sentinel and the error flag raised.
		fault := domain.NewFieldRecord()
		fault.Error = 1
		fault.Message = err.Error()
		fault.State = domain.ReadStateFailed

		s.store.UpdateJob(jobID, func(job *domain.ExtractionJob) {
			job.Status = domain.StatusFailed
			job.Record = fault
			job.Error = err.Error()
		})
		s.writeAudit(jobID, fault, duration)
		return
	}

	s.log.Info().
		Str("job_id", jobID).
		Str("read_state", string(record.State)).
		Int("error_flag", record.Error).
		Dur("duration", duration).
		Msg("Extraction completed")

	s.store.UpdateJob(jobID, func(job *domain.ExtractionJob) {
		job.Status = domain.StatusCompleted
		job.Record = record
	})
	s.writeAudit(jobID, record, duration)
}

func (s *Service) writeAudit(jobID string, record *domain.FieldRecord, duration time.Duration) {
	if s.auditRepo == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	entry := audit.Entry{
		JobID:      jobID,
		ErrorFlag:  record.Error,
		DurationMS: duration.Milliseconds(),
	}
	if err := s.auditRepo.Record(ctx, entry); err != nil {
		s.log.Warn().Err(err).Str("job_id", jobID).Msg("Failed to write audit entry")
	}
}
