package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarayman-74/egyptian-id-ocr/internal/idcard/domain"
	"github.com/omarayman-74/egyptian-id-ocr/internal/idcard/service"
	"github.com/omarayman-74/egyptian-id-ocr/internal/idcard/storage"
	"github.com/omarayman-74/egyptian-id-ocr/pkg/errors"
	"github.com/omarayman-74/egyptian-id-ocr/pkg/logger"
)

// fakeProcessor returns a canned record or error.
type fakeProcessor struct {
	record *domain.FieldRecord
	err    error
}

func (f *fakeProcessor) Process(_ context.Context, _ []byte) (*domain.FieldRecord, error) {
	return f.record, f.err
}

func (f *fakeProcessor) Name() string { return "fake" }

func newService(proc *fakeProcessor) *service.Service {
	log := logger.New("test", "development")
	store := storage.NewTempStorage(time.Minute)
	return service.New(store, proc, nil, log)
}

func waitForStatus(t *testing.T, svc *service.Service, jobID string, want domain.ExtractionStatus) *domain.ExtractionJob {
	t.Helper()
	var job *domain.ExtractionJob
	require.Eventually(t, func() bool {
		j, err := svc.GetJob(jobID)
		if err != nil || j.Status != want {
			return false
		}
		job = j
		return true
	}, 2*time.Second, 10*time.Millisecond)
	return job
}

func TestService_StartExtraction_Completes(t *testing.T) {
	record := &domain.FieldRecord{
		FirstName:  "محمد احمد",
		SecondName: "على حسن",
		Address:    "شارع النيل الجيزة م ٢٥",
		ID:         29001010123456,
		Birthdate:  "1990-01-01",
		State:      domain.ReadStateFull,
	}
	svc := newService(&fakeProcessor{record: record})

	job, err := svc.StartExtraction(context.Background(), []byte("img"))
	require.NoError(t, err)
	assert.NotEmpty(t, job.JobID)
	assert.Equal(t, domain.StatusProcessing, job.Status)

	done := waitForStatus(t, svc, job.JobID, domain.StatusCompleted)
	require.NotNil(t, done.Record)
	assert.Equal(t, int64(29001010123456), done.Record.ID)
	assert.Equal(t, "1990-01-01", done.Record.Birthdate)
	assert.Empty(t, done.Error)
}

func TestService_StartExtraction_FaultRecord(t *testing.T) {
	svc := newService(&fakeProcessor{err: errors.Internal("engine down")})

	job, err := svc.StartExtraction(context.Background(), []byte("img"))
	require.NoError(t, err)

	done := waitForStatus(t, svc, job.JobID, domain.StatusFailed)
	require.NotNil(t, done.Record)
	assert.Equal(t, 1, done.Record.Error)
	assert.Equal(t, int64(0), done.Record.ID)
	assert.Equal(t, "0", done.Record.Birthdate)
	assert.Equal(t, "0", done.Record.FirstName)
	assert.NotEmpty(t, done.Record.Message)
	assert.NotEmpty(t, done.Error)
}

func TestService_StartExtraction_EmptyImage(t *testing.T) {
	svc := newService(&fakeProcessor{})

	_, err := svc.StartExtraction(context.Background(), nil)
	require.Error(t, err)

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.StatusCode)
}

func TestService_StartExtraction_ZeroesImage(t *testing.T) {
	svc := newService(&fakeProcessor{record: domain.NewFieldRecord()})

	image := []byte{10, 20, 30}
	job, err := svc.StartExtraction(context.Background(), image)
	require.NoError(t, err)

	waitForStatus(t, svc, job.JobID, domain.StatusCompleted)
	assert.Equal(t, []byte{0, 0, 0}, image)
}

func TestService_GetJob_NotFound(t *testing.T) {
	svc := newService(&fakeProcessor{})

	_, err := svc.GetJob("missing")
	require.Error(t, err)

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.StatusCode)
}
