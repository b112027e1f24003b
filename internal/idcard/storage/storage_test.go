package storage_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarayman-74/egyptian-id-ocr/internal/idcard/domain"
	"github.com/omarayman-74/egyptian-id-ocr/internal/idcard/storage"
)

func TestTempStorage_StoreAndGet(t *testing.T) {
	store := storage.NewTempStorage(time.Minute)

	job := &domain.ExtractionJob{
		JobID:     storage.GenerateJobID(),
		Status:    domain.StatusProcessing,
		CreatedAt: time.Now().UTC(),
	}
	store.StoreJob(job)

	got := store.GetJob(job.JobID)
	require.NotNil(t, got)
	assert.Equal(t, job.JobID, got.JobID)
	assert.Equal(t, domain.StatusProcessing, got.Status)

	assert.Nil(t, store.GetJob("missing"))
}

func TestTempStorage_UpdateJob(t *testing.T) {
	store := storage.NewTempStorage(time.Minute)

	job := &domain.ExtractionJob{
		JobID:     storage.GenerateJobID(),
		Status:    domain.StatusProcessing,
		CreatedAt: time.Now().UTC(),
	}
	store.StoreJob(job)

	store.UpdateJob(job.JobID, func(j *domain.ExtractionJob) {
		j.Status = domain.StatusCompleted
		j.Record = domain.NewFieldRecord()
	})

	got := store.GetJob(job.JobID)
	require.NotNil(t, got)
	assert.Equal(t, domain.StatusCompleted, got.Status)
	require.NotNil(t, got.Record)
	assert.Equal(t, "0", got.Record.Birthdate)

	// Updating a missing job is a no-op, not a panic.
	store.UpdateJob("missing", func(j *domain.ExtractionJob) {
		j.Status = domain.StatusFailed
	})
}

func TestTempStorage_DeleteJob(t *testing.T) {
	store := storage.NewTempStorage(time.Minute)

	job := &domain.ExtractionJob{JobID: "abc", CreatedAt: time.Now().UTC()}
	store.StoreJob(job)
	store.DeleteJob("abc")

	assert.Nil(t, store.GetJob("abc"))
}

func TestTempStorage_ExpiredJobsSwept(t *testing.T) {
	store := storage.NewTempStorage(40 * time.Millisecond)

	stale := &domain.ExtractionJob{
		JobID:     "stale",
		CreatedAt: time.Now().UTC().Add(-time.Hour),
	}
	store.StoreJob(stale)

	assert.Eventually(t, func() bool {
		return store.GetJob("stale") == nil
	}, time.Second, 10*time.Millisecond)
}

func TestGenerateJobID(t *testing.T) {
	a := storage.GenerateJobID()
	b := storage.GenerateJobID()

	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}

func TestZeroBytes(t *testing.T) {
	buf := []byte{1, 2, 3, 4}
	storage.ZeroBytes(buf)
	assert.Equal(t, []byte{0, 0, 0, 0}, buf)
}
