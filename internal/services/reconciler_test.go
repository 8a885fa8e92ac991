package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"eventspot/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func uploadRecord(publicID, url string, age time.Duration) models.UploadRecord {
	return models.UploadRecord{
		PublicID:  publicID,
		URL:       url,
		CreatedAt: time.Now().Add(-age),
	}
}

func TestReconcilerSweepCollectsOrphans(t *testing.T) {
	uploads := &fakeUploadRepo{
		records: []models.UploadRecord{
			uploadRecord("orphan", "https://img.test/orphan.png", 2*time.Hour),
			uploadRecord("referenced", "https://img.test/used.png", 2*time.Hour),
			uploadRecord("fresh", "https://img.test/fresh.png", time.Minute),
		},
		referenced: map[string]bool{"https://img.test/used.png": true},
	}
	store := &fakeStore{}
	rec := NewReconciler(uploads, store, time.Minute, time.Hour, zap.NewNop())

	require.NoError(t, rec.Sweep(context.Background()))

	assert.Equal(t, []string{"orphan"}, store.destroyed)

	remaining := make([]string, 0, len(uploads.records))
	for _, record := range uploads.records {
		remaining = append(remaining, record.PublicID)
	}
	assert.ElementsMatch(t, []string{"referenced", "fresh"}, remaining)
}

func TestReconcilerSweepKeepsRecordOnDestroyFailure(t *testing.T) {
	uploads := &fakeUploadRepo{
		records: []models.UploadRecord{
			uploadRecord("orphan", "https://img.test/orphan.png", 2*time.Hour),
		},
	}
	store := &fakeStore{destroyErr: errors.New("store down")}
	rec := NewReconciler(uploads, store, time.Minute, time.Hour, zap.NewNop())

	require.NoError(t, rec.Sweep(context.Background()))

	require.Len(t, uploads.records, 1, "record must survive so the next sweep retries")
}

func TestReconcilerRunStopsOnContextCancel(t *testing.T) {
	rec := NewReconciler(&fakeUploadRepo{}, &fakeStore{}, time.Millisecond, time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		rec.Run(ctx)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reconciler did not stop after cancellation")
	}
}
