package services

import (
	"context"
	"time"

	"eventspot/internal/imagestore"
	"eventspot/internal/repositories"
	"go.uber.org/zap"
)

// Reconciler garbage-collects uploads orphaned by a persistence failure:
// recorded remote objects that no event references once the grace period has
// passed. Upload and persist are not transactional, so instead of rolling
// back inline the pipeline leaves a record and this loop cleans up after it.
type Reconciler struct {
	uploads     repositories.UploadRepository
	store       imagestore.Store
	interval    time.Duration
	gracePeriod time.Duration
	logger      *zap.Logger
}

func NewReconciler(
	uploads repositories.UploadRepository,
	store imagestore.Store,
	interval, gracePeriod time.Duration,
	logger *zap.Logger,
) *Reconciler {
	return &Reconciler{
		uploads:     uploads,
		store:       store,
		interval:    interval,
		gracePeriod: gracePeriod,
		logger:      logger,
	}
}

// Run sweeps on a fixed interval until the context is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.Sweep(ctx); err != nil {
				r.logger.Error("reconciler sweep failed", zap.Error(err))
			}
		}
	}
}

// Sweep destroys every unreferenced upload older than the grace period and
// drops its record. A destroy failure keeps the record so the next sweep
// retries it.
func (r *Reconciler) Sweep(ctx context.Context) error {
	cutoff := time.Now().Add(-r.gracePeriod)

	records, err := r.uploads.FindUnreferenced(ctx, cutoff)
	if err != nil {
		return err
	}

	for _, record := range records {
		if err := r.store.Destroy(ctx, record.PublicID); err != nil {
			r.logger.Warn("failed to destroy orphaned upload",
				zap.String("public_id", record.PublicID),
				zap.Error(err),
			)
			continue
		}
		if err := r.uploads.Delete(ctx, record.PublicID); err != nil {
			r.logger.Warn("failed to delete upload record",
				zap.String("public_id", record.PublicID),
				zap.Error(err),
			)
			continue
		}
		r.logger.Info("collected orphaned upload", zap.String("public_id", record.PublicID))
	}

	return nil
}
