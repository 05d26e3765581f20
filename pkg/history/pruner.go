package history

import (
	"context"
	"log/slog"
	"time"
)

// Pruner enforces the retention period on stored records.
type Pruner struct {
	store     *Store
	retention time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

// NewPruner creates a pruner that removes records older than retention.
// A non-positive retention keeps everything.
func NewPruner(store *Store, retention time.Duration) *Pruner {
	return &Pruner{
		store:     store,
		retention: retention,
		logger:    store.logger,
		now:       time.Now,
	}
}

// Prune deletes records older than the retention period.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	if p.retention <= 0 {
		p.logger.Debug("retention disabled, skipping prune")
		return 0, nil
	}

	cutoff := p.now().Add(-p.retention)
	deleted, err := p.store.PruneBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		p.logger.Info("pruned parse history",
			"deleted_count", deleted,
			"cutoff", cutoff.Format(time.RFC3339),
		)
	} else {
		p.logger.Debug("prune completed, no records deleted")
	}

	return deleted, nil
}
