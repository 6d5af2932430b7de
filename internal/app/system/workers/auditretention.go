// internal/app/system/workers/auditretention.go
package workers

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Purger deletes audit events recorded before a cutoff.
type Purger interface {
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// AuditRetention is a background worker that removes audit events older
// than the retention period.
type AuditRetention struct {
	store     Purger
	log       *zap.Logger
	interval  time.Duration
	retention time.Duration
	now       func() time.Time

	startOnce sync.Once
	stopOnce  sync.Once
	stopCh    chan struct{}
	wg        sync.WaitGroup
}

// NewAuditRetention creates the worker. It runs a purge every interval,
// deleting events older than retention.
func NewAuditRetention(store Purger, logger *zap.Logger, interval, retention time.Duration) *AuditRetention {
	if interval <= 0 {
		interval = time.Hour
	}
	return &AuditRetention{
		store:     store,
		log:       logger,
		interval:  interval,
		retention: retention,
		now:       time.Now,
		stopCh:    make(chan struct{}),
	}
}

// Start purges once and then begins the background loop. Calling it again
// does nothing.
func (w *AuditRetention) Start() {
	w.startOnce.Do(func() {
		w.wg.Add(1)
		go w.run()
		w.log.Info("audit retention worker started",
			zap.Duration("interval", w.interval),
			zap.Duration("retention", w.retention))
	})
}

// Stop signals the worker to stop and waits for it to finish. Safe to call
// more than once, and on a worker that never started.
func (w *AuditRetention) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.wg.Wait()
		w.log.Info("audit retention worker stopped")
	})
}

func (w *AuditRetention) run() {
	defer w.wg.Done()

	w.Purge()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.Purge()
		}
	}
}

// Purge runs one pass and returns the number of events removed.
func (w *AuditRetention) Purge() int64 {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := w.now().UTC().Add(-w.retention)
	count, err := w.store.PurgeBefore(ctx, cutoff)
	if err != nil {
		w.log.Error("failed to purge audit events", zap.Error(err))
		return 0
	}

	if count > 0 {
		w.log.Info("purged audit events", zap.Int64("count", count), zap.Time("cutoff", cutoff))
	}
	return count
}
