package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/DanielPopoola/walletgate/internal/domain"
)

// StalePendingStore lists audit entries that never reached a terminal state.
type StalePendingStore interface {
	FindStalePending(ctx context.Context, olderThan time.Duration, limit int) ([]*domain.AuditLogEntry, error)
}

// AuditReconciler periodically surfaces audit entries stuck in pending.
// A pending entry older than maxAge means a transfer attempt died on an
// infrastructure fault after the entry was opened; the closed failure-code
// set cannot describe such faults, so the entries are reported for operator
// follow-up rather than closed automatically.
type AuditReconciler struct {
	audit     StalePendingStore
	interval  time.Duration
	maxAge    time.Duration
	batchSize int
	logger    *slog.Logger
}

func NewAuditReconciler(
	audit StalePendingStore,
	interval time.Duration,
	maxAge time.Duration,
	batchSize int,
	logger *slog.Logger,
) *AuditReconciler {
	return &AuditReconciler{
		audit:     audit,
		interval:  interval,
		maxAge:    maxAge,
		batchSize: batchSize,
		logger:    logger,
	}
}

func (r *AuditReconciler) Start(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("starting audit reconciler",
		"interval", r.interval,
		"max_age", r.maxAge,
		"batch_size", r.batchSize,
	)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("stopping audit reconciler")
			return
		case <-ticker.C:
			r.run(ctx)
		}
	}
}

// RunOnce executes a single sweep.
func (r *AuditReconciler) RunOnce(ctx context.Context) {
	r.run(ctx)
}

func (r *AuditReconciler) run(ctx context.Context) {
	stale, err := r.audit.FindStalePending(ctx, r.maxAge, r.batchSize)
	if err != nil {
		r.logger.Error("failed to fetch stale pending audit entries", "error", err)
		return
	}

	if len(stale) == 0 {
		return
	}

	r.logger.Warn("found audit entries stuck in pending", "count", len(stale))

	for _, entry := range stale {
		r.logger.Warn("transfer attempt never reached a terminal state",
			"request_id", entry.RequestID,
			"payer_id", entry.PayerID,
			"payee_id", entry.PayeeID,
			"amount_cents", entry.Amount.Cents(),
			"age", time.Since(entry.CreatedAt).Round(time.Second),
		)
	}
}
