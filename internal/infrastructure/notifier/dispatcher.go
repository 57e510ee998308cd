package notifier

import (
	"context"
	"log/slog"
	"time"

	"github.com/DanielPopoola/walletgate/internal/application"
)

// Sender delivers one notification.
type Sender interface {
	Send(ctx context.Context, n application.Notification) error
}

// Dispatcher queues notifications for out-of-band delivery with bounded
// retries and fixed backoff. Failures are logged, never surfaced: delivery
// must not affect the transfer that triggered it.
type Dispatcher struct {
	sender      Sender
	queue       chan application.Notification
	maxAttempts int
	backoff     time.Duration
	logger      *slog.Logger
}

func NewDispatcher(
	sender Sender,
	queueSize int,
	maxAttempts int,
	backoff time.Duration,
	logger *slog.Logger,
) *Dispatcher {
	return &Dispatcher{
		sender:      sender,
		queue:       make(chan application.Notification, queueSize),
		maxAttempts: maxAttempts,
		backoff:     backoff,
		logger:      logger,
	}
}

// Dispatch enqueues without blocking. A full queue drops the notification;
// it is fire-and-forget by contract.
func (d *Dispatcher) Dispatch(n application.Notification) {
	select {
	case d.queue <- n:
	default:
		d.logger.Warn("notification queue full, dropping", "email", n.Email)
	}
}

// Start consumes the queue until ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	d.logger.Info("notification dispatcher started",
		"max_attempts", d.maxAttempts,
		"backoff", d.backoff,
	)

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("notification dispatcher stopping")
			return
		case n := <-d.queue:
			d.deliver(ctx, n)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, n application.Notification) {
	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		err := d.sender.Send(ctx, n)
		if err == nil {
			d.logger.Info("notification delivered",
				"email", n.Email,
				"attempt", attempt,
			)
			return
		}

		d.logger.Warn("notification delivery failed",
			"email", n.Email,
			"attempt", attempt,
			"error", err,
		)

		if attempt == d.maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(d.backoff):
		}
	}

	d.logger.Error("notification dropped after retries",
		"email", n.Email,
		"attempts", d.maxAttempts,
	)
}
