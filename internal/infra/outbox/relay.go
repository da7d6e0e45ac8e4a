// Package outbox moves events committed with business transactions to the broker.
package outbox

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"wheelshare/internal/pkg/clock"
	"wheelshare/internal/pkg/config"
	"wheelshare/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=relay.go -destination=../../../tests/mock/outbox/mock_relay.go -package=outboxmock

type Store interface {
	FetchPending(ctx context.Context, limit int) ([]shared.OutboxEvent, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error
	MarkFailed(ctx context.Context, ids []uuid.UUID, reason string) error
}

type Publisher interface {
	Publish(ctx context.Context, events []shared.OutboxEvent) error
}

// Relay polls the outbox and publishes pending events in batches. Delivery is
// at least once: a crash between publish and mark resends the batch.
type Relay struct {
	store     Store
	publisher Publisher
	clock     clock.Clock
	logger    *slog.Logger
	interval  time.Duration
	batch     int

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

const defaultInterval = 2 * time.Second

func NewRelay(store Store, publisher Publisher, clk clock.Clock, cfg config.EventsConfig, logger *slog.Logger) *Relay {
	interval := cfg.RelayInterval
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Relay{
		store:     store,
		publisher: publisher,
		clock:     clk,
		logger:    logger,
		interval:  interval,
		batch:     cfg.RelayBatch,
	}
}

// RelayOnce publishes one batch and returns how many events went out.
func (r *Relay) RelayOnce(ctx context.Context) (int, error) {
	events, err := r.store.FetchPending(ctx, r.batch)
	if err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, nil
	}

	ids := make([]uuid.UUID, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}

	if err := r.publisher.Publish(ctx, events); err != nil {
		if markErr := r.store.MarkFailed(ctx, ids, err.Error()); markErr != nil {
			r.logger.Error("failed to record outbox publish failure", "error", markErr.Error())
		}
		return 0, err
	}

	if err := r.store.MarkPublished(ctx, ids, r.clock.Now()); err != nil {
		return 0, err
	}
	return len(events), nil
}

// Start launches the polling loop. Calling Start twice is a no-op.
func (r *Relay) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.done = make(chan struct{})
	go r.loop(ctx, r.done)
}

// Stop ends the loop and waits for the in-flight batch, or for ctx.
func (r *Relay) Stop(ctx context.Context) error {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Relay) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := r.RelayOnce(ctx)
			if err != nil {
				if ctx.Err() == nil {
					r.logger.Warn("outbox relay failed", "error", err.Error())
				}
				continue
			}
			if n > 0 {
				r.logger.Debug("outbox events published", "count", n)
			}
		}
	}
}
