package components

import (
	"context"
	"log/slog"

	"wheelshare/internal/infra/messaging"
	"wheelshare/internal/infra/outbox"
	"wheelshare/internal/pkg/clock"
	"wheelshare/internal/pkg/config"

	"go.uber.org/fx"
)

var EventsModule = fx.Module("events",
	fx.Invoke(RegisterRelay),
)

// RegisterRelay runs the outbox relay for the lifetime of the app when
// EVENTS_ENABLED is set. Otherwise events stay in the outbox.
func RegisterRelay(lc fx.Lifecycle, cfg config.Config, store outbox.Store, clk clock.Clock, logger *slog.Logger) error {
	if !cfg.Events.Enabled {
		logger.Info("outbox relay disabled")
		return nil
	}

	publisher, err := messaging.NewKafkaPublisher(cfg.Events, logger)
	if err != nil {
		return err
	}
	relay := outbox.NewRelay(store, publisher, clk, cfg.Events, logger)

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			relay.Start()
			logger.Info("outbox relay started", "topic", cfg.Events.KafkaTopic, "interval", cfg.Events.RelayInterval)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			stopErr := relay.Stop(ctx)
			if err := publisher.Close(); err != nil {
				logger.Error("failed to close kafka writer", "error", err.Error())
			}
			return stopErr
		},
	})
	return nil
}
