package bootstrap

import (
	"log/slog"
	"time"

	"wheelshare/internal/handler/middleware"
	"wheelshare/internal/pkg/config"

	"go.uber.org/fx"
)

const connectTimeout = 10 * time.Second

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
	),
)

// NewLogger also installs the logger as the slog default.
func NewLogger(cfg config.Config) *slog.Logger {
	return middleware.NewLogger(cfg.Log).GetSlogLogger()
}
