package components

import (
	"wheelshare/internal/domain/reservation"
	"wheelshare/internal/pkg/clock"
	"wheelshare/internal/pkg/config"
	"wheelshare/internal/pkg/password"
	"wheelshare/internal/usecase"
	"wheelshare/internal/usecase/commands"
	"wheelshare/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewReservationFactory,
	func() *password.Hasher {
		return password.NewHasher(password.DefaultCost)
	},
)

// NewReservationFactory prices vehicles per day and service requests per
// RESERVATION_SERVICE_PRICING.
func NewReservationFactory(clk clock.Clock, cfg config.ReservationConfig) *reservation.Factory {
	var mechanic reservation.PriceCalculator = reservation.NewQuoteOnAcceptCalculator()
	if cfg.ServicePricing == config.ServicePricingHourly {
		mechanic = reservation.NewHourlyRateCalculator()
	}
	return reservation.NewFactory(clk, reservation.NewDailyRateCalculator(), mechanic)
}

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewReservationCommands,
		commands.NewResourceCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		func(rs queries.ReservationReadStore, cfg config.ReservationConfig) queries.ReservationQueries {
			return queries.NewReservationQueries(rs, cfg.DefaultListLimit)
		},
		func(rs queries.ResourceReadStore, cfg config.ReservationConfig) queries.ResourceQueries {
			return queries.NewResourceQueries(rs, cfg.DefaultListLimit)
		},
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
