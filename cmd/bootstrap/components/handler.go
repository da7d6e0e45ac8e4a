package components

import (
	"wheelshare/internal/handler"
	"wheelshare/internal/handler/api"
	"wheelshare/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewReservationHandler,
		api.NewResourceHandler,
		middleware.NewAuthMiddleware,
		func(auth *api.AuthHandler, res *api.ReservationHandler, rsc *api.ResourceHandler) handler.Handlers {
			return handler.Handlers{Auth: auth, Reservation: res, Resource: rsc}
		},
	),
	fx.Invoke(handler.NewRouter),
)
