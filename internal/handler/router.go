package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"wheelshare/internal/domain/user"
	"wheelshare/internal/handler/api"
	"wheelshare/internal/handler/middleware"
	"wheelshare/internal/pkg/config"
	"wheelshare/internal/pkg/errs"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth        *api.AuthHandler
	Reservation *api.ReservationHandler
	Resource    *api.ResourceHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware) error {
	if err := RegisterValidators(); err != nil {
		return errs.Wrap(err, "failed to register request validators")
	}
	setupMiddleware(engine, cfg)
	setupRoutes(engine, h, authMiddleware)
	return nil
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireAuth := authMiddleware.RequireAuth()
	listers := authMiddleware.RequireRole(user.RoleCarOwner, user.RoleMechanic, user.RoleAdmin)

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/register", Handler: h.Auth.Register},
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
				{Method: http.MethodPost, Path: "/refresh", Handler: h.Auth.Refresh},
			})

			authRequired := auth.Group("")
			authRequired.Use(requireAuth)
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		resources := apiGroup.Group("/resources")
		{
			addRoutes(resources, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Resource.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Resource.Get},
				{Method: http.MethodGet, Path: "/:id/booked-ranges", Handler: h.Resource.BookedRanges},
				{Method: http.MethodPost, Path: "", Handler: h.Resource.Create, Mw: []gin.HandlerFunc{requireAuth, listers}},
				{Method: http.MethodPatch, Path: "/:id", Handler: h.Resource.Update, Mw: []gin.HandlerFunc{requireAuth}},
			})
		}

		reservations := apiGroup.Group("/reservations")
		reservations.Use(requireAuth)
		{
			addRoutes(reservations, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Reservation.CreateReservation},
				{Method: http.MethodGet, Path: "", Handler: h.Reservation.ListReservations},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Reservation.GetReservation},
				{Method: http.MethodPut, Path: "/:id/status", Handler: h.Reservation.UpdateStatus},
			})
		}

		// kind-fixed aliases for existing clients
		bookings := apiGroup.Group("/bookings")
		bookings.Use(requireAuth)
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Reservation.CreateBooking},
				{Method: http.MethodGet, Path: "", Handler: h.Reservation.ListBookings},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Reservation.GetReservation},
				{Method: http.MethodPut, Path: "/:id/status", Handler: h.Reservation.UpdateStatus},
			})
		}

		services := apiGroup.Group("/mechanic-services")
		services.Use(requireAuth)
		{
			addRoutes(services, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Reservation.CreateServiceRequest},
				{Method: http.MethodGet, Path: "", Handler: h.Reservation.ListServiceRequests},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Reservation.GetReservation},
				{Method: http.MethodPut, Path: "/:id/status", Handler: h.Reservation.UpdateStatus},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
