package api

import (
	"net/http"

	"wheelshare/internal/domain/resource"
	reqdto "wheelshare/internal/handler/dto/request"
	resdto "wheelshare/internal/handler/dto/response"
	"wheelshare/internal/handler/httperr"
	"wheelshare/internal/pkg/config"
	"wheelshare/internal/usecase/commands"
	"wheelshare/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	cmds         commands.ReservationCommands
	q            queries.ReservationQueries
	defaultHours int
}

func NewReservationHandler(cmds commands.ReservationCommands, q queries.ReservationQueries, cfg config.Config) *ReservationHandler {
	return &ReservationHandler{
		cmds:         cmds,
		q:            q,
		defaultHours: cfg.Reservation.DefaultServiceHours,
	}
}

var (
	vehicleKind  = resource.KindVehicle
	mechanicKind = resource.KindMechanic
)

// @Summary Create reservation
// @Description Book a vehicle (startDate, endDate) or request a mechanic service (scheduledDate, estimatedHours)
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	h.create(c, nil)
}

// @Summary Create booking
// @Description Book a vehicle; the resource must be a vehicle listing
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReservationRequest true "Booking request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings [post]
func (h *ReservationHandler) CreateBooking(c *gin.Context) {
	h.create(c, &vehicleKind)
}

// @Summary Create service request
// @Description Request a mechanic service; the resource must be a mechanic listing
// @Tags mechanic-services
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReservationRequest true "Service request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /mechanic-services [post]
func (h *ReservationHandler) CreateServiceRequest(c *gin.Context) {
	h.create(c, &mechanicKind)
}

func (h *ReservationHandler) create(c *gin.Context, kind *resource.Kind) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	in, err := req.ToInput(kind, h.defaultHours)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	view, err := h.cmds.CreateReservation(c.Request.Context(), actor, in)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromReservationView(view))
}

// @Summary Update reservation status
// @Description Approve/accept, decline, cancel or complete a reservation
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.UpdateStatusRequest true "Target status"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /reservations/{id}/status [put]
func (h *ReservationHandler) UpdateStatus(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req reqdto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	view, err := h.cmds.UpdateStatus(c.Request.Context(), actor, id, req.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Get reservation
// @Description Visible to the requester, the provider and admins
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary List reservations
// @Description Reservations the caller requested or provides, newest first. Admins see all.
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param kind query string false "vehicle or mechanic"
// @Param status query string false "Status filter"
// @Param cursor query string false "Cursor from a previous page"
// @Param limit query int false "Page size (1-200)"
// @Success 200 {object} resdto.ReservationPageResponse
// @Failure 400 {object} httperr.Response
// @Router /reservations [get]
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	h.list(c, nil)
}

// @Summary List bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.ReservationPageResponse
// @Router /bookings [get]
func (h *ReservationHandler) ListBookings(c *gin.Context) {
	h.list(c, &vehicleKind)
}

// @Summary List service requests
// @Tags mechanic-services
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.ReservationPageResponse
// @Router /mechanic-services [get]
func (h *ReservationHandler) ListServiceRequests(c *gin.Context) {
	h.list(c, &mechanicKind)
}

func (h *ReservationHandler) list(c *gin.Context, kind *resource.Kind) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var query reqdto.ListReservationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, err)
		return
	}
	opts, err := query.ToOptions(kind)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	page, err := h.q.ListFor(c.Request.Context(), actor, opts)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationPage(page))
}
