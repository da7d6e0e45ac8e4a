package api

import (
	"net/http"

	reqdto "wheelshare/internal/handler/dto/request"
	resdto "wheelshare/internal/handler/dto/response"
	"wheelshare/internal/handler/httperr"
	"wheelshare/internal/usecase/commands"
	"wheelshare/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ResourceHandler struct {
	cmds commands.ResourceCommands
	q    queries.ResourceQueries
}

func NewResourceHandler(cmds commands.ResourceCommands, q queries.ResourceQueries) *ResourceHandler {
	return &ResourceHandler{cmds: cmds, q: q}
}

// @Summary Register resource
// @Description Car owners list vehicles, mechanics list services
// @Tags resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateResourceRequest true "Resource"
// @Success 201 {object} resdto.ResourceResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /resources [post]
func (h *ResourceHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req reqdto.CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	view, err := h.cmds.CreateResource(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromResourceView(view))
}

// @Summary Update resource
// @Description Partial update by the owner or an admin, including the availability toggle
// @Tags resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param request body reqdto.UpdateResourceRequest true "Changes"
// @Success 200 {object} resdto.ResourceResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /resources/{id} [patch]
func (h *ResourceHandler) Update(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	view, err := h.cmds.UpdateResource(c.Request.Context(), actor, id, req.ToChanges())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromResourceView(view))
}

// @Summary Get resource
// @Description Includes completed rental count and total earnings
// @Tags resources
// @Produce json
// @Param id path string true "Resource ID"
// @Success 200 {object} resdto.ResourceResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /resources/{id} [get]
func (h *ResourceHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromResourceView(view))
}

// @Summary List resources
// @Tags resources
// @Produce json
// @Param kind query string false "vehicle or mechanic"
// @Param ownerId query string false "Owner filter"
// @Param location query string false "Case-insensitive location substring"
// @Param minUnitPriceCents query int false "Minimum unit price in cents"
// @Param maxUnitPriceCents query int false "Maximum unit price in cents"
// @Param showAll query bool false "Include unavailable listings"
// @Param cursor query string false "Cursor from a previous page"
// @Param limit query int false "Page size (1-200)"
// @Success 200 {object} resdto.ResourcePageResponse
// @Failure 400 {object} httperr.Response
// @Router /resources [get]
func (h *ResourceHandler) List(c *gin.Context) {
	var query reqdto.ListResourcesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, err)
		return
	}
	opts, err := query.ToOptions()
	if err != nil {
		badRequest(c, err)
		return
	}

	page, err := h.q.List(c.Request.Context(), opts)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromResourcePage(page))
}

// @Summary Booked ranges
// @Description Pending and approved windows intersecting [from, to], for calendars
// @Tags resources
// @Produce json
// @Param id path string true "Resource ID"
// @Param from query string true "RFC 3339 start"
// @Param to query string true "RFC 3339 end"
// @Success 200 {array} resdto.BookedRangeResponse
// @Failure 400 {object} httperr.Response
// @Router /resources/{id}/booked-ranges [get]
func (h *ResourceHandler) BookedRanges(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var query reqdto.BookedRangesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, err)
		return
	}

	ranges, err := h.q.BookedRanges(c.Request.Context(), id, query.From, query.To)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookedRanges(ranges))
}
