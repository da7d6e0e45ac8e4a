package api

import (
	"net/http"

	"wheelshare/internal/domain/reservation"
	"wheelshare/internal/handler/httperr"
	"wheelshare/internal/handler/middleware"
	"wheelshare/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errNoActor = errs.New("authenticated user missing from context")

// requireActor aborts with 500 when RequireAuth did not run for the route.
func requireActor(c *gin.Context) (reservation.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errNoActor, "Internal server error", nil)
		return reservation.Actor{}, false
	}
	return actor, true
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}

func badRequest(c *gin.Context, err error) {
	httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", err.Error())
}
