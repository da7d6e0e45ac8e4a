package httperr

import (
	"net/http"

	"wheelshare/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
		Kind    string `json:"kind,omitempty"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

const internalMessage = "Internal server error"

var kindStatus = map[error]struct {
	status int
	label  string
}{
	errs.ErrValidation:    {http.StatusBadRequest, "validation"},
	errs.ErrNotFound:      {http.StatusNotFound, "not_found"},
	errs.ErrAuthorization: {http.StatusForbidden, "authorization"},
	errs.ErrAvailability:  {http.StatusConflict, "availability"},
	errs.ErrTiming:        {http.StatusUnprocessableEntity, "timing"},
}

// FromError maps a classified error to its status and client message.
// Unclassified errors become a 500 with a generic message.
func FromError(err error) Response {
	resp := Response{Status: http.StatusInternalServerError}
	resp.Error.Message = internalMessage

	kind := errs.KindOf(err)
	if kind == nil {
		return resp
	}
	m := kindStatus[kind]
	resp.Status = m.status
	resp.Error.Kind = m.label
	resp.Error.Message = errs.Reason(err)
	return resp
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail
	abort(c, err, resp)
}

// Abort renders err through FromError.
func Abort(c *gin.Context, err error) {
	abort(c, err, FromError(err))
}

func abort(c *gin.Context, err error, resp Response) {
	_ = c.Error(&gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(resp.Status, resp)
}
