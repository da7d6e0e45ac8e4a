package api

import (
	"net/http"

	"wheelshare/internal/domain/auth"
	reqdto "wheelshare/internal/handler/dto/request"
	resdto "wheelshare/internal/handler/dto/response"
	"wheelshare/internal/handler/httperr"
	"wheelshare/internal/handler/middleware"
	"wheelshare/internal/pkg/config"
	"wheelshare/internal/pkg/cookie"
	"wheelshare/internal/pkg/errs"
	"wheelshare/internal/usecase/commands"
	"wheelshare/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errRefreshTokenMissing = errs.New("refresh token missing")

type AuthHandler struct {
	cmds commands.AuthCommands
	q    queries.UserQueries
	cfg  config.Config
}

func NewAuthHandler(cmds commands.AuthCommands, q queries.UserQueries, cfg config.Config) *AuthHandler {
	return &AuthHandler{cmds: cmds, q: q, cfg: cfg}
}

// @Summary Register
// @Description Create a renter, car owner or mechanic account and sign in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.RegisterRequest true "Register request"
// @Success 201 {object} resdto.LoginResponse
// @Failure 400 {object} httperr.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req reqdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.cmds.Register(c.Request.Context(), req.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respondWithSession(c, http.StatusCreated, result)
}

// @Summary User login
// @Description Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.cmds.Login(c.Request.Context(), req.ToInput())
	if err != nil {
		switch {
		case errs.Is(err, auth.ErrInvalidCredentials):
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid email or password", nil)
		case errs.Is(err, auth.ErrInactiveAccount):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Account is inactive", nil)
		default:
			httperr.Abort(c, err)
		}
		return
	}
	h.respondWithSession(c, http.StatusOK, result)
}

// @Summary Refresh tokens
// @Description Exchange the refresh token (cookie or body) for a new pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.RefreshRequest false "Refresh token when not sent as a cookie"
// @Success 200 {object} resdto.RefreshResponse
// @Failure 401 {object} httperr.Response
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	token := cookie.GetRefreshToken(c)
	if token == "" {
		var req reqdto.RefreshRequest
		_ = c.ShouldBindJSON(&req)
		token = req.RefreshToken
	}
	if token == "" {
		httperr.AbortWithError(c, http.StatusUnauthorized, errRefreshTokenMissing, "Refresh token required", nil)
		return
	}

	pair, err := h.cmds.RefreshToken(c.Request.Context(), token)
	if err != nil {
		if errs.Is(err, commands.ErrInvalidRefreshToken) {
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid refresh token", nil)
			return
		}
		httperr.Abort(c, err)
		return
	}

	cookie.SetTokenCookies(c, h.cfg.Cookie, pair.AccessToken, pair.RefreshToken,
		h.cfg.JWT.AccessTokenDuration, h.cfg.JWT.RefreshTokenDuration)
	c.JSON(http.StatusOK, resdto.RefreshResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// @Summary User logout
// @Description Clear the session cookies
// @Tags auth
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 401 {object} httperr.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	// tokens are stateless; dropping the cookies ends the browser session
	cookie.ClearTokenCookies(c, h.cfg.Cookie)
	c.Status(http.StatusNoContent)
}

// @Summary Get current user
// @Description Get current authenticated user information
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.UserResponse
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errNoActor, "Internal server error", nil)
		return
	}

	h.respondWithUser(c, http.StatusOK, userID, nil)
}

func (h *AuthHandler) respondWithSession(c *gin.Context, status int, result *commands.LoginResult) {
	cookie.SetTokenCookies(c, h.cfg.Cookie, result.TokenPair.AccessToken, result.TokenPair.RefreshToken,
		h.cfg.JWT.AccessTokenDuration, h.cfg.JWT.RefreshTokenDuration)
	h.respondWithUser(c, status, result.UserID, result.TokenPair)
}

func (h *AuthHandler) respondWithUser(c *gin.Context, status int, userID uuid.UUID, tokens *commands.TokenPair) {
	view, err := h.q.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errs.Is(err, queries.ErrUserNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "User not found", nil)
		case errs.Is(err, queries.ErrUserInactive):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Account is inactive", nil)
		default:
			httperr.Abort(c, err)
		}
		return
	}

	if tokens == nil {
		c.JSON(status, resdto.FromUserView(view))
		return
	}
	c.JSON(status, resdto.LoginResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         resdto.FromUserView(view),
	})
}
