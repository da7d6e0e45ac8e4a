//go:build unit

package api_test

import (
	"net/http"
	"strings"
	"testing"

	"wheelshare/internal/domain/auth"
	"wheelshare/internal/handler/api"
	resdto "wheelshare/internal/handler/dto/response"
	"wheelshare/internal/handler/middleware"
	"wheelshare/internal/pkg/config"
	"wheelshare/internal/pkg/cookie"
	"wheelshare/internal/pkg/errs"
	"wheelshare/internal/usecase/commands"
	"wheelshare/internal/usecase/queries"
	"wheelshare/tests/common/builder"
	"wheelshare/tests/common/httptest"
	"wheelshare/tests/common/testutil"
	commandsmock "wheelshare/tests/mock/commands"
	queriesmock "wheelshare/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAuthCommands
	mockQueries  *queriesmock.MockUserQueries
	handler      *api.AuthHandler
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAuthCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockUserQueries(s.mockCtrl)
	s.handler = api.NewAuthHandler(s.mockCommands, s.mockQueries, config.NewTestConfig())

	s.router.POST("/auth/register", s.handler.Register)
	s.router.POST("/auth/login", s.handler.Login)
	s.router.POST("/auth/refresh", s.handler.Refresh)
	s.router.POST("/auth/logout", s.handler.Logout)
	s.router.GET("/auth/me", func(c *gin.Context) {
		// stands in for RequireAuth
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			middleware.SetIdentity(c, uuid.New(), "renter")
		}
		s.handler.Me(c)
	})
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

type testCaseAuth struct {
	name         string
	mutate       func(m map[string]any)
	expectCode   int
	expectInBody string
}

func (s *AuthHandlerTestSuite) loginResult(userID uuid.UUID) *commands.LoginResult {
	return &commands.LoginResult{
		UserID:    userID,
		Role:      "renter",
		TokenPair: &commands.TokenPair{AccessToken: "test-jwt-token", RefreshToken: "test-refresh-token"},
	}
}

func (s *AuthHandlerTestSuite) TestLogin() {
	url := "/auth/login"

	authBuilder := builder.NewAuthBuilder()
	reqBody := authBuilder.BuildDTO()
	returnUser := builder.NewUserBuilder().BuildReadModel()

	s.Run("正常系: 正しい認証情報で200とCookieを返す", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), authBuilder.BuildInput()).
			Return(s.loginResult(returnUser.ID), nil).Times(1)
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), returnUser.ID).
			Return(returnUser, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(returnUser.Email, response.User.Email)
		s.Equal("test-jwt-token", response.AccessToken)
		s.Require().NotNil(httptest.ExtractCookie(rec, cookie.AccessTokenCookieName))
		s.Equal("test-refresh-token", httptest.ExtractCookie(rec, cookie.RefreshTokenCookieName).Value)
	})

	s.Run("異常系: バリデーションエラーで400", func() {
		bound := []testCaseAuth{
			{name: "email境界OK", mutate: testutil.Field("email", "valid@example.com"), expectCode: http.StatusOK},
			{name: "email形式不正", mutate: testutil.Field("email", "invalid-email"), expectCode: http.StatusBadRequest},
			{name: "password境界OK(8文字)", mutate: testutil.Field("password", "password"), expectCode: http.StatusOK},
			{name: "password境界NG(7文字)", mutate: testutil.Field("password", strings.Repeat("a", 7)), expectCode: http.StatusBadRequest},
		}

		missing := []testCaseAuth{
			{name: "email欠落", mutate: testutil.Field("email", nil), expectCode: http.StatusBadRequest},
			{name: "password欠落", mutate: testutil.Field("password", nil), expectCode: http.StatusBadRequest},
		}

		empty := []testCaseAuth{
			{name: "email空文字", mutate: testutil.Field("email", ""), expectCode: http.StatusBadRequest},
			{name: "password空文字", mutate: testutil.Field("password", ""), expectCode: http.StatusBadRequest},
		}

		for _, group := range [][]testCaseAuth{bound, missing, empty} {
			for _, tc := range group {
				s.Run(tc.name, func() {
					requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)

					if tc.expectCode == http.StatusOK {
						email, _ := requestMap["email"].(string)
						password, _ := requestMap["password"].(string)
						expected := (&builder.AuthBuilder{Email: email, Password: password}).BuildInput()
						s.mockCommands.EXPECT().Login(gomock.Any(), expected).
							Return(s.loginResult(returnUser.ID), nil)
						s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), returnUser.ID).
							Return(returnUser, nil)
					}
					rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
					if tc.expectCode == http.StatusOK {
						httptest.AssertSuccessResponse(s.T(), rec, tc.expectCode, nil)
					} else {
						httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
					}
				})
			}
		}
	})

	s.Run("異常系: ユースケースのエラーをステータスに変換する", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "認証情報不一致は401",
				commandsError:  errs.Wrap(auth.ErrInvalidCredentials, "login"),
				expectedStatus: http.StatusUnauthorized,
				expectedMsg:    "Invalid email or password",
			},
			{
				name:           "無効化アカウントは403",
				commandsError:  auth.ErrInactiveAccount,
				expectedStatus: http.StatusForbidden,
				expectedMsg:    "Account is inactive",
			},
			{
				name:           "想定外のエラーは500",
				commandsError:  errs.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Login(gomock.Any(), authBuilder.BuildInput()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *AuthHandlerTestSuite) TestRegister() {
	url := "/auth/register"
	authBuilder := builder.NewAuthBuilder().With(func(b *builder.AuthBuilder) {
		b.Email = "olga@example.com"
		b.Name = "Olga"
		b.Role = "carOwner"
	})
	reqBody := authBuilder.BuildRegisterDTO()
	returnUser := builder.NewUserBuilder().WithEmail("olga@example.com").WithRole("carOwner").BuildReadModel()

	s.Run("正常系: 登録して201を返す", func() {
		s.mockCommands.EXPECT().Register(gomock.Any(), reqBody.ToInput()).
			Return(s.loginResult(returnUser.ID), nil).Times(1)
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), returnUser.ID).
			Return(returnUser, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal("carOwner", response.User.Role)
	})

	s.Run("異常系: adminは自己登録できない", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			testutil.DtoMap(s.T(), reqBody, testutil.Field("role", "admin")), "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("異常系: 登録済みのメールは400", func() {
		s.mockCommands.EXPECT().Register(gomock.Any(), reqBody.ToInput()).
			Return(nil, errs.Wrap(commands.ErrEmailTaken, "register")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "email is already registered")
	})
}

func (s *AuthHandlerTestSuite) TestRefresh() {
	url := "/auth/refresh"

	s.Run("正常系: ボディのリフレッシュトークンで再発行", func() {
		s.mockCommands.EXPECT().RefreshToken(gomock.Any(), "old-refresh").
			Return(&commands.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"refresh_token": "old-refresh"}, "")

		var response resdto.RefreshResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("new-access", response.AccessToken)
	})

	s.Run("正常系: Cookieがボディより優先される", func() {
		s.mockCommands.EXPECT().RefreshToken(gomock.Any(), "cookie-refresh").
			Return(&commands.TokenPair{AccessToken: "a", RefreshToken: "r"}, nil).Times(1)

		cookies := []*http.Cookie{{Name: cookie.RefreshTokenCookieName, Value: "cookie-refresh"}}
		rec := httptest.PerformRequestWithCookies(s.T(), s.router, http.MethodPost, url,
			map[string]any{"refresh_token": "body-refresh"}, cookies, "")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("異常系: トークンなしは401", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Refresh token required")
	})

	s.Run("異常系: 無効なトークンは401", func() {
		s.mockCommands.EXPECT().RefreshToken(gomock.Any(), "bad").
			Return(nil, commands.ErrInvalidRefreshToken).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"refresh_token": "bad"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid refresh token")
	})
}

func (s *AuthHandlerTestSuite) TestLogout() {
	s.Run("正常系: 204を返しCookieを消す", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/logout", nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)

		access := httptest.ExtractCookie(rec, cookie.AccessTokenCookieName)
		s.Require().NotNil(access)
		s.Empty(access.Value)
		s.Less(access.MaxAge, 0)
	})
}

func (s *AuthHandlerTestSuite) TestMe() {
	url := "/auth/me"
	returnUser := builder.NewUserBuilder().BuildReadModel()

	s.Run("正常系: ログイン中のユーザーを返す", func() {
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), gomock.Any()).
			Return(returnUser, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(returnUser.Email, response["email"])
		s.NotContains(response, "passwordHash")
	})

	s.Run("異常系: コンテキストにuser_idがなければ500", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})

	s.Run("異常系: クエリのエラーをステータスに変換する", func() {
		testCases := []struct {
			name           string
			queryError     error
			expectedStatus int
			expectedMsg    string
		}{
			{name: "ユーザーなしは404", queryError: queries.ErrUserNotFound, expectedStatus: http.StatusNotFound, expectedMsg: "User not found"},
			{name: "無効化ユーザーは403", queryError: queries.ErrUserInactive, expectedStatus: http.StatusForbidden, expectedMsg: "Account is inactive"},
			{name: "想定外のエラーは500", queryError: errs.New("database error"), expectedStatus: http.StatusInternalServerError, expectedMsg: "Internal server error"},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), gomock.Any()).
					Return(nil, tc.queryError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}
