//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"wheelshare/internal/domain/reservation"
	"wheelshare/internal/domain/resource"
	"wheelshare/internal/domain/user"
	"wheelshare/internal/handler"
	"wheelshare/internal/handler/api"
	resdto "wheelshare/internal/handler/dto/response"
	"wheelshare/internal/handler/middleware"
	"wheelshare/internal/pkg/patch"
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

type ResourceHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockResourceCommands
	mockQueries  *queriesmock.MockResourceQueries
	owner        reservation.Actor
}

func (s *ResourceHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.Require().NoError(handler.RegisterValidators())
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockResourceCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockResourceQueries(s.mockCtrl)
	h := api.NewResourceHandler(s.mockCommands, s.mockQueries)

	s.owner = reservation.Actor{ID: uuid.New(), Role: user.RoleCarOwner}
	authenticated := s.router.Group("", func(c *gin.Context) {
		middleware.SetIdentity(c, s.owner.ID, s.owner.Role)
	})
	authenticated.POST("/resources", h.Create)
	authenticated.PATCH("/resources/:id", h.Update)
	s.router.GET("/resources", h.List)
	s.router.GET("/resources/:id", h.Get)
	s.router.GET("/resources/:id/booked-ranges", h.BookedRanges)
}

func (s *ResourceHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestResourceHandlerSuite(t *testing.T) {
	suite.Run(t, new(ResourceHandlerTestSuite))
}

func (s *ResourceHandlerTestSuite) TestCreate() {
	b := builder.NewResourceBuilder().WithOwner(uuid.New(), user.RoleCarOwner)
	reqBody := b.BuildDTO()

	s.Run("正常系: 車両を登録して201", func() {
		s.mockCommands.EXPECT().CreateResource(gomock.Any(), s.owner, reqBody.ToInput()).
			Return(b.BuildView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/resources", reqBody, "")

		var response resdto.ResourceResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal("vehicle", response.Kind)
		s.Equal(int64(6500), response.UnitPriceCents)
	})

	s.Run("異常系: バリデーションエラーで400", func() {
		testCases := []testCaseAuth{
			{name: "kind欠落", mutate: testutil.Field("kind", nil), expectCode: http.StatusBadRequest},
			{name: "kind不正", mutate: testutil.Field("kind", "boat"), expectCode: http.StatusBadRequest},
			{name: "name欠落", mutate: testutil.Field("name", nil), expectCode: http.StatusBadRequest},
			{name: "負の単価", mutate: testutil.Field("unitPriceCents", -1), expectCode: http.StatusBadRequest},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/resources",
					testutil.DtoMap(s.T(), reqBody, tc.mutate), "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "Invalid request")
			})
		}
	})

	s.Run("異常系: 役割と種別が合わなければ403", func() {
		s.mockCommands.EXPECT().CreateResource(gomock.Any(), s.owner, gomock.Any()).
			Return(nil, resource.ErrOwnerRoleMismatch).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/resources",
			testutil.DtoMap(s.T(), reqBody, testutil.Field("kind", "mechanic")), "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "your role cannot list this kind of resource")
	})
}

func (s *ResourceHandlerTestSuite) TestUpdate() {
	b := builder.NewResourceBuilder().AsUnavailable()
	url := "/resources/" + b.ID.String()

	s.Run("正常系: 指定した項目だけ更新する", func() {
		want := resource.Changes{IsAvailable: patch.Ptr(false), UnitPriceCents: patch.Ptr(int64(7000))}
		s.mockCommands.EXPECT().UpdateResource(gomock.Any(), s.owner, b.ID, want).
			Return(b.BuildView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url,
			map[string]any{"isAvailable": false, "unitPriceCents": 7000}, "")

		var response resdto.ResourceResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.False(response.IsAvailable)
	})

	s.Run("異常系: 所有者以外は403", func() {
		s.mockCommands.EXPECT().UpdateResource(gomock.Any(), s.owner, b.ID, gomock.Any()).
			Return(nil, resource.ErrNotOwner).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"name": "Mine now"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "only the owner can modify this listing")
	})
}

func (s *ResourceHandlerTestSuite) TestGet() {
	b := builder.NewResourceBuilder().With(func(b *builder.ResourceBuilder) {
		b.TotalRentals = 3
		b.TotalEarningsCents = 58500
	})

	s.Run("正常系: 実績を含めて返す", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), b.ID).Return(b.BuildView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/resources/"+b.ID.String(), nil, "")

		var response map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.InDelta(3, response["totalRentals"], 0)
		s.InDelta(58500, response["totalEarnings"], 0)
	})

	s.Run("異常系: 存在しなければ404", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), b.ID).Return(nil, resource.ErrResourceNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/resources/"+b.ID.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "resource not found")
	})
}

func (s *ResourceHandlerTestSuite) TestList() {
	ownerID := uuid.New()

	s.Run("正常系: 条件を渡してページを返す", func() {
		mechanic := resource.KindMechanic
		want := queries.ListResourcesOptions{Kind: &mechanic, OwnerID: &ownerID, Limit: 10}
		s.mockQueries.EXPECT().List(gomock.Any(), want).
			Return(&queries.ResourcePage{Items: []*queries.ResourceView{builder.NewResourceBuilder().AsMechanicService().BuildView()}}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/resources?kind=mechanic&limit=10&ownerId="+ownerID.String(), nil, "")

		var response resdto.ResourcePageResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response.Items, 1)
	})

	s.Run("正常系: 場所・価格帯・showAllを渡す", func() {
		want := queries.ListResourcesOptions{
			Location:          "downtown",
			MinUnitPriceCents: patch.Ptr(int64(5000)),
			MaxUnitPriceCents: patch.Ptr(int64(8000)),
			ShowAll:           true,
		}
		s.mockQueries.EXPECT().List(gomock.Any(), want).
			Return(&queries.ResourcePage{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/resources?location=downtown&minUnitPriceCents=5000&maxUnitPriceCents=8000&showAll=true", nil, "")
		s.Equal(http.StatusOK, rec.Code, rec.Body.String())
	})

	s.Run("正常系: limitは最大件数200まで受け付ける", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), queries.ListResourcesOptions{Limit: queries.MaxListLimit}).
			Return(&queries.ResourcePage{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/resources?limit=200", nil, "")
		s.Equal(http.StatusOK, rec.Code, rec.Body.String())
	})

	s.Run("異常系: limitが200を超えると400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/resources?limit=201", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("異常系: 負の最低価格は400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/resources?minUnitPriceCents=-1", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("異常系: ownerIdが不正なら400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/resources?ownerId=nope", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *ResourceHandlerTestSuite) TestBookedRanges() {
	id := uuid.New()
	from := builder.April(1)
	to := builder.April(30)

	s.Run("正常系: 期間内の予約枠を返す", func() {
		ranges := []queries.BookedRange{
			{Start: builder.April(1), End: builder.April(3), Status: reservation.StatusApproved},
			{Start: builder.April(10), End: builder.April(12), Status: reservation.StatusPending},
		}
		s.mockQueries.EXPECT().BookedRanges(gomock.Any(), id, from, to).Return(ranges, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/resources/"+id.String()+"/booked-ranges?from="+from.Format(time.RFC3339)+"&to="+to.Format(time.RFC3339), nil, "")

		var response []resdto.BookedRangeResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
		s.Equal("approved", response[0].Status)
	})

	s.Run("異常系: 期間指定なしは400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/resources/"+id.String()+"/booked-ranges", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("異常系: fromがtoより後なら400", func() {
		s.mockQueries.EXPECT().BookedRanges(gomock.Any(), id, to, from).Return(nil, queries.ErrInvalidRange).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/resources/"+id.String()+"/booked-ranges?from="+to.Format(time.RFC3339)+"&to="+from.Format(time.RFC3339), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "from must not be after to")
	})
}

