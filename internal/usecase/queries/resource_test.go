//go:build unit

package queries_test

import (
	"context"
	"testing"

	"wheelshare/internal/domain/reservation"
	"wheelshare/internal/domain/resource"
	"wheelshare/internal/infra"
	"wheelshare/internal/pkg/errs"
	"wheelshare/internal/usecase/queries"
	"wheelshare/tests/common/builder"
	queriesmock "wheelshare/tests/mock/queries"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ResourceQueriesTestSuite struct {
	suite.Suite
	ctx       context.Context
	mockCtrl  *gomock.Controller
	readStore *queriesmock.MockResourceReadStore
	queries   queries.ResourceQueries
}

func (s *ResourceQueriesTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.mockCtrl = gomock.NewController(s.T())
	s.readStore = queriesmock.NewMockResourceReadStore(s.mockCtrl)
	s.queries = queries.NewResourceQueries(s.readStore, 20)
}

func (s *ResourceQueriesTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestResourceQueriesSuite(t *testing.T) {
	suite.Run(t, new(ResourceQueriesTestSuite))
}

func (s *ResourceQueriesTestSuite) TestGetByID() {
	view := builder.NewResourceBuilder().BuildView()

	s.Run("正常系", func() {
		s.readStore.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil).Times(1)
		got, err := s.queries.GetByID(s.ctx, view.ID)
		s.Require().NoError(err)
		s.Equal(view, got)
	})

	s.Run("異常系: 存在しないリソース", func() {
		s.readStore.EXPECT().FindByID(gomock.Any(), view.ID).
			Return(nil, infra.NewRepoErr(infra.KindNotFound, "resource not found")).Times(1)
		_, err := s.queries.GetByID(s.ctx, view.ID)
		s.True(errs.Is(err, resource.ErrResourceNotFound))
	})
}

func (s *ResourceQueriesTestSuite) TestList() {
	kind := resource.KindVehicle
	minPrice, maxPrice := int64(5000), int64(8000)

	tests := []struct {
		name       string
		opts       queries.ListResourcesOptions
		wantFilter queries.ResourceFilter
	}{
		{
			name:       "正常系: 既定では公開中の出品のみ",
			opts:       queries.ListResourcesOptions{Kind: &kind, Limit: 5},
			wantFilter: queries.ResourceFilter{Kind: &kind, OnlyAvailable: true, Limit: 6},
		},
		{
			name:       "正常系: showAllで非公開も含める",
			opts:       queries.ListResourcesOptions{ShowAll: true, Limit: 5},
			wantFilter: queries.ResourceFilter{Limit: 6},
		},
		{
			name: "正常系: 場所と価格帯が渡る",
			opts: queries.ListResourcesOptions{
				Location:          "  Downtown ",
				MinUnitPriceCents: &minPrice,
				MaxUnitPriceCents: &maxPrice,
			},
			wantFilter: queries.ResourceFilter{
				OnlyAvailable:     true,
				Location:          "Downtown",
				MinUnitPriceCents: &minPrice,
				MaxUnitPriceCents: &maxPrice,
				Limit:             21,
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			rows := []*queries.ResourceView{builder.NewResourceBuilder().BuildView()}
			s.readStore.EXPECT().List(gomock.Any(), tt.wantFilter).Return(rows, nil).Times(1)

			page, err := s.queries.List(s.ctx, tt.opts)
			s.Require().NoError(err)
			s.Equal(rows, page.Items)
			s.Empty(page.NextCursor)
		})
	}

	s.Run("異常系: 最低価格が最高価格より大きい", func() {
		_, err := s.queries.List(s.ctx, queries.ListResourcesOptions{MinUnitPriceCents: &maxPrice, MaxUnitPriceCents: &minPrice})
		s.True(errs.Is(err, queries.ErrInvalidPriceRange))
		s.True(errs.Is(err, errs.ErrValidation))
	})
}

func (s *ResourceQueriesTestSuite) TestBookedRanges() {
	view := builder.NewResourceBuilder().BuildView()

	s.Run("正常系: 予約済み期間を返す", func() {
		ranges := []queries.BookedRange{{Start: builder.April(1), End: builder.April(4), Status: reservation.StatusApproved}}
		s.readStore.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil).Times(1)
		s.readStore.EXPECT().BookedRanges(gomock.Any(), view.ID, builder.April(1), builder.April(30)).Return(ranges, nil).Times(1)

		got, err := s.queries.BookedRanges(s.ctx, view.ID, builder.April(1), builder.April(30))
		s.Require().NoError(err)
		s.Equal(ranges, got)
	})

	s.Run("異常系: fromがtoより後", func() {
		_, err := s.queries.BookedRanges(s.ctx, view.ID, builder.April(30), builder.April(1))
		s.True(errs.Is(err, queries.ErrInvalidRange))
	})

	s.Run("異常系: 存在しないリソース", func() {
		s.readStore.EXPECT().FindByID(gomock.Any(), view.ID).
			Return(nil, infra.NewRepoErr(infra.KindNotFound, "resource not found")).Times(1)
		_, err := s.queries.BookedRanges(s.ctx, view.ID, builder.April(1), builder.April(30))
		s.True(errs.Is(err, resource.ErrResourceNotFound))
	})
}
