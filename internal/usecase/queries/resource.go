package queries

import (
	"context"
	"strings"
	"time"

	"wheelshare/internal/domain/resource"
	"wheelshare/internal/infra"
	"wheelshare/internal/pkg/errs"

	"github.com/google/uuid"
)

//go:generate mockgen -source=resource.go -destination=../../../tests/mock/queries/mock_resource.go -package=queriesmock

var (
	ErrInvalidRange      = errs.Define("from must not be after to", errs.ErrValidation)
	ErrInvalidPriceRange = errs.Define("minimum price must not exceed maximum price", errs.ErrValidation)
)

type ResourceFilter struct {
	Kind          *resource.Kind
	OwnerID       *uuid.UUID
	OnlyAvailable bool
	// Location matches case-insensitively anywhere in the listing location.
	Location          string
	MinUnitPriceCents *int64
	MaxUnitPriceCents *int64
	After             *CursorPosition
	Limit             int
}

type ResourceReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ResourceView, error)
	List(ctx context.Context, filter ResourceFilter) ([]*ResourceView, error)
	// BookedRanges returns blocking windows intersecting [from, to], earliest first.
	BookedRanges(ctx context.Context, resourceID uuid.UUID, from, to time.Time) ([]BookedRange, error)
}

// ListResourcesOptions browses listings. Unavailable listings are hidden
// unless ShowAll is set.
type ListResourcesOptions struct {
	Kind              *resource.Kind
	OwnerID           *uuid.UUID
	Location          string
	MinUnitPriceCents *int64
	MaxUnitPriceCents *int64
	ShowAll           bool
	Cursor            string
	Limit             int
}

type ResourceQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ResourceView, error)
	List(ctx context.Context, opts ListResourcesOptions) (*ResourcePage, error)
	BookedRanges(ctx context.Context, id uuid.UUID, from, to time.Time) ([]BookedRange, error)
}

type resourceQueriesImpl struct {
	readStore    ResourceReadStore
	defaultLimit int
}

func NewResourceQueries(readStore ResourceReadStore, defaultLimit int) ResourceQueries {
	return &resourceQueriesImpl{
		readStore:    readStore,
		defaultLimit: defaultLimit,
	}
}

func (q *resourceQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ResourceView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, resource.ErrResourceNotFound
		}
		return nil, errs.Wrap(err, "load resource")
	}
	return view, nil
}

func (q *resourceQueriesImpl) List(ctx context.Context, opts ListResourcesOptions) (*ResourcePage, error) {
	if opts.MinUnitPriceCents != nil && opts.MaxUnitPriceCents != nil &&
		*opts.MinUnitPriceCents > *opts.MaxUnitPriceCents {
		return nil, ErrInvalidPriceRange
	}
	after, err := DecodeAfterCursor(opts.Cursor)
	if err != nil {
		return nil, err
	}
	limit := ValidateLimit(opts.Limit, q.defaultLimit)

	rows, err := q.readStore.List(ctx, ResourceFilter{
		Kind:              opts.Kind,
		OwnerID:           opts.OwnerID,
		OnlyAvailable:     !opts.ShowAll,
		Location:          strings.TrimSpace(opts.Location),
		MinUnitPriceCents: opts.MinUnitPriceCents,
		MaxUnitPriceCents: opts.MaxUnitPriceCents,
		After:             after,
		Limit:             limit + 1,
	})
	if err != nil {
		return nil, errs.Wrap(err, "list resources")
	}

	page := &ResourcePage{Items: rows}
	if len(rows) > limit {
		page.Items = rows[:limit]
		last := page.Items[limit-1]
		page.NextCursor = EncodeAfterCursor(last.CreatedAt, last.ID)
	}
	return page, nil
}

func (q *resourceQueriesImpl) BookedRanges(ctx context.Context, id uuid.UUID, from, to time.Time) ([]BookedRange, error) {
	if from.After(to) {
		return nil, ErrInvalidRange
	}
	if _, err := q.GetByID(ctx, id); err != nil {
		return nil, err
	}

	ranges, err := q.readStore.BookedRanges(ctx, id, from, to)
	if err != nil {
		return nil, errs.Wrap(err, "load booked ranges")
	}
	return ranges, nil
}
