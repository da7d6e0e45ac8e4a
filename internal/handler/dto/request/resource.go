package request

import (
	"strings"
	"time"

	"wheelshare/internal/domain/resource"
	"wheelshare/internal/usecase/commands"
	"wheelshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreateResourceRequest struct {
	Kind           string `json:"kind" binding:"required,resource_kind"`
	Name           string `json:"name" binding:"required,max=255"`
	Description    string `json:"description" binding:"max=2000"`
	Location       string `json:"location" binding:"max=255"`
	UnitPriceCents int64  `json:"unitPriceCents" binding:"min=0"`
}

func (r CreateResourceRequest) ToInput() commands.CreateResourceInput {
	return commands.CreateResourceInput{
		Kind:           r.Kind,
		Name:           strings.TrimSpace(r.Name),
		Description:    r.Description,
		Location:       r.Location,
		UnitPriceCents: r.UnitPriceCents,
	}
}

// UpdateResourceRequest is a partial update; absent fields stay unchanged.
type UpdateResourceRequest struct {
	Name           *string `json:"name" binding:"omitempty,max=255"`
	Description    *string `json:"description" binding:"omitempty,max=2000"`
	Location       *string `json:"location" binding:"omitempty,max=255"`
	UnitPriceCents *int64  `json:"unitPriceCents" binding:"omitempty,min=0"`
	IsAvailable    *bool   `json:"isAvailable"`
}

func (r UpdateResourceRequest) ToChanges() resource.Changes {
	return resource.Changes{
		Name:           r.Name,
		Description:    r.Description,
		Location:       r.Location,
		UnitPriceCents: r.UnitPriceCents,
		IsAvailable:    r.IsAvailable,
	}
}

// ListResourcesQuery hides unavailable listings unless showAll=true.
type ListResourcesQuery struct {
	Kind              string `form:"kind" binding:"omitempty,resource_kind"`
	OwnerID           string `form:"ownerId" binding:"omitempty,uuid"`
	Location          string `form:"location" binding:"max=255"`
	MinUnitPriceCents *int64 `form:"minUnitPriceCents" binding:"omitempty,min=0"`
	MaxUnitPriceCents *int64 `form:"maxUnitPriceCents" binding:"omitempty,min=0"`
	ShowAll           bool   `form:"showAll"`
	Cursor            string `form:"cursor"`
	Limit             int    `form:"limit" binding:"omitempty,min=1,max=200"`
}

func (q ListResourcesQuery) ToOptions() (queries.ListResourcesOptions, error) {
	opts := queries.ListResourcesOptions{
		Location:          q.Location,
		MinUnitPriceCents: q.MinUnitPriceCents,
		MaxUnitPriceCents: q.MaxUnitPriceCents,
		ShowAll:           q.ShowAll,
		Cursor:            q.Cursor,
		Limit:             q.Limit,
	}
	if q.Kind != "" {
		kind, err := resource.ParseKind(q.Kind)
		if err != nil {
			return queries.ListResourcesOptions{}, err
		}
		opts.Kind = &kind
	}
	if q.OwnerID != "" {
		id, err := uuid.Parse(q.OwnerID)
		if err != nil {
			return queries.ListResourcesOptions{}, err
		}
		opts.OwnerID = &id
	}
	return opts, nil
}

// BookedRangesQuery takes RFC 3339 instants.
type BookedRangesQuery struct {
	From time.Time `form:"from" binding:"required"`
	To   time.Time `form:"to" binding:"required"`
}
