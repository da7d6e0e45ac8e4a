package response

import (
	"time"

	"wheelshare/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ResourceResponse struct {
	ID                 uuid.UUID `json:"id"`
	Kind               string    `json:"kind"`
	OwnerID            uuid.UUID `json:"ownerId"`
	OwnerName          string    `json:"ownerName"`
	Name               string    `json:"name"`
	Description        string    `json:"description,omitempty"`
	Location           string    `json:"location,omitempty"`
	UnitPriceCents     int64     `json:"unitPriceCents"`
	IsAvailable        bool      `json:"isAvailable"`
	TotalRentals       int64     `json:"totalRentals"`
	TotalEarningsCents int64     `json:"totalEarnings"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type ResourcePageResponse struct {
	Items      []*ResourceResponse `json:"items"`
	NextCursor string              `json:"nextCursor,omitempty"`
}

type BookedRangeResponse struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Status string    `json:"status"`
}

func FromResourceView(v *queries.ResourceView) *ResourceResponse {
	var res ResourceResponse
	_ = copier.Copy(&res, v)
	return &res
}

func FromResourcePage(p *queries.ResourcePage) *ResourcePageResponse {
	items := make([]*ResourceResponse, len(p.Items))
	for i, v := range p.Items {
		items[i] = FromResourceView(v)
	}
	return &ResourcePageResponse{Items: items, NextCursor: p.NextCursor}
}

func FromBookedRanges(ranges []queries.BookedRange) []BookedRangeResponse {
	res := make([]BookedRangeResponse, len(ranges))
	_ = copier.Copy(&res, &ranges)
	return res
}
