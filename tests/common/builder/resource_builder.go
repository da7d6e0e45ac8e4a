//go:build unit || e2e

package builder

import (
	"time"

	"wheelshare/internal/domain/resource"
	"wheelshare/internal/domain/user"
	reqdto "wheelshare/internal/handler/dto/request"
	"wheelshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type ResourceBuilder struct {
	ID                 uuid.UUID
	Kind               resource.Kind
	OwnerID            uuid.UUID
	OwnerRole          user.Role
	Name               string
	Description        string
	Location           string
	UnitPriceCents     int64
	IsAvailable        bool
	TotalRentals       int64
	TotalEarningsCents int64
}

func NewResourceBuilder() *ResourceBuilder {
	return &ResourceBuilder{
		ID:             uuid.New(),
		Kind:           resource.KindVehicle,
		OwnerID:        uuid.New(),
		OwnerRole:      user.RoleCarOwner,
		Name:           "Toyota Prius 2021",
		Description:    "Hybrid, automatic",
		Location:       "Downtown",
		UnitPriceCents: 6500,
		IsAvailable:    true,
	}
}

func (b *ResourceBuilder) With(mutate func(*ResourceBuilder)) *ResourceBuilder {
	mutate(b)
	return b
}

// BuildDomain goes through NewResource so listing validation applies.
func (b *ResourceBuilder) BuildDomain() (*resource.Resource, error) {
	return resource.NewResource(b.OwnerID, b.OwnerRole, resource.Listing{
		Kind:           b.Kind,
		Name:           b.Name,
		Description:    b.Description,
		Location:       b.Location,
		UnitPriceCents: b.UnitPriceCents,
	}, Now)
}

// BuildStored returns the resource as it would be loaded from storage.
func (b *ResourceBuilder) BuildStored() *resource.Resource {
	return resource.ReconstructResource(
		b.ID, b.Kind, b.OwnerID,
		b.Name, b.Description, b.Location,
		b.UnitPriceCents, b.IsAvailable,
		b.TotalRentals, b.TotalEarningsCents,
		Now.Add(-24*time.Hour), Now.Add(-24*time.Hour),
	)
}

func (b *ResourceBuilder) WithKind(kind resource.Kind) *ResourceBuilder {
	b.Kind = kind
	return b
}

func (b *ResourceBuilder) WithOwner(id uuid.UUID, role user.Role) *ResourceBuilder {
	b.OwnerID = id
	b.OwnerRole = role
	return b
}

func (b *ResourceBuilder) WithUnitPrice(cents int64) *ResourceBuilder {
	b.UnitPriceCents = cents
	return b
}

func (b *ResourceBuilder) AsMechanicService() *ResourceBuilder {
	b.Kind = resource.KindMechanic
	b.OwnerRole = user.RoleMechanic
	b.Name = "Brake and engine diagnostics"
	b.UnitPriceCents = 4000
	return b
}

func (b *ResourceBuilder) AsUnavailable() *ResourceBuilder {
	b.IsAvailable = false
	return b
}

func (b *ResourceBuilder) BuildView() *queries.ResourceView {
	return &queries.ResourceView{
		ID:                 b.ID,
		Kind:               b.Kind,
		OwnerID:            b.OwnerID,
		OwnerName:          "Olga",
		Name:               b.Name,
		Description:        b.Description,
		Location:           b.Location,
		UnitPriceCents:     b.UnitPriceCents,
		IsAvailable:        b.IsAvailable,
		TotalRentals:       b.TotalRentals,
		TotalEarningsCents: b.TotalEarningsCents,
		CreatedAt:          Now.Add(-24 * time.Hour),
		UpdatedAt:          Now.Add(-24 * time.Hour),
	}
}

func (b *ResourceBuilder) BuildDTO() reqdto.CreateResourceRequest {
	return reqdto.CreateResourceRequest{
		Kind:           b.Kind.String(),
		Name:           b.Name,
		Description:    b.Description,
		Location:       b.Location,
		UnitPriceCents: b.UnitPriceCents,
	}
}
