package resource

import (
	"slices"
	"strings"
	"time"

	"wheelshare/internal/domain/user"
	"wheelshare/internal/pkg/errs"
	"wheelshare/internal/pkg/patch"

	"github.com/google/uuid"
)

var (
	ErrInvalidKind         = errs.Define("kind must be vehicle or mechanic", errs.ErrValidation)
	ErrEmptyResourceName   = errs.Define("resource name cannot be empty", errs.ErrValidation)
	ErrResourceNameTooLong = errs.Define("resource name is too long (max 255 characters)", errs.ErrValidation)
	ErrNegativeUnitPrice   = errs.Define("unit price cannot be negative", errs.ErrValidation)
	ErrUnitPriceTooHigh    = errs.Define("unit price cannot exceed 100000000 cents", errs.ErrValidation)
	ErrResourceNotFound    = errs.Define("resource not found", errs.ErrNotFound)
	ErrOwnerRoleMismatch   = errs.Define("your role cannot list this kind of resource", errs.ErrAuthorization)
	ErrNotOwner            = errs.Define("only the owner can modify this listing", errs.ErrAuthorization)
)

const (
	MaxResourceNameLength = 255
	MaxUnitPriceCents     = 100_000_000
)

// ownerRoles lists who may list each kind of resource.
var ownerRoles = map[Kind][]user.Role{
	KindVehicle:  {user.RoleCarOwner, user.RoleAdmin},
	KindMechanic: {user.RoleMechanic, user.RoleAdmin},
}

type Resource struct {
	id                 uuid.UUID
	kind               Kind
	ownerID            uuid.UUID
	name               string
	description        string
	location           string
	unitPriceCents     int64
	isAvailable        bool
	totalRentals       int64
	totalEarningsCents int64
	createdAt          time.Time
	updatedAt          time.Time
}

// Listing is the owner-supplied part of a resource.
type Listing struct {
	Kind           Kind
	Name           string
	Description    string
	Location       string
	UnitPriceCents int64
}

func NewResource(ownerID uuid.UUID, ownerRole user.Role, l Listing, now time.Time) (*Resource, error) {
	if !l.Kind.IsValid() {
		return nil, ErrInvalidKind
	}
	if !slices.Contains(ownerRoles[l.Kind], ownerRole) {
		return nil, ErrOwnerRoleMismatch
	}
	name, err := validateResourceName(l.Name)
	if err != nil {
		return nil, err
	}
	if err := validateUnitPrice(l.UnitPriceCents); err != nil {
		return nil, err
	}

	return &Resource{
		id:             uuid.New(),
		kind:           l.Kind,
		ownerID:        ownerID,
		name:           name,
		description:    strings.TrimSpace(l.Description),
		location:       strings.TrimSpace(l.Location),
		unitPriceCents: l.UnitPriceCents,
		isAvailable:    true,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructResource(
	id uuid.UUID,
	kind Kind,
	ownerID uuid.UUID,
	name, description, location string,
	unitPriceCents int64,
	isAvailable bool,
	totalRentals, totalEarningsCents int64,
	createdAt, updatedAt time.Time,
) *Resource {
	return &Resource{
		id:                 id,
		kind:               kind,
		ownerID:            ownerID,
		name:               name,
		description:        description,
		location:           location,
		unitPriceCents:     unitPriceCents,
		isAvailable:        isAvailable,
		totalRentals:       totalRentals,
		totalEarningsCents: totalEarningsCents,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

// Changes is a partial update; nil fields are left untouched.
type Changes struct {
	Name           *string
	Description    *string
	Location       *string
	UnitPriceCents *int64
	IsAvailable    *bool
}

func (r *Resource) CanManage(userID uuid.UUID, role user.Role) bool {
	return r.ownerID == userID || role.IsAdmin()
}

func (r *Resource) Apply(editorID uuid.UUID, editorRole user.Role, c Changes, now time.Time) error {
	if !r.CanManage(editorID, editorRole) {
		return ErrNotOwner
	}

	name, err := validateResourceName(patch.Coalesce(c.Name, r.name))
	if err != nil {
		return err
	}
	price := patch.Coalesce(c.UnitPriceCents, r.unitPriceCents)
	if err := validateUnitPrice(price); err != nil {
		return err
	}

	r.name = name
	r.description = strings.TrimSpace(patch.Coalesce(c.Description, r.description))
	r.location = strings.TrimSpace(patch.Coalesce(c.Location, r.location))
	r.unitPriceCents = price
	r.isAvailable = patch.Coalesce(c.IsAvailable, r.isAvailable)
	r.updatedAt = now
	return nil
}

// RecordCompletion adds one finished rental and its amount to the counters.
func (r *Resource) RecordCompletion(amountCents int64) {
	r.totalRentals++
	r.totalEarningsCents += amountCents
}

func validateUnitPrice(cents int64) error {
	if cents < 0 {
		return ErrNegativeUnitPrice
	}
	if cents > MaxUnitPriceCents {
		return ErrUnitPriceTooHigh
	}
	return nil
}

func validateResourceName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyResourceName
	}
	if len(name) > MaxResourceNameLength {
		return "", ErrResourceNameTooLong
	}
	return name, nil
}

func (r *Resource) ID() uuid.UUID             { return r.id }
func (r *Resource) Kind() Kind                { return r.kind }
func (r *Resource) OwnerID() uuid.UUID        { return r.ownerID }
func (r *Resource) Name() string              { return r.name }
func (r *Resource) Description() string       { return r.description }
func (r *Resource) Location() string          { return r.location }
func (r *Resource) UnitPriceCents() int64     { return r.unitPriceCents }
func (r *Resource) IsAvailable() bool         { return r.isAvailable }
func (r *Resource) TotalRentals() int64       { return r.totalRentals }
func (r *Resource) TotalEarningsCents() int64 { return r.totalEarningsCents }
func (r *Resource) CreatedAt() time.Time      { return r.createdAt }
func (r *Resource) UpdatedAt() time.Time      { return r.updatedAt }
