package memstore

import (
	"context"
	"sort"
	"strings"
	"time"

	"wheelshare/internal/domain/reservation"
	"wheelshare/internal/domain/resource"
	"wheelshare/internal/domain/user"
	"wheelshare/internal/infra"
	"wheelshare/internal/usecase/queries"
	"wheelshare/internal/usecase/shared"

	"github.com/google/uuid"
)

func (s *Store) ReservationReads() queries.ReservationReadStore { return reservationReads{s} }
func (s *Store) ResourceReads() queries.ResourceReadStore       { return resourceReads{s} }
func (s *Store) UserReads() queries.UserReadStore               { return userReads{s} }
func (s *Store) OutboxStore() *OutboxStore                      { return &OutboxStore{s} }

type reservationReads struct{ s *Store }

func (r reservationReads) FindByID(_ context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.reservations[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "reservation not found")
	}
	return r.s.reservationView(stored), nil
}

func (r reservationReads) List(_ context.Context, f queries.ReservationFilter) ([]*queries.ReservationView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var matched []*reservation.Reservation
	for _, res := range r.s.reservations {
		if f.ParticipantID != nil && !res.IsParticipant(*f.ParticipantID) {
			continue
		}
		if f.Kind != nil && res.Kind() != *f.Kind {
			continue
		}
		if f.Status != nil && res.Status() != *f.Status {
			continue
		}
		if f.After != nil && !f.After.Admits(res.CreatedAt(), res.ID()) {
			continue
		}
		matched = append(matched, res)
	}

	sort.Slice(matched, func(i, j int) bool {
		return newerFirst(matched[i].CreatedAt(), matched[i].ID(), matched[j].CreatedAt(), matched[j].ID())
	})
	if f.Limit > 0 && len(matched) > f.Limit {
		matched = matched[:f.Limit]
	}

	views := make([]*queries.ReservationView, 0, len(matched))
	for _, res := range matched {
		views = append(views, r.s.reservationView(res))
	}
	return views, nil
}

type resourceReads struct{ s *Store }

func (r resourceReads) FindByID(_ context.Context, id uuid.UUID) (*queries.ResourceView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.resources[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "resource not found")
	}
	return r.s.resourceView(stored), nil
}

func (r resourceReads) List(_ context.Context, f queries.ResourceFilter) ([]*queries.ResourceView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var matched []*resource.Resource
	for _, res := range r.s.resources {
		if f.Kind != nil && res.Kind() != *f.Kind {
			continue
		}
		if f.OwnerID != nil && res.OwnerID() != *f.OwnerID {
			continue
		}
		if f.OnlyAvailable && !res.IsAvailable() {
			continue
		}
		if f.Location != "" && !strings.Contains(strings.ToLower(res.Location()), strings.ToLower(f.Location)) {
			continue
		}
		if f.MinUnitPriceCents != nil && res.UnitPriceCents() < *f.MinUnitPriceCents {
			continue
		}
		if f.MaxUnitPriceCents != nil && res.UnitPriceCents() > *f.MaxUnitPriceCents {
			continue
		}
		if f.After != nil && !f.After.Admits(res.CreatedAt(), res.ID()) {
			continue
		}
		matched = append(matched, res)
	}

	sort.Slice(matched, func(i, j int) bool {
		return newerFirst(matched[i].CreatedAt(), matched[i].ID(), matched[j].CreatedAt(), matched[j].ID())
	})
	if f.Limit > 0 && len(matched) > f.Limit {
		matched = matched[:f.Limit]
	}

	views := make([]*queries.ResourceView, 0, len(matched))
	for _, res := range matched {
		views = append(views, r.s.resourceView(res))
	}
	return views, nil
}

func (r resourceReads) BookedRanges(_ context.Context, resourceID uuid.UUID, from, to time.Time) ([]queries.BookedRange, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var held []*reservation.Reservation
	for _, res := range r.s.reservations {
		if res.ResourceID() == resourceID {
			held = append(held, res)
		}
	}

	window := reservation.ReconstructTimeSlot(from, to)
	var out []queries.BookedRange
	for _, res := range held {
		if !res.IsBlocking() || !res.TimeSlot().Overlaps(window, resource.KindMechanic) {
			continue
		}
		out = append(out, queries.BookedRange{
			Start:  res.TimeSlot().Start(),
			End:    res.TimeSlot().End(),
			Status: res.Status(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

type userReads struct{ s *Store }

func (r userReads) FindByID(_ context.Context, id uuid.UUID) (*queries.UserView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "user not found")
	}
	return userView(u), nil
}

func (r userReads) FindByEmail(_ context.Context, email string) (*queries.UserView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email().Value() == email {
			return userView(u), nil
		}
	}
	return nil, infra.NewRepoErr(infra.KindNotFound, "user not found")
}

// OutboxStore serves the outbox relay.
type OutboxStore struct{ s *Store }

func (o *OutboxStore) FetchPending(_ context.Context, limit int) ([]shared.OutboxEvent, error) {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()

	var out []shared.OutboxEvent
	for _, e := range o.s.outbox {
		if e.publishedAt != nil {
			continue
		}
		out = append(out, e.event)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (o *OutboxStore) MarkPublished(_ context.Context, ids []uuid.UUID, at time.Time) error {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()

	wanted := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	for _, e := range o.s.outbox {
		if _, ok := wanted[e.event.ID]; ok {
			published := at
			e.publishedAt = &published
		}
	}
	return nil
}

func (o *OutboxStore) MarkFailed(_ context.Context, ids []uuid.UUID, reason string) error {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()

	wanted := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	for _, e := range o.s.outbox {
		if _, ok := wanted[e.event.ID]; ok {
			e.attempts++
			e.lastError = reason
		}
	}
	return nil
}

// newerFirst orders at the microsecond precision that cursors carry.
func newerFirst(ti time.Time, idi uuid.UUID, tj time.Time, idj uuid.UUID) bool {
	ti, tj = ti.Truncate(time.Microsecond), tj.Truncate(time.Microsecond)
	if ti.Equal(tj) {
		return idi.String() > idj.String()
	}
	return ti.After(tj)
}

// view builders run with s.mu held

func (s *Store) reservationView(r *reservation.Reservation) *queries.ReservationView {
	v := &queries.ReservationView{
		ID:               r.ID(),
		Kind:             r.Kind(),
		ResourceID:       r.ResourceID(),
		RequesterID:      r.RequesterID(),
		ProviderID:       r.ProviderID(),
		StartTime:        r.TimeSlot().Start(),
		EndTime:          r.TimeSlot().End(),
		Status:           r.Status(),
		PaymentStatus:    r.PaymentStatus(),
		TotalAmountCents: r.TotalAmount().Cents(),
		Notes:            r.Note().String(),
		CreatedAt:        r.CreatedAt(),
		UpdatedAt:        r.UpdatedAt(),
	}
	if res, ok := s.resources[r.ResourceID()]; ok {
		v.ResourceName = res.Name()
	}
	if u, ok := s.users[r.RequesterID()]; ok {
		v.RequesterName = u.Name()
	}
	if u, ok := s.users[r.ProviderID()]; ok {
		v.ProviderName = u.Name()
	}
	if svc := r.Service(); svc != nil {
		v.Service = &queries.ServiceView{
			VehicleType: svc.VehicleType(),
			ServiceType: svc.ServiceType(),
			Location:    svc.Location(),
			IsEmergency: svc.IsEmergency(),
		}
	}
	return v
}

func (s *Store) resourceView(r *resource.Resource) *queries.ResourceView {
	v := &queries.ResourceView{
		ID:                 r.ID(),
		Kind:               r.Kind(),
		OwnerID:            r.OwnerID(),
		Name:               r.Name(),
		Description:        r.Description(),
		Location:           r.Location(),
		UnitPriceCents:     r.UnitPriceCents(),
		IsAvailable:        r.IsAvailable(),
		TotalRentals:       r.TotalRentals(),
		TotalEarningsCents: r.TotalEarningsCents(),
		CreatedAt:          r.CreatedAt(),
		UpdatedAt:          r.UpdatedAt(),
	}
	if u, ok := s.users[r.OwnerID()]; ok {
		v.OwnerName = u.Name()
	}
	return v
}

func userView(u *user.User) *queries.UserView {
	return &queries.UserView{
		ID:           u.ID(),
		Email:        u.Email().Value(),
		Name:         u.Name(),
		Role:         u.Role(),
		PasswordHash: u.PasswordHash(),
		IsActive:     u.IsActive(),
		LastLogin:    u.LastLogin(),
		CreatedAt:    u.CreatedAt(),
	}
}
