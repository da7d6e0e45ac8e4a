// Package memstore keeps the whole data set in process memory. Every unit of
// work runs under one mutex and is rolled back by restoring map snapshots.
package memstore

import (
	"context"
	"maps"
	"sync"
	"time"

	"wheelshare/internal/domain/reservation"
	"wheelshare/internal/domain/resource"
	"wheelshare/internal/domain/user"
	"wheelshare/internal/usecase/shared"

	"github.com/google/uuid"
)

type outboxEntry struct {
	event       shared.OutboxEvent
	publishedAt *time.Time
	attempts    int
	lastError   string
}

type Store struct {
	mu           sync.Mutex
	users        map[uuid.UUID]*user.User
	resources    map[uuid.UUID]*resource.Resource
	reservations map[uuid.UUID]*reservation.Reservation
	outbox       []*outboxEntry
}

func New() *Store {
	return &Store{
		users:        map[uuid.UUID]*user.User{},
		resources:    map[uuid.UUID]*resource.Resource{},
		reservations: map[uuid.UUID]*reservation.Reservation{},
	}
}

type snapshot struct {
	users        map[uuid.UUID]*user.User
	resources    map[uuid.UUID]*resource.Resource
	reservations map[uuid.UUID]*reservation.Reservation
	outboxLen    int
}

// Stored entities are never mutated in place, so shallow map copies are enough.
func (s *Store) snapshot() snapshot {
	return snapshot{
		users:        maps.Clone(s.users),
		resources:    maps.Clone(s.resources),
		reservations: maps.Clone(s.reservations),
		outboxLen:    len(s.outbox),
	}
}

func (s *Store) restore(snap snapshot) {
	s.users = snap.users
	s.resources = snap.resources
	s.reservations = snap.reservations
	s.outbox = s.outbox[:snap.outboxLen]
}

// Within implements shared.UnitOfWork.
func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(ctx, &memTx{store: s}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// PutUser, PutResource and PutReservation seed data outside a unit of work.
func (s *Store) PutUser(u *user.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID()] = cloneUser(u)
}

func (s *Store) PutResource(r *resource.Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resources[r.ID()] = cloneResource(r)
}

func (s *Store) PutReservation(r *reservation.Reservation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reservations[r.ID()] = cloneReservation(r)
}

// Resource returns a copy of the stored resource, or nil.
func (s *Store) Resource(id uuid.UUID) *resource.Resource {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.resources[id]
	if !ok {
		return nil
	}
	return cloneResource(r)
}

// ReservationCount counts stored reservations of one resource.
func (s *Store) ReservationCount(resourceID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.reservations {
		if r.ResourceID() == resourceID {
			n++
		}
	}
	return n
}

// Events returns every outbox event in append order.
func (s *Store) Events() []shared.OutboxEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := make([]shared.OutboxEvent, 0, len(s.outbox))
	for _, e := range s.outbox {
		events = append(events, e.event)
	}
	return events
}

func cloneUser(u *user.User) *user.User {
	c := *u
	return &c
}

func cloneResource(r *resource.Resource) *resource.Resource {
	c := *r
	return &c
}

func cloneReservation(r *reservation.Reservation) *reservation.Reservation {
	c := *r
	return &c
}
