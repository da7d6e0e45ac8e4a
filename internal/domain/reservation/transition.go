package reservation

import (
	"slices"
	"time"

	"wheelshare/internal/domain/user"

	"github.com/google/uuid"
)

// Party is the capacity in which an actor touches a reservation.
type Party string

const (
	PartyRequester Party = "requester"
	PartyProvider  Party = "provider"
	PartyAdmin     Party = "admin"
)

type Actor struct {
	ID   uuid.UUID
	Role user.Role
}

type transitionRule struct {
	parties []Party
	from    []Status
	denied  error
}

var transitionRules = map[Status]transitionRule{
	StatusApproved: {
		parties: []Party{PartyProvider, PartyAdmin},
		from:    []Status{StatusPending},
		denied:  ErrProviderDecision,
	},
	StatusDeclined: {
		parties: []Party{PartyProvider, PartyAdmin},
		from:    []Status{StatusPending},
		denied:  ErrProviderDecision,
	},
	StatusCancelled: {
		parties: []Party{PartyRequester, PartyAdmin},
		from:    []Status{StatusPending, StatusApproved},
		denied:  ErrRequesterCancel,
	},
	StatusCompleted: {
		parties: []Party{PartyProvider, PartyAdmin},
		from:    []Status{StatusApproved},
		denied:  ErrProviderCompletion,
	},
}

type TransitionPolicy struct {
	// LateCancelWindow is the minimum lead time for cancelling an approved reservation.
	LateCancelWindow time.Duration
}

func DefaultTransitionPolicy() TransitionPolicy {
	return TransitionPolicy{LateCancelWindow: 24 * time.Hour}
}

// Outcome describes an applied transition.
type Outcome struct {
	From Status
	To   Status
	// RecordCompletion is set exactly when the reservation entered completed.
	RecordCompletion bool
}

// PartiesOf lists the capacities the actor holds on this reservation.
func (r *Reservation) PartiesOf(actor Actor) []Party {
	var parties []Party
	if actor.ID == r.requesterID {
		parties = append(parties, PartyRequester)
	}
	if actor.ID == r.providerID {
		parties = append(parties, PartyProvider)
	}
	if actor.Role.IsAdmin() {
		parties = append(parties, PartyAdmin)
	}
	return parties
}

// CanView reports whether the actor may read this reservation.
func (r *Reservation) CanView(actor Actor) bool {
	return len(r.PartiesOf(actor)) > 0
}

// CanTransitionTo reports whether target is reachable from the current status.
func (r *Reservation) CanTransitionTo(target Status) bool {
	rule, ok := transitionRules[target]
	return ok && slices.Contains(rule.from, r.status)
}

// ApplyTransition moves the reservation to target. Nothing is mutated when an
// error is returned. amountCents replaces the total only when approving.
func (r *Reservation) ApplyTransition(
	actor Actor,
	target Status,
	amountCents *int64,
	now time.Time,
	policy TransitionPolicy,
) (Outcome, error) {
	rule, ok := transitionRules[target]
	if !ok {
		return Outcome{}, ErrUnsupportedTarget
	}

	parties := r.PartiesOf(actor)
	if !slices.ContainsFunc(rule.parties, func(p Party) bool { return slices.Contains(parties, p) }) {
		return Outcome{}, rule.denied
	}

	if r.status.IsTerminal() {
		return Outcome{}, ErrAlreadyFinalized
	}
	if !slices.Contains(rule.from, r.status) {
		return Outcome{}, ErrIllegalTransition
	}

	if target == StatusCancelled && r.status == StatusApproved &&
		r.timeSlot.Start().Sub(now) < policy.LateCancelWindow {
		return Outcome{}, ErrLateCancellation
	}

	amount := r.totalAmount
	if target == StatusApproved && amountCents != nil {
		quoted, err := NewMoney(*amountCents)
		if err != nil {
			return Outcome{}, err
		}
		amount = quoted
	}

	outcome := Outcome{
		From:             r.status,
		To:               target,
		RecordCompletion: target == StatusCompleted,
	}
	r.status = target
	r.totalAmount = amount
	r.updatedAt = now
	return outcome, nil
}
