package reservation

import "wheelshare/internal/domain/resource"

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusDeclined  Status = "declined"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// AcceptedLabel is how an approved service request is presented to clients.
const AcceptedLabel = "accepted"

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusDeclined, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusDeclined, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsBlocking reports whether a reservation in this status occupies its range.
func (s Status) IsBlocking() bool {
	return s == StatusPending || s == StatusApproved
}

// Label renders the status for the given resource kind.
func (s Status) Label(kind resource.Kind) string {
	if s == StatusApproved && kind == resource.KindMechanic {
		return AcceptedLabel
	}
	return string(s)
}

// ParseStatus accepts every status name plus the "accepted" alias.
func ParseStatus(s string) (Status, error) {
	if s == AcceptedLabel {
		return StatusApproved, nil
	}
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

func (p PaymentStatus) String() string {
	return string(p)
}

func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentPending, PaymentPaid, PaymentRefunded:
		return true
	default:
		return false
	}
}
