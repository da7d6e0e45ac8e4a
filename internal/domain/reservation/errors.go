package reservation

import "wheelshare/internal/pkg/errs"

var (
	ErrInvalidTimeSlot        = errs.Define("start time must be before end time", errs.ErrValidation)
	ErrStartInPast            = errs.Define("start time cannot be in the past", errs.ErrValidation)
	ErrNegativeAmount         = errs.Define("amount cannot be negative", errs.ErrValidation)
	ErrAmountTooLarge         = errs.Define("amount is too large", errs.ErrValidation)
	ErrSlotTooLong            = errs.Define("reservation cannot be longer than 366 days", errs.ErrValidation)
	ErrNoteTooLong            = errs.Define("notes are too long (max 1000 characters)", errs.ErrValidation)
	ErrServiceDetailsRequired = errs.Define("vehicle type and service type are required", errs.ErrValidation)
	ErrInvalidStatus          = errs.Define("invalid reservation status", errs.ErrValidation)
	ErrUnsupportedTarget      = errs.Define("status must be one of approved, accepted, declined, cancelled, completed", errs.ErrValidation)
	ErrAlreadyFinalized       = errs.Define("reservation is already finalized", errs.ErrValidation)
	ErrIllegalTransition      = errs.Define("status transition is not allowed from the current status", errs.ErrValidation)

	ErrReservationNotFound = errs.Define("reservation not found", errs.ErrNotFound)

	ErrVehicleRequesterRole  = errs.Define("only renters can book vehicles", errs.ErrAuthorization)
	ErrMechanicRequesterRole = errs.Define("only renters and car owners can request mechanic services", errs.ErrAuthorization)
	ErrOwnResource           = errs.Define("cannot reserve your own listing", errs.ErrAuthorization)
	ErrProviderDecision      = errs.Define("only the provider can approve or decline", errs.ErrAuthorization)
	ErrRequesterCancel       = errs.Define("only the requester can cancel", errs.ErrAuthorization)
	ErrProviderCompletion    = errs.Define("only the provider can mark a reservation completed", errs.ErrAuthorization)
	ErrNotParticipant        = errs.Define("not authorized to view this reservation", errs.ErrAuthorization)

	ErrResourceUnavailable = errs.Define("listing is not currently available", errs.ErrAvailability)
	ErrRangeUnavailable    = errs.Define("resource is not available for the selected dates", errs.ErrAvailability)

	ErrLateCancellation = errs.Define("too late to cancel an approved reservation", errs.ErrTiming)
)
