package handler

import (
	"sync"

	"wheelshare/internal/domain/reservation"
	"wheelshare/internal/domain/resource"
	"wheelshare/internal/pkg/errs"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	registerOnce sync.Once
	registerErr  error
)

var customValidations = map[string]validator.Func{
	"reservation_status": validateReservationStatus,
	"resource_kind":      validateResourceKind,
}

// RegisterValidators installs the custom binding rules on gin's validator.
// Safe to call more than once; every call reports the first outcome.
func RegisterValidators() error {
	registerOnce.Do(func() {
		registerErr = registerOn(binding.Validator.Engine())
	})
	return registerErr
}

func registerOn(engine any) error {
	v, ok := engine.(*validator.Validate)
	if !ok {
		return errs.New("binding engine is not go-playground/validator")
	}
	for tag, fn := range customValidations {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return errs.Wrap(err, "register "+tag+" validation")
		}
	}
	return nil
}

func validateReservationStatus(fl validator.FieldLevel) bool {
	_, err := reservation.ParseStatus(fl.Field().String())
	return err == nil
}

func validateResourceKind(fl validator.FieldLevel) bool {
	return resource.Kind(fl.Field().String()).IsValid()
}
