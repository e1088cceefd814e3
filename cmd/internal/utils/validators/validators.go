package validators

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

var slotPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// IsIsoDate accepts calendar dates in YYYY-MM-DD form.
func IsIsoDate(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}

// IsTimeSlot accepts 24h HH:MM times. Whether the value is actually in the
// configured slot catalog is checked by the booking service.
func IsTimeSlot(fl validator.FieldLevel) bool {
	return slotPattern.MatchString(fl.Field().String())
}
