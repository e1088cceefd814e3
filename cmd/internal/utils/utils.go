package utils

import (
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
)

const DateLayout = "2006-01-02"

func FormatEpoch(millis int64) string {
	return time.UnixMilli(millis).
		UTC().
		Format(time.RFC3339)
}

func NowUTC() int64 {
	return time.Now().
		UTC().
		UnixMilli()
}

// NewID returns a fresh record identifier.
func NewID() string {
	return uuid.NewString()
}

// IsPastDate checks if the given calendar date (YYYY-MM-DD) is strictly
// before today, UTC. Malformed dates are treated as past.
func IsPastDate(date string) bool {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return true
	}
	today, _ := time.Parse(DateLayout, time.Now().UTC().Format(DateLayout))
	return d.Before(today)
}

func Sanitize(o any) {
	v := reflect.ValueOf(o)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		panic("sanitize: expected pointer to struct")
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		panic("sanitize: expected struct")
	}

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		switch field.Kind() {
		case reflect.String:
			field.SetString(sanitizeString(field.String()))

		case reflect.Slice:
			if field.Type().Elem().Kind() == reflect.String {
				for j := 0; j < field.Len(); j++ {
					field.Index(j).SetString(sanitizeString(field.Index(j).String()))
				}
			}
		}
	}
}

func sanitizeString(s string) string {
	return strings.TrimSpace(s)
}
