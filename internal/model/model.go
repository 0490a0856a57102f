// Package model holds the catalog entities, the request payloads that
// create or change them, and the response envelopes written back to clients.
package model

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Base carries the columns every catalog table shares. The timestamps are
// bookkeeping and are not part of the wire format.
type Base struct {
	ID        int       `json:"id" db:"id"`
	CreatedAt time.Time `json:"-" db:"created_at"`
	UpdatedAt time.Time `json:"-" db:"updated_at"`
}

var validate = newValidator()

// newValidator reports field errors under their JSON names ("release",
// not "Release") so clients can match them to the payload they sent.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
