// Package validator accumulates field-level validation errors and holds the
// rules applied to player payloads before they reach storage.
package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mcoot/playerbase/internal/model"
)

// Validator holds a map of field names to their validation error messages.
// A Validator with an empty Errors map is considered valid.
type Validator struct {
	Errors map[string]string
}

// New creates and returns a fresh, empty Validator
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid returns true if no error has been recorded
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError records key as failing with the given message.
// The first failure recorded for a field wins.
func (v *Validator) AddError(key, message string) {
	if _, exists := v.Errors[key]; !exists {
		v.Errors[key] = message
	}
}

// Check adds an error for key with message only when ok is false
//
//	v.Check(len(name) > 0, "name", "must be provided")
func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

// Err returns nil when valid, otherwise an *Error describing every failed field
func (v *Validator) Err() error {
	if v.Valid() {
		return nil
	}
	fields := make(map[string]string, len(v.Errors))
	for k, msg := range v.Errors {
		fields[k] = msg
	}
	return &Error{Fields: fields}
}

// Error is returned when one or more fields fail validation.
// It matches model.ErrValidation with errors.Is.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s %s", k, e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap lets errors.Is match model.ErrValidation
func (e *Error) Unwrap() error {
	return model.ErrValidation
}
