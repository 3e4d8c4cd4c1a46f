// Package apperr defines sentinel errors shared across packages.
package apperr

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidSetting  = errors.New("invalid setting")
	ErrUpstream        = errors.New("note store unavailable")
)
