package stac

import (
	"errors"
	"fmt"
)

// ErrNoHref is returned when a relative href must be resolved against a
// document whose origin is unknown.
var ErrNoHref = errors.New("stac: cannot resolve relative href: document has no href")

// TypeMismatchError reports a discriminator ("type" member) that does not
// equal the constant expected for the kind being decoded or encoded.
type TypeMismatchError struct {
	Expected string
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("stac: type mismatch: expected %q, got %q", e.Expected, e.Actual)
}

// MissingFieldError reports a required member absent from a JSON document.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("stac: missing required field %q", e.Field)
}

// UnknownTypeError reports a discriminator that names none of the STAC kinds.
type UnknownTypeError struct {
	Type string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("stac: unknown type %q in field \"type\"", e.Type)
}

// InvalidHrefError reports an href (or document href) that cannot be parsed
// as a URL or path when resolution is attempted.
type InvalidHrefError struct {
	Href string
	Err  error
}

func (e *InvalidHrefError) Error() string {
	return fmt.Sprintf("stac: invalid href %q: %v", e.Href, e.Err)
}

func (e *InvalidHrefError) Unwrap() error { return e.Err }

// UnsupportedLocationError reports a location whose transport is not
// available, e.g. an http(s) URL when no network fetcher is configured.
type UnsupportedLocationError struct {
	Location string
	Scheme   string
}

func (e *UnsupportedLocationError) Error() string {
	return fmt.Sprintf("stac: unsupported location %q: no transport for scheme %q", e.Location, e.Scheme)
}
