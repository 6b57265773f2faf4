package stac

import (
	"errors"
	"net/url"
	"path/filepath"
	"strings"
)

// Hrefer is implemented by documents that remember where they were read from.
type Hrefer interface {
	// Href returns the origin location, or "" if unknown.
	Href() string
	// SetHref records the origin location.
	SetHref(href string)
}

// Origin holds the location a document was read from. It is embedded in every
// document kind and is never part of the serialized form.
type Origin struct {
	href string
}

// Href returns the origin location, or "" if it has not been set.
func (o *Origin) Href() string {
	if o == nil {
		return ""
	}
	return o.href
}

// SetHref records the origin location (an absolute path or URL).
func (o *Origin) SetHref(href string) {
	o.href = href
}

// IsURL reports whether s carries a URL scheme such as "https" or "s3".
// Single-letter schemes are treated as Windows drive letters, not URLs.
func IsURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && len(u.Scheme) > 1
}

// ResolveHref resolves href against base.
//
// An href carrying a URL scheme is returned unchanged, as is an absolute
// filesystem path when base is not a URL. A relative href is resolved per
// RFC 3986 against a URL base, or against the directory of a filesystem base.
// An empty base yields ErrNoHref; unparsable input yields *InvalidHrefError.
func ResolveHref(base, href string) (string, error) {
	if href == "" {
		return "", &InvalidHrefError{Href: href, Err: errors.New("empty href")}
	}
	ref, refErr := url.Parse(href)
	if refErr == nil && len(ref.Scheme) > 1 {
		return href, nil
	}

	switch {
	case base == "":
		if refErr != nil {
			return "", &InvalidHrefError{Href: href, Err: refErr}
		}
		if filepath.IsAbs(href) {
			return href, nil
		}
		return "", ErrNoHref
	case IsURL(base):
		if refErr != nil {
			return "", &InvalidHrefError{Href: href, Err: refErr}
		}
		baseURL, _ := url.Parse(base)
		return baseURL.ResolveReference(ref).String(), nil
	case strings.Contains(base, "://"):
		_, err := url.Parse(base)
		if err == nil {
			err = errors.New("malformed URL scheme")
		}
		return "", &InvalidHrefError{Href: base, Err: err}
	}

	// Filesystem base: href is a path relative to the base's directory.
	if filepath.IsAbs(href) {
		return href, nil
	}
	return filepath.Join(filepath.Dir(base), filepath.FromSlash(href)), nil
}
