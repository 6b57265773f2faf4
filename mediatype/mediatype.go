// Package mediatype lists canonical media types used in STAC link and asset
// "type" members, and parses and compares media type strings.
//
// The constants are suggestions. Documents may carry any string; nothing in
// this module rejects a value that is not listed here.
package mediatype

import (
	"errors"
	"fmt"
	"maps"
	"mime"
	"slices"
	"strings"
)

// Canonical media types.
const (
	JSON    = "application/json"
	GeoJSON = "application/geo+json"
	GeoTIFF = "image/tiff; application=geotiff"
	COG     = "image/tiff; application=geotiff; profile=cloud-optimized"
	JPEG    = "image/jpeg"
	PNG     = "image/png"
	JP2     = "image/jp2"
	Text    = "text/plain"
	HTML    = "text/html"
	XML     = "application/xml"
	HDF     = "application/x-hdf"
	HDF5    = "application/x-hdf5"
	Zarr    = "application/vnd+zarr"
	Parquet = "application/vnd.apache.parquet"
)

// MediaType is a parsed `type/subtype; key=value` string.
type MediaType struct {
	// Type and Subtype are normalized to lowercase.
	Type    string
	Subtype string
	// Params keys are lowercase; values are preserved as-is.
	Params map[string]string
}

// Essence returns "type/subtype" without parameters.
func (m MediaType) Essence() string {
	if m.Type == "" || m.Subtype == "" {
		return ""
	}
	return m.Type + "/" + m.Subtype
}

// String formats the media type with parameters sorted by key.
func (m MediaType) String() string {
	essence := m.Essence()
	if essence == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(essence)
	for _, k := range slices.Sorted(maps.Keys(m.Params)) {
		fmt.Fprintf(&b, "; %s=%s", k, m.Params[k])
	}
	return b.String()
}

// Parse parses a media type string.
func Parse(s string) (MediaType, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return MediaType{}, errors.New("media type: empty")
	}
	essence, params, err := mime.ParseMediaType(s)
	if err != nil {
		return MediaType{}, fmt.Errorf("media type: invalid %q: %w", s, err)
	}
	typ, sub, ok := strings.Cut(essence, "/")
	if !ok || typ == "" || sub == "" {
		return MediaType{}, fmt.Errorf("media type: invalid %q: missing subtype", s)
	}
	if len(params) == 0 {
		params = nil
	}
	return MediaType{Type: typ, Subtype: sub, Params: params}, nil
}

// Normalize lowercases the type and subtype and orders parameters by key.
func Normalize(s string) (string, error) {
	m, err := Parse(s)
	if err != nil {
		return "", err
	}
	return m.String(), nil
}

// Equal reports whether a and b name the same media type, ignoring case of
// the type and the order of parameters. Unparsable input is never equal.
func Equal(a, b string) bool {
	ma, err := Parse(a)
	if err != nil {
		return false
	}
	mb, err := Parse(b)
	if err != nil {
		return false
	}
	return ma.Essence() == mb.Essence() && maps.Equal(ma.Params, mb.Params)
}

// IsJSON reports whether s is JSON or a "+json" structured syntax type.
func IsJSON(s string) bool {
	m, err := Parse(s)
	if err != nil {
		return false
	}
	return m.Essence() == JSON || strings.HasSuffix(m.Subtype, "+json")
}

// IsGeoJSON reports whether s is GeoJSON.
func IsGeoJSON(s string) bool {
	m, err := Parse(s)
	return err == nil && m.Essence() == GeoJSON
}
