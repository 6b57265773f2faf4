package stac

import "slices"

// Extensions is the set of extension schema URIs a document declares in
// "stac_extensions". Order is kept for serialization; duplicates are not added.
type Extensions []string

// Contains reports whether uri is declared.
func (e Extensions) Contains(uri string) bool {
	return slices.Contains(e, uri)
}

// Add declares uri and reports whether it was not already present.
func (e *Extensions) Add(uri string) bool {
	if e.Contains(uri) {
		return false
	}
	*e = append(*e, uri)
	return true
}

// Remove drops uri and reports whether it was present.
func (e *Extensions) Remove(uri string) bool {
	i := slices.Index(*e, uri)
	if i < 0 {
		return false
	}
	*e = slices.Delete(*e, i, i+1)
	return true
}
