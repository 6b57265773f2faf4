package stac

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Common asset roles.
const (
	RoleData      = "data"
	RoleMetadata  = "metadata"
	RoleThumbnail = "thumbnail"
	RoleOverview  = "overview"
	RoleVisual    = "visual"
)

var knownAssetSet = knownSet("href", "title", "description", "type", "roles")

// Asset is a reference to a file associated with a document.
type Asset struct {
	Href        string
	Title       *string
	Description *string
	Type        *string
	Roles       []string

	AdditionalFields
}

type assetWire struct {
	Href        string   `json:"href"`
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Type        *string  `json:"type,omitempty"`
	Roles       []string `json:"roles,omitzero"`
}

// NewAsset returns an asset pointing at href.
func NewAsset(href string) Asset {
	return Asset{Href: href}
}

// HasRole reports whether the asset declares role.
func (a Asset) HasRole(role string) bool {
	return slices.Contains(a.Roles, role)
}

func (a *Asset) UnmarshalJSON(b []byte) error {
	raw, err := decodeObject(b, "asset")
	if err != nil {
		return err
	}
	if err := requireFields(raw, "href"); err != nil {
		return err
	}

	var w assetWire
	if err := json.Unmarshal(b, &w); err != nil {
		return fmt.Errorf("stac: decode asset: %w", err)
	}

	*a = Asset{
		Href:        w.Href,
		Title:       w.Title,
		Description: w.Description,
		Type:        w.Type,
		Roles:       w.Roles,
	}

	a.ExtensionFields, a.Unknown = splitLossless(raw, knownAssetSet)
	return nil
}

func (a Asset) MarshalJSON() ([]byte, error) {
	w := assetWire{
		Href:        a.Href,
		Title:       a.Title,
		Description: a.Description,
		Type:        a.Type,
		Roles:       a.Roles,
	}
	return marshalLossless(a.AdditionalFields, w)
}

// Assets maps asset keys to assets. Keys are unique per document.
type Assets map[string]Asset

// WithRole returns the keys of assets declaring role, sorted.
func (as Assets) WithRole(role string) []string {
	var keys []string
	for k, a := range as {
		if a.HasRole(role) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}
