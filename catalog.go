package stac

import (
	"encoding/json"
	"fmt"
)

var knownCatalogSet = knownSet(
	"type", "stac_version", "stac_extensions", "id", "title", "description", "links",
)

// Catalog groups other catalogs, collections and items through its links.
type Catalog struct {
	// Type is always CatalogType. Encoding fails if it has been changed.
	Type        string
	StacVersion string
	Extensions  Extensions
	ID          string
	Title       *string
	Description string
	Links       Links

	AdditionalFields
	Origin
}

type catalogWire struct {
	Type        string     `json:"type"`
	StacVersion string     `json:"stac_version"`
	Extensions  Extensions `json:"stac_extensions,omitzero"`
	ID          string     `json:"id"`
	Title       *string    `json:"title,omitempty"`
	Description string     `json:"description"`
	Links       Links      `json:"links"`
}

// NewCatalog returns a catalog with no links and no href.
func NewCatalog(id, description string) *Catalog {
	return &Catalog{
		Type:        CatalogType,
		StacVersion: Version,
		ID:          id,
		Description: description,
		Links:       Links{},
	}
}

// Kind returns KindCatalog.
func (*Catalog) Kind() Kind { return KindCatalog }

func (*Catalog) isValue() {}

// LinkList returns the catalog's links for in-place mutation.
func (c *Catalog) LinkList() *Links { return &c.Links }

// ExtensionList returns the catalog's declared extensions for in-place mutation.
func (c *Catalog) ExtensionList() *Extensions { return &c.Extensions }

// AddChild links a child catalog or collection. An empty title is left out.
func (c *Catalog) AddChild(href, title string) {
	l := JSONLink(href, RelChild)
	if title != "" {
		l.Title = String(title)
	}
	c.Links.Add(l)
}

// AddItem links an item.
func (c *Catalog) AddItem(href string) {
	c.Links.Add(geoJSONLink(href, RelItem))
}

func (c *Catalog) UnmarshalJSON(b []byte) error {
	raw, err := decodeObject(b, "catalog")
	if err != nil {
		return err
	}
	if _, err := decodeType(raw, CatalogType); err != nil {
		return err
	}
	if err := requireFields(raw, "id", "description", "links", "stac_version"); err != nil {
		return err
	}

	var w catalogWire
	if err := json.Unmarshal(b, &w); err != nil {
		return fmt.Errorf("stac: decode catalog: %w", err)
	}

	*c = Catalog{
		Type:        w.Type,
		StacVersion: w.StacVersion,
		Extensions:  w.Extensions,
		ID:          w.ID,
		Title:       w.Title,
		Description: w.Description,
		Links:       w.Links,
	}

	c.ExtensionFields, c.Unknown = splitLossless(raw, knownCatalogSet)
	return nil
}

func (c Catalog) MarshalJSON() ([]byte, error) {
	if err := checkType(CatalogType, c.Type); err != nil {
		return nil, err
	}
	w := catalogWire{
		Type:        c.Type,
		StacVersion: c.StacVersion,
		Extensions:  c.Extensions,
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Links:       nonNilLinks(c.Links),
	}
	return marshalLossless(c.AdditionalFields, w)
}

// nonNilLinks keeps a required "links" member encoding as [] rather than null.
func nonNilLinks(ls Links) Links {
	if ls == nil {
		return Links{}
	}
	return ls
}
