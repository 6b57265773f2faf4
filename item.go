package stac

import (
	"encoding/json"
	"fmt"
	"time"
)

var (
	knownItemSet = knownSet(
		"type", "stac_version", "stac_extensions", "id", "geometry", "bbox",
		"properties", "links", "assets", "collection",
	)
	knownPropertiesSet = knownSet(
		"datetime", "start_datetime", "end_datetime", "title", "description",
		"created", "updated",
	)
	knownGeometrySet = knownSet("type", "coordinates")
)

// Item is a GeoJSON Feature describing a single spatiotemporal asset.
type Item struct {
	// Type is always ItemType. Encoding fails if it has been changed.
	Type        string
	StacVersion string
	Extensions  Extensions
	ID          string
	Geometry    *Geometry
	BBox        []float64
	Properties  Properties
	Links       Links
	Assets      Assets
	// Collection is the id of the collection this item belongs to.
	Collection *string

	AdditionalFields
	Origin
}

type itemWire struct {
	Type        string     `json:"type"`
	StacVersion string     `json:"stac_version"`
	Extensions  Extensions `json:"stac_extensions,omitzero"`
	ID          string     `json:"id"`
	Geometry    *Geometry  `json:"geometry"`
	BBox        []float64  `json:"bbox,omitzero"`
	Properties  Properties `json:"properties"`
	Links       Links      `json:"links,omitzero"`
	Assets      Assets     `json:"assets,omitzero"`
	Collection  *string    `json:"collection,omitempty"`
}

// NewItem returns an item with the current time as its datetime, empty links
// and assets, and no href.
func NewItem(id string) *Item {
	item := &Item{
		Type:        ItemType,
		StacVersion: Version,
		ID:          id,
		Links:       Links{},
		Assets:      Assets{},
	}
	item.SetDatetime(time.Now())
	return item
}

// Kind returns KindItem.
func (*Item) Kind() Kind { return KindItem }

func (*Item) isValue() {}

// LinkList returns the item's links for in-place mutation.
func (i *Item) LinkList() *Links { return &i.Links }

// ExtensionList returns the item's declared extensions for in-place mutation.
func (i *Item) ExtensionList() *Extensions { return &i.Extensions }

// Datetime parses the "datetime" property. The boolean is false when the
// property is null.
func (i *Item) Datetime() (time.Time, bool, error) {
	return parseTimestamp(i.Properties.Datetime)
}

// SetDatetime sets the "datetime" property as an RFC 3339 UTC timestamp.
func (i *Item) SetDatetime(t time.Time) {
	s := t.UTC().Format(time.RFC3339Nano)
	i.Properties.Datetime = &s
}

// ClearDatetime sets the "datetime" property to null, as required when an
// item uses start_datetime and end_datetime instead.
func (i *Item) ClearDatetime() {
	i.Properties.Datetime = nil
}

func (i *Item) UnmarshalJSON(b []byte) error {
	raw, err := decodeObject(b, "item")
	if err != nil {
		return err
	}
	if _, err := decodeType(raw, ItemType); err != nil {
		return err
	}
	if err := requireFields(raw, "id", "properties", "stac_version"); err != nil {
		return err
	}

	var w itemWire
	if err := json.Unmarshal(b, &w); err != nil {
		return fmt.Errorf("stac: decode item: %w", err)
	}

	*i = Item{
		Type:        w.Type,
		StacVersion: w.StacVersion,
		Extensions:  w.Extensions,
		ID:          w.ID,
		Geometry:    w.Geometry,
		BBox:        w.BBox,
		Properties:  w.Properties,
		Links:       w.Links,
		Assets:      w.Assets,
		Collection:  w.Collection,
	}

	i.ExtensionFields, i.Unknown = splitLossless(raw, knownItemSet)
	return nil
}

func (i Item) MarshalJSON() ([]byte, error) {
	if err := checkType(ItemType, i.Type); err != nil {
		return nil, err
	}
	w := itemWire{
		Type:        i.Type,
		StacVersion: i.StacVersion,
		Extensions:  i.Extensions,
		ID:          i.ID,
		Geometry:    i.Geometry,
		BBox:        i.BBox,
		Properties:  i.Properties,
		Links:       i.Links,
		Assets:      i.Assets,
		Collection:  i.Collection,
	}
	return marshalLossless(i.AdditionalFields, w)
}

// Properties holds an item's properties. Common metadata fields are typed;
// everything else (including extension fields such as "eo:cloud_cover") is
// kept in AdditionalFields.
type Properties struct {
	// Datetime is always encoded; nil encodes as null.
	Datetime      *string
	StartDatetime *string
	EndDatetime   *string
	Title         *string
	Description   *string
	Created       *string
	Updated       *string

	AdditionalFields
}

type propertiesWire struct {
	Datetime      *string `json:"datetime"`
	StartDatetime *string `json:"start_datetime,omitempty"`
	EndDatetime   *string `json:"end_datetime,omitempty"`
	Title         *string `json:"title,omitempty"`
	Description   *string `json:"description,omitempty"`
	Created       *string `json:"created,omitempty"`
	Updated       *string `json:"updated,omitempty"`
}

func (p *Properties) UnmarshalJSON(b []byte) error {
	raw, err := decodeObject(b, "properties")
	if err != nil {
		return err
	}

	var w propertiesWire
	if err := json.Unmarshal(b, &w); err != nil {
		return fmt.Errorf("stac: decode properties: %w", err)
	}

	*p = Properties{
		Datetime:      w.Datetime,
		StartDatetime: w.StartDatetime,
		EndDatetime:   w.EndDatetime,
		Title:         w.Title,
		Description:   w.Description,
		Created:       w.Created,
		Updated:       w.Updated,
	}

	p.ExtensionFields, p.Unknown = splitLossless(raw, knownPropertiesSet)
	return nil
}

func (p Properties) MarshalJSON() ([]byte, error) {
	w := propertiesWire{
		Datetime:      p.Datetime,
		StartDatetime: p.StartDatetime,
		EndDatetime:   p.EndDatetime,
		Title:         p.Title,
		Description:   p.Description,
		Created:       p.Created,
		Updated:       p.Updated,
	}
	return marshalLossless(p.AdditionalFields, w)
}

// Geometry is a GeoJSON geometry object. Members other than type and
// coordinates (e.g. "geometries" of a GeometryCollection) are kept in
// AdditionalFields.
type Geometry struct {
	Type string
	// Coordinates is decoded with numbers as json.Number.
	Coordinates any

	AdditionalFields
}

type geometryWire struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates,omitempty"`
}

// NewPoint returns a GeoJSON Point geometry.
func NewPoint(lon, lat float64) *Geometry {
	return &Geometry{Type: "Point", Coordinates: []float64{lon, lat}}
}

func (g *Geometry) UnmarshalJSON(b []byte) error {
	raw, err := decodeObject(b, "geometry")
	if err != nil {
		return err
	}
	if err := requireFields(raw, "type"); err != nil {
		return err
	}

	var w geometryWire
	if err := decodeWire(b, &w); err != nil {
		return fmt.Errorf("stac: decode geometry: %w", err)
	}

	*g = Geometry{
		Type:        w.Type,
		Coordinates: w.Coordinates,
	}

	g.ExtensionFields, g.Unknown = splitLossless(raw, knownGeometrySet)
	return nil
}

func (g Geometry) MarshalJSON() ([]byte, error) {
	w := geometryWire{
		Type:        g.Type,
		Coordinates: g.Coordinates,
	}
	return marshalLossless(g.AdditionalFields, w)
}

func parseTimestamp(s *string) (time.Time, bool, error) {
	if s == nil {
		return time.Time{}, false, nil
	}
	t, err := time.Parse(time.RFC3339Nano, *s)
	if err != nil {
		return time.Time{}, true, fmt.Errorf("stac: invalid timestamp %q: %w", *s, err)
	}
	return t, true, nil
}
