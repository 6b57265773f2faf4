package stac

import (
	"encoding/json"
	"fmt"
	"time"
)

// DefaultLicense is the license NewCollection assigns.
const DefaultLicense = "proprietary"

var (
	knownCollectionSet = knownSet(
		"type", "stac_version", "stac_extensions", "id", "title", "description",
		"keywords", "license", "providers", "extent", "summaries", "links", "assets",
	)
	knownProviderSet       = knownSet("name", "description", "roles", "url")
	knownExtentSet         = knownSet("spatial", "temporal")
	knownSpatialExtentSet  = knownSet("bbox")
	knownTemporalExtentSet = knownSet("interval")
)

// Collection is a catalog augmented with dataset-level metadata.
type Collection struct {
	// Type is always CollectionType. Encoding fails if it has been changed.
	Type        string
	StacVersion string
	Extensions  Extensions
	ID          string
	Title       *string
	Description string
	Keywords    []string
	License     string
	Providers   []Provider
	Extent      Extent
	// Summaries is decoded with numbers as json.Number.
	Summaries map[string]any
	Links     Links
	Assets    Assets

	AdditionalFields
	Origin
}

type collectionWire struct {
	Type        string         `json:"type"`
	StacVersion string         `json:"stac_version"`
	Extensions  Extensions     `json:"stac_extensions,omitzero"`
	ID          string         `json:"id"`
	Title       *string        `json:"title,omitempty"`
	Description string         `json:"description"`
	Keywords    []string       `json:"keywords,omitzero"`
	License     string         `json:"license"`
	Providers   []Provider     `json:"providers,omitzero"`
	Extent      Extent         `json:"extent"`
	Summaries   map[string]any `json:"summaries,omitzero"`
	Links       Links          `json:"links"`
	Assets      Assets         `json:"assets,omitzero"`
}

// NewCollection returns a collection with a whole-world spatial extent, an
// open temporal extent, the default license, no links and no href.
func NewCollection(id, description string) *Collection {
	return &Collection{
		Type:        CollectionType,
		StacVersion: Version,
		ID:          id,
		Description: description,
		License:     DefaultLicense,
		Extent:      DefaultExtent(),
		Links:       Links{},
	}
}

// Kind returns KindCollection.
func (*Collection) Kind() Kind { return KindCollection }

func (*Collection) isValue() {}

// LinkList returns the collection's links for in-place mutation.
func (c *Collection) LinkList() *Links { return &c.Links }

// ExtensionList returns the collection's declared extensions for in-place mutation.
func (c *Collection) ExtensionList() *Extensions { return &c.Extensions }

// AddChild links a child catalog or collection. An empty title is left out.
func (c *Collection) AddChild(href, title string) {
	l := JSONLink(href, RelChild)
	if title != "" {
		l.Title = String(title)
	}
	c.Links.Add(l)
}

// AddItem links an item.
func (c *Collection) AddItem(href string) {
	c.Links.Add(geoJSONLink(href, RelItem))
}

// Adopt makes item a member of the collection: the item's collection id is
// set and it gains a "collection" link to href.
func (c *Collection) Adopt(item *Item, href string) {
	item.Collection = String(c.ID)
	item.Links.Set(JSONLink(href, RelCollection))
}

func (c *Collection) UnmarshalJSON(b []byte) error {
	raw, err := decodeObject(b, "collection")
	if err != nil {
		return err
	}
	if _, err := decodeType(raw, CollectionType); err != nil {
		return err
	}
	if err := requireFields(raw, "id", "description", "license", "extent", "links", "stac_version"); err != nil {
		return err
	}

	var w collectionWire
	if err := decodeWire(b, &w); err != nil {
		return fmt.Errorf("stac: decode collection: %w", err)
	}

	*c = Collection{
		Type:        w.Type,
		StacVersion: w.StacVersion,
		Extensions:  w.Extensions,
		ID:          w.ID,
		Title:       w.Title,
		Description: w.Description,
		Keywords:    w.Keywords,
		License:     w.License,
		Providers:   w.Providers,
		Extent:      w.Extent,
		Summaries:   w.Summaries,
		Links:       w.Links,
		Assets:      w.Assets,
	}

	c.ExtensionFields, c.Unknown = splitLossless(raw, knownCollectionSet)
	return nil
}

func (c Collection) MarshalJSON() ([]byte, error) {
	if err := checkType(CollectionType, c.Type); err != nil {
		return nil, err
	}
	w := collectionWire{
		Type:        c.Type,
		StacVersion: c.StacVersion,
		Extensions:  c.Extensions,
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Keywords:    c.Keywords,
		License:     c.License,
		Providers:   c.Providers,
		Extent:      c.Extent,
		Summaries:   c.Summaries,
		Links:       nonNilLinks(c.Links),
		Assets:      c.Assets,
	}
	return marshalLossless(c.AdditionalFields, w)
}

// Provider describes an organization that captured, processed or hosts data.
type Provider struct {
	Name        string
	Description *string
	Roles       []string
	URL         *string

	AdditionalFields
}

type providerWire struct {
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	Roles       []string `json:"roles,omitzero"`
	URL         *string  `json:"url,omitempty"`
}

func (p *Provider) UnmarshalJSON(b []byte) error {
	raw, err := decodeObject(b, "provider")
	if err != nil {
		return err
	}
	if err := requireFields(raw, "name"); err != nil {
		return err
	}

	var w providerWire
	if err := json.Unmarshal(b, &w); err != nil {
		return fmt.Errorf("stac: decode provider: %w", err)
	}

	*p = Provider{
		Name:        w.Name,
		Description: w.Description,
		Roles:       w.Roles,
		URL:         w.URL,
	}

	p.ExtensionFields, p.Unknown = splitLossless(raw, knownProviderSet)
	return nil
}

func (p Provider) MarshalJSON() ([]byte, error) {
	w := providerWire{
		Name:        p.Name,
		Description: p.Description,
		Roles:       p.Roles,
		URL:         p.URL,
	}
	return marshalLossless(p.AdditionalFields, w)
}

// Extent holds the spatial and temporal extents of a collection.
type Extent struct {
	Spatial  SpatialExtent
	Temporal TemporalExtent

	AdditionalFields
}

type extentWire struct {
	Spatial  SpatialExtent  `json:"spatial"`
	Temporal TemporalExtent `json:"temporal"`
}

// DefaultExtent covers the whole world over an open time interval.
func DefaultExtent() Extent {
	return Extent{
		Spatial:  SpatialExtent{BBox: [][]float64{{-180, -90, 180, 90}}},
		Temporal: TemporalExtent{Interval: []Interval{{nil, nil}}},
	}
}

func (e *Extent) UnmarshalJSON(b []byte) error {
	raw, err := decodeObject(b, "extent")
	if err != nil {
		return err
	}
	if err := requireFields(raw, "spatial", "temporal"); err != nil {
		return err
	}

	var w extentWire
	if err := json.Unmarshal(b, &w); err != nil {
		return fmt.Errorf("stac: decode extent: %w", err)
	}

	*e = Extent{
		Spatial:  w.Spatial,
		Temporal: w.Temporal,
	}

	e.ExtensionFields, e.Unknown = splitLossless(raw, knownExtentSet)
	return nil
}

func (e Extent) MarshalJSON() ([]byte, error) {
	w := extentWire{
		Spatial:  e.Spatial,
		Temporal: e.Temporal,
	}
	return marshalLossless(e.AdditionalFields, w)
}

// SpatialExtent holds one or more bounding boxes. The first box covers the
// whole collection; any further boxes describe clusters within it.
type SpatialExtent struct {
	BBox [][]float64

	AdditionalFields
}

type spatialExtentWire struct {
	BBox [][]float64 `json:"bbox"`
}

func (s *SpatialExtent) UnmarshalJSON(b []byte) error {
	raw, err := decodeObject(b, "spatial extent")
	if err != nil {
		return err
	}
	if err := requireFields(raw, "bbox"); err != nil {
		return err
	}

	var w spatialExtentWire
	if err := json.Unmarshal(b, &w); err != nil {
		return fmt.Errorf("stac: decode spatial extent: %w", err)
	}

	*s = SpatialExtent{BBox: w.BBox}
	s.ExtensionFields, s.Unknown = splitLossless(raw, knownSpatialExtentSet)
	return nil
}

func (s SpatialExtent) MarshalJSON() ([]byte, error) {
	bbox := s.BBox
	if bbox == nil {
		bbox = [][]float64{}
	}
	return marshalLossless(s.AdditionalFields, spatialExtentWire{BBox: bbox})
}

// Interval is a [start, end] pair of RFC 3339 timestamps; nil means open.
type Interval [2]*string

// NewInterval builds an interval from optional bounds.
func NewInterval(start, end *time.Time) Interval {
	var iv Interval
	for i, t := range []*time.Time{start, end} {
		if t != nil {
			s := t.UTC().Format(time.RFC3339Nano)
			iv[i] = &s
		}
	}
	return iv
}

// Start parses the start bound; the boolean is false when it is open.
func (iv Interval) Start() (time.Time, bool, error) { return parseTimestamp(iv[0]) }

// End parses the end bound; the boolean is false when it is open.
func (iv Interval) End() (time.Time, bool, error) { return parseTimestamp(iv[1]) }

// UnmarshalJSON requires exactly two elements, each a string or null.
func (iv *Interval) UnmarshalJSON(b []byte) error {
	var bounds []*string
	if err := json.Unmarshal(b, &bounds); err != nil {
		return fmt.Errorf("stac: decode interval: %w", err)
	}
	if len(bounds) != 2 {
		return fmt.Errorf("stac: decode interval: expected 2 elements, got %d", len(bounds))
	}
	*iv = Interval{bounds[0], bounds[1]}
	return nil
}

// TemporalExtent holds one or more time intervals.
type TemporalExtent struct {
	Interval []Interval

	AdditionalFields
}

type temporalExtentWire struct {
	Interval []Interval `json:"interval"`
}

func (t *TemporalExtent) UnmarshalJSON(b []byte) error {
	raw, err := decodeObject(b, "temporal extent")
	if err != nil {
		return err
	}
	if err := requireFields(raw, "interval"); err != nil {
		return err
	}

	var w temporalExtentWire
	if err := json.Unmarshal(b, &w); err != nil {
		return fmt.Errorf("stac: decode temporal extent: %w", err)
	}

	*t = TemporalExtent{Interval: w.Interval}
	t.ExtensionFields, t.Unknown = splitLossless(raw, knownTemporalExtentSet)
	return nil
}

func (t TemporalExtent) MarshalJSON() ([]byte, error) {
	interval := t.Interval
	if interval == nil {
		interval = []Interval{}
	}
	return marshalLossless(t.AdditionalFields, temporalExtentWire{Interval: interval})
}
