package stac

import (
	"bytes"
	"encoding/json"
	"fmt"
)

var knownItemCollectionSet = knownSet("type", "features", "links")

// ItemCollection is a page of items, encoded as a GeoJSON FeatureCollection.
// A bare JSON array of items is accepted when decoding.
type ItemCollection struct {
	// Type is always ItemCollectionType. Encoding fails if it has been changed.
	Type  string
	Items []Item
	Links Links

	AdditionalFields
	Origin
}

type itemCollectionWire struct {
	Type  string `json:"type"`
	Items []Item `json:"features"`
	Links Links  `json:"links,omitzero"`
}

// NewItemCollection wraps items in a collection with no links and no href.
func NewItemCollection(items []Item) *ItemCollection {
	if items == nil {
		items = []Item{}
	}
	return &ItemCollection{Type: ItemCollectionType, Items: items}
}

// Kind returns KindItemCollection.
func (*ItemCollection) Kind() Kind { return KindItemCollection }

func (*ItemCollection) isValue() {}

// LinkList returns the page's links for in-place mutation.
func (ic *ItemCollection) LinkList() *Links { return &ic.Links }

// ExtensionList returns nil: an item collection declares no extensions of its
// own. Its items do.
func (ic *ItemCollection) ExtensionList() *Extensions { return nil }

func (ic *ItemCollection) UnmarshalJSON(b []byte) error {
	if isJSONArray(b) {
		var items []Item
		if err := json.Unmarshal(b, &items); err != nil {
			return fmt.Errorf("stac: decode item collection: %w", err)
		}
		*ic = *NewItemCollection(items)
		return nil
	}

	raw, err := decodeObject(b, "item collection")
	if err != nil {
		return err
	}
	if _, err := decodeType(raw, ItemCollectionType); err != nil {
		return err
	}
	if err := requireFields(raw, "features"); err != nil {
		return err
	}

	var w itemCollectionWire
	if err := json.Unmarshal(b, &w); err != nil {
		return fmt.Errorf("stac: decode item collection: %w", err)
	}

	*ic = ItemCollection{
		Type:  w.Type,
		Items: w.Items,
		Links: w.Links,
	}

	ic.ExtensionFields, ic.Unknown = splitLossless(raw, knownItemCollectionSet)
	return nil
}

func (ic ItemCollection) MarshalJSON() ([]byte, error) {
	if err := checkType(ItemCollectionType, ic.Type); err != nil {
		return nil, err
	}
	items := ic.Items
	if items == nil {
		items = []Item{}
	}
	w := itemCollectionWire{
		Type:  ic.Type,
		Items: items,
		Links: ic.Links,
	}
	return marshalLossless(ic.AdditionalFields, w)
}

func isJSONArray(b []byte) bool {
	b = bytes.TrimLeft(b, " \t\r\n")
	return len(b) > 0 && b[0] == '['
}
