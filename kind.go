package stac

import (
	"encoding/json"
	"fmt"
)

// Discriminator values of the "type" member.
const (
	ItemType           = "Feature"
	CatalogType        = "Catalog"
	CollectionType     = "Collection"
	ItemCollectionType = "FeatureCollection"
)

// Kind identifies which STAC structure a Value holds.
type Kind int

const (
	KindItem Kind = iota + 1
	KindCatalog
	KindCollection
	KindItemCollection
)

// String returns the discriminator value for the kind.
func (k Kind) String() string {
	switch k {
	case KindItem:
		return ItemType
	case KindCatalog:
		return CatalogType
	case KindCollection:
		return CollectionType
	case KindItemCollection:
		return ItemCollectionType
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// KindOf maps a discriminator value to its Kind.
func KindOf(typ string) (Kind, bool) {
	switch typ {
	case ItemType:
		return KindItem, true
	case CatalogType:
		return KindCatalog, true
	case CollectionType:
		return KindCollection, true
	case ItemCollectionType:
		return KindItemCollection, true
	}
	return 0, false
}

// checkType accepts only exact, case-sensitive equality.
func checkType(expected, actual string) error {
	if actual != expected {
		return &TypeMismatchError{Expected: expected, Actual: actual}
	}
	return nil
}

// readType extracts the "type" member of a decoded object.
func readType(raw map[string]json.RawMessage) (string, error) {
	v, ok := raw["type"]
	if !ok {
		return "", &MissingFieldError{Field: "type"}
	}
	var typ string
	if err := json.Unmarshal(v, &typ); err != nil {
		return "", fmt.Errorf("stac: field \"type\" must be a string: %w", err)
	}
	return typ, nil
}

// decodeType reads the discriminator and checks it against expected.
func decodeType(raw map[string]json.RawMessage, expected string) (string, error) {
	typ, err := readType(raw)
	if err != nil {
		return "", err
	}
	if err := checkType(expected, typ); err != nil {
		return "", err
	}
	return typ, nil
}
