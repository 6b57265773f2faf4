package stac

import (
	"encoding/json"
	"fmt"
)

// Document is implemented by every STAC structure: it knows its origin, owns
// an ordered link list and declares extensions.
type Document interface {
	Hrefer
	// LinkList returns the document's links for in-place mutation.
	LinkList() *Links
	// ExtensionList returns the declared extensions for in-place mutation, or
	// nil for structures that declare none.
	ExtensionList() *Extensions
}

// Value is one of *Item, *Catalog, *Collection or *ItemCollection. It is used
// where the concrete kind is only known after decoding.
type Value interface {
	Document
	json.Marshaler
	json.Unmarshaler
	Kind() Kind
	isValue()
}

var (
	_ Value = (*Item)(nil)
	_ Value = (*Catalog)(nil)
	_ Value = (*Collection)(nil)
	_ Value = (*ItemCollection)(nil)
)

// ParseValue decodes a document of unknown kind. A JSON array decodes as an
// ItemCollection; an object is dispatched on its "type" member.
func ParseValue(b []byte) (Value, error) {
	if isJSONArray(b) {
		ic := &ItemCollection{}
		if err := ic.UnmarshalJSON(b); err != nil {
			return nil, err
		}
		return ic, nil
	}

	raw, err := decodeObject(b, "document")
	if err != nil {
		return nil, err
	}
	typ, err := readType(raw)
	if err != nil {
		return nil, err
	}
	kind, ok := KindOf(typ)
	if !ok {
		return nil, &UnknownTypeError{Type: typ}
	}

	v := New(kind)
	if err := v.UnmarshalJSON(b); err != nil {
		return nil, err
	}
	return v, nil
}

// New returns an empty value of the given kind with its discriminator set.
func New(kind Kind) Value {
	switch kind {
	case KindItem:
		return &Item{Type: ItemType}
	case KindCatalog:
		return &Catalog{Type: CatalogType}
	case KindCollection:
		return &Collection{Type: CollectionType}
	case KindItemCollection:
		return &ItemCollection{Type: ItemCollectionType}
	default:
		panic(fmt.Sprintf("stac: unknown kind %d", int(kind)))
	}
}

// As converts v to the concrete type T, failing with a *TypeMismatchError
// when v holds a different kind.
func As[T Value](v Value) (T, error) {
	var zero T
	if v == nil {
		return zero, &TypeMismatchError{Expected: zero.Kind().String()}
	}
	t, ok := v.(T)
	if !ok {
		return zero, &TypeMismatchError{Expected: zero.Kind().String(), Actual: v.Kind().String()}
	}
	return t, nil
}

// ResolveLink resolves link's href against the document's href.
func ResolveLink(d Document, link Link) (string, error) {
	return link.Resolve(d.Href())
}

// ResolveRel resolves the hrefs of every link with the given relation type.
func ResolveRel(d Document, rel string) ([]string, error) {
	var out []string
	for _, l := range d.LinkList().All(rel) {
		href, err := ResolveLink(d, l)
		if err != nil {
			return nil, err
		}
		out = append(out, href)
	}
	return out, nil
}

// Relocate records a new location for d: its href and "self" link are set to
// self, and its "root" and "parent" links are replaced. An empty root or
// parent removes that link, as for the top of a tree.
func Relocate(d Document, self, root, parent string) {
	d.SetHref(self)
	links := d.LinkList()
	links.SetSelf(self)
	if root == "" {
		links.Remove(RelRoot)
	} else {
		links.SetRoot(root)
	}
	if parent == "" {
		links.Remove(RelParent)
	} else {
		links.SetParent(parent)
	}
}
