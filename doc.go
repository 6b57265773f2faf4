// Package stac models SpatioTemporal Asset Catalog (STAC) documents.
//
// STAC has three document kinds, plus a page of items returned by APIs:
//   - Item: a GeoJSON Feature describing one spatiotemporal asset
//   - Catalog: a group of catalogs, collections and items, joined by links
//   - Collection: a Catalog with extent, provider and summary metadata
//   - ItemCollection: a GeoJSON FeatureCollection of items
//
// # Quick Start
//
//	v, err := stac.ParseValue(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	switch doc := v.(type) {
//	case *stac.Item:
//	    fmt.Println(doc.ID, doc.Properties.Datetime)
//	case *stac.Catalog:
//	    for _, l := range doc.Links.All(stac.RelChild) {
//	        fmt.Println(l.Href)
//	    }
//	}
//
// When the kind is known ahead of time, decode directly:
//
//	var item stac.Item
//	err := json.Unmarshal(data, &item)
//
// # Discriminator
//
// Each kind carries a fixed "type" value (ItemType, CatalogType,
// CollectionType, ItemCollectionType). Decoding a body whose type differs
// fails with *TypeMismatchError, and so does encoding a value whose Type field
// has been changed.
//
// # Lossless JSON
//
// Members not modeled by a struct are kept in its embedded AdditionalFields:
// ExtensionFields for "prefix:name" keys such as "eo:cloud_cover", Unknown for
// the rest. They are written back on marshal, so a decode/encode round trip is
// structurally equal to the input. Key order is not preserved. If a key exists
// both as a typed field and in AdditionalFields, the typed field wins.
//
// # Hrefs and Links
//
// A document remembers where it was read from through its embedded Origin
// (Href/SetHref). The href is never serialized. Relative link hrefs are
// resolved against it with ResolveLink; a document without an href cannot
// resolve relative links and returns ErrNoHref.
//
// # Concurrency
//
// Documents are plain values with no internal synchronization. Concurrent
// reads are safe; concurrent writes to the same document require external
// synchronization.
//
// # Subpackages
//
//   - mediatype: canonical media types for link and asset "type" members
//   - stacio: reading and writing documents from files and URLs
//   - schema: JSON Schema validation against core and extension schemas
package stac
