// Package stacio reads and writes STAC documents.
//
// A Reader turns a location (a filesystem path, a file:// URL or, when a
// network fetcher is configured, an http(s) URL) into a stac.Value and records
// the resolved location as the document's href. Without a network fetcher,
// URL locations fail with *stac.UnsupportedLocationError; no request is made.
//
//	r := stacio.NewReader(stacio.WithHTTP(stacio.NewHTTPFetcher()))
//	item, err := stacio.ReadAs[*stac.Item](ctx, r, "https://example.org/item.json")
//
// Filesystem access goes through an afero.Fs so callers and tests can swap in
// an in-memory filesystem. Readers and Writers are safe for concurrent use.
package stacio
