package schema

import (
	"context"
	"fmt"

	"github.com/stacgo/stac-go"
	"github.com/stacgo/stac-go/stacio"
)

// Loader returns the bytes of the schema document identified by uri.
type Loader func(ctx context.Context, uri string) ([]byte, error)

// NotFoundError reports a schema URI a Loader does not know.
type NotFoundError struct {
	URI string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("schema: no schema for %q", e.URI)
}

// MapLoader serves schemas from memory.
func MapLoader(schemas map[string][]byte) Loader {
	return func(_ context.Context, uri string) ([]byte, error) {
		data, ok := schemas[uri]
		if !ok {
			return nil, &NotFoundError{URI: uri}
		}
		return data, nil
	}
}

// FetcherLoader loads schemas with a stacio.Fetcher, e.g. an HTTPFetcher for
// the published schemas.
func FetcherLoader(f stacio.Fetcher) Loader {
	return func(ctx context.Context, uri string) ([]byte, error) {
		data, _, err := f.Fetch(ctx, uri)
		return data, err
	}
}

// CoreSchemaURI returns the published schema URI for a kind at a STAC
// version, or "" for kinds without a core schema. An empty version means
// stac.Version.
func CoreSchemaURI(kind stac.Kind, version string) string {
	if version == "" {
		version = stac.Version
	}
	var path string
	switch kind {
	case stac.KindItem:
		path = "item-spec/json-schema/item.json"
	case stac.KindCatalog:
		path = "catalog-spec/json-schema/catalog.json"
	case stac.KindCollection:
		path = "collection-spec/json-schema/collection.json"
	default:
		return ""
	}
	return fmt.Sprintf("https://schemas.stacspec.org/v%s/%s", version, path)
}
