package schema

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/stacgo/stac-go"
	"github.com/stacgo/stac-go/stacio"
)

const (
	eoURI     = "https://stac-extensions.github.io/eo/v1.0.0/schema.json"
	commonURI = "https://schemas.stacspec.org/v1.0.0/common.json"
)

var testSchemas = map[string][]byte{
	CoreSchemaURI(stac.KindItem, "1.0.0"): []byte(`{
		"type": "object",
		"required": ["type", "id", "properties"],
		"properties": {
			"type": {"const": "Feature"},
			"id": {"type": "string", "minLength": 1},
			"properties": {"type": "object", "required": ["datetime"]}
		}
	}`),
	CoreSchemaURI(stac.KindCatalog, "1.0.0"): []byte(`{
		"type": "object",
		"required": ["type", "id", "description", "links"],
		"properties": {
			"type": {"const": "Catalog"},
			"description": {"type": "string", "minLength": 1},
			"links": {"type": "array", "items": {"$ref": "https://schemas.stacspec.org/v1.0.0/common.json"}}
		}
	}`),
	commonURI: []byte(`{
		"type": "object",
		"required": ["href", "rel"],
		"properties": {
			"href": {"type": "string", "minLength": 1},
			"rel": {"type": "string", "minLength": 1}
		}
	}`),
	eoURI: []byte(`{
		"type": "object",
		"properties": {
			"properties": {
				"type": "object",
				"properties": {
					"eo:cloud_cover": {"type": "number", "minimum": 0, "maximum": 100}
				}
			}
		}
	}`),
}

type countingLoader struct {
	mu    sync.Mutex
	calls map[string]int
	next  Loader
}

func (c *countingLoader) load(ctx context.Context, uri string) ([]byte, error) {
	c.mu.Lock()
	c.calls[uri]++
	c.mu.Unlock()
	return c.next(ctx, uri)
}

func newTestValidator(t *testing.T, opts ...Option) *Validator {
	t.Helper()
	v, err := New(MapLoader(testSchemas), opts...)
	require.NoError(t, err)
	return v
}

func eoItem(t *testing.T, cloud float64) *stac.Item {
	t.Helper()
	item := stac.NewItem("scene")
	item.Extensions.Add(eoURI)
	require.NoError(t, item.Properties.SetField("eo:cloud_cover", cloud))
	return item
}

func TestValidator_ValidItem(t *testing.T) {
	v := newTestValidator(t)
	assert.NoError(t, v.Validate(context.Background(), eoItem(t, 12)))
}

func TestValidator_ExtensionViolation(t *testing.T) {
	v := newTestValidator(t)
	err := v.Validate(context.Background(), eoItem(t, 150))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Problems, 1)
	assert.True(t, strings.HasPrefix(verr.Problems[0], eoURI+": "), verr.Problems[0])
}

func TestValidator_CoreViolation(t *testing.T) {
	v := newTestValidator(t)
	item := stac.NewItem("")

	err := v.Validate(context.Background(), item)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Problems, 1)
	assert.True(t, strings.HasPrefix(verr.Problems[0], CoreSchemaURI(stac.KindItem, "1.0.0")), verr.Problems[0])
}

func TestValidator_FollowsRemoteRefs(t *testing.T) {
	v := newTestValidator(t)
	c := stac.NewCatalog("c", "d")
	c.AddChild("./child.json", "")
	assert.NoError(t, v.Validate(context.Background(), c))

	c.Links.Add(stac.NewLink("", stac.RelItem))
	var verr *ValidationError
	assert.ErrorAs(t, v.Validate(context.Background(), c), &verr)
}

func TestValidator_MissingSchemaIsNotAViolation(t *testing.T) {
	v := newTestValidator(t)
	item := stac.NewItem("x")
	item.Extensions.Add("https://example.org/unknown/v1.0.0/schema.json")

	err := v.Validate(context.Background(), item)
	require.Error(t, err)

	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound), "expected NotFoundError, got %v", err)
	assert.Equal(t, "https://example.org/unknown/v1.0.0/schema.json", notFound.URI)

	var verr *ValidationError
	assert.False(t, errors.As(err, &verr))
}

func TestValidator_UsesVersionSpecificCoreSchema(t *testing.T) {
	v := newTestValidator(t)
	item := stac.NewItem("x")
	item.StacVersion = "1.1.0"

	var notFound *NotFoundError
	require.ErrorAs(t, v.Validate(context.Background(), item), &notFound)
	assert.Equal(t, CoreSchemaURI(stac.KindItem, "1.1.0"), notFound.URI)
}

func TestValidator_CachesResolvedSchemas(t *testing.T) {
	counter := &countingLoader{calls: map[string]int{}, next: MapLoader(testSchemas)}
	core, logs := observer.New(zapcore.DebugLevel)
	v, err := New(counter.load, WithLogger(zap.New(core)))
	require.NoError(t, err)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, v.Validate(ctx, eoItem(t, 1)))
	}
	assert.Equal(t, 1, counter.calls[CoreSchemaURI(stac.KindItem, "1.0.0")])
	assert.Equal(t, 1, counter.calls[eoURI])
	assert.Equal(t, 2, logs.FilterMessage("loaded schema").Len())
}

func TestValidator_SmallCacheEvicts(t *testing.T) {
	counter := &countingLoader{calls: map[string]int{}, next: MapLoader(testSchemas)}
	v, err := New(counter.load, WithCacheSize(1))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, v.Validate(ctx, eoItem(t, 1)))
	require.NoError(t, v.Validate(ctx, eoItem(t, 1)))
	assert.Equal(t, 2, counter.calls[CoreSchemaURI(stac.KindItem, "1.0.0")])
}

func TestValidator_ItemCollectionPrefixesFeatures(t *testing.T) {
	v := newTestValidator(t)
	ic := stac.NewItemCollection([]stac.Item{*eoItem(t, 5), *eoItem(t, -1)})

	err := v.Validate(context.Background(), ic)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Problems, 1)
	assert.True(t, strings.HasPrefix(verr.Problems[0], "features[1]: "+eoURI), verr.Problems[0])
}

func TestNew_RejectsNilLoaderAndBadCacheSize(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	_, err = New(MapLoader(nil), WithCacheSize(0))
	assert.Error(t, err)
}

func TestCoreSchemaURI(t *testing.T) {
	assert.Equal(t, "https://schemas.stacspec.org/v1.0.0/item-spec/json-schema/item.json", CoreSchemaURI(stac.KindItem, ""))
	assert.Equal(t, "https://schemas.stacspec.org/v1.1.0/collection-spec/json-schema/collection.json", CoreSchemaURI(stac.KindCollection, "1.1.0"))
	assert.Equal(t, "", CoreSchemaURI(stac.KindItemCollection, "1.0.0"))
}

func TestFetcherLoader(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/schemas/eo.json", testSchemas[eoURI], 0o644))
	load := FetcherLoader(stacio.FileFetcher{Fs: fs})

	data, err := load(context.Background(), "/schemas/eo.json")
	require.NoError(t, err)
	assert.JSONEq(t, string(testSchemas[eoURI]), string(data))

	_, err = load(context.Background(), "/schemas/missing.json")
	assert.Error(t, err)
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Problems: []string{"a", "b"}}
	assert.Equal(t, "schema: invalid document: a; b", err.Error())
}
