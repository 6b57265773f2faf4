package schema

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/stacgo/stac-go"
)

// DefaultCacheSize is the number of resolved schemas a Validator keeps.
const DefaultCacheSize = 64

type options struct {
	cacheSize int
	logger    *zap.Logger
}

// Option configures a Validator.
type Option func(*options)

// WithCacheSize sets how many resolved schemas are cached.
func WithCacheSize(n int) Option {
	return func(o *options) { o.cacheSize = n }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// ValidationError lists schema violations, one per failing schema.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Problems) == 0 {
		return "schema: invalid document"
	}
	return "schema: invalid document: " + strings.Join(e.Problems, "; ")
}

// Validator checks documents against core and extension schemas.
type Validator struct {
	load   Loader
	cache  *lru.Cache[string, *jsonschema.Resolved]
	logger *zap.Logger
}

// New returns a Validator that obtains schemas from load.
func New(load Loader, opts ...Option) (*Validator, error) {
	if load == nil {
		return nil, fmt.Errorf("schema: nil loader")
	}
	o := options{cacheSize: DefaultCacheSize, logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	cache, err := lru.New[string, *jsonschema.Resolved](o.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("schema: create cache: %w", err)
	}
	return &Validator{load: load, cache: cache, logger: o.logger}, nil
}

// Validate checks v against the core schema for its kind and the schema of
// each declared extension. Item collections are checked item by item.
// Violations are returned as *ValidationError; failures to load or resolve a
// schema are returned as other errors.
func (v *Validator) Validate(ctx context.Context, value stac.Value) error {
	var problems []string
	if ic, ok := value.(*stac.ItemCollection); ok {
		for idx := range ic.Items {
			p, err := v.problems(ctx, &ic.Items[idx], ic.Items[idx].StacVersion)
			if err != nil {
				return err
			}
			for _, msg := range p {
				problems = append(problems, fmt.Sprintf("features[%d]: %s", idx, msg))
			}
		}
	} else {
		var err error
		problems, err = v.problems(ctx, value, stacVersion(value))
		if err != nil {
			return err
		}
	}
	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}

func (v *Validator) problems(ctx context.Context, value stac.Value, version string) ([]string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("schema: encode document: %w", err)
	}
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return nil, fmt.Errorf("schema: decode document: %w", err)
	}

	var uris []string
	if core := CoreSchemaURI(value.Kind(), version); core != "" {
		uris = append(uris, core)
	}
	if exts := value.ExtensionList(); exts != nil {
		uris = append(uris, *exts...)
	}

	var problems []string
	for _, uri := range uris {
		resolved, err := v.resolve(ctx, uri)
		if err != nil {
			return nil, err
		}
		if err := resolved.Validate(instance); err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", uri, err))
		}
	}
	return problems, nil
}

func (v *Validator) resolve(ctx context.Context, uri string) (*jsonschema.Resolved, error) {
	if r, ok := v.cache.Get(uri); ok {
		return r, nil
	}
	s, err := v.loadSchema(ctx, uri)
	if err != nil {
		return nil, err
	}
	r, err := s.Resolve(&jsonschema.ResolveOptions{
		BaseURI: uri,
		Loader: func(u *url.URL) (*jsonschema.Schema, error) {
			return v.loadSchema(ctx, u.String())
		},
	})
	if err != nil {
		return nil, fmt.Errorf("schema: resolve %s: %w", uri, err)
	}
	v.cache.Add(uri, r)
	return r, nil
}

func (v *Validator) loadSchema(ctx context.Context, uri string) (*jsonschema.Schema, error) {
	data, err := v.load(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("schema: load %s: %w", uri, err)
	}
	var s jsonschema.Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("schema: decode %s: %w", uri, err)
	}
	v.logger.Debug("loaded schema", zap.String("uri", uri))
	return &s, nil
}

func stacVersion(value stac.Value) string {
	switch x := value.(type) {
	case *stac.Item:
		return x.StacVersion
	case *stac.Catalog:
		return x.StacVersion
	case *stac.Collection:
		return x.StacVersion
	}
	return ""
}
