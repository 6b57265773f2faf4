package stacio

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/stacgo/stac-go"
)

type options struct {
	fs     afero.Fs
	http   Fetcher
	logger *zap.Logger
}

// Option configures a Reader or Writer.
type Option func(*options)

// WithFs sets the filesystem used for paths and file:// URLs. Defaults to the
// OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(o *options) { o.fs = fs }
}

// WithHTTP enables http(s) locations using f. Without it, URL reads fail with
// *stac.UnsupportedLocationError.
func WithHTTP(f Fetcher) Option {
	return func(o *options) { o.http = f }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

func newOptions(opts []Option) options {
	o := options{fs: afero.NewOsFs(), logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// Reader loads STAC documents from locations.
type Reader struct {
	files  Fetcher
	http   Fetcher
	logger *zap.Logger
}

// NewReader returns a Reader for the filesystem and, if configured, the network.
func NewReader(opts ...Option) *Reader {
	o := newOptions(opts)
	return &Reader{
		files:  FileFetcher{Fs: o.fs},
		http:   o.http,
		logger: o.logger,
	}
}

// NewReaderFromConfig builds a Reader from cfg. When cfg enables HTTP and no
// WithHTTP option is given, an HTTPFetcher is built from cfg.HTTP.
func NewReaderFromConfig(cfg Config, opts ...Option) *Reader {
	r := NewReader(opts...)
	if cfg.HTTP.Enabled && r.http == nil {
		f := cfg.HTTP.Fetcher()
		f.Logger = r.logger
		r.http = f
	}
	return r
}

// Read fetches and decodes the document at location, which may be a path, a
// file:// URL or an http(s) URL. The returned value's href is the resolved
// location.
func (r *Reader) Read(ctx context.Context, location string) (stac.Value, error) {
	data, resolved, err := r.fetch(ctx, location)
	if err != nil {
		return nil, err
	}
	v, err := stac.ParseValue(data)
	if err != nil {
		return nil, fmt.Errorf("stacio: parse %s: %w", resolved, err)
	}
	v.SetHref(resolved)
	r.logger.Debug("read document",
		zap.String("location", location),
		zap.String("href", resolved),
		zap.Stringer("kind", v.Kind()),
	)
	return v, nil
}

// ReadJSON fetches location and decodes it as untyped JSON.
func (r *Reader) ReadJSON(ctx context.Context, location string) (any, error) {
	data, resolved, err := r.fetch(ctx, location)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("stacio: parse %s: %w", resolved, err)
	}
	return v, nil
}

// ReadAs reads location and requires the document to be of type T.
func ReadAs[T stac.Value](ctx context.Context, r *Reader, location string) (T, error) {
	v, err := r.Read(ctx, location)
	if err != nil {
		var zero T
		return zero, err
	}
	return stac.As[T](v)
}

// ReadLink follows link from doc, resolving a relative href against doc's href.
func (r *Reader) ReadLink(ctx context.Context, doc stac.Document, link stac.Link) (stac.Value, error) {
	href, err := stac.ResolveLink(doc, link)
	if err != nil {
		return nil, err
	}
	return r.Read(ctx, href)
}

func (r *Reader) fetch(ctx context.Context, location string) ([]byte, string, error) {
	f, err := r.fetcherFor(location)
	if err != nil {
		return nil, "", err
	}
	return f.Fetch(ctx, location)
}

func (r *Reader) fetcherFor(location string) (Fetcher, error) {
	scheme, ok := urlScheme(location)
	if !ok || scheme == "file" {
		return r.files, nil
	}
	if (scheme == "http" || scheme == "https") && r.http != nil {
		return r.http, nil
	}
	return nil, &stac.UnsupportedLocationError{Location: location, Scheme: scheme}
}

// urlScheme returns the lowercased scheme of a URL location.
func urlScheme(location string) (string, bool) {
	if !stac.IsURL(location) {
		return "", false
	}
	u, err := url.Parse(location)
	if err != nil {
		return "", false
	}
	return strings.ToLower(u.Scheme), true
}
