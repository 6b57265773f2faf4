package stac

import (
	"encoding/json"
	"fmt"

	"github.com/stacgo/stac-go/mediatype"
)

// Common link relation types.
const (
	RelSelf        = "self"
	RelRoot        = "root"
	RelParent      = "parent"
	RelChild       = "child"
	RelItem        = "item"
	RelItems       = "items"
	RelCollection  = "collection"
	RelLicense     = "license"
	RelDerivedFrom = "derived_from"
	RelAlternate   = "alternate"
)

var knownLinkSet = knownSet("href", "rel", "type", "title")

// Link is a typed reference from a document to another location.
type Link struct {
	Href string
	Rel  string
	// Type is the media type of the target; nil when absent.
	Type  *string
	Title *string

	AdditionalFields
}

type linkWire struct {
	Href  string `json:"href"`
	Rel   string `json:"rel"`
	Type  *string `json:"type,omitempty"`
	Title *string `json:"title,omitempty"`
}

// NewLink returns a link with the given href and relation type.
func NewLink(href, rel string) Link {
	return Link{Href: href, Rel: rel}
}

// JSONLink returns a link to a JSON document, the usual shape of structural
// links between catalogs, collections and items.
func JSONLink(href, rel string) Link {
	return Link{Href: href, Rel: rel, Type: String(mediatype.JSON)}
}

func geoJSONLink(href, rel string) Link {
	return Link{Href: href, Rel: rel, Type: String(mediatype.GeoJSON)}
}

// Resolve resolves the link's href against base. See ResolveHref.
func (l Link) Resolve(base string) (string, error) {
	return ResolveHref(base, l.Href)
}

// IsAbsolute reports whether the href can be used without a base.
func (l Link) IsAbsolute() bool {
	_, err := ResolveHref("", l.Href)
	return err == nil
}

func (l *Link) UnmarshalJSON(b []byte) error {
	raw, err := decodeObject(b, "link")
	if err != nil {
		return err
	}
	if err := requireFields(raw, "href", "rel"); err != nil {
		return err
	}

	var w linkWire
	if err := json.Unmarshal(b, &w); err != nil {
		return fmt.Errorf("stac: decode link: %w", err)
	}

	*l = Link{
		Href:  w.Href,
		Rel:   w.Rel,
		Type:  w.Type,
		Title: w.Title,
	}

	l.ExtensionFields, l.Unknown = splitLossless(raw, knownLinkSet)
	return nil
}

func (l Link) MarshalJSON() ([]byte, error) {
	w := linkWire{
		Href:  l.Href,
		Rel:   l.Rel,
		Type:  l.Type,
		Title: l.Title,
	}
	return marshalLossless(l.AdditionalFields, w)
}

// Links is the ordered link list owned by a document.
type Links []Link

// Link returns the first link with the given relation type.
func (ls Links) Link(rel string) (Link, bool) {
	for _, l := range ls {
		if l.Rel == rel {
			return l, true
		}
	}
	return Link{}, false
}

// All returns every link with the given relation type, in order.
func (ls Links) All(rel string) []Link {
	var out []Link
	for _, l := range ls {
		if l.Rel == rel {
			out = append(out, l)
		}
	}
	return out
}

// Self returns the first "self" link.
func (ls Links) Self() (Link, bool) { return ls.Link(RelSelf) }

// Root returns the first "root" link.
func (ls Links) Root() (Link, bool) { return ls.Link(RelRoot) }

// Parent returns the first "parent" link.
func (ls Links) Parent() (Link, bool) { return ls.Link(RelParent) }

// Add appends a link.
func (ls *Links) Add(link Link) {
	*ls = append(*ls, link)
}

// Remove deletes every link with the given relation type and returns how
// many were removed.
func (ls *Links) Remove(rel string) int {
	kept := (*ls)[:0]
	removed := 0
	for _, l := range *ls {
		if l.Rel == rel {
			removed++
			continue
		}
		kept = append(kept, l)
	}
	clear((*ls)[len(kept):])
	*ls = kept
	return removed
}

// Set makes link the only link of its relation type. It takes the position
// of the first existing link with that relation, or is appended.
func (ls *Links) Set(link Link) {
	out := make(Links, 0, len(*ls)+1)
	placed := false
	for _, l := range *ls {
		if l.Rel != link.Rel {
			out = append(out, l)
			continue
		}
		if !placed {
			out = append(out, link)
			placed = true
		}
	}
	if !placed {
		out = append(out, link)
	}
	*ls = out
}

// SetSelf ensures exactly one "self" link pointing at href.
func (ls *Links) SetSelf(href string) { ls.Set(JSONLink(href, RelSelf)) }

// SetRoot ensures exactly one "root" link pointing at href.
func (ls *Links) SetRoot(href string) { ls.Set(JSONLink(href, RelRoot)) }

// SetParent ensures exactly one "parent" link pointing at href.
func (ls *Links) SetParent(href string) { ls.Set(JSONLink(href, RelParent)) }

// MakeAbsolute resolves every link href against base. Either all links are
// rewritten or, on error, none are.
func (ls *Links) MakeAbsolute(base string) error {
	out := make(Links, len(*ls))
	for i, l := range *ls {
		href, err := l.Resolve(base)
		if err != nil {
			return fmt.Errorf("stac: link %d (rel %q): %w", i, l.Rel, err)
		}
		l.Href = href
		out[i] = l
	}
	*ls = out
	return nil
}
