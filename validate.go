package stac

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

type validateOptions struct {
	rejectUnknownFields     bool
	requireSupportedVersion bool
}

// ValidateOption configures the Validate methods.
type ValidateOption func(*validateOptions)

// WithRejectUnknownFields treats unknown members that are not prefixed
// extension fields as errors. By default they are preserved and allowed.
func WithRejectUnknownFields() ValidateOption {
	return func(o *validateOptions) { o.rejectUnknownFields = true }
}

// WithRequireSupportedVersion requires stac_version to be within the library's
// supported range. By default any well-formed version is accepted.
func WithRequireSupportedVersion() ValidateOption {
	return func(o *validateOptions) { o.requireSupportedVersion = true }
}

var semverish = regexp.MustCompile(`^\d+\.\d+\.\d+(-[0-9A-Za-z.\-]+)?$`)

// ValidationError is a deterministic, multi-problem validation error.
type ValidationError struct {
	Kind     Kind
	Problems []string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Problems) == 0 {
		return "stac: invalid document"
	}
	return fmt.Sprintf("stac: invalid %s: %s", e.Kind, strings.Join(e.Problems, "; "))
}

// Validate performs shape-level checks on any value. It is not JSON Schema
// validation; see the schema package for that.
func Validate(v Value, opts ...ValidateOption) error {
	switch x := v.(type) {
	case *Item:
		return x.Validate(opts...)
	case *Catalog:
		return x.Validate(opts...)
	case *Collection:
		return x.Validate(opts...)
	case *ItemCollection:
		return x.Validate(opts...)
	}
	return fmt.Errorf("stac: cannot validate %T", v)
}

// Validate performs shape-level checks on the item.
func (i *Item) Validate(opts ...ValidateOption) error {
	o := newValidateOptions(opts)
	return problemsToError(KindItem, i.problems(o))
}

// Validate performs shape-level checks on the catalog.
func (c *Catalog) Validate(opts ...ValidateOption) error {
	o := newValidateOptions(opts)
	var errs []string
	checkCommon(&errs, o, CatalogType, c.Type, c.StacVersion, c.ID, c.Extensions, c.Links)
	if strings.TrimSpace(c.Description) == "" {
		errs = append(errs, "description: required")
	}
	if o.rejectUnknownFields {
		appendUnknownFieldProblems(&errs, "", c.Unknown)
	}
	return problemsToError(KindCatalog, errs)
}

// Validate performs shape-level checks on the collection.
func (c *Collection) Validate(opts ...ValidateOption) error {
	o := newValidateOptions(opts)
	var errs []string
	checkCommon(&errs, o, CollectionType, c.Type, c.StacVersion, c.ID, c.Extensions, c.Links)
	if strings.TrimSpace(c.Description) == "" {
		errs = append(errs, "description: required")
	}
	if strings.TrimSpace(c.License) == "" {
		errs = append(errs, "license: required")
	}
	for idx, p := range c.Providers {
		if strings.TrimSpace(p.Name) == "" {
			errs = append(errs, fmt.Sprintf("providers[%d].name: required", idx))
		}
	}

	if len(c.Extent.Spatial.BBox) == 0 {
		errs = append(errs, "extent.spatial.bbox: at least one bounding box required")
	}
	for idx, bbox := range c.Extent.Spatial.BBox {
		checkBBox(&errs, fmt.Sprintf("extent.spatial.bbox[%d]", idx), bbox)
	}
	if len(c.Extent.Temporal.Interval) == 0 {
		errs = append(errs, "extent.temporal.interval: at least one interval required")
	}
	for idx, iv := range c.Extent.Temporal.Interval {
		checkInterval(&errs, fmt.Sprintf("extent.temporal.interval[%d]", idx), iv)
	}

	checkAssets(&errs, o, c.Assets)
	if o.rejectUnknownFields {
		appendUnknownFieldProblems(&errs, "", c.Unknown)
	}
	return problemsToError(KindCollection, errs)
}

// Validate performs shape-level checks on the page and each of its items.
func (ic *ItemCollection) Validate(opts ...ValidateOption) error {
	o := newValidateOptions(opts)
	var errs []string
	if ic.Type != ItemCollectionType {
		errs = append(errs, fmt.Sprintf("type: must be %q (got %q)", ItemCollectionType, ic.Type))
	}
	checkLinks(&errs, o, ic.Links)
	for idx := range ic.Items {
		for _, p := range ic.Items[idx].problems(o) {
			errs = append(errs, fmt.Sprintf("features[%d].%s", idx, p))
		}
	}
	if o.rejectUnknownFields {
		appendUnknownFieldProblems(&errs, "", ic.Unknown)
	}
	return problemsToError(KindItemCollection, errs)
}

func (i *Item) problems(o validateOptions) []string {
	var errs []string
	checkCommon(&errs, o, ItemType, i.Type, i.StacVersion, i.ID, i.Extensions, i.Links)

	if i.Geometry != nil && strings.TrimSpace(i.Geometry.Type) == "" {
		errs = append(errs, "geometry.type: required")
	}
	if i.Geometry != nil && i.BBox == nil {
		errs = append(errs, "bbox: required when geometry is not null")
	}
	if i.BBox != nil {
		checkBBox(&errs, "bbox", i.BBox)
	}

	props := i.Properties
	if props.Datetime == nil {
		if stringValue(props.StartDatetime) == "" || stringValue(props.EndDatetime) == "" {
			errs = append(errs, "properties.datetime: null requires start_datetime and end_datetime")
		}
	} else if _, _, err := parseTimestamp(props.Datetime); err != nil {
		errs = append(errs, fmt.Sprintf("properties.datetime: must be RFC 3339 (got %q)", *props.Datetime))
	}
	if props.StartDatetime != nil || props.EndDatetime != nil {
		checkInterval(&errs, "properties.start_datetime/end_datetime", Interval{props.StartDatetime, props.EndDatetime})
	}

	checkAssets(&errs, o, i.Assets)
	if o.rejectUnknownFields {
		appendUnknownFieldProblems(&errs, "", i.Unknown)
	}
	return errs
}

func newValidateOptions(opts []ValidateOption) validateOptions {
	var o validateOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

func problemsToError(kind Kind, errs []string) error {
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Kind: kind, Problems: errs}
}

func checkCommon(errs *[]string, o validateOptions, expectedType, typ, version, id string, exts Extensions, links Links) {
	if typ != expectedType {
		*errs = append(*errs, fmt.Sprintf("type: must be %q (got %q)", expectedType, typ))
	}

	if strings.TrimSpace(version) == "" {
		*errs = append(*errs, "stac_version: required")
	} else if !semverish.MatchString(version) {
		*errs = append(*errs, "stac_version: must be MAJOR.MINOR.PATCH (e.g. 1.0.0)")
	} else if o.requireSupportedVersion {
		ok, err := IsSupportedVersion(version)
		if err != nil {
			*errs = append(*errs, fmt.Sprintf("stac_version: invalid version: %v", err))
		} else if !ok {
			*errs = append(*errs, fmt.Sprintf("stac_version: unsupported version %q (supported %s-%s)", version, MinSupportedVersion, MaxTestedVersion))
		}
	}

	if strings.TrimSpace(id) == "" {
		*errs = append(*errs, "id: required")
	}

	seen := map[string]bool{}
	for idx, uri := range exts {
		switch {
		case strings.TrimSpace(uri) == "":
			*errs = append(*errs, fmt.Sprintf("stac_extensions[%d]: must be non-empty", idx))
		case seen[uri]:
			*errs = append(*errs, fmt.Sprintf("stac_extensions[%d]: duplicate %q", idx, uri))
		}
		seen[uri] = true
	}

	checkLinks(errs, o, links)
}

func checkLinks(errs *[]string, o validateOptions, links Links) {
	for idx, l := range links {
		if strings.TrimSpace(l.Href) == "" {
			*errs = append(*errs, fmt.Sprintf("links[%d].href: required", idx))
		}
		if strings.TrimSpace(l.Rel) == "" {
			*errs = append(*errs, fmt.Sprintf("links[%d].rel: required", idx))
		}
		if o.rejectUnknownFields {
			appendUnknownFieldProblems(errs, fmt.Sprintf("links[%d]", idx), l.Unknown)
		}
	}
	if selfs := len(links.All(RelSelf)); selfs > 1 {
		*errs = append(*errs, fmt.Sprintf("links: %d \"self\" links, at most one allowed", selfs))
	}
}

func checkAssets(errs *[]string, o validateOptions, assets Assets) {
	keys := make([]string, 0, len(assets))
	for k := range assets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		a := assets[k]
		if strings.TrimSpace(a.Href) == "" {
			*errs = append(*errs, fmt.Sprintf("assets[%q].href: required", k))
		}
		if o.rejectUnknownFields {
			appendUnknownFieldProblems(errs, fmt.Sprintf("assets[%q]", k), a.Unknown)
		}
	}
}

func checkBBox(errs *[]string, prefix string, bbox []float64) {
	if len(bbox) != 4 && len(bbox) != 6 {
		*errs = append(*errs, fmt.Sprintf("%s: must have 4 or 6 numbers (got %d)", prefix, len(bbox)))
	}
}

func checkInterval(errs *[]string, prefix string, iv Interval) {
	start, hasStart, err := iv.Start()
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("%s: start must be RFC 3339 (got %q)", prefix, *iv[0]))
		return
	}
	end, hasEnd, err := iv.End()
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("%s: end must be RFC 3339 (got %q)", prefix, *iv[1]))
		return
	}
	if hasStart && hasEnd && end.Before(start) {
		*errs = append(*errs, fmt.Sprintf("%s: end is before start", prefix))
	}
}

func appendUnknownFieldProblems(errs *[]string, prefix string, unknown map[string]json.RawMessage) {
	if len(unknown) == 0 {
		return
	}
	keys := make([]string, 0, len(unknown))
	for k := range unknown {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if prefix == "" {
		*errs = append(*errs, fmt.Sprintf("unknown fields: %s", strings.Join(keys, ", ")))
		return
	}
	*errs = append(*errs, fmt.Sprintf("%s: unknown fields: %s", prefix, strings.Join(keys, ", ")))
}
