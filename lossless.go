package stac

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// AdditionalFields is embedded in every typed STAC struct to preserve JSON
// members the library does not model. ExtensionFields holds prefixed keys
// such as "eo:cloud_cover" (the STAC extension naming convention); Unknown
// holds all other unrecognised keys. During marshaling, typed fields always
// win over colliding ExtensionFields/Unknown entries.
//
// Each lossless type has a parallel wire struct used for encoding. When adding
// a field to a typed struct, update the public type, its wire counterpart and
// its known-field set.
type AdditionalFields struct {
	// ExtensionFields preserves "prefix:name" members.
	ExtensionFields map[string]json.RawMessage `json:"-"`

	// Unknown preserves every other member not modeled by the typed struct.
	Unknown map[string]json.RawMessage `json:"-"`
}

// Field returns the raw JSON of an additional member.
func (a *AdditionalFields) Field(key string) (json.RawMessage, bool) {
	if v, ok := a.ExtensionFields[key]; ok {
		return v, true
	}
	v, ok := a.Unknown[key]
	return v, ok
}

// DecodeField unmarshals an additional member into v. It reports whether the
// member was present.
func (a *AdditionalFields) DecodeField(key string, v any) (bool, error) {
	raw, ok := a.Field(key)
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return true, fmt.Errorf("stac: decode field %q: %w", key, err)
	}
	return true, nil
}

// SetField stores v, encoded as JSON, under key. Prefixed keys land in
// ExtensionFields, all others in Unknown. Keys that collide with a typed
// field are stored but lose to the typed value on marshal.
func (a *AdditionalFields) SetField(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("stac: encode field %q: %w", key, err)
	}
	a.DeleteField(key)
	if isExtensionKey(key) {
		if a.ExtensionFields == nil {
			a.ExtensionFields = map[string]json.RawMessage{}
		}
		a.ExtensionFields[key] = raw
		return nil
	}
	if a.Unknown == nil {
		a.Unknown = map[string]json.RawMessage{}
	}
	a.Unknown[key] = raw
	return nil
}

// DeleteField removes an additional member and reports whether it existed.
func (a *AdditionalFields) DeleteField(key string) bool {
	_, inExt := a.ExtensionFields[key]
	_, inUnknown := a.Unknown[key]
	delete(a.ExtensionFields, key)
	delete(a.Unknown, key)
	return inExt || inUnknown
}

// FieldsWithPrefix returns the extension members declared under prefix, e.g.
// "eo" selects "eo:cloud_cover" and "eo:bands".
func (a *AdditionalFields) FieldsWithPrefix(prefix string) map[string]json.RawMessage {
	out := map[string]json.RawMessage{}
	p := prefix + ":"
	for k, v := range a.ExtensionFields {
		if strings.HasPrefix(k, p) {
			out[k] = v
		}
	}
	return out
}

func isExtensionKey(key string) bool {
	i := strings.IndexByte(key, ':')
	return i > 0 && i < len(key)-1
}

// splitLossless separates members not in known into:
// - extension fields: keys of the form "prefix:name"
// - unknown: all other keys
func splitLossless(raw map[string]json.RawMessage, known map[string]struct{}) (extensions, unknown map[string]json.RawMessage) {
	for k, v := range raw {
		if _, ok := known[k]; ok {
			continue
		}
		if isExtensionKey(k) {
			if extensions == nil {
				extensions = map[string]json.RawMessage{}
			}
			extensions[k] = v
			continue
		}
		if unknown == nil {
			unknown = map[string]json.RawMessage{}
		}
		unknown[k] = v
	}
	return extensions, unknown
}

// knownSet builds a map for constant-time known-field checks.
func knownSet(keys ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		out[k] = struct{}{}
	}
	return out
}

// requireFields fails with a MissingFieldError naming the first absent key.
func requireFields(raw map[string]json.RawMessage, keys ...string) error {
	for _, k := range keys {
		if _, ok := raw[k]; !ok {
			return &MissingFieldError{Field: k}
		}
	}
	return nil
}

// decodeObject unmarshals b as a JSON object, wrapping failures with what.
func decodeObject(b []byte, what string) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("stac: decode %s: %w", what, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("stac: decode %s: expected a JSON object, got null", what)
	}
	return raw, nil
}

// marshalLossless merges the additional fields with the typed view such that
// known fields win.
func marshalLossless(a AdditionalFields, typed any) ([]byte, error) {
	out := make(map[string]json.RawMessage, len(a.Unknown)+len(a.ExtensionFields))
	for k, v := range a.Unknown {
		out[k] = v
	}
	for k, v := range a.ExtensionFields {
		out[k] = v
	}

	knownBytes, err := json.Marshal(typed)
	if err != nil {
		return nil, err
	}
	var known map[string]json.RawMessage
	if err := json.Unmarshal(knownBytes, &known); err != nil {
		return nil, err
	}
	for k, v := range known {
		out[k] = v
	}

	return json.Marshal(out)
}

// decodeWire unmarshals b into a wire struct, keeping numbers in untyped
// (any) fields as json.Number so integers beyond 2^53 survive a round trip.
func decodeWire(b []byte, w any) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	return dec.Decode(w)
}

// String returns a pointer to s, for setting optional string fields.
// A nil field is absent from the JSON; a pointer to "" is written as "".
func String(s string) *string { return &s }

func stringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
