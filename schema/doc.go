// Package schema validates STAC documents against JSON Schema documents.
//
// Each document is checked against the core schema of its kind and against
// the schema of every URI in its stac_extensions. Schemas are obtained from a
// caller-supplied Loader; there is no global registry or network access of
// its own. Resolved schemas are kept in a per-Validator LRU cache.
//
// A Validator is safe for concurrent use.
package schema
