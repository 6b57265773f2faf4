package stac

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func readTestdata(t *testing.T, name string) []byte {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return b
}

func mustUnmarshalJSON[T any](t *testing.T, b []byte, v *T) {
	t.Helper()
	require.NoError(t, json.Unmarshal(b, v), "unmarshal")
}

func mustMarshalJSON(t *testing.T, v any) []byte {
	t.Helper()
	out, err := json.Marshal(v)
	require.NoError(t, err, "marshal")
	return out
}

func mustUnmarshalToMap(t *testing.T, b []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m), "unmarshal output")
	return m
}

// mustRoundTrip decodes in into v, encodes it again and returns the output.
func mustRoundTrip[T any](t *testing.T, in []byte, v *T) []byte {
	t.Helper()
	mustUnmarshalJSON(t, in, v)
	return mustMarshalJSON(t, v)
}
