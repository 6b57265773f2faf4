package stac

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemCollection_LosslessRoundTrip(t *testing.T) {
	in := readTestdata(t, "item-collection.json")
	var ic ItemCollection
	out := mustRoundTrip(t, in, &ic)

	assert.JSONEq(t, string(in), string(out))
	require.Len(t, ic.Items, 2)
	assert.Equal(t, "item-a", ic.Items[0].ID)
	assert.Nil(t, ic.Items[0].Geometry)
	assert.Contains(t, ic.Items[1].Properties.ExtensionFields, "eo:cloud_cover")
	assert.Contains(t, ic.Unknown, "numberMatched")
	assert.Contains(t, ic.Links[0].Unknown, "method")
}

func TestItemCollection_Unmarshal_BareArray(t *testing.T) {
	in := []byte(` [
		{"type":"Feature","stac_version":"1.0.0","id":"a","geometry":null,"properties":{"datetime":null}},
		{"type":"Feature","stac_version":"1.0.0","id":"b","geometry":null,"properties":{"datetime":null}}
	]`)
	var ic ItemCollection
	mustUnmarshalJSON(t, in, &ic)

	assert.Equal(t, ItemCollectionType, ic.Type)
	require.Len(t, ic.Items, 2)
	assert.Equal(t, "b", ic.Items[1].ID)

	out := mustUnmarshalToMap(t, mustMarshalJSON(t, ic))
	assert.Equal(t, "FeatureCollection", out["type"])
	assert.Len(t, out["features"], 2)
	assert.NotContains(t, out, "links")
}

func TestItemCollection_Unmarshal_BareArrayRejectsNonItem(t *testing.T) {
	var ic ItemCollection
	err := json.Unmarshal([]byte(`[{"type":"Catalog","id":"x","description":"d","links":[]}]`), &ic)

	var mismatch *TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, ItemType, mismatch.Expected)
}

func TestItemCollection_Unmarshal_RequiresFeatures(t *testing.T) {
	var ic ItemCollection
	err := json.Unmarshal([]byte(`{"type":"FeatureCollection"}`), &ic)

	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "features", missing.Field)
}

func TestNewItemCollection_Empty(t *testing.T) {
	ic := NewItemCollection(nil)
	assert.Equal(t, "", ic.Href())
	assert.Nil(t, ic.ExtensionList())
	out := mustMarshalJSON(t, ic)
	assert.JSONEq(t, `{"type":"FeatureCollection","features":[]}`, string(out))
}

func TestItemCollection_Marshal_FailsAfterTypeChanged(t *testing.T) {
	ic := NewItemCollection(nil)
	ic.Type = "Feature"
	_, err := json.Marshal(ic)

	var mismatch *TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, ItemCollectionType, mismatch.Expected)
}
