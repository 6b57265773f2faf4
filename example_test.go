package stac_test

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/stacgo/stac-go"
)

func ExampleParseValue() {
	data := []byte(`{
		"type": "Catalog",
		"stac_version": "1.0.0",
		"id": "examples",
		"description": "Example catalog",
		"links": [
			{"rel": "child", "href": "./sentinel/collection.json"},
			{"rel": "item", "href": "./item.json"}
		]
	}`)

	v, err := stac.ParseValue(data)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(v.Kind())
	if c, ok := v.(*stac.Catalog); ok {
		for _, l := range c.Links.All(stac.RelChild) {
			fmt.Println(l.Href)
		}
	}
	// Output:
	// Catalog
	// ./sentinel/collection.json
}

func ExampleItem_lossless() {
	data := []byte(`{
		"type": "Feature",
		"stac_version": "1.0.0",
		"id": "scene-1",
		"geometry": null,
		"properties": {"datetime": "2021-06-01T10:00:00Z", "eo:cloud_cover": 4.5}
	}`)

	var item stac.Item
	if err := json.Unmarshal(data, &item); err != nil {
		log.Fatal(err)
	}

	var cloud float64
	_, _ = item.Properties.DecodeField("eo:cloud_cover", &cloud)
	fmt.Println("cloud cover:", cloud)

	out, _ := json.Marshal(item)
	fmt.Println(string(out))
	// Output:
	// cloud cover: 4.5
	// {"geometry":null,"id":"scene-1","properties":{"datetime":"2021-06-01T10:00:00Z","eo:cloud_cover":4.5},"stac_version":"1.0.0","type":"Feature"}
}

func ExampleItem_discriminator() {
	var item stac.Item
	err := json.Unmarshal([]byte(`{"type":"Catalog","id":"x","description":"d","links":[]}`), &item)
	fmt.Println(err)
	// Output: stac: type mismatch: expected "Feature", got "Catalog"
}

func ExampleResolveLink() {
	catalog := stac.NewCatalog("root", "Root catalog")
	catalog.AddChild("./landsat/collection.json", "Landsat")

	child, _ := catalog.Links.Link(stac.RelChild)
	_, err := stac.ResolveLink(catalog, child)
	fmt.Println(err)

	catalog.SetHref("https://example.org/stac/catalog.json")
	href, _ := stac.ResolveLink(catalog, child)
	fmt.Println(href)
	// Output:
	// stac: cannot resolve relative href: document has no href
	// https://example.org/stac/landsat/collection.json
}

func ExampleCollection_Validate() {
	c := stac.NewCollection("sentinel-2", "Sentinel-2 L2A")
	c.License = ""

	fmt.Println(c.Validate())
	// Output: stac: invalid Collection: license: required
}
