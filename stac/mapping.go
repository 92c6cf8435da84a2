package stac

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/venicegeo/eo-mapper/model"
	"github.com/venicegeo/eo-mapper/util"
	"github.com/venicegeo/geojson-go/geojson"
)

func parseSearchResults(context *Context, body []byte) ([]model.SceneMetadata, *searchResults, error) {
	featureCollection, err := rawBytesToFeatureCollection(context, body)
	if err != nil {
		return nil, nil, err
	}

	var results searchResults
	if err = json.Unmarshal(body, &results); err != nil {
		return nil, nil, err
	}
	if len(results.Features) != len(featureCollection.Features) {
		return nil, nil, fmt.Errorf("Length mismatch between parsed GeoJSON features (%d) and STAC items (%d)",
			len(featureCollection.Features), len(results.Features))
	}

	scenes := make([]model.SceneMetadata, len(featureCollection.Features))
	for i, feature := range featureCollection.Features {
		scene, err := sceneMetadataFromItem(feature, results.Features[i], context)
		if err != nil {
			return nil, nil, err
		}
		scenes[i] = *scene
	}

	return scenes, &results, nil
}

func rawBytesToFeatureCollection(context *Context, body []byte) (*geojson.FeatureCollection, error) {
	var (
		featureCollection *geojson.FeatureCollection
		geoJSONParsedData interface{}
		ok                bool
		err               error
	)
	if geoJSONParsedData, err = geojson.Parse(body); err != nil {
		err = util.LogSimpleErr(context, fmt.Sprintf("Failed to parse GeoJSON.\n%v", string(body)), err)
		return nil, err
	}

	if featureCollection, ok = geoJSONParsedData.(*geojson.FeatureCollection); !ok {
		stacErr := util.Error{SimpleMsg: fmt.Sprintf("Expected a FeatureCollection and got %T", geoJSONParsedData), Response: string(body)}
		err = stacErr.Log(context, "")
		return nil, err
	}

	return featureCollection, nil
}

// sceneMetadataFromItem maps a returned STAC item into the uniform scene
// schema using the configured provider's property names
func sceneMetadataFromItem(feature *geojson.Feature, item stacItem, context *Context) (*model.SceneMetadata, error) {
	mapping := context.Provider.Sentinel2

	sensingTimeStr := feature.PropertyString(mapping.SensingTime)
	sensingTime, err := model.ParseSensingTime(sensingTimeStr)
	if err != nil {
		return nil, err
	}

	sceneID := itemProperty(feature, item, mapping.SceneID)
	if sceneID == "" {
		sceneID = item.ID
	}

	scene := model.SceneMetadata{
		SceneID:     sceneID,
		ProductURI:  itemProperty(feature, item, mapping.ProductURI),
		Collection:  item.Collection,
		Platform:    feature.PropertyString(mapping.Platform),
		TileID:      tileIDFromProperties(feature, mapping.TileID),
		SensingTime: sensingTime,
		CloudCover:  feature.PropertyFloat(mapping.CloudCover),
		Resolution:  feature.PropertyFloat("gsd"),
		EPSG:        int(feature.PropertyFloat(mapping.EPSG)),
		SunAzimuth:  feature.PropertyFloat(mapping.SunAzimuth),
		SunZenith:   feature.PropertyFloat(mapping.SunZenith),
		Geometry:    feature.Geometry,
		FileFormat:  model.GeoTIFF,
		Assets:      assetHrefs(item.Assets),
	}

	for _, href := range scene.Assets {
		if strings.HasSuffix(strings.ToLower(href), ".jp2") {
			scene.FileFormat = model.JPEG2000
			break
		}
	}

	return &scene, nil
}

// itemProperty reads a mapped field that some providers keep on the item root
// and others under properties
func itemProperty(feature *geojson.Feature, item stacItem, key string) string {
	switch key {
	case "id":
		return item.ID
	case "collection":
		return item.Collection
	}
	return feature.PropertyString(key)
}

// tileIDFromProperties concatenates the configured tile-id properties; some
// providers split the tile identifier into zone, band and square parts
func tileIDFromProperties(feature *geojson.Feature, keys []string) string {
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		value, ok := feature.Properties[key]
		if !ok {
			continue
		}
		switch v := value.(type) {
		case string:
			parts = append(parts, v)
		case float64:
			parts = append(parts, fmt.Sprintf("%d", int(v)))
		default:
			parts = append(parts, fmt.Sprintf("%v", v))
		}
	}
	return strings.Join(parts, "")
}

func assetHrefs(assets map[string]stacAsset) map[string]string {
	if len(assets) == 0 {
		return nil
	}
	hrefs := make(map[string]string, len(assets))
	for name, asset := range assets {
		hrefs[name] = asset.Href
	}
	return hrefs
}
