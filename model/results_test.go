package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/venicegeo/geojson-go/geojson"
)

// General test mocks and utils

var mockPolygon = geojson.NewPolygon([][][]float64{[][]float64{
	[]float64{30, 10}, []float64{40, 40}, []float64{20, 40}, []float64{10, 20}, []float64{30, 10},
}})

var mockSceneMetadata = SceneMetadata{
	SceneID:     "S2A_MSIL2A_20220625_T32TMT",
	ProductURI:  "S2A_MSIL2A_20220625T101611_N0400_R065_T32TMT_20220625T161618.SAFE",
	Collection:  "sentinel-2-l2a",
	Platform:    "Sentinel-2A",
	TileID:      "32TMT",
	SensingTime: time.Date(2022, 6, 25, 10, 16, 11, 0, time.UTC),
	CloudCover:  12.5,
	Resolution:  10,
	EPSG:        32632,
	SunAzimuth:  145.23,
	SunZenith:   24.81,
	Geometry:    mockPolygon,
	FileFormat:  JPEG2000,
}

func assertFeatureContainsSceneMetadata(t *testing.T, feature *geojson.Feature, scene SceneMetadata) {
	assert.Equal(t, scene.SceneID, feature.IDStr())
	assert.Equal(t, scene.ProductURI, feature.PropertyString("productUri"))
	assert.Equal(t, scene.Collection, feature.PropertyString("collection"))
	assert.Equal(t, scene.Platform, feature.PropertyString("platform"))
	assert.Equal(t, scene.TileID, feature.PropertyString("tileId"))
	assert.Equal(t, scene.SensingTime.Format(StandardTimeLayout), feature.PropertyString("sensingTime"))
	assert.Equal(t, scene.CloudCover, feature.PropertyFloat("cloudCover"))
	assert.Equal(t, scene.Resolution, feature.PropertyFloat("resolution"))
	assert.Equal(t, string(scene.FileFormat), feature.PropertyString("fileFormat"))
}

// Actual tests

func TestSceneMetadata_GeoJSONFeature(t *testing.T) {
	// Mock
	scene := mockSceneMetadata

	// Tested code
	feature, err := scene.GeoJSONFeature()

	// Asserts
	assert.Nil(t, err)
	assert.NotNil(t, feature)
	assertFeatureContainsSceneMetadata(t, feature, scene)
	assert.Nil(t, feature.Properties["targetEpsg"])
	assert.Nil(t, feature.Properties["bands"])
	assert.Nil(t, feature.Bbox.Valid())
}

func TestSceneMetadata_GeoJSONFeature_WithTargetEPSG(t *testing.T) {
	// Mock
	scene := mockSceneMetadata
	scene.TargetEPSG = 32633
	scene.Reprojected = true

	// Tested code
	feature, err := scene.GeoJSONFeature()

	// Asserts
	assert.Nil(t, err)
	assertFeatureContainsSceneMetadata(t, feature, scene)
	assert.Equal(t, 32633, feature.Properties["targetEpsg"])
	assert.Equal(t, true, feature.Properties["reprojected"])
}

func TestSceneMetadata_GeoJSONFeature_Mosaicked(t *testing.T) {
	// Mock
	scene := mockSceneMetadata
	scene.TileID = "32TMT-32TNT"
	scene.Mosaicked = true
	scene.SourceTiles = []string{"32TMT", "32TNT"}

	// Tested code
	feature, err := scene.GeoJSONFeature()

	// Asserts
	assert.Nil(t, err)
	assert.Equal(t, true, feature.Properties["mosaicked"])
	assert.Equal(t, []string{"32TMT", "32TNT"}, feature.Properties["sourceTiles"])
}

func TestSceneMetadata_GeoJSONFeature_WithAssets(t *testing.T) {
	// Mock
	scene := mockSceneMetadata
	scene.Assets = map[string]string{
		"B02": "https://example.localhost/B02.jp2",
		"B03": "https://example.localhost/B03.jp2",
	}

	// Tested code
	feature, err := scene.GeoJSONFeature()

	// Asserts
	assert.Nil(t, err)
	assert.IsType(t, map[string]string{}, feature.Properties["bands"])
	bands := feature.Properties["bands"].(map[string]string)
	assert.Equal(t, "https://example.localhost/B02.jp2", bands["B02"])
	assert.Equal(t, "https://example.localhost/B03.jp2", bands["B03"])
}

func TestSceneMetadata_SensingDate(t *testing.T) {
	// Mock
	scene := mockSceneMetadata

	// Tested code
	date := scene.SensingDate()

	// Asserts
	assert.Equal(t, time.Date(2022, 6, 25, 0, 0, 0, 0, time.UTC), date)
}

func TestMultiSceneResult_GeoJSONFeatureCollection(t *testing.T) {
	// Mock
	other := mockSceneMetadata
	other.SceneID = "S2B_MSIL2A_20220630_T32TMT"
	result := MultiSceneResult{FeatureCreators: []GeoJSONFeatureCreator{mockSceneMetadata, other}}

	// Tested code
	collection, err := result.GeoJSONFeatureCollection()

	// Asserts
	assert.Nil(t, err)
	assert.Len(t, collection.Features, 2)
	assert.Equal(t, "S2A_MSIL2A_20220625_T32TMT", collection.Features[0].IDStr())
	assert.Equal(t, "S2B_MSIL2A_20220630_T32TMT", collection.Features[1].IDStr())
}
