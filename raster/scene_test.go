package raster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/venicegeo/eo-mapper/model"
	"github.com/venicegeo/geojson-go/geojson"
)

// General test mocks and utils

func mockMetadata(sceneID, tileID string, sensingTime time.Time, cloudCover float64) model.SceneMetadata {
	return model.SceneMetadata{
		SceneID:     sceneID,
		Collection:  "sentinel-2-l2a",
		Platform:    "Sentinel-2A",
		TileID:      tileID,
		SensingTime: sensingTime,
		CloudCover:  cloudCover,
		EPSG:        32632,
		Geometry: geojson.NewPolygon([][][]float64{[][]float64{
			[]float64{7.5, 47.0}, []float64{7.9, 47.0}, []float64{7.9, 47.3}, []float64{7.5, 47.3}, []float64{7.5, 47.0},
		}}),
		FileFormat: model.JPEG2000,
		Assets: map[string]string{
			"B02": "https://example.localhost/" + tileID + "/B02.jp2",
			"B03": "https://example.localhost/" + tileID + "/B03.jp2",
		},
	}
}

var mockSensingTime = time.Date(2022, 6, 25, 10, 16, 11, 0, time.UTC)

// Actual tests

func TestScene_AddBand_GroupsByBandName(t *testing.T) {
	// Mock
	scene := NewScene(mockMetadata("scene-1", "32TMT", mockSensingTime, 10))

	// Tested code
	scene.AddBand(&Band{Name: "B02", TileID: "32TMT"})
	scene.AddBand(&Band{Name: "B02", TileID: "32TNT"})
	scene.AddBand(&Band{Name: "B03", TileID: "32TMT"})

	// Asserts
	assert.Equal(t, []string{"B02", "B03"}, scene.BandNames())
	assert.Len(t, scene.Bands["B02"], 2)
	assert.Len(t, scene.Bands["B03"], 1)
}

func TestSceneCollection_Add_SortsBySensingTime(t *testing.T) {
	// Mock
	collection := NewSceneCollection()
	later := NewScene(mockMetadata("scene-later", "32TMT", mockSensingTime.Add(48*time.Hour), 10))
	earlier := NewScene(mockMetadata("scene-earlier", "32TMT", mockSensingTime, 10))

	// Tested code
	assert.Nil(t, collection.Add(later))
	assert.Nil(t, collection.Add(earlier))

	// Asserts
	assert.Equal(t, 2, collection.Len())
	assert.Equal(t, "scene-earlier", collection.Scenes()[0].Metadata.SceneID)
	assert.Equal(t, []time.Time{mockSensingTime, mockSensingTime.Add(48 * time.Hour)}, collection.Timestamps())
}

func TestSceneCollection_Add_RejectsDuplicates(t *testing.T) {
	// Mock
	collection := NewSceneCollection()
	scene := NewScene(mockMetadata("scene-1", "32TMT", mockSensingTime, 10))

	// Tested code
	assert.Nil(t, collection.Add(scene))
	err := collection.Add(scene)

	// Asserts
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "already contains scene")
}

func TestSceneCollection_Lookups(t *testing.T) {
	// Mock
	collection := NewSceneCollection()
	scene := NewScene(mockMetadata("scene-1", "32TMT", mockSensingTime, 10))
	collection.Add(scene)

	// Tested code + Asserts
	byID, ok := collection.GetBySceneID("scene-1")
	assert.True(t, ok)
	assert.Equal(t, scene, byID)

	byTime, ok := collection.GetByTime(mockSensingTime)
	assert.True(t, ok)
	assert.Equal(t, scene, byTime)

	_, ok = collection.GetBySceneID("no-such-scene")
	assert.False(t, ok)
}

func TestDefaultSceneConstructor_RecordsAssetReferences(t *testing.T) {
	// Mock
	metadata := mockMetadata("scene-1", "32TMT", mockSensingTime, 10)

	// Tested code
	scene, err := DefaultSceneConstructor(nil, metadata, ConstructorOptions{})

	// Asserts
	assert.Nil(t, err)
	assert.Equal(t, []string{"B02", "B03"}, scene.BandNames())
	assert.Equal(t, "https://example.localhost/32TMT/B02.jp2", scene.Bands["B02"][0].URL)
	assert.Nil(t, scene.Bands["B02"][0].Data)
}

func TestDefaultSceneConstructor_BandSelection(t *testing.T) {
	// Mock
	metadata := mockMetadata("scene-1", "32TMT", mockSensingTime, 10)

	// Tested code
	scene, err := DefaultSceneConstructor(nil, metadata, ConstructorOptions{BandSelection: []string{"B03"}})

	// Asserts
	assert.Nil(t, err)
	assert.Equal(t, []string{"B03"}, scene.BandNames())
}

func TestDefaultSceneConstructor_MissingBand(t *testing.T) {
	// Mock
	metadata := mockMetadata("scene-1", "32TMT", mockSensingTime, 10)

	// Tested code
	_, err := DefaultSceneConstructor(nil, metadata, ConstructorOptions{BandSelection: []string{"B99"}})

	// Asserts
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "no asset for band B99")
}
