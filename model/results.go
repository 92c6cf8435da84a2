package model

import (
	"time"

	"github.com/venicegeo/geojson-go/geojson"
)

// SceneMetadata holds one catalog entry in the uniform schema, regardless of
// which STAC provider or database row it was mapped from
type SceneMetadata struct {
	SceneID     string
	ProductURI  string
	Collection  string
	Platform    string
	TileID      string
	SensingTime time.Time
	CloudCover  float64
	Resolution  float64
	EPSG        int
	TargetEPSG  int
	Reprojected bool
	Mosaicked   bool
	SourceTiles []string
	SunAzimuth  float64
	SunZenith   float64
	Geometry    interface{}
	FileFormat  SceneFileFormat
	Assets      map[string]string
}

// SensingDate returns the scene's acquisition date at day precision
func (sm SceneMetadata) SensingDate() time.Time {
	return SensingDate(sm.SensingTime)
}

// GeoJSONFeature implements the GeoJSONFeatureCreator interface
func (sm SceneMetadata) GeoJSONFeature() (*geojson.Feature, error) {
	f := geojson.NewFeature(sm.Geometry, sm.SceneID, map[string]interface{}{
		"productUri":  sm.ProductURI,
		"collection":  sm.Collection,
		"platform":    sm.Platform,
		"tileId":      sm.TileID,
		"sensingTime": sm.SensingTime.Format(StandardTimeLayout),
		"cloudCover":  sm.CloudCover,
		"resolution":  sm.Resolution,
		"epsg":        sm.EPSG,
		"sunAzimuth":  sm.SunAzimuth,
		"sunZenith":   sm.SunZenith,
		"fileFormat":  string(sm.FileFormat),
	})
	if sm.TargetEPSG != 0 || sm.Mosaicked {
		info := ProcessingInfo{
			TargetEPSG:  sm.TargetEPSG,
			Reprojected: sm.Reprojected,
			Mosaicked:   sm.Mosaicked,
			SourceTiles: sm.SourceTiles,
		}
		if err := info.Apply(f); err != nil {
			return nil, err
		}
	}
	if len(sm.Assets) > 0 {
		if err := (BandAssets{Bands: sm.Assets}).Apply(f); err != nil {
			return nil, err
		}
	}
	f.Bbox = f.ForceBbox()
	return f, nil
}

// MultiSceneResult is a container type for bundling multiple results together,
// e.g. as results from a discover endpoint
type MultiSceneResult struct {
	FeatureCreators []GeoJSONFeatureCreator
}

// GeoJSONFeatureCollection implements the GeoJSONFeatureCollectionCreator interface
func (result MultiSceneResult) GeoJSONFeatureCollection() (*geojson.FeatureCollection, error) {
	var err error
	features := make([]*geojson.Feature, len(result.FeatureCreators))
	for i, creator := range result.FeatureCreators {
		features[i], err = creator.GeoJSONFeature()
		if err != nil {
			return nil, err
		}
	}

	return geojson.NewFeatureCollection(features), nil
}
