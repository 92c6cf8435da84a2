package model

import (
	"github.com/venicegeo/geojson-go/geojson"
)

// BandAssets is a mixin carrying the per-band asset URLs of a scene
type BandAssets struct {
	Bands map[string]string
}

// Apply implements the GeoJSONFeatureMixin interface
func (ba BandAssets) Apply(feature *geojson.Feature) error {
	bands := make(map[string]string, len(ba.Bands))
	for name, assetURL := range ba.Bands {
		bands[name] = assetURL
	}
	feature.Properties["bands"] = bands
	return nil
}

// ProcessingInfo is a mixin recording how a loaded scene was post-processed
type ProcessingInfo struct {
	TargetEPSG  int
	Reprojected bool
	Mosaicked   bool
	SourceTiles []string
}

// Apply implements the GeoJSONFeatureMixin interface
func (pi ProcessingInfo) Apply(feature *geojson.Feature) error {
	feature.Properties["targetEpsg"] = pi.TargetEPSG
	feature.Properties["reprojected"] = pi.Reprojected
	feature.Properties["mosaicked"] = pi.Mosaicked
	if len(pi.SourceTiles) > 0 {
		feature.Properties["sourceTiles"] = pi.SourceTiles
	}
	return nil
}
