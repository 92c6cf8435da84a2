package raster

import (
	"fmt"
	"sort"
	"strings"

	"github.com/venicegeo/geojson-go/geojson"
)

// MosaicScenes merges scenes acquired on the same day over adjacent tiles
// into one spatial coverage. Band entries of every source tile are kept side
// by side; the merged geometry is the union bounding box of the inputs. The
// heavy resampling math of a true pixel mosaic is the consumer's concern,
// exactly like band decoding.
func MosaicScenes(scenes []*Scene) (*Scene, error) {
	if len(scenes) == 0 {
		return nil, fmt.Errorf("Cannot mosaic an empty scene list")
	}
	if len(scenes) == 1 {
		return scenes[0], nil
	}

	// The least cloudy tile provides the representative metadata
	sensingDate := scenes[0].Metadata.SensingDate()
	representative := scenes[0]
	for _, scene := range scenes[1:] {
		if !scene.Metadata.SensingDate().Equal(sensingDate) {
			return nil, fmt.Errorf("Cannot mosaic scenes from different sensing dates: %v vs %v",
				scene.Metadata.SensingDate(), sensingDate)
		}
		if scene.Metadata.CloudCover < representative.Metadata.CloudCover {
			representative = scene
		}
	}

	metadata := representative.Metadata
	metadata.Geometry = unionBounds(scenes)

	tileIDs := make([]string, 0, len(scenes))
	maxCloudCover := float64(0)
	for _, scene := range scenes {
		tileIDs = append(tileIDs, scene.Metadata.TileID)
		if scene.Metadata.CloudCover > maxCloudCover {
			maxCloudCover = scene.Metadata.CloudCover
		}
	}
	sort.Strings(tileIDs)
	metadata.TileID = strings.Join(tileIDs, "-")
	metadata.CloudCover = maxCloudCover
	metadata.Mosaicked = true
	metadata.SourceTiles = tileIDs

	mosaic := NewScene(metadata)
	for _, scene := range scenes {
		for _, name := range scene.BandNames() {
			for i := range scene.Bands[name] {
				mosaic.AddBand(&scene.Bands[name][i])
			}
		}
	}

	return mosaic, nil
}

// unionBounds computes the union bounding box of the scenes' geometries and
// returns it as a polygon
func unionBounds(scenes []*Scene) *geojson.Polygon {
	var bbox geojson.BoundingBox
	for _, scene := range scenes {
		feature := geojson.NewFeature(scene.Metadata.Geometry, scene.Metadata.SceneID, nil)
		sceneBbox := feature.ForceBbox()
		if len(sceneBbox) < 4 {
			continue
		}
		if len(bbox) < 4 {
			bbox = geojson.BoundingBox{sceneBbox[0], sceneBbox[1], sceneBbox[2], sceneBbox[3]}
			continue
		}
		if sceneBbox[0] < bbox[0] {
			bbox[0] = sceneBbox[0]
		}
		if sceneBbox[1] < bbox[1] {
			bbox[1] = sceneBbox[1]
		}
		if sceneBbox[2] > bbox[2] {
			bbox[2] = sceneBbox[2]
		}
		if sceneBbox[3] > bbox[3] {
			bbox[3] = sceneBbox[3]
		}
	}
	if len(bbox) < 4 {
		return nil
	}
	return geojson.NewPolygon([][][]float64{{
		{bbox[0], bbox[1]},
		{bbox[2], bbox[1]},
		{bbox[2], bbox[3]},
		{bbox[0], bbox[3]},
		{bbox[0], bbox[1]},
	}})
}
