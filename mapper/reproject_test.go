package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/venicegeo/geojson-go/geojson"
)

func TestReprojectGeometry_UTMToGeographic(t *testing.T) {
	// Mock: a square around the central meridian of UTM zone 32
	utm := geojson.NewPolygon([][][]float64{[][]float64{
		[]float64{499000, 5205000}, []float64{501000, 5205000},
		[]float64{501000, 5207000}, []float64{499000, 5207000},
		[]float64{499000, 5205000},
	}})

	// Tested code
	reprojected, err := reprojectGeometry(utm, 32632, 4326)

	// Asserts
	assert.Nil(t, err)
	polygon, ok := reprojected.(*geojson.Polygon)
	assert.True(t, ok)
	ring := polygon.Coordinates[0]
	assert.Len(t, ring, 5)
	// Easting 500000 is the zone's central meridian at longitude 9
	assert.InDelta(t, 9.0, (ring[0][0]+ring[1][0])/2, 0.1)
	assert.InDelta(t, 47.0, ring[0][1], 0.5)
}

func TestReprojectGeometry_RoundTrip(t *testing.T) {
	// Mock
	point := geojson.NewPoint([]float64{7.7, 47.1})

	// Tested code
	projected, err := reprojectGeometry(point, 4326, 32632)
	assert.Nil(t, err)
	restored, err := reprojectGeometry(projected, 32632, 4326)

	// Asserts
	assert.Nil(t, err)
	back, ok := restored.(*geojson.Point)
	assert.True(t, ok)
	assert.InDelta(t, 7.7, back.Coordinates[0], 1e-6)
	assert.InDelta(t, 47.1, back.Coordinates[1], 1e-6)
}

func TestReprojectGeometry_SameCode(t *testing.T) {
	// Mock
	point := geojson.NewPoint([]float64{7.7, 47.1})

	// Tested code
	unchanged, err := reprojectGeometry(point, 4326, 4326)

	// Asserts
	assert.Nil(t, err)
	assert.Equal(t, point, unchanged)
}

func TestReprojectGeometry_UnknownCode(t *testing.T) {
	// Tested code
	_, err := reprojectGeometry(geojson.NewPoint([]float64{0, 0}), 999999, 4326)

	// Asserts
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "unsupported EPSG code")
}
