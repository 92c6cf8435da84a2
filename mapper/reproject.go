package mapper

import (
	"github.com/pkg/errors"
	"github.com/venicegeo/geojson-go/geojson"
	wgs84 "github.com/wroge/wgs84"
)

// reprojectGeometry transforms a GeoJSON geometry between coordinate
// reference systems identified by EPSG code. The projection math is wgs84's
// concern; this only walks the coordinate arrays.
func reprojectGeometry(geometry interface{}, fromEPSG, toEPSG int) (interface{}, error) {
	if fromEPSG == toEPSG {
		return geometry, nil
	}

	epsg := wgs84.EPSG()
	from := epsg.Code(fromEPSG)
	to := epsg.Code(toEPSG)
	if from == nil {
		return nil, errors.Errorf("unsupported EPSG code: %d", fromEPSG)
	}
	if to == nil {
		return nil, errors.Errorf("unsupported EPSG code: %d", toEPSG)
	}
	transform := wgs84.Transform(from, to)

	position := func(coordinates []float64) []float64 {
		x, y, _ := transform(coordinates[0], coordinates[1], 0)
		return []float64{x, y}
	}
	line := func(coordinates [][]float64) [][]float64 {
		out := make([][]float64, len(coordinates))
		for i, c := range coordinates {
			out[i] = position(c)
		}
		return out
	}
	rings := func(coordinates [][][]float64) [][][]float64 {
		out := make([][][]float64, len(coordinates))
		for i, c := range coordinates {
			out[i] = line(c)
		}
		return out
	}

	switch geom := geometry.(type) {
	case *geojson.Point:
		return geojson.NewPoint(position(geom.Coordinates)), nil
	case *geojson.LineString:
		return geojson.NewLineString(line(geom.Coordinates)), nil
	case *geojson.Polygon:
		return geojson.NewPolygon(rings(geom.Coordinates)), nil
	case *geojson.MultiPolygon:
		out := make([][][][]float64, len(geom.Coordinates))
		for i, c := range geom.Coordinates {
			out[i] = rings(c)
		}
		return geojson.NewMultiPolygon(out), nil
	}
	return nil, errors.Errorf("cannot reproject geometry of type %T", geometry)
}
