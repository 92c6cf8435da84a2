package mapper

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/venicegeo/geojson-go/geojson"
)

// Feature is a named area of interest: a geometry in a stated coordinate
// reference system plus free-form attributes
type Feature struct {
	Name       string
	Geometry   interface{} // a GeoJSON geometry
	EPSG       int
	Attributes map[string]interface{}
}

// NewFeature validates and creates an area-of-interest feature
func NewFeature(name string, geometry interface{}, epsg int, attributes map[string]interface{}) (*Feature, error) {
	if name == "" {
		return nil, errors.New("a feature requires a name")
	}
	if geometry == nil {
		return nil, errors.New("a feature requires a geometry")
	}
	if epsg <= 0 {
		return nil, errors.Errorf("invalid EPSG code: %d", epsg)
	}
	return &Feature{Name: name, Geometry: geometry, EPSG: epsg, Attributes: attributes}, nil
}

// GeoJSONFeature implements the model.GeoJSONFeatureCreator interface
func (f *Feature) GeoJSONFeature() (*geojson.Feature, error) {
	properties := map[string]interface{}{
		"name": f.Name,
		"epsg": f.EPSG,
	}
	for key, value := range f.Attributes {
		properties[key] = value
	}
	feature := geojson.NewFeature(f.Geometry, f.Name, properties)
	feature.Bbox = feature.ForceBbox()
	return feature, nil
}

// geometryString serializes the feature geometry to its GeoJSON text
func (f *Feature) geometryString() (string, error) {
	feature := geojson.NewFeature(f.Geometry, nil, nil)
	if feature == nil {
		return "", fmt.Errorf("could not wrap geometry %v", f.Geometry)
	}
	return feature.String(), nil
}

// geometryFromString parses a GeoJSON text back into a geometry
func geometryFromString(geometryJSON string) (interface{}, error) {
	parsed, err := geojson.Parse([]byte(geometryJSON))
	if err != nil {
		return nil, errors.Wrap(err, "parsing feature geometry")
	}
	if feature, ok := parsed.(*geojson.Feature); ok {
		return feature.Geometry, nil
	}
	return parsed, nil
}
