package mapper

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/venicegeo/eo-mapper/model"
)

// Supported filter operators
var filterOperators = []string{"==", "!=", "<", "<=", ">", ">=", "in", "like"}

// Filter is one (entity, operator, value) metadata filter
type Filter struct {
	Entity   string
	Operator string
	Value    interface{}
}

// NewFilter validates and creates a metadata filter
func NewFilter(entity, operator string, value interface{}) (*Filter, error) {
	if entity == "" {
		return nil, errors.New("a filter requires an entity")
	}
	valid := false
	for _, op := range filterOperators {
		if operator == op {
			valid = true
			break
		}
	}
	if !valid {
		return nil, errors.Errorf("invalid filter operator %q; must be one of %s",
			operator, strings.Join(filterOperators, ", "))
	}
	return &Filter{Entity: entity, Operator: operator, Value: value}, nil
}

// Expression returns the filter as a readable expression string
func (f Filter) Expression() string {
	return fmt.Sprintf("%s %s %v", f.Entity, f.Operator, f.Value)
}

// Matches applies the filter to one uniform-schema scene. Entities that do
// not exist in the schema are an error rather than a non-match.
func (f Filter) Matches(scene model.SceneMetadata) (bool, error) {
	switch f.Entity {
	case "cloud_cover", "cloudy_pixel_percentage":
		return f.compareNumeric(scene.CloudCover)
	case "resolution":
		return f.compareNumeric(scene.Resolution)
	case "epsg":
		return f.compareNumeric(float64(scene.EPSG))
	case "sun_azimuth_angle":
		return f.compareNumeric(scene.SunAzimuth)
	case "sun_zenith_angle":
		return f.compareNumeric(scene.SunZenith)
	case "platform", "spacecraft_name":
		return f.compareString(scene.Platform)
	case "tile_id":
		return f.compareString(scene.TileID)
	case "scene_id":
		return f.compareString(scene.SceneID)
	case "product_uri":
		return f.compareString(scene.ProductURI)
	case "collection":
		return f.compareString(scene.Collection)
	}
	return false, errors.Errorf("unknown filter entity: %s", f.Entity)
}

func (f Filter) compareNumeric(actual float64) (bool, error) {
	if f.Operator == "in" {
		values, ok := f.Value.([]interface{})
		if !ok {
			return false, errors.Errorf("filter %s requires a list value", f.Expression())
		}
		for _, value := range values {
			expected, err := toFloat(value)
			if err != nil {
				return false, err
			}
			if actual == expected {
				return true, nil
			}
		}
		return false, nil
	}

	expected, err := toFloat(f.Value)
	if err != nil {
		return false, errors.Wrapf(err, "filter %s", f.Expression())
	}
	switch f.Operator {
	case "==":
		return actual == expected, nil
	case "!=":
		return actual != expected, nil
	case "<":
		return actual < expected, nil
	case "<=":
		return actual <= expected, nil
	case ">":
		return actual > expected, nil
	case ">=":
		return actual >= expected, nil
	}
	return false, errors.Errorf("operator %q is not valid for numeric entity %s", f.Operator, f.Entity)
}

func (f Filter) compareString(actual string) (bool, error) {
	switch f.Operator {
	case "==":
		return actual == fmt.Sprintf("%v", f.Value), nil
	case "!=":
		return actual != fmt.Sprintf("%v", f.Value), nil
	case "like":
		pattern := strings.Trim(fmt.Sprintf("%v", f.Value), "%")
		return strings.Contains(strings.ToLower(actual), strings.ToLower(pattern)), nil
	case "in":
		values, ok := f.Value.([]interface{})
		if !ok {
			return false, errors.Errorf("filter %s requires a list value", f.Expression())
		}
		for _, value := range values {
			if actual == fmt.Sprintf("%v", value) {
				return true, nil
			}
		}
		return false, nil
	}
	return false, errors.Errorf("operator %q is not valid for string entity %s", f.Operator, f.Entity)
}

func toFloat(value interface{}) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	}
	return 0, errors.Errorf("expected a numeric value, got %T", value)
}
