package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompileFilters(t *testing.T) {
	// Mock
	filters := []AttributeFilter{
		{Entity: "cloudy_pixel_percentage", Operator: "<", Value: 50},
		{Entity: "spacecraft_name", Operator: "==", Value: "Sentinel-2A"},
	}

	// Tested code
	clauses, params, err := compileFilters(filters, 8)

	// Asserts
	assert.Nil(t, err)
	// Aliased entities compile to their column names
	assert.Equal(t, []string{"cloud_cover < $8", "platform = $9"}, clauses)
	assert.Equal(t, []interface{}{50, "Sentinel-2A"}, params)
}

func TestCompileFilters_InList(t *testing.T) {
	// Mock
	filters := []AttributeFilter{
		{Entity: "tile_id", Operator: "in", Value: []interface{}{"32TMT", "32TNT"}},
	}

	// Tested code
	clauses, params, err := compileFilters(filters, 1)

	// Asserts
	assert.Nil(t, err)
	assert.Equal(t, []string{"tile_id IN ($1, $2)"}, clauses)
	assert.Equal(t, []interface{}{"32TMT", "32TNT"}, params)
}

func TestCompileFilters_InRequiresList(t *testing.T) {
	// Tested code
	_, _, err := compileFilters([]AttributeFilter{{Entity: "tile_id", Operator: "in", Value: "32TMT"}}, 1)

	// Asserts
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "requires a non-empty list")
}

func TestCompileFilters_UnknownEntity(t *testing.T) {
	// Tested code
	_, _, err := compileFilters([]AttributeFilter{{Entity: "orbit_number", Operator: "==", Value: 1}}, 1)

	// Asserts
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "Unknown filter entity")
}

func TestCompileFilters_UnknownOperator(t *testing.T) {
	// Tested code
	_, _, err := compileFilters([]AttributeFilter{{Entity: "epsg", Operator: "between", Value: 1}}, 1)

	// Asserts
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "Unknown filter operator")
}
