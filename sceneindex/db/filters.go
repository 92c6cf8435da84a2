package db

import (
	"fmt"
	"strings"
)

// AttributeFilter is one (entity, operator, value) metadata filter triple to
// be compiled into the scene search statement
type AttributeFilter struct {
	Entity   string
	Operator string
	Value    interface{}
}

//filterColumns whitelists the queryable entities and maps them onto columns.
//Anything not listed here errors at query time rather than silently matching
//nothing.
var filterColumns = map[string]string{
	"scene_id":                "scene_id",
	"product_uri":             "product_uri",
	"platform":                "platform",
	"spacecraft_name":         "platform",
	"tile_id":                 "tile_id",
	"cloud_cover":             "cloud_cover",
	"cloudy_pixel_percentage": "cloud_cover",
	"resolution":              "resolution",
	"epsg":                    "epsg",
	"sun_azimuth_angle":       "sun_azimuth",
	"sun_zenith_angle":        "sun_zenith",
	"processing_level":        "processing_level",
	"product_type":            "product_type",
}

//filterOperators whitelists the comparison operators and maps them onto SQL.
var filterOperators = map[string]string{
	"==":   "=",
	"!=":   "<>",
	"<":    "<",
	"<=":   "<=",
	">":    ">",
	">=":   ">=",
	"like": "LIKE",
	"in":   "IN",
}

// compileFilters turns attribute-filter triples into WHERE clauses with bound
// parameters, starting parameter numbering at firstParam
func compileFilters(filters []AttributeFilter, firstParam int) (clauses []string, params []interface{}, err error) {
	paramIndex := firstParam
	for _, filter := range filters {
		column, ok := filterColumns[filter.Entity]
		if !ok {
			return nil, nil, fmt.Errorf("Unknown filter entity: %s", filter.Entity)
		}
		operator, ok := filterOperators[filter.Operator]
		if !ok {
			return nil, nil, fmt.Errorf("Unknown filter operator: %s", filter.Operator)
		}

		if operator == "IN" {
			values, ok := filter.Value.([]interface{})
			if !ok || len(values) == 0 {
				return nil, nil, fmt.Errorf("Filter operator 'in' requires a non-empty list value for entity %s", filter.Entity)
			}
			placeholders := make([]string, len(values))
			for i, value := range values {
				placeholders[i] = fmt.Sprintf("$%d", paramIndex)
				params = append(params, value)
				paramIndex++
			}
			clauses = append(clauses, fmt.Sprintf("%s IN (%s)", column, strings.Join(placeholders, ", ")))
			continue
		}

		clauses = append(clauses, fmt.Sprintf("%s %s $%d", column, operator, paramIndex))
		params = append(params, filter.Value)
		paramIndex++
	}
	return clauses, params, nil
}
