package mapper

import (
	"io/ioutil"
	"time"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// MapperConfigs is the declarative description of a mapping job: which
// collection to query, where, when, and which metadata filters apply
type MapperConfigs struct {
	Collection string
	Feature    *Feature
	TimeStart  time.Time
	TimeEnd    time.Time
	Filters    []Filter
}

// NewMapperConfigs validates and creates a mapping-job description
func NewMapperConfigs(collection string, feature *Feature, timeStart, timeEnd time.Time, filters []Filter) (*MapperConfigs, error) {
	if collection == "" {
		return nil, errors.New("a mapper configuration requires a collection")
	}
	if feature == nil {
		return nil, errors.New("a mapper configuration requires an area-of-interest feature")
	}
	if timeEnd.Before(timeStart) {
		return nil, errors.Errorf("time_end %v lies before time_start %v", timeEnd, timeStart)
	}
	for _, filter := range filters {
		if _, err := NewFilter(filter.Entity, filter.Operator, filter.Value); err != nil {
			return nil, err
		}
	}
	return &MapperConfigs{
		Collection: collection,
		Feature:    feature,
		TimeStart:  timeStart,
		TimeEnd:    timeEnd,
		Filters:    filters,
	}, nil
}

type yamlFeature struct {
	Name       string                 `yaml:"name"`
	Geometry   string                 `yaml:"geometry"`
	EPSG       int                    `yaml:"epsg"`
	Attributes map[string]interface{} `yaml:"attributes,omitempty"`
}

type yamlFilter struct {
	Entity   string      `yaml:"entity"`
	Operator string      `yaml:"operator"`
	Value    interface{} `yaml:"value"`
}

type yamlConfigs struct {
	Collection string       `yaml:"collection"`
	Feature    yamlFeature  `yaml:"feature"`
	TimeStart  string       `yaml:"time_start"`
	TimeEnd    string       `yaml:"time_end"`
	Filters    []yamlFilter `yaml:"metadata_filters,omitempty"`
}

// ToYAML serializes the configuration to a YAML file. The geometry is
// embedded as GeoJSON text and times as RFC 3339, so a round trip through
// MapperConfigsFromYAML reproduces the configuration exactly.
func (mc *MapperConfigs) ToYAML(path string) error {
	geometryJSON, err := mc.Feature.geometryString()
	if err != nil {
		return errors.Wrap(err, "serializing feature geometry")
	}

	out := yamlConfigs{
		Collection: mc.Collection,
		Feature: yamlFeature{
			Name:       mc.Feature.Name,
			Geometry:   geometryJSON,
			EPSG:       mc.Feature.EPSG,
			Attributes: mc.Feature.Attributes,
		},
		TimeStart: mc.TimeStart.UTC().Format(time.RFC3339),
		TimeEnd:   mc.TimeEnd.UTC().Format(time.RFC3339),
	}
	for _, filter := range mc.Filters {
		out.Filters = append(out.Filters, yamlFilter(filter))
	}

	data, err := yaml.Marshal(&out)
	if err != nil {
		return errors.Wrap(err, "marshaling mapper configuration")
	}
	return ioutil.WriteFile(path, data, 0644)
}

// MapperConfigsFromYAML reads a configuration back from a YAML file
func MapperConfigsFromYAML(path string) (*MapperConfigs, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading mapper configuration")
	}

	var in yamlConfigs
	if err = yaml.Unmarshal(data, &in); err != nil {
		return nil, errors.Wrap(err, "unmarshaling mapper configuration")
	}

	geometry, err := geometryFromString(in.Feature.Geometry)
	if err != nil {
		return nil, err
	}
	feature, err := NewFeature(in.Feature.Name, geometry, in.Feature.EPSG, in.Feature.Attributes)
	if err != nil {
		return nil, err
	}

	timeStart, err := time.Parse(time.RFC3339, in.TimeStart)
	if err != nil {
		return nil, errors.Wrap(err, "parsing time_start")
	}
	timeEnd, err := time.Parse(time.RFC3339, in.TimeEnd)
	if err != nil {
		return nil, errors.Wrap(err, "parsing time_end")
	}

	filters := make([]Filter, 0, len(in.Filters))
	for _, filter := range in.Filters {
		validated, err := NewFilter(filter.Entity, filter.Operator, filter.Value)
		if err != nil {
			return nil, err
		}
		filters = append(filters, *validated)
	}

	return NewMapperConfigs(in.Collection, feature, timeStart, timeEnd, filters)
}
