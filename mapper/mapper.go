// Copyright 2018, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mapper

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
	"github.com/venicegeo/eo-mapper/model"
	"github.com/venicegeo/eo-mapper/raster"
	"github.com/venicegeo/eo-mapper/sceneindex"
	"github.com/venicegeo/eo-mapper/sceneindex/db"
	"github.com/venicegeo/eo-mapper/stac"
	"github.com/venicegeo/eo-mapper/util"
	"github.com/venicegeo/geojson-go/geojson"
)

// geometries handed to search backends are always in geographic coordinates
const wgs84EPSG = 4326

// Collection aliases that trigger sensor-specific search behavior. Any other
// collection name is passed to the catalog verbatim.
const (
	Sentinel2Collection    = "sentinel2-msi"
	Sentinel1RTCCollection = "sentinel1-rtc"
)

// Filter entities with special meaning for the Sentinel-2 search path
const (
	processingLevelEntity = "processing_level"
	cloudCoverEntity      = "cloudy_pixel_percentage"
)

// SceneKwargs bundle the optional knobs for loading scenes: how each scene is
// constructed from its catalog entry, and an optional post-processing step
type SceneKwargs struct {
	SceneConstructor   raster.SceneConstructor
	ConstructorOptions raster.ConstructorOptions
	SceneModifier      raster.SceneModifier
}

// Mapper turns a declarative mapping configuration into scene metadata and,
// on request, loaded scene data. Metadata is populated by QueryScenes and Data
// by LoadScenes; both are nil until then.
type Mapper struct {
	Configs  *MapperConfigs
	Metadata []model.SceneMetadata
	Data     *raster.SceneCollection

	dbConnProvider db.ConnectionProvider
	sessionID      string
}

// NewMapper creates a Mapper for a mapping configuration
func NewMapper(configs *MapperConfigs) (*Mapper, error) {
	if configs == nil {
		return nil, errors.New("a mapper requires a configuration")
	}
	return &Mapper{Configs: configs}, nil
}

// WithDatabase sets the connection provider used when scene queries go to the
// metadata database instead of the STAC catalog
func (m *Mapper) WithDatabase(connectionProvider db.ConnectionProvider) *Mapper {
	m.dbConnProvider = connectionProvider
	return m
}

// AppName returns the name of this application
func (m *Mapper) AppName() string {
	return "eo-mapper"
}

// SessionID returns a Session ID, creating one if needed
func (m *Mapper) SessionID() string {
	if m.sessionID == "" {
		m.sessionID, _ = util.PsuUUID()
	}
	return m.sessionID
}

// LogRootDir returns an empty string
func (m *Mapper) LogRootDir() string {
	return ""
}

// QueryScenes resolves the configuration against the configured backend and
// populates Metadata with the matching scenes in acquisition order. Every
// returned scene carries the common target EPSG code and a flag stating
// whether its data would need reprojecting to reach it.
func (m *Mapper) QueryScenes() error {
	var (
		scenes []model.SceneMetadata
		err    error
	)

	if util.UseSTAC() {
		scenes, err = m.queryCatalog()
	} else {
		scenes, err = m.queryDatabase()
	}
	if err != nil {
		return err
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].SensingTime.Before(scenes[j].SensingTime)
	})
	assignTargetEPSG(scenes)

	util.LogInfo(m, fmt.Sprintf("Found %d scenes of %s for feature %s between %s and %s",
		len(scenes), m.Configs.Collection, m.Configs.Feature.Name,
		m.Configs.TimeStart.Format(model.StandardTimeLayout),
		m.Configs.TimeEnd.Format(model.StandardTimeLayout)))

	m.Metadata = scenes
	return nil
}

// queryCatalog runs the search against the STAC catalog. Filters the catalog
// request cannot express are applied to the results afterwards.
func (m *Mapper) queryCatalog() ([]model.SceneMetadata, error) {
	geometry, err := m.searchGeometry()
	if err != nil {
		return nil, err
	}

	context := stac.NewContext()
	options := stac.SearchOptions{
		Collection: m.Configs.Collection,
		Intersects: geometry,
		TimeStart:  m.Configs.TimeStart,
		TimeEnd:    m.Configs.TimeEnd,
	}

	var (
		scenes    []model.SceneMetadata
		remaining []Filter
	)
	switch m.Configs.Collection {
	case Sentinel2Collection:
		level := stac.L2A
		threshold := 100.0
		for _, filter := range m.Configs.Filters {
			switch filter.Entity {
			case processingLevelEntity:
				level = stac.ProcessingLevel(fmt.Sprintf("%v", filter.Value))
			case cloudCoverEntity, "cloud_cover":
				value, floatErr := toFloat(filter.Value)
				if floatErr != nil {
					return nil, errors.Wrapf(floatErr, "filter %s", filter.Expression())
				}
				if filter.Operator == "<" || filter.Operator == "<=" {
					if value < threshold {
						threshold = value
					}
					// The pushed-down threshold is inclusive, so only
					// "<=" filters are fully expressed by it
					if filter.Operator == "<=" {
						continue
					}
				}
				remaining = append(remaining, filter)
			default:
				remaining = append(remaining, filter)
			}
		}
		scenes, err = stac.SearchSentinel2(options, level, threshold, context)
	case Sentinel1RTCCollection:
		remaining = m.Configs.Filters
		scenes, err = stac.SearchSentinel1RTC(options, context)
	default:
		remaining = m.Configs.Filters
		scenes, err = stac.Search(options, context)
	}
	if err != nil {
		return nil, err
	}

	return applyFilters(scenes, remaining)
}

// queryDatabase runs the search against the scene metadata database, pushing
// the attribute filters down into the query
func (m *Mapper) queryDatabase() ([]model.SceneMetadata, error) {
	if m.dbConnProvider == nil {
		return nil, errors.New("scene queries are configured to use the metadata database, but no database connection is available")
	}

	geometry, err := m.searchGeometry()
	if err != nil {
		return nil, err
	}
	bbox := geojson.NewFeature(geometry, nil, nil).ForceBbox()
	if err = bbox.Valid(); err != nil {
		return nil, errors.Wrapf(err, "feature %s has no valid bounding box", m.Configs.Feature.Name)
	}

	filters := make([]db.AttributeFilter, len(m.Configs.Filters))
	for i, filter := range m.Configs.Filters {
		filters[i] = db.AttributeFilter{Entity: filter.Entity, Operator: filter.Operator, Value: filter.Value}
	}

	database, err := m.dbConnProvider(m)
	if err != nil {
		return nil, util.LogSimpleErr(m, "Could not open a database connection for the scene query.", err)
	}
	tx, err := database.Begin()
	if err != nil {
		return nil, util.LogSimpleErr(m, "Could not begin a database transaction for the scene query.", err)
	}
	defer tx.Rollback()

	indexed, err := db.SearchScenes(tx, db.SearchParams{
		Collection: m.Configs.Collection,
		Bbox:       bbox,
		TimeStart:  m.Configs.TimeStart,
		TimeEnd:    m.Configs.TimeEnd,
		Filters:    filters,
	})
	if err != nil {
		return nil, err
	}

	scenes := make([]model.SceneMetadata, len(indexed))
	for i, scene := range indexed {
		scenes[i] = sceneindex.SceneMetadataFromIndexedScene(scene)
	}
	return scenes, nil
}

// searchGeometry returns the area of interest in geographic coordinates
func (m *Mapper) searchGeometry() (interface{}, error) {
	feature := m.Configs.Feature
	if feature.EPSG == wgs84EPSG {
		return feature.Geometry, nil
	}
	geometry, err := reprojectGeometry(feature.Geometry, feature.EPSG, wgs84EPSG)
	if err != nil {
		return nil, errors.Wrapf(err, "reprojecting feature %s for the search", feature.Name)
	}
	return geometry, nil
}

// applyFilters keeps the scenes every filter matches
func applyFilters(scenes []model.SceneMetadata, filters []Filter) ([]model.SceneMetadata, error) {
	if len(filters) == 0 {
		return scenes, nil
	}
	filtered := make([]model.SceneMetadata, 0, len(scenes))
	for _, scene := range scenes {
		keep := true
		for _, filter := range filters {
			match, err := filter.Matches(scene)
			if err != nil {
				return nil, err
			}
			if !match {
				keep = false
				break
			}
		}
		if keep {
			filtered = append(filtered, scene)
		}
	}
	return filtered, nil
}

// assignTargetEPSG settles on one EPSG code for the whole result set: the
// code most scenes already use natively, with the lowest code winning ties.
// Scenes in a different native projection are flagged for reprojection.
func assignTargetEPSG(scenes []model.SceneMetadata) {
	counts := map[int]int{}
	for _, scene := range scenes {
		if scene.EPSG > 0 {
			counts[scene.EPSG]++
		}
	}
	target := 0
	for epsg, count := range counts {
		if count > counts[target] || (count == counts[target] && (target == 0 || epsg < target)) {
			target = epsg
		}
	}
	if target == 0 {
		return
	}
	for i := range scenes {
		scenes[i].TargetEPSG = target
		scenes[i].Reprojected = scenes[i].EPSG != target
	}
}

// LoadScenes turns the query results into an in-memory scene collection.
// Scenes acquired on the same date are mosaicked into one entry, so the
// collection and Metadata end up with one entry per acquisition date. Calls
// QueryScenes first if it has not run yet.
func (m *Mapper) LoadScenes(kwargs SceneKwargs) error {
	if m.Metadata == nil {
		if err := m.QueryScenes(); err != nil {
			return err
		}
	}
	construct := kwargs.SceneConstructor
	if construct == nil {
		construct = raster.DefaultSceneConstructor
	}

	var dates []string
	groups := map[string][]model.SceneMetadata{}
	for _, metadata := range m.Metadata {
		date := metadata.SensingDate().Format("2006-01-02")
		if _, seen := groups[date]; !seen {
			dates = append(dates, date)
		}
		groups[date] = append(groups[date], metadata)
	}

	collection := raster.NewSceneCollection()
	loaded := make([]model.SceneMetadata, 0, len(dates))
	for _, date := range dates {
		group := groups[date]
		scenes := make([]*raster.Scene, len(group))
		for i, metadata := range group {
			scene, err := construct(m, metadata, kwargs.ConstructorOptions)
			if err != nil {
				return errors.Wrapf(err, "constructing scene %s", metadata.SceneID)
			}
			scenes[i] = scene
		}

		scene, err := raster.MosaicScenes(scenes)
		if err != nil {
			return errors.Wrapf(err, "mosaicking scenes of %s", date)
		}
		if kwargs.SceneModifier != nil {
			if scene, err = kwargs.SceneModifier(m, scene); err != nil {
				return errors.Wrapf(err, "modifying scene %s", scene.Metadata.SceneID)
			}
		}
		if err = collection.Add(scene); err != nil {
			return err
		}
		loaded = append(loaded, scene.Metadata)
	}

	util.LogInfo(m, fmt.Sprintf("Loaded %d scenes into the collection", collection.Len()))
	m.Data = collection
	m.Metadata = loaded
	return nil
}

// MetadataFeatureCollection returns the query results as a GeoJSON feature
// collection
func (m *Mapper) MetadataFeatureCollection() (*geojson.FeatureCollection, error) {
	result := model.MultiSceneResult{FeatureCreators: make([]model.GeoJSONFeatureCreator, len(m.Metadata))}
	for i, metadata := range m.Metadata {
		result.FeatureCreators[i] = metadata
	}
	return result.GeoJSONFeatureCollection()
}
