package raster

import (
	"fmt"
	"sort"
	"time"

	"github.com/venicegeo/eo-mapper/model"
)

// Scene is one loaded acquisition: its uniform-schema metadata plus spectral
// bands. A mosaicked scene carries one band entry per source tile.
type Scene struct {
	Metadata model.SceneMetadata
	Bands    map[string][]Band
}

// NewScene creates an empty scene for the given catalog entry
func NewScene(metadata model.SceneMetadata) *Scene {
	return &Scene{
		Metadata: metadata,
		Bands:    map[string][]Band{},
	}
}

// AddBand appends a band payload, keeping tile entries of the same band together
func (s *Scene) AddBand(band *Band) {
	s.Bands[band.Name] = append(s.Bands[band.Name], *band)
}

// BandNames returns the scene's band names in sorted order
func (s *Scene) BandNames() []string {
	names := make([]string, 0, len(s.Bands))
	for name := range s.Bands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SceneCollection is an in-memory collection of loaded scenes ordered by
// sensing time
type SceneCollection struct {
	scenes []*Scene
	byID   map[string]*Scene
}

// NewSceneCollection creates an empty collection
func NewSceneCollection() *SceneCollection {
	return &SceneCollection{byID: map[string]*Scene{}}
}

// Add inserts a scene, keeping the collection sorted by sensing time
func (sc *SceneCollection) Add(scene *Scene) error {
	if scene == nil {
		return fmt.Errorf("Cannot add a nil scene to a collection")
	}
	if _, exists := sc.byID[scene.Metadata.SceneID]; exists {
		return fmt.Errorf("Collection already contains scene %s", scene.Metadata.SceneID)
	}
	sc.scenes = append(sc.scenes, scene)
	sc.byID[scene.Metadata.SceneID] = scene
	sort.Slice(sc.scenes, func(i, j int) bool {
		return sc.scenes[i].Metadata.SensingTime.Before(sc.scenes[j].Metadata.SensingTime)
	})
	return nil
}

// Len returns the number of scenes in the collection
func (sc *SceneCollection) Len() int {
	return len(sc.scenes)
}

// Scenes returns the scenes in sensing-time order
func (sc *SceneCollection) Scenes() []*Scene {
	return sc.scenes
}

// GetBySceneID looks a scene up by its scene ID
func (sc *SceneCollection) GetBySceneID(sceneID string) (*Scene, bool) {
	scene, ok := sc.byID[sceneID]
	return scene, ok
}

// GetByTime looks a scene up by its exact sensing time
func (sc *SceneCollection) GetByTime(sensingTime time.Time) (*Scene, bool) {
	for _, scene := range sc.scenes {
		if scene.Metadata.SensingTime.Equal(sensingTime) {
			return scene, true
		}
	}
	return nil, false
}

// Timestamps returns the sensing times of the collection's scenes, in order
func (sc *SceneCollection) Timestamps() []time.Time {
	timestamps := make([]time.Time, len(sc.scenes))
	for i, scene := range sc.scenes {
		timestamps[i] = scene.Metadata.SensingTime
	}
	return timestamps
}
