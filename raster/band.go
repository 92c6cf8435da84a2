package raster

import (
	"fmt"
	"io/ioutil"
	"sort"

	"github.com/venicegeo/eo-mapper/model"
	"github.com/venicegeo/eo-mapper/util"
)

// Band is one spectral band of a loaded scene. The payload is carried as-is;
// decoding the raster format is the consumer's concern.
type Band struct {
	Name   string
	TileID string
	URL    string
	Format model.SceneFileFormat
	Data   []byte
}

// FetchBand downloads a band asset into memory
func FetchBand(ctx util.LogContext, name, tileID, assetURL string, format model.SceneFileFormat) (*Band, error) {
	util.LogAudit(ctx, util.LogAuditInput{Actor: "raster/FetchBand", Action: "GET", Actee: assetURL, Message: "Requesting band asset", Severity: util.INFO})

	response, err := util.HTTPClient().Get(assetURL)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()
	if response.StatusCode != 200 {
		return nil, util.HTTPErr{Status: response.StatusCode, Message: fmt.Sprintf("Failed to fetch band asset %s: %s", assetURL, response.Status)}
	}

	data, err := ioutil.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	return &Band{Name: name, TileID: tileID, URL: assetURL, Format: format, Data: data}, nil
}

// ConstructorOptions control how a scene is built from its catalog entry
type ConstructorOptions struct {
	// BandSelection limits loading to the named bands; empty means all
	BandSelection []string
	// FetchAssets pulls band payloads into memory; otherwise only the
	// asset references are recorded
	FetchAssets bool
}

// SceneConstructor builds a loaded scene from one catalog entry
type SceneConstructor func(ctx util.LogContext, metadata model.SceneMetadata, options ConstructorOptions) (*Scene, error)

// SceneModifier post-processes a loaded scene, e.g. resampling or band math
type SceneModifier func(ctx util.LogContext, scene *Scene) (*Scene, error)

// DefaultSceneConstructor assembles a scene from the catalog entry's band
// asset URLs, optionally pulling the payloads into memory
func DefaultSceneConstructor(ctx util.LogContext, metadata model.SceneMetadata, options ConstructorOptions) (*Scene, error) {
	scene := NewScene(metadata)

	selected := map[string]bool{}
	for _, name := range options.BandSelection {
		selected[name] = true
	}

	names := make([]string, 0, len(metadata.Assets))
	for name := range metadata.Assets {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if len(selected) > 0 && !selected[name] {
			continue
		}
		assetURL := metadata.Assets[name]
		if options.FetchAssets {
			band, err := FetchBand(ctx, name, metadata.TileID, assetURL, metadata.FileFormat)
			if err != nil {
				return nil, err
			}
			scene.AddBand(band)
			continue
		}
		scene.AddBand(&Band{Name: name, TileID: metadata.TileID, URL: assetURL, Format: metadata.FileFormat})
	}

	if len(selected) > 0 && len(scene.Bands) < len(selected) {
		for _, name := range options.BandSelection {
			if _, ok := scene.Bands[name]; !ok {
				return nil, fmt.Errorf("Scene %s has no asset for band %s", metadata.SceneID, name)
			}
		}
	}

	return scene, nil
}
