package sceneindex

import (
	"database/sql"

	"github.com/venicegeo/eo-mapper/model"
	"github.com/venicegeo/eo-mapper/sceneindex/db"
)

func discoverScenes(tx *sql.Tx, searchParams db.SearchParams) (model.GeoJSONFeatureCollectionCreator, error) {
	scenes, err := db.SearchScenes(tx, searchParams)
	if err != nil {
		return nil, err
	}

	multiResult := model.MultiSceneResult{
		FeatureCreators: make([]model.GeoJSONFeatureCreator, len(scenes)),
	}
	for i, scene := range scenes {
		multiResult.FeatureCreators[i] = SceneMetadataFromIndexedScene(scene)
	}

	return multiResult, nil
}
