package sceneindex

import (
	"database/sql"

	"github.com/venicegeo/eo-mapper/model"
	"github.com/venicegeo/eo-mapper/sceneindex/db"
)

func getMetadata(tx *sql.Tx, collection, sceneID string) (model.GeoJSONFeatureCreator, error) {
	scene, err := db.GetSceneByID(tx, collection, sceneID)
	if err != nil {
		return nil, err
	}

	return SceneMetadataFromIndexedScene(*scene), nil
}
