package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/venicegeo/geojson-go/geojson"
)

const sceneColumns = `scene_id, collection, product_uri, platform, tile_id, sensing_time,
	cloud_cover, resolution, epsg, sun_azimuth, sun_zenith, processing_level, product_type,
	ST_AsGeoJSON(bounds), assets`

// SearchParams are the criteria for a scene search against the metadata database
type SearchParams struct {
	Collection string
	Bbox       geojson.BoundingBox
	TimeStart  time.Time
	TimeEnd    time.Time
	Filters    []AttributeFilter
}

// SearchScenes queries the scenes table for entries of a collection
// intersecting a bounding box within a time window, applying any attribute
// filters as additional WHERE clauses
func SearchScenes(tx *sql.Tx, searchParams SearchParams) ([]IndexedScene, error) {
	clauses := []string{
		"collection=$1",
		"sensing_time >= $2",
		"sensing_time <= $3",
		"ST_Intersects(bounds, ST_MakeEnvelope($4, $5, $6, $7, 4326))",
	}
	params := []interface{}{
		searchParams.Collection,
		searchParams.TimeStart,
		searchParams.TimeEnd,
		searchParams.Bbox[0], searchParams.Bbox[1], searchParams.Bbox[2], searchParams.Bbox[3],
	}

	filterClauses, filterParams, err := compileFilters(searchParams.Filters, len(params)+1)
	if err != nil {
		return nil, err
	}
	clauses = append(clauses, filterClauses...)
	params = append(params, filterParams...)

	query := fmt.Sprintf(`
		SELECT %s
		FROM public.scenes
		WHERE %s
		ORDER BY sensing_time`,
		sceneColumns, strings.Join(clauses, " AND "))

	rows, err := tx.Query(query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scenes := []IndexedScene{}
	for rows.Next() {
		scene, err := scanScene(rows)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, *scene)
	}

	return scenes, rows.Err()
}

// GetSceneByID retrieves one scene of a collection by its scene ID
func GetSceneByID(tx *sql.Tx, collection, sceneID string) (*IndexedScene, error) {
	rows, err := tx.Query(fmt.Sprintf(`
		SELECT %s
		FROM public.scenes
		WHERE collection=$1 AND scene_id=$2
		LIMIT 1`, sceneColumns),
		collection, sceneID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, sql.ErrNoRows
	}

	return scanScene(rows)
}

func scanScene(rows *sql.Rows) (*IndexedScene, error) {
	var (
		scene       IndexedScene
		boundsBytes []byte
		assetsBytes []byte
	)
	err := rows.Scan(&scene.SceneID, &scene.Collection, &scene.ProductURI, &scene.Platform,
		&scene.TileID, &scene.SensingTime, &scene.CloudCover, &scene.Resolution, &scene.EPSG,
		&scene.SunAzimuth, &scene.SunZenith, &scene.ProcessingLevel, &scene.ProductType,
		&boundsBytes, &assetsBytes)
	if err != nil {
		return nil, err
	}

	scene.Bounds, err = geojson.PolygonFromBytes(boundsBytes)
	if err != nil {
		return nil, err
	}

	if len(assetsBytes) > 0 {
		if err = json.Unmarshal(assetsBytes, &scene.Assets); err != nil {
			return nil, err
		}
	}

	return &scene, nil
}
