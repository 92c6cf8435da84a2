package migration

import (
	"database/sql"

	"github.com/pressly/goose"
)

func init() {
	goose.AddMigration(Up00001, Down00001)
}

//Up00001 creates the scenes metadata table.
func Up00001(tx *sql.Tx) error {
	err := addTables(tx)
	if err == nil {
		err = addIndexes(tx)
	}
	return err
}

//Down00001 undoes the db changes.
func Down00001(tx *sql.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS public.scenes;`)
	return err
}

func addTables(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE EXTENSION IF NOT EXISTS postgis;

		CREATE TABLE public.scenes
		(
			scene_id text NOT NULL,
			collection text NOT NULL,
			product_uri text,
			platform text,
			tile_id text,
			sensing_time timestamp with time zone NOT NULL,
			cloud_cover double precision DEFAULT 0,
			resolution double precision DEFAULT 0,
			epsg integer DEFAULT 0,
			sun_azimuth double precision DEFAULT 0,
			sun_zenith double precision DEFAULT 0,
			processing_level text DEFAULT '',
			product_type text DEFAULT '',
			bounds geometry(Polygon, 4326),
			assets jsonb
		);
		`)
	return err
}

func addIndexes(tx *sql.Tx) error {
	_, err := tx.Exec(`
		ALTER TABLE public.scenes
		ADD CONSTRAINT scenes_primary_collection_scene_id PRIMARY KEY (collection, scene_id)
		WITH (FILLFACTOR=100);

		CREATE INDEX idx_scenes_bounds
		ON public.scenes USING gist
		(bounds);

		CREATE INDEX idx_scenes_sensing_time
		ON public.scenes (sensing_time);
		`)
	return err
}
