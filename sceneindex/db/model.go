package db

import (
	"database/sql"
	"time"

	"github.com/venicegeo/eo-mapper/util"
	"github.com/venicegeo/geojson-go/geojson"
)

//ConnectionProvider is a function that can provide a database connection.
type ConnectionProvider func(util.LogContext) (*sql.DB, error)

// IndexedScene is one row of the scenes metadata table
type IndexedScene struct {
	SceneID         string
	Collection      string
	ProductURI      string
	Platform        string
	TileID          string
	SensingTime     time.Time
	CloudCover      float64
	Resolution      float64
	EPSG            int
	SunAzimuth      float64
	SunZenith       float64
	ProcessingLevel string
	ProductType     string
	Bounds          *geojson.Polygon
	Assets          map[string]string
}
