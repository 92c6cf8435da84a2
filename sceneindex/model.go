package sceneindex

import (
	"database/sql"

	"github.com/venicegeo/eo-mapper/model"
	db "github.com/venicegeo/eo-mapper/sceneindex/db"
	"github.com/venicegeo/eo-mapper/util"
)

// Context is the context for a metadata-database operation
type Context struct {
	DB        *sql.DB
	sessionID string
}

// AppName returns the name of this application
func (c *Context) AppName() string {
	return "eo-mapper"
}

// SessionID returns a Session ID, creating one if needed
func (c *Context) SessionID() string {
	if c.sessionID == "" {
		c.sessionID, _ = util.PsuUUID()
	}
	return c.sessionID
}

// LogRootDir returns an empty string
func (c *Context) LogRootDir() string {
	return ""
}

// SceneMetadataFromIndexedScene maps a database row into the uniform scene schema
func SceneMetadataFromIndexedScene(scene db.IndexedScene) model.SceneMetadata {
	fileFormat := model.GeoTIFF
	for _, href := range scene.Assets {
		if len(href) > 4 && href[len(href)-4:] == ".jp2" {
			fileFormat = model.JPEG2000
			break
		}
	}

	return model.SceneMetadata{
		SceneID:     scene.SceneID,
		ProductURI:  scene.ProductURI,
		Collection:  scene.Collection,
		Platform:    scene.Platform,
		TileID:      scene.TileID,
		SensingTime: scene.SensingTime,
		CloudCover:  scene.CloudCover,
		Resolution:  scene.Resolution,
		EPSG:        scene.EPSG,
		SunAzimuth:  scene.SunAzimuth,
		SunZenith:   scene.SunZenith,
		Geometry:    scene.Bounds,
		FileFormat:  fileFormat,
		Assets:      scene.Assets,
	}
}
