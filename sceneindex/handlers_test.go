package sceneindex

import (
	"database/sql"
	"database/sql/driver"
	"io/ioutil"
	"net/http/httptest"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/venicegeo/eo-mapper/sceneindex/db"
	"github.com/venicegeo/eo-mapper/util"
	"github.com/venicegeo/geojson-go/geojson"
)

// General test mocks and utils

const mockBoundsJSON = `{"type":"Polygon","coordinates":[[[7.5,47.0],[7.9,47.0],[7.9,47.3],[7.5,47.3],[7.5,47.0]]]}`

var sceneRowColumns = []string{"scene_id", "collection", "product_uri", "platform", "tile_id",
	"sensing_time", "cloud_cover", "resolution", "epsg", "sun_azimuth", "sun_zenith",
	"processing_level", "product_type", "st_asgeojson", "assets"}

func mockSceneRow() []driver.Value {
	return []driver.Value{"scene-1", "sentinel2-msi", "scene-1.SAFE", "Sentinel-2A", "32TMT",
		time.Date(2022, 6, 25, 10, 16, 11, 0, time.UTC), 12.5, 10.0, 32632, 145.23, 24.81,
		"Level-2A", "S2MSI2A", []byte(mockBoundsJSON), []byte(`{"B02":"https://example.localhost/B02.jp2"}`)}
}

func mockConnectionProvider(mockDb *sql.DB) db.ConnectionProvider {
	return func(util.LogContext) (*sql.DB, error) { return mockDb, nil }
}

func newMockRouter(t *testing.T, mockDb *sql.DB) *mux.Router {
	router := mux.NewRouter()

	discoverHandler, err := NewDiscoverHandler(mockConnectionProvider(mockDb))
	assert.Nil(t, err)
	router.Handle("/localindex/discover/{collection}", discoverHandler)

	metadataHandler, err := NewMetadataHandler(mockConnectionProvider(mockDb))
	assert.Nil(t, err)
	router.Handle("/localindex/{collection}/{id}", metadataHandler)

	return router
}

// Actual tests

func TestDiscoverHandler(t *testing.T) {
	// Mock
	mockDb, mock, err := sqlmock.New()
	assert.Nil(t, err)
	defer mockDb.Close()
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM public.scenes").
		WillReturnRows(sqlmock.NewRows(sceneRowColumns).AddRow(mockSceneRow()...))
	mock.ExpectCommit()

	router := newMockRouter(t, mockDb)
	request := httptest.NewRequest("GET", "/localindex/discover/sentinel2-msi?bbox=7.5,47.0,7.9,47.3&cloudCover=50", nil)
	response := httptest.NewRecorder()

	// Tested code
	router.ServeHTTP(response, request)

	// Asserts
	assert.Equal(t, 200, response.Code)
	body, _ := ioutil.ReadAll(response.Result().Body)
	parsed, err := geojson.Parse(body)
	assert.Nil(t, err)
	featureCollection, ok := parsed.(*geojson.FeatureCollection)
	assert.True(t, ok)
	assert.Len(t, featureCollection.Features, 1)
	assert.Equal(t, "scene-1", featureCollection.Features[0].IDStr())
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestDiscoverHandler_BadBbox(t *testing.T) {
	// Mock
	mockDb, mock, err := sqlmock.New()
	assert.Nil(t, err)
	defer mockDb.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	router := newMockRouter(t, mockDb)
	request := httptest.NewRequest("GET", "/localindex/discover/sentinel2-msi?bbox=not-a-bbox", nil)
	response := httptest.NewRecorder()

	// Tested code
	router.ServeHTTP(response, request)

	// Asserts
	assert.Equal(t, 400, response.Code)
}

func TestMetadataHandler(t *testing.T) {
	// Mock
	mockDb, mock, err := sqlmock.New()
	assert.Nil(t, err)
	defer mockDb.Close()
	mock.ExpectBegin()
	mock.ExpectQuery("WHERE collection=(.+) AND scene_id=(.+)").
		WithArgs("sentinel2-msi", "scene-1").
		WillReturnRows(sqlmock.NewRows(sceneRowColumns).AddRow(mockSceneRow()...))
	mock.ExpectCommit()

	router := newMockRouter(t, mockDb)
	request := httptest.NewRequest("GET", "/localindex/sentinel2-msi/scene-1", nil)
	response := httptest.NewRecorder()

	// Tested code
	router.ServeHTTP(response, request)

	// Asserts
	assert.Equal(t, 200, response.Code)
	body, _ := ioutil.ReadAll(response.Result().Body)
	parsed, err := geojson.Parse(body)
	assert.Nil(t, err)
	feature, ok := parsed.(*geojson.Feature)
	assert.True(t, ok)
	assert.Equal(t, "scene-1", feature.IDStr())
	assert.Equal(t, "32TMT", feature.PropertyString("tileId"))
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestMetadataHandler_NotFound(t *testing.T) {
	// Mock
	mockDb, mock, err := sqlmock.New()
	assert.Nil(t, err)
	defer mockDb.Close()
	mock.ExpectBegin()
	mock.ExpectQuery("WHERE collection=(.+) AND scene_id=(.+)").
		WillReturnRows(sqlmock.NewRows(sceneRowColumns))
	mock.ExpectRollback()

	router := newMockRouter(t, mockDb)
	request := httptest.NewRequest("GET", "/localindex/sentinel2-msi/no-such-scene", nil)
	response := httptest.NewRecorder()

	// Tested code
	router.ServeHTTP(response, request)

	// Asserts
	assert.Equal(t, 404, response.Code)
}
