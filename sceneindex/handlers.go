package sceneindex

import (
	"database/sql"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/venicegeo/eo-mapper/sceneindex/db"
	"github.com/venicegeo/eo-mapper/util"
	"github.com/venicegeo/geojson-go/geojson"
)

// DiscoverHandler is a handler for /index/discover/{collection}
// @Title indexDiscoverHandler
// @Description discovers scenes from the metadata database
// @Accept  plain
// @Param   bbox            query   string  false        "The bounding box, as a GeoJSON Bounding box (x1,y1,x2,y2)"
// @Param   cloudCover      query   string  false        "The maximum cloud cover, as a percentage (0-100)"
// @Param   acquiredDate    query   string  false        "The minimum (earliest) acquired date, as RFC 3339"
// @Param   maxAcquiredDate query   string  false        "The maximum acquired date, as RFC 3339"
// @Success 200 {object}  geojson.FeatureCollection
// @Failure 400 {object}  string
// @Router /index/discover/{collection} [get]
type DiscoverHandler struct {
	Context Context
}

// NewDiscoverHandler creates a new handler using configuration
// from environment variables
func NewDiscoverHandler(connectionProvider db.ConnectionProvider) (*DiscoverHandler, error) {
	database, err := connectionProvider(&util.BasicLogContext{})
	if err != nil {
		return nil, err
	}

	return &DiscoverHandler{
		Context: Context{DB: database},
	}, nil
}

// ServeHTTP implements the http.Handler interface for the DiscoverHandler type
func (h DiscoverHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	collection, ok := mux.Vars(r)["collection"]
	if !ok {
		message := "No collection found in URL"
		util.LogAlert(&h.Context, message)
		util.HTTPError(r, w, &h.Context, message, http.StatusBadRequest)
		return
	}

	tx, err := h.Context.DB.Begin()
	if err != nil {
		message := fmt.Sprintf("Could not begin DB transaction: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		return
	}
	defer tx.Commit()

	bbox, err := geojson.NewBoundingBox(r.FormValue("bbox"))
	if err != nil {
		message := fmt.Sprintf("The bbox value of %v is invalid", r.FormValue("bbox"))
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusBadRequest)
		tx.Rollback()
		return
	}

	filters := []db.AttributeFilter{}
	if r.FormValue("cloudCover") != "" {
		maxCloudCover, err := strconv.ParseFloat(r.FormValue("cloudCover"), 64)
		if err != nil {
			message := fmt.Sprintf("Cloud Cover value of %v is invalid.", r.FormValue("cloudCover"))
			util.LogSimpleErr(&h.Context, message, err)
			util.HTTPError(r, w, &h.Context, message, http.StatusBadRequest)
			tx.Rollback()
			return
		}
		filters = append(filters, db.AttributeFilter{Entity: "cloud_cover", Operator: "<=", Value: maxCloudCover})
	}

	timeStart := time.Unix(0, 0)
	if r.FormValue("acquiredDate") != "" {
		if timeStart, err = time.Parse(time.RFC3339, r.FormValue("acquiredDate")); err != nil {
			message := fmt.Sprintf("Acquired date value of %v is invalid.", r.FormValue("acquiredDate"))
			util.LogSimpleErr(&h.Context, message, err)
			util.HTTPError(r, w, &h.Context, message, http.StatusBadRequest)
			tx.Rollback()
			return
		}
	}
	timeEnd := time.Now()
	if r.FormValue("maxAcquiredDate") != "" {
		if timeEnd, err = time.Parse(time.RFC3339, r.FormValue("maxAcquiredDate")); err != nil {
			message := fmt.Sprintf("Acquired date value of %v is invalid.", r.FormValue("maxAcquiredDate"))
			util.LogSimpleErr(&h.Context, message, err)
			util.HTTPError(r, w, &h.Context, message, http.StatusBadRequest)
			tx.Rollback()
			return
		}
	}

	multiResult, err := discoverScenes(tx, db.SearchParams{
		Collection: collection,
		Bbox:       bbox,
		TimeStart:  timeStart,
		TimeEnd:    timeEnd,
		Filters:    filters,
	})
	if err != nil {
		message := fmt.Sprintf("Error searching for scenes: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		tx.Rollback()
		return
	}

	featureCollection, err := multiResult.GeoJSONFeatureCollection()
	if err != nil {
		message := fmt.Sprintf("Error converting to feature collection: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		return
	}
	w.Write([]byte(featureCollection.String()))
}

// MetadataHandler is a handler for /index/{collection}/{id}
// @Title indexMetadataHandler
// @Description returns one scene of the metadata database
// @Accept  plain
// @Param   id            path   string  false        "The ID of the requested scene"
// @Success 200 {object}  geojson.Feature
// @Failure 400 {object}  string
// @Router /index/{collection}/{id} [get]
type MetadataHandler struct {
	Context Context
}

// NewMetadataHandler creates a new handler using the environment and given DB
func NewMetadataHandler(connectionProvider db.ConnectionProvider) (*MetadataHandler, error) {
	database, err := connectionProvider(&util.BasicLogContext{})
	if err != nil {
		return nil, err
	}

	return &MetadataHandler{
		Context: Context{DB: database},
	}, nil
}

// ServeHTTP implements the http.Handler interface for the MetadataHandler type
func (h MetadataHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collection, ok := vars["collection"]
	if !ok {
		message := "No collection found in URL"
		util.LogAlert(&h.Context, message)
		util.HTTPError(r, w, &h.Context, message, http.StatusBadRequest)
		return
	}
	sceneID, ok := vars["id"]
	if !ok {
		message := "No scene ID found in URL"
		util.LogAlert(&h.Context, message)
		util.HTTPError(r, w, &h.Context, message, http.StatusNotFound)
		return
	}

	tx, err := h.Context.DB.Begin()
	if err != nil {
		message := fmt.Sprintf("Could not begin DB transaction: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		return
	}
	defer tx.Commit()

	metadata, err := getMetadata(tx, collection, sceneID)
	if err == sql.ErrNoRows {
		message := fmt.Sprintf("Scene not found: %s", sceneID)
		util.LogInfo(&h.Context, message)
		util.HTTPError(r, w, &h.Context, message, http.StatusNotFound)
		tx.Rollback()
		return
	}
	if err != nil {
		message := fmt.Sprintf("Server error searching for scene: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		tx.Rollback()
		return
	}

	feature, err := metadata.GeoJSONFeature()
	if err != nil {
		message := fmt.Sprintf("Error converting metadata to geojson: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		tx.Rollback()
		return
	}
	w.Write([]byte(feature.String()))
}
