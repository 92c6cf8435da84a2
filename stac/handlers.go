package stac

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/venicegeo/eo-mapper/model"
	"github.com/venicegeo/eo-mapper/util"
	"github.com/venicegeo/geojson-go/geojson"
)

// DiscoverHandler is a handler for /stac/discover/{collection}
// @Title stacDiscoverHandler
// @Description discovers scenes from a STAC catalog
// @Accept  plain
// @Param   bbox            query   string  false        "The bounding box, as a GeoJSON bounding box (x1,y1,x2,y2)"
// @Param   cloudCover      query   string  false        "The maximum cloud cover, as a percentage (0-100)"
// @Param   acquiredDate    query   string  false        "The minimum (earliest) acquired date, as RFC 3339"
// @Param   maxAcquiredDate query   string  false        "The maximum acquired date, as RFC 3339"
// @Success 200 {object}  geojson.FeatureCollection
// @Failure 400 {object}  string
// @Router /stac/discover/{collection} [get]
type DiscoverHandler struct {
	Context *Context
}

// NewDiscoverHandler creates a new handler using configuration
// from environment variables
func NewDiscoverHandler() *DiscoverHandler {
	return &DiscoverHandler{Context: NewContext()}
}

// ServeHTTP implements the http.Handler interface for the DiscoverHandler type
func (h DiscoverHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	collection, ok := mux.Vars(r)["collection"]
	if !ok {
		message := "No collection found in URL"
		util.LogAlert(h.Context, message)
		util.HTTPError(r, w, h.Context, message, http.StatusBadRequest)
		return
	}

	bbox, err := geojson.NewBoundingBox(r.FormValue("bbox"))
	if err != nil {
		message := fmt.Sprintf("The bbox value of %v is invalid", r.FormValue("bbox"))
		util.LogSimpleErr(h.Context, message, err)
		util.HTTPError(r, w, h.Context, message, http.StatusBadRequest)
		return
	}

	maxCloudCover := float64(100)
	if r.FormValue("cloudCover") != "" {
		if maxCloudCover, err = strconv.ParseFloat(r.FormValue("cloudCover"), 64); err != nil {
			message := fmt.Sprintf("Cloud Cover value of %v is invalid.", r.FormValue("cloudCover"))
			util.LogSimpleErr(h.Context, message, err)
			util.HTTPError(r, w, h.Context, message, http.StatusBadRequest)
			return
		}
	}

	timeStart := time.Unix(0, 0)
	if r.FormValue("acquiredDate") != "" {
		if timeStart, err = time.Parse(time.RFC3339, r.FormValue("acquiredDate")); err != nil {
			message := fmt.Sprintf("Acquired date value of %v is invalid.", r.FormValue("acquiredDate"))
			util.LogSimpleErr(h.Context, message, err)
			util.HTTPError(r, w, h.Context, message, http.StatusBadRequest)
			return
		}
	}
	timeEnd := time.Now()
	if r.FormValue("maxAcquiredDate") != "" {
		if timeEnd, err = time.Parse(time.RFC3339, r.FormValue("maxAcquiredDate")); err != nil {
			message := fmt.Sprintf("Acquired date value of %v is invalid.", r.FormValue("maxAcquiredDate"))
			util.LogSimpleErr(h.Context, message, err)
			util.HTTPError(r, w, h.Context, message, http.StatusBadRequest)
			return
		}
	}

	options := SearchOptions{
		Collection: collection,
		Intersects: bbox.Polygon(),
		TimeStart:  timeStart,
		TimeEnd:    timeEnd,
	}

	scenes, err := Search(options, h.Context)
	if err != nil {
		message := fmt.Sprintf("Error searching for scenes: %v", err)
		util.LogSimpleErr(h.Context, message, err)
		util.HTTPError(r, w, h.Context, message, http.StatusInternalServerError)
		return
	}

	multiResult := model.MultiSceneResult{
		FeatureCreators: make([]model.GeoJSONFeatureCreator, 0, len(scenes)),
	}
	for _, scene := range scenes {
		if scene.CloudCover > maxCloudCover {
			continue
		}
		multiResult.FeatureCreators = append(multiResult.FeatureCreators, scene)
	}

	featureCollection, err := multiResult.GeoJSONFeatureCollection()
	if err != nil {
		message := fmt.Sprintf("Error converting to feature collection: %v", err)
		util.LogSimpleErr(h.Context, message, err)
		util.HTTPError(r, w, h.Context, message, http.StatusInternalServerError)
		return
	}
	w.Write([]byte(featureCollection.String()))
}

// MetadataHandler is a handler for /stac/{collection}/{id}
// @Title stacMetadataHandler
// @Description returns the uniform-schema metadata for one catalog item
// @Accept  plain
// @Param   id   path   string  false        "The ID of the requested scene"
// @Success 200 {object}  geojson.Feature
// @Failure 400 {object}  string
// @Router /stac/{collection}/{id} [get]
type MetadataHandler struct {
	Context *Context
}

// NewMetadataHandler creates a new handler using configuration
// from environment variables
func NewMetadataHandler() *MetadataHandler {
	return &MetadataHandler{Context: NewContext()}
}

// ServeHTTP implements the http.Handler interface for the MetadataHandler type
func (h MetadataHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collection, ok := vars["collection"]
	if !ok {
		message := "No collection found in URL"
		util.LogAlert(h.Context, message)
		util.HTTPError(r, w, h.Context, message, http.StatusBadRequest)
		return
	}
	itemID, ok := vars["id"]
	if !ok {
		message := "No scene ID found in URL"
		util.LogAlert(h.Context, message)
		util.HTTPError(r, w, h.Context, message, http.StatusNotFound)
		return
	}

	scene, err := GetItem(collection, itemID, h.Context)
	if err != nil {
		if httpErr, ok := err.(util.HTTPErr); ok && httpErr.Status == http.StatusNotFound {
			util.HTTPError(r, w, h.Context, fmt.Sprintf("Scene not found: %s", itemID), http.StatusNotFound)
			return
		}
		message := fmt.Sprintf("Error retrieving scene metadata: %v", err)
		util.LogSimpleErr(h.Context, message, err)
		util.HTTPError(r, w, h.Context, message, http.StatusInternalServerError)
		return
	}

	feature, err := scene.GeoJSONFeature()
	if err != nil {
		message := fmt.Sprintf("Error converting metadata to geojson: %v", err)
		util.LogSimpleErr(h.Context, message, err)
		util.HTTPError(r, w, h.Context, message, http.StatusInternalServerError)
		return
	}
	w.Write([]byte(feature.String()))
}
