// Copyright 2018, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package stac

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"

	"github.com/venicegeo/eo-mapper/model"
	"github.com/venicegeo/eo-mapper/util"
	"github.com/venicegeo/geojson-go/geojson"
)

const isoDateLayout = "2006-01-02"

// Search queries the STAC catalog for items in a collection intersecting a
// geometry within a time window, following paging links until the configured
// maximum item count is reached. Results come back in the uniform scene schema.
func Search(options SearchOptions, context *Context) ([]model.SceneMetadata, error) {
	var (
		err         error
		requestBody []byte
		scenes      []model.SceneMetadata
	)

	if options.MaxItems <= 0 {
		options.MaxItems = util.GetMaxItems()
	}
	if options.Limit <= 0 {
		options.Limit = util.GetLimitItems()
	}

	req := searchRequest{
		Collections: []string{options.Collection},
		Intersects:  options.Intersects,
		Limit:       options.Limit,
	}
	if !options.TimeStart.IsZero() || !options.TimeEnd.IsZero() {
		req.Datetime = fmt.Sprintf("%s/%s",
			options.TimeStart.UTC().Format(isoDateLayout),
			options.TimeEnd.UTC().Format(isoDateLayout))
	}
	if requestBody, err = json.Marshal(req); err != nil {
		err = util.LogSimpleErr(context, fmt.Sprintf("Failed to marshal search request object %#v.", req), err)
		return nil, err
	}

	input := stacRequestInput{method: "POST", inputURL: "search", body: requestBody, contentType: "application/json"}
	for {
		pageScenes, next, err := searchPage(input, context)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, pageScenes...)
		if len(scenes) >= options.MaxItems {
			scenes = scenes[:options.MaxItems]
			break
		}
		// An empty page means the catalog is done regardless of links
		if next == nil || len(pageScenes) == 0 {
			break
		}
		input = stacRequestInput{method: "GET", inputURL: next.Href}
		if next.Method == "POST" {
			nextBody, marshalErr := json.Marshal(next.Body)
			if marshalErr != nil {
				return nil, marshalErr
			}
			input = stacRequestInput{method: "POST", inputURL: next.Href, body: nextBody, contentType: "application/json"}
		}
	}

	return scenes, nil
}

func searchPage(input stacRequestInput, context *Context) ([]model.SceneMetadata, *stacLink, error) {
	response, err := stacRequest(input, context)
	if err != nil {
		err = util.LogSimpleErr(context, fmt.Sprintf("Failed to complete STAC API request %#v.", string(input.body)), err)
		return nil, nil, err
	}
	switch {
	case (response.StatusCode >= 400) && (response.StatusCode < 500):
		message := fmt.Sprintf("Failed to discover scenes from STAC API: %v. ", response.Status)
		err := util.HTTPErr{Status: response.StatusCode, Message: message}
		util.LogAlert(context, message)
		return nil, nil, err
	case response.StatusCode >= 500:
		err = util.LogSimpleErr(context, "Failed to discover scenes from STAC API.", errors.New(response.Status))
		return nil, nil, err
	default:
		//no op
	}

	defer response.Body.Close()
	responseBody, _ := ioutil.ReadAll(response.Body)

	scenes, results, err := parseSearchResults(context, responseBody)
	if err != nil {
		return nil, nil, err
	}
	return scenes, results.nextLink(), nil
}

// GetItem returns the uniform-schema metadata for a single catalog item
func GetItem(collection, itemID string, context *Context) (*model.SceneMetadata, error) {
	inputURL := "collections/" + collection + "/items/" + itemID
	response, err := stacRequest(stacRequestInput{method: "GET", inputURL: inputURL}, context)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()
	body, _ := ioutil.ReadAll(response.Body)
	switch {
	case (response.StatusCode >= 400) && (response.StatusCode < 500):
		message := fmt.Sprintf("Failed to find metadata for scene %v: %v. ", itemID, response.Status)
		err := util.HTTPErr{Status: response.StatusCode, Message: message}
		util.LogAlert(context, message)
		return nil, err
	case response.StatusCode >= 500:
		err = util.LogSimpleErr(context, fmt.Sprintf("Failed to retrieve metadata for scene %v. ", itemID), errors.New(response.Status))
		return nil, err
	default:
		//no op
	}

	parsed, err := geojson.Parse(body)
	if err != nil {
		err = util.LogSimpleErr(context, fmt.Sprintf("Failed to parse GeoJSON.\n%v", string(body)), err)
		return nil, err
	}
	feature, ok := parsed.(*geojson.Feature)
	if !ok {
		stacErr := util.Error{SimpleMsg: fmt.Sprintf("Expected a Feature and got %T", parsed),
			Response: string(body), URL: inputURL, HTTPStatus: response.StatusCode}
		return nil, stacErr.Log(context, "")
	}

	var item stacItem
	if err = json.Unmarshal(body, &item); err != nil {
		stacErr := util.Error{LogMsg: "Failed to Unmarshal response from STAC API item request: " + err.Error(),
			SimpleMsg:  "The STAC catalog returned an unexpected response for this request. See log for further details.",
			Response:   string(body),
			URL:        inputURL,
			HTTPStatus: response.StatusCode}
		return nil, stacErr.Log(context, "")
	}

	scene, err := sceneMetadataFromItem(feature, item, context)
	if err != nil {
		return nil, err
	}
	return scene, nil
}

// stacRequest performs the request
func stacRequest(input stacRequestInput, context *Context) (*http.Response, error) {
	var (
		request   *http.Request
		parsedURL *url.URL
		inputURL  string
		err       error
	)
	inputURL = input.inputURL
	if !strings.Contains(inputURL, context.CatalogURL) {
		baseURL, _ := url.Parse(context.CatalogURL + "/")
		parsedRelativeURL, _ := url.Parse(input.inputURL)
		resolvedURL := baseURL.ResolveReference(parsedRelativeURL)

		if parsedURL, err = url.Parse(resolvedURL.String()); err != nil {
			err = util.LogSimpleErr(context, fmt.Sprintf("Failed to parse %v into a URL.", resolvedURL.String()), err)
			return nil, err
		}
		inputURL = parsedURL.String()
	}
	message := "Requesting data from STAC catalog"
	bodyStr := string(input.body)
	if bodyStr != "" {
		message += ": " + bodyStr
	}
	if request, err = http.NewRequest(input.method, inputURL, strings.NewReader(string(input.body))); err != nil {
		err = util.LogSimpleErr(context, fmt.Sprintf("Failed to make a new HTTP request for %v.", inputURL), err)
		return nil, err
	}
	if input.contentType != "" {
		request.Header.Set("Content-Type", input.contentType)
	}
	if context.SubscriptionKey != "" {
		request.Header.Set("Ocp-Apim-Subscription-Key", context.SubscriptionKey)
	}

	util.LogAudit(context, util.LogAuditInput{Actor: "stac/stacRequest", Action: input.method, Actee: inputURL, Message: message, Severity: util.INFO})
	util.LogAudit(context, util.LogAuditInput{Actor: inputURL, Action: input.method + " response", Actee: "stac/stacRequest", Message: "Receiving data from STAC catalog", Severity: util.INFO})
	return util.HTTPClient().Do(request)
}
