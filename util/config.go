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

package util

import (
	"os"
	"strconv"
)

// Environment variables
const (
	STAC_PROVIDER           = "STAC_PROVIDER"
	STAC_API_URL            = "STAC_API_URL"
	USE_STAC                = "USE_STAC"
	PC_SDK_SUBSCRIPTION_KEY = "PC_SDK_SUBSCRIPTION_KEY"
	STAC_MAX_ITEMS          = "STAC_MAX_ITEMS"
	STAC_LIMIT_ITEMS        = "STAC_LIMIT_ITEMS"
	HTTPS_RETRIES           = "HTTPS_RETRIES"
)

// Defaults mirroring the upstream catalog limits
const (
	DefaultMaxItems     = 500
	DefaultLimitItems   = 5
	DefaultHTTPSRetries = 5
)

// Provider names
const (
	PlanetaryComputer = "planetary-computer"
	EarthSearch       = "earth-search"
)

// Sentinel2Mapping names the provider-specific STAC properties holding each
// field of the uniform scene schema. TileID may span several properties whose
// values concatenate into the full tile identifier. RootKeys lists the fields
// found on the item root rather than under "properties".
type Sentinel2Mapping struct {
	ProductURI        string
	SceneID           string
	Platform          string
	TileID            []string
	SensingTime       string
	SensingTimeLayout string
	CloudCover        string
	EPSG              string
	SunAzimuth        string
	SunZenith         string
	RootKeys          []string
}

// STACProvider describes one supported STAC backend: where it lives and how
// it names the scene metadata our uniform schema needs
type STACProvider struct {
	Name                 string
	CatalogURL           string
	S2L1CCollection      string
	S2L2ACollection      string
	S1RTCCollection      string
	Sentinel2            Sentinel2Mapping
	RequiresSubscription bool
}

var planetaryComputerProvider = STACProvider{
	Name:            PlanetaryComputer,
	CatalogURL:      "https://planetarycomputer.microsoft.com/api/stac/v1",
	S2L1CCollection: "sentinel-2-l1c",
	S2L2ACollection: "sentinel-2-l2a",
	S1RTCCollection: "sentinel-1-rtc",
	Sentinel2: Sentinel2Mapping{
		ProductURI:        "s2:product_uri",
		SceneID:           "s2:granule_id",
		Platform:          "platform",
		TileID:            []string{"s2:mgrs_tile"},
		SensingTime:       "datetime",
		SensingTimeLayout: "2006-01-02T15:04:05.999999Z",
		CloudCover:        "eo:cloud_cover",
		EPSG:              "proj:epsg",
		SunAzimuth:        "s2:mean_solar_azimuth",
		SunZenith:         "s2:mean_solar_zenith_angle",
	},
	RequiresSubscription: true,
}

var earthSearchProvider = STACProvider{
	Name:            EarthSearch,
	CatalogURL:      "https://earth-search.aws.element84.com/v0",
	S2L1CCollection: "sentinel-s2-l1c",
	S2L2ACollection: "sentinel-s2-l2a",
	Sentinel2: Sentinel2Mapping{
		ProductURI:        "sentinel:product_id",
		SceneID:           "id",
		Platform:          "platform",
		TileID:            []string{"sentinel:utm_zone", "sentinel:latitude_band", "sentinel:grid_square"},
		SensingTime:       "datetime",
		SensingTimeLayout: "2006-01-02T15:04:05Z",
		CloudCover:        "eo:cloud_cover",
		EPSG:              "proj:epsg",
		SunAzimuth:        "view:sun_azimuth",
		SunZenith:         "view:sun_elevation",
		RootKeys:          []string{"id"},
	},
}

// GetSTACProvider returns the configured STAC provider, defaulting to the
// Planetary Computer when the environment does not say otherwise
func GetSTACProvider() STACProvider {
	var provider STACProvider
	switch os.Getenv(STAC_PROVIDER) {
	case EarthSearch:
		provider = earthSearchProvider
	case PlanetaryComputer, "":
		provider = planetaryComputerProvider
	default:
		LogAlert(&BasicLogContext{}, "Unrecognized STAC provider '"+os.Getenv(STAC_PROVIDER)+"'; using "+PlanetaryComputer)
		provider = planetaryComputerProvider
	}
	if catalogURL, ok := os.LookupEnv(STAC_API_URL); ok {
		provider.CatalogURL = catalogURL
	}
	return provider
}

// UseSTAC returns whether scene queries should go to the STAC catalog rather
// than the metadata database
func UseSTAC() bool {
	value, ok := os.LookupEnv(USE_STAC)
	if !ok {
		return true
	}
	useSTAC, err := strconv.ParseBool(value)
	if err != nil {
		LogAlert(&BasicLogContext{}, "Could not parse USE_STAC value '"+value+"'; defaulting to true")
		return true
	}
	return useSTAC
}

// GetSubscriptionKey returns the Planetary Computer subscription key, if any
func GetSubscriptionKey() string {
	key, ok := os.LookupEnv(PC_SDK_SUBSCRIPTION_KEY)
	if !ok {
		LogInfo(&BasicLogContext{}, "No subscription key in environment. Subscription-only collections will not be available.")
	}
	return key
}

func envInt(name string, fallback int) int {
	value, ok := os.LookupEnv(name)
	if !ok {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		LogAlert(&BasicLogContext{}, "Invalid value for "+name+": '"+value+"'")
		return fallback
	}
	return parsed
}

// GetMaxItems returns the maximum total number of items to pull from a
// catalog search
func GetMaxItems() int {
	return envInt(STAC_MAX_ITEMS, DefaultMaxItems)
}

// GetLimitItems returns the page size to request from the catalog
func GetLimitItems() int {
	return envInt(STAC_LIMIT_ITEMS, DefaultLimitItems)
}

// GetHTTPSRetries returns the bounded retry count for outbound HTTPS requests
func GetHTTPSRetries() int {
	return envInt(HTTPS_RETRIES, DefaultHTTPSRetries)
}
