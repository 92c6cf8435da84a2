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
	"errors"

	"github.com/venicegeo/eo-mapper/model"
	"github.com/venicegeo/eo-mapper/util"
)

// SearchSentinel1RTC queries for Sentinel-1 RTC (radiometry and terrain
// corrected) scenes. Only the Planetary Computer serves this collection, and
// it sits behind a subscription key.
func SearchSentinel1RTC(options SearchOptions, context *Context) ([]model.SceneMetadata, error) {
	if !util.UseSTAC() {
		return nil, errors.New("Sentinel-1 RTC queries require STAC")
	}
	if context.Provider.Name != util.PlanetaryComputer {
		return nil, errors.New("Sentinel-1 RTC queries require the Planetary Computer provider")
	}
	if context.SubscriptionKey == "" {
		return nil, errors.New("Sentinel-1 RTC queries require a valid Planetary Computer subscription key")
	}

	options.Collection = context.Provider.S1RTCCollection
	return Search(options, context)
}
