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
	"fmt"

	"github.com/venicegeo/eo-mapper/model"
)

// ProcessingLevel identifies a Sentinel-2 processing level
type ProcessingLevel string

// Supported Sentinel-2 processing levels
const (
	L1C ProcessingLevel = "Level-1C"
	L2A ProcessingLevel = "Level-2A"
)

// SearchSentinel2 runs a Sentinel-2 specific catalog search: the collection is
// chosen from the processing level, and scenes whose scene-wide cloudy pixel
// percentage exceeds the threshold are dropped. The threshold is a percentage
// between 0 and 100.
func SearchSentinel2(options SearchOptions, processingLevel ProcessingLevel, cloudCoverThreshold float64, context *Context) ([]model.SceneMetadata, error) {
	switch processingLevel {
	case L1C:
		options.Collection = context.Provider.S2L1CCollection
	case L2A:
		options.Collection = context.Provider.S2L2ACollection
	default:
		return nil, fmt.Errorf("Unrecognized Sentinel-2 processing level: %s", processingLevel)
	}

	scenes, err := Search(options, context)
	if err != nil {
		return nil, err
	}

	// In theory the threshold could be pushed into the search request, but
	// keeping it client-side keeps the search body provider-agnostic
	filtered := make([]model.SceneMetadata, 0, len(scenes))
	for _, scene := range scenes {
		if scene.CloudCover <= cloudCoverThreshold {
			filtered = append(filtered, scene)
		}
	}

	return filtered, nil
}
