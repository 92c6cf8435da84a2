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

package main

import (
	"fmt"
	"log"

	"github.com/venicegeo/eo-mapper/mapper"
	"github.com/venicegeo/eo-mapper/raster"
	"github.com/venicegeo/eo-mapper/util"
	cli "gopkg.in/urfave/cli.v1"
)

//queryAction loads a mapping configuration from a YAML file, runs the scene
//query, and prints the matching scenes as a GeoJSON feature collection. With
//--load the scene data is also pulled into memory.
func queryAction(c *cli.Context) {
	if c.NArg() != 1 {
		log.Fatal("Usage: eo-mapper query [--load] <configs.yml>")
	}

	configs, err := mapper.MapperConfigsFromYAML(c.Args().First())
	if err != nil {
		log.Fatalf("Could not read mapping configuration: %v", err)
	}

	m, err := mapper.NewMapper(configs)
	if err != nil {
		log.Fatal(err)
	}
	if !util.UseSTAC() {
		m.WithDatabase(getDbConnectionFunc)
	}

	if err = m.QueryScenes(); err != nil {
		log.Fatalf("Scene query failed: %v", err)
	}

	if c.Bool("load") {
		if err = m.LoadScenes(mapper.SceneKwargs{ConstructorOptions: raster.ConstructorOptions{FetchAssets: true}}); err != nil {
			log.Fatalf("Loading scenes failed: %v", err)
		}
		for _, scene := range m.Data.Scenes() {
			fmt.Printf("%s %s bands: %v\n",
				scene.Metadata.SensingTime.Format("2006-01-02"), scene.Metadata.SceneID, scene.BandNames())
		}
		return
	}

	collection, err := m.MetadataFeatureCollection()
	if err != nil {
		log.Fatalf("Could not render results: %v", err)
	}
	fmt.Println(collection.String())
}
