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
	cli "gopkg.in/urfave/cli.v1"
)

var commands = cli.Commands{
	cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Launch the eo-mapper webserver",
		Action:  serveAction,
	},
	cli.Command{
		Name:    "query",
		Aliases: []string{"q"},
		Usage:   "Run a mapping configuration and print the matching scenes as GeoJSON",
		Action:  queryAction,
		Flags: []cli.Flag{
			cli.BoolFlag{
				Name:  "load",
				Usage: "also load the scene data into memory and report the collection",
			},
		},
	},
	cli.Command{
		Name:    "ingest",
		Aliases: []string{"i"},
		Usage:   "Update the scene metadata database from the STAC catalog on a schedule",
		Action:  ingestScheduleAction,
	},
	cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Update database schema",
		Action:  migrateDatabaseAction,
	},
	cli.Command{
		Name:    "version",
		Aliases: []string{"v"},
		Usage:   "Print the version number of the eo-mapper CLI",
		Action:  versionAction,
	},
}

func createCliApp() (app *cli.App) {
	app = cli.NewApp()
	app.Name = "eo-mapper"
	app.Usage = "Launch an eo-mapper process"
	app.Commands = commands
	return
}
