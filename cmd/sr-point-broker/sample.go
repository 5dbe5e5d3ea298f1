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
	"os"
	"strings"

	"github.com/geospectra/sr-point-broker/catalog"
	"github.com/geospectra/sr-point-broker/reflectance"
	"github.com/geospectra/sr-point-broker/util"
	cli "gopkg.in/urfave/cli.v1"
)

var sampleFlags = []cli.Flag{
	cli.Float64Flag{Name: "lon", Usage: "Longitude of the point of interest"},
	cli.Float64Flag{Name: "lat", Usage: "Latitude of the point of interest"},
	cli.StringFlag{Name: "start", Usage: "Start date (YYYY-MM-DD) of the acquisition window"},
	cli.StringFlag{Name: "end", Usage: "End date (YYYY-MM-DD) of the acquisition window"},
	cli.StringFlag{Name: "collection", Usage: "Catalog collection to query (default from environment)"},
	cli.StringFlag{Name: "bands", Usage: "Comma-separated band names", Value: strings.Join(reflectance.DefaultBands, ",")},
	cli.Float64Flag{Name: "cloud-cover", Usage: "Maximum cloud cover, as a percentage; negative disables the filter", Value: reflectance.DefaultMaxCloudCover},
	cli.IntFlag{Name: "scale", Usage: "Sampling resolution, in meters", Value: reflectance.DefaultScale},
	cli.StringFlag{Name: "format", Usage: "Output format: csv or geojson", Value: "csv"},
}

var getPointSeriesFunc = reflectance.GetPointSeries

func sampleAction(c *cli.Context) error {
	options := reflectance.Options{
		Longitude:     c.Float64("lon"),
		Latitude:      c.Float64("lat"),
		StartDate:     c.String("start"),
		EndDate:       c.String("end"),
		Collection:    c.String("collection"),
		Bands:         strings.Split(c.String("bands"), ","),
		MaxCloudCover: c.Float64("cloud-cover"),
		Scale:         c.Int("scale"),
	}

	context := catalog.NewContext()
	table, err := getPointSeriesFunc(options, context)
	if err != nil {
		util.LogAlert(context, fmt.Sprintf("Failed to retrieve point series: %v", err))
		return err
	}

	switch c.String("format") {
	case "geojson":
		featureCollection, err := table.GeoJSONFeatureCollection()
		if err != nil {
			return err
		}
		fmt.Println(featureCollection.String())
	default:
		if err = table.WriteCSV(os.Stdout); err != nil {
			return err
		}
	}
	return nil
}
