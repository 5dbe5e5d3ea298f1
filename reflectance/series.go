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

package reflectance

import (
	"github.com/geospectra/sr-point-broker/catalog"
	"github.com/geospectra/sr-point-broker/model"
	"github.com/geospectra/sr-point-broker/util"
	"github.com/venicegeo/geojson-go/geojson"
)

// Swappable for testing
var (
	searchImages     = catalog.SearchImages
	getImageMetadata = catalog.GetImageMetadata
	samplePoint      = catalog.SamplePoint
)

// DefaultBands are the optical surface-reflectance bands sampled when the
// caller does not name any
var DefaultBands = []string{"SR_B4", "SR_B3", "SR_B2"}

// DefaultMaxCloudCover is the default cloud-cover ceiling, in percent
const DefaultMaxCloudCover = 10

// DefaultScale is the default sampling resolution, in meters
const DefaultScale = 30

// Options are the parameters of a point-series retrieval. StartDate and
// EndDate are YYYY-MM-DD dates bounding the acquisition window.
// MaxCloudCover of 0 selects the default ceiling; a negative value disables
// the cloud-cover filter entirely.
type Options struct {
	Longitude     float64
	Latitude      float64
	StartDate     string
	EndDate       string
	Collection    string
	Bands         []string
	MaxCloudCover float64
	Scale         int
}

func (o *Options) applyDefaults() {
	if o.Collection == "" {
		o.Collection = util.GetDefaultCollection()
	}
	if len(o.Bands) == 0 {
		o.Bands = DefaultBands
	}
	if o.MaxCloudCover == 0 {
		o.MaxCloudCover = DefaultMaxCloudCover
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
}

// GetPointSeries retrieves surface-reflectance values at a single point for
// every catalog image matching the given date range and cloud-cover ceiling,
// one table row per image. Zero matching images yields a single all-null row
// rather than an empty table. Each image costs two catalog round trips: one
// for its correction metadata, one for the point sample.
func GetPointSeries(options Options, context *catalog.Context) (*model.Table, error) {
	options.applyDefaults()

	point := geojson.NewPoint([]float64{options.Longitude, options.Latitude})
	coordinate := model.Coordinate{Lon: options.Longitude, Lat: options.Latitude}

	images, err := searchImages(catalog.SearchOptions{
		Collection:      options.Collection,
		Point:           point,
		AcquiredDate:    options.StartDate,
		MaxAcquiredDate: options.EndDate,
		MaxCloudCover:   options.MaxCloudCover,
	}, context)
	if err != nil {
		return nil, err
	}

	if len(images) == 0 {
		return model.NewNullRowTable(options.Bands), nil
	}

	table := model.NewTable(options.Bands)
	for _, image := range images {
		metadata, err := getImageMetadata(catalog.MetadataOptions{
			Collection: options.Collection,
			ID:         image.ID,
		}, context)
		if err != nil {
			return nil, err
		}

		samples, err := samplePoint(catalog.SampleOptions{
			Collection: options.Collection,
			ID:         image.ID,
			Point:      point,
			Bands:      options.Bands,
			Scale:      options.Scale,
		}, context)
		if err != nil {
			return nil, err
		}

		for _, sample := range samples {
			table.Append(correctedRow(coordinate, *metadata, options.Bands, sample))
		}
	}

	return table, nil
}

// correctedRow applies the image's linear radiometric correction to each raw
// band value. The coefficients come from the single reference band but are
// applied uniformly to all requested bands, matching the catalog's published
// conversion.
func correctedRow(coordinate model.Coordinate, metadata catalog.ImageMetadata, bands []string, sample map[string]float64) model.Row {
	date := metadata.DateAcquired
	cloudCover := metadata.CloudCover

	values := make(map[string]*float64, len(bands))
	for _, band := range bands {
		corrected := sample[band]*metadata.ReflectanceMult + metadata.ReflectanceAdd
		values[band] = &corrected
	}

	return model.Row{
		Date:       &date,
		Coordinate: &coordinate,
		CloudCover: &cloudCover,
		Values:     values,
	}
}
