package model

import (
	"github.com/venicegeo/geojson-go/geojson"
)

// GeoJSONFeature implements the GeoJSONFeatureCreator interface. Each row
// becomes a point feature carrying its date, cloud cover, and band values
// as properties; null cells become null properties.
func (r Row) GeoJSONFeature() (*geojson.Feature, error) {
	properties := map[string]interface{}{
		"acquiredDate": nil,
		"cloudCover":   nil,
	}
	if r.Date != nil {
		properties["acquiredDate"] = r.Date.Format(DateOnlyLayout)
	}
	if r.CloudCover != nil {
		properties["cloudCover"] = *r.CloudCover
	}
	for band, value := range r.Values {
		if value != nil {
			properties[band] = *value
		} else {
			properties[band] = nil
		}
	}

	var geometry interface{}
	if r.Coordinate != nil {
		geometry = geojson.NewPoint([]float64{r.Coordinate.Lon, r.Coordinate.Lat})
	}

	feature := geojson.NewFeature(geometry, nil, properties)
	if geometry != nil {
		feature.Bbox = feature.ForceBbox()
	}
	return feature, nil
}

// GeoJSONFeatureCollection implements the GeoJSONFeatureCollectionCreator interface
func (t *Table) GeoJSONFeatureCollection() (*geojson.FeatureCollection, error) {
	var err error
	features := make([]*geojson.Feature, len(t.Rows))
	for i, row := range t.Rows {
		features[i], err = row.GeoJSONFeature()
		if err != nil {
			return nil, err
		}
	}

	return geojson.NewFeatureCollection(features), nil
}
