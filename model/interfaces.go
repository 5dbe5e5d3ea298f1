package model

import "github.com/venicegeo/geojson-go/geojson"

// GeoJSONFeatureCreator is an interface for data that can convert itself to a GeoJSON feature
type GeoJSONFeatureCreator interface {
	GeoJSONFeature() (*geojson.Feature, error)
}

// GeoJSONFeatureCollectionCreator is an interface for data that can convert itself to a GeoJSON feature collection
type GeoJSONFeatureCollectionCreator interface {
	GeoJSONFeatureCollection() (*geojson.FeatureCollection, error)
}
