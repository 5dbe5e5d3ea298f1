package catalog

import (
	"fmt"

	"github.com/geospectra/sr-point-broker/model"
	"github.com/geospectra/sr-point-broker/util"
	"github.com/venicegeo/geojson-go/geojson"
)

func parseSearchResults(context *Context, body []byte) ([]ImageRef, error) {
	featureCollection, err := rawBytesToFeatureCollection(context, body)
	if err != nil {
		return nil, err
	}

	results := make([]ImageRef, len(featureCollection.Features))
	for i, feature := range featureCollection.Features {
		result, err := imageRefFromFeature(feature)
		if err != nil {
			return nil, err
		}
		results[i] = *result
	}

	return results, nil
}

func rawBytesToFeatureCollection(context *Context, body []byte) (*geojson.FeatureCollection, error) {
	var (
		featureCollection *geojson.FeatureCollection
		geoJSONParsedData interface{}
		ok                bool
		err               error
	)
	if geoJSONParsedData, err = geojson.Parse(body); err != nil {
		err = util.LogSimpleErr(context, fmt.Sprintf("Failed to parse GeoJSON.\n%v", string(body)), err)
		return nil, err
	}

	if featureCollection, ok = geoJSONParsedData.(*geojson.FeatureCollection); !ok {
		catErr := util.Error{SimpleMsg: fmt.Sprintf("Expected a FeatureCollection and got %T", geoJSONParsedData), Response: string(body)}
		err = catErr.Log(context, "")
		return nil, err
	}

	return featureCollection, nil
}

func imageRefFromFeature(feature *geojson.Feature) (*ImageRef, error) {
	acquiredDate, err := model.ParseAcquiredTime(feature.PropertyString("acquired"))
	if err != nil {
		return nil, err
	}

	return &ImageRef{
		ID:           feature.IDStr(),
		AcquiredDate: acquiredDate,
		CloudCover:   feature.PropertyFloat("cloud_cover"),
		Geometry:     feature.Geometry,
	}, nil
}

// Per-image metadata properties carrying the radiometric correction
// coefficients. The coefficients are published against reference band 2.
const (
	dateAcquiredProperty    = "date_acquired"
	cloudCoverProperty      = "cloud_cover"
	reflectanceMultProperty = "reflectance_mult_band_2"
	reflectanceAddProperty  = "reflectance_add_band_2"
)

func parseImageMetadata(body []byte) (*ImageMetadata, error) {
	geoJSONParsedData, err := geojson.Parse(body)
	if err != nil {
		return nil, err
	}
	feature, ok := geoJSONParsedData.(*geojson.Feature)
	if !ok {
		return nil, fmt.Errorf("Expected a Feature and got %T", geoJSONParsedData)
	}

	dateAcquired, err := model.ParseAcquiredTime(feature.PropertyString(dateAcquiredProperty))
	if err != nil {
		return nil, err
	}

	reflectanceMult, err := requiredFloatProperty(feature, reflectanceMultProperty)
	if err != nil {
		return nil, err
	}
	reflectanceAdd, err := requiredFloatProperty(feature, reflectanceAddProperty)
	if err != nil {
		return nil, err
	}
	cloudCover, err := requiredFloatProperty(feature, cloudCoverProperty)
	if err != nil {
		return nil, err
	}

	return &ImageMetadata{
		ID:              feature.IDStr(),
		DateAcquired:    dateAcquired,
		CloudCover:      cloudCover,
		ReflectanceMult: reflectanceMult,
		ReflectanceAdd:  reflectanceAdd,
	}, nil
}

func parseSampleResults(body []byte, bands []string) ([]map[string]float64, error) {
	geoJSONParsedData, err := geojson.Parse(body)
	if err != nil {
		return nil, err
	}
	featureCollection, ok := geoJSONParsedData.(*geojson.FeatureCollection)
	if !ok {
		return nil, fmt.Errorf("Expected a FeatureCollection and got %T", geoJSONParsedData)
	}

	samples := make([]map[string]float64, len(featureCollection.Features))
	for i, feature := range featureCollection.Features {
		values := make(map[string]float64, len(bands))
		for _, band := range bands {
			value, err := requiredFloatProperty(feature, band)
			if err != nil {
				return nil, err
			}
			values[band] = value
		}
		samples[i] = values
	}

	return samples, nil
}

func requiredFloatProperty(feature *geojson.Feature, name string) (float64, error) {
	raw, ok := feature.Properties[name]
	if !ok {
		return 0, fmt.Errorf("Missing required property: %s", name)
	}
	value, ok := raw.(float64)
	if !ok {
		return 0, fmt.Errorf("Property %s is not numeric: %v", name, raw)
	}
	return value, nil
}
