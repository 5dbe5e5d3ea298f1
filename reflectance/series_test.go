package reflectance

import (
	"errors"
	"testing"
	"time"

	"github.com/geospectra/sr-point-broker/catalog"
	"github.com/stretchr/testify/assert"
)

var testAcquired = time.Date(2022, 3, 14, 18, 46, 10, 0, time.UTC)

func stubImages(n int) []catalog.ImageRef {
	images := make([]catalog.ImageRef, n)
	for i := range images {
		images[i] = catalog.ImageRef{
			ID:           "LC08_TEST_" + string(rune('A'+i)),
			AcquiredDate: testAcquired.AddDate(0, 0, 16*i),
			CloudCover:   float64(i),
		}
	}
	return images
}

func restoreCatalogFuncs() {
	searchImages = catalog.SearchImages
	getImageMetadata = catalog.GetImageMetadata
	samplePoint = catalog.SamplePoint
}

func TestGetPointSeries(t *testing.T) {
	defer restoreCatalogFuncs()

	// Mock
	var capturedSearch catalog.SearchOptions
	searchImages = func(options catalog.SearchOptions, context *catalog.Context) ([]catalog.ImageRef, error) {
		capturedSearch = options
		return stubImages(3), nil
	}
	getImageMetadata = func(options catalog.MetadataOptions, context *catalog.Context) (*catalog.ImageMetadata, error) {
		return &catalog.ImageMetadata{
			ID:              options.ID,
			DateAcquired:    testAcquired,
			CloudCover:      4.25,
			ReflectanceMult: 2.0,
			ReflectanceAdd:  -0.5,
		}, nil
	}
	samplePoint = func(options catalog.SampleOptions, context *catalog.Context) ([]map[string]float64, error) {
		return []map[string]float64{{"SR_B4": 100, "SR_B3": 200}}, nil
	}

	// Tested code
	table, err := GetPointSeries(Options{
		Longitude: -122.431,
		Latitude:  37.773,
		StartDate: "2022-01-01",
		EndDate:   "2022-12-31",
		Bands:     []string{"SR_B4", "SR_B3"},
	}, &catalog.Context{})

	// Asserts
	assert.Nil(t, err)
	assert.Len(t, table.Rows, 3)
	for _, row := range table.Rows {
		assert.NotNil(t, row.Date)
		assert.NotNil(t, row.Coordinate)
		assert.Equal(t, -122.431, row.Coordinate.Lon)
		assert.Equal(t, 37.773, row.Coordinate.Lat)
		assert.Equal(t, 4.25, *row.CloudCover)
		// value' = value * M + A
		assert.Equal(t, 100*2.0-0.5, *row.Values["SR_B4"])
		assert.Equal(t, 200*2.0-0.5, *row.Values["SR_B3"])
	}

	assert.Equal(t, "2022-01-01", capturedSearch.AcquiredDate)
	assert.Equal(t, "2022-12-31", capturedSearch.MaxAcquiredDate)
	assert.Equal(t, float64(DefaultMaxCloudCover), capturedSearch.MaxCloudCover)
}

func TestGetPointSeries_NoMatchingImages(t *testing.T) {
	defer restoreCatalogFuncs()

	// Mock
	searchImages = func(options catalog.SearchOptions, context *catalog.Context) ([]catalog.ImageRef, error) {
		return nil, nil
	}
	getImageMetadata = func(options catalog.MetadataOptions, context *catalog.Context) (*catalog.ImageMetadata, error) {
		assert.Fail(t, "metadata should not be fetched when nothing matched")
		return nil, nil
	}

	// Tested code
	table, err := GetPointSeries(Options{Longitude: -122.431, Latitude: 37.773}, &catalog.Context{})

	// Asserts
	assert.Nil(t, err)
	assert.Len(t, table.Rows, 1)
	assert.True(t, table.Rows[0].IsNull())
	for _, band := range DefaultBands {
		value, ok := table.Rows[0].Values[band]
		assert.True(t, ok, "missing band cell: "+band)
		assert.Nil(t, value)
	}
}

func TestGetPointSeries_CloudCoverCeilingRespected(t *testing.T) {
	defer restoreCatalogFuncs()

	// Mock: the upstream enforces the filter; every returned image is below the ceiling
	ceiling := 15.0
	searchImages = func(options catalog.SearchOptions, context *catalog.Context) ([]catalog.ImageRef, error) {
		assert.Equal(t, ceiling, options.MaxCloudCover)
		images := stubImages(4)
		for i := range images {
			images[i].CloudCover = float64(i * 4) // 0, 4, 8, 12
		}
		return images, nil
	}
	getImageMetadata = func(options catalog.MetadataOptions, context *catalog.Context) (*catalog.ImageMetadata, error) {
		return &catalog.ImageMetadata{ID: options.ID, DateAcquired: testAcquired, CloudCover: 12, ReflectanceMult: 1, ReflectanceAdd: 0}, nil
	}
	samplePoint = func(options catalog.SampleOptions, context *catalog.Context) ([]map[string]float64, error) {
		return []map[string]float64{{"SR_B4": 1, "SR_B3": 1, "SR_B2": 1}}, nil
	}

	// Tested code
	table, err := GetPointSeries(Options{Longitude: -122.431, Latitude: 37.773, MaxCloudCover: ceiling}, &catalog.Context{})

	// Asserts
	assert.Nil(t, err)
	assert.Len(t, table.Rows, 4)
	for _, row := range table.Rows {
		assert.True(t, *row.CloudCover <= ceiling)
	}
}

func TestGetPointSeries_NegativeCloudCoverDisablesFilter(t *testing.T) {
	defer restoreCatalogFuncs()

	// Mock
	var capturedSearch catalog.SearchOptions
	searchImages = func(options catalog.SearchOptions, context *catalog.Context) ([]catalog.ImageRef, error) {
		capturedSearch = options
		return nil, nil
	}

	// Tested code
	_, err := GetPointSeries(Options{Longitude: -122.431, Latitude: 37.773, MaxCloudCover: -1}, &catalog.Context{})

	// Asserts
	assert.Nil(t, err)
	assert.True(t, capturedSearch.MaxCloudCover < 0, "negative ceiling must reach the catalog layer untouched so the filter is omitted")
}

func TestGetPointSeries_SearchErrorPropagates(t *testing.T) {
	defer restoreCatalogFuncs()

	// Mock
	searchImages = func(options catalog.SearchOptions, context *catalog.Context) ([]catalog.ImageRef, error) {
		return nil, errors.New("upstream exploded")
	}

	// Tested code
	_, err := GetPointSeries(Options{Longitude: -122.431, Latitude: 37.773}, &catalog.Context{})

	// Asserts
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "upstream exploded")
}

func TestGetPointSeries_MetadataErrorPropagates(t *testing.T) {
	defer restoreCatalogFuncs()

	// Mock
	searchImages = func(options catalog.SearchOptions, context *catalog.Context) ([]catalog.ImageRef, error) {
		return stubImages(1), nil
	}
	getImageMetadata = func(options catalog.MetadataOptions, context *catalog.Context) (*catalog.ImageMetadata, error) {
		return nil, errors.New("metadata missing")
	}

	// Tested code
	_, err := GetPointSeries(Options{Longitude: -122.431, Latitude: 37.773}, &catalog.Context{})

	// Asserts
	assert.NotNil(t, err)
}

func TestOptions_ApplyDefaults(t *testing.T) {
	// Mock
	options := Options{Longitude: 1, Latitude: 2}

	// Tested code
	options.applyDefaults()

	// Asserts
	assert.Equal(t, DefaultBands, options.Bands)
	assert.Equal(t, float64(DefaultMaxCloudCover), options.MaxCloudCover)
	assert.Equal(t, DefaultScale, options.Scale)
	assert.Equal(t, "LANDSAT/LC08/C02/T1_L2", options.Collection)
}

func TestOptions_ApplyDefaults_NegativeCloudCoverPreserved(t *testing.T) {
	// Mock
	options := Options{Longitude: 1, Latitude: 2, MaxCloudCover: -1}

	// Tested code
	options.applyDefaults()

	// Asserts
	assert.Equal(t, -1.0, options.MaxCloudCover)
}
