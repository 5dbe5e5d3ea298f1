package main

import (
	"testing"

	"github.com/geospectra/sr-point-broker/catalog"
	"github.com/geospectra/sr-point-broker/model"
	"github.com/geospectra/sr-point-broker/reflectance"
	"github.com/stretchr/testify/assert"
)

func TestSample_PassesFlagsThrough(t *testing.T) {
	// Mock
	var captured reflectance.Options
	getPointSeriesFunc = func(options reflectance.Options, context *catalog.Context) (*model.Table, error) {
		captured = options
		return model.NewNullRowTable(options.Bands), nil
	}
	defer func() { getPointSeriesFunc = reflectance.GetPointSeries }()

	// Tested code
	err := createCliApp().Run([]string{
		"sr-point-broker", "sample",
		"--lon", "-122.431", "--lat", "37.773",
		"--start", "2022-01-01", "--end", "2022-12-31",
		"--bands", "SR_B5,SR_B4",
		"--cloud-cover", "20",
		"--scale", "60",
	})

	// Asserts
	assert.Nil(t, err)
	assert.Equal(t, -122.431, captured.Longitude)
	assert.Equal(t, 37.773, captured.Latitude)
	assert.Equal(t, "2022-01-01", captured.StartDate)
	assert.Equal(t, "2022-12-31", captured.EndDate)
	assert.Equal(t, []string{"SR_B5", "SR_B4"}, captured.Bands)
	assert.Equal(t, 20.0, captured.MaxCloudCover)
	assert.Equal(t, 60, captured.Scale)
}

func TestSample_ErrorBecomesExitError(t *testing.T) {
	// Mock
	getPointSeriesFunc = func(options reflectance.Options, context *catalog.Context) (*model.Table, error) {
		return nil, assert.AnError
	}
	defer func() { getPointSeriesFunc = reflectance.GetPointSeries }()

	// Tested code
	err := createCliApp().Run([]string{"sr-point-broker", "sample", "--lon", "0", "--lat", "0"})

	// Asserts
	assert.NotNil(t, err)
}
