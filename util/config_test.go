package util

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetCatalogAPIKey_FromEnvironment(t *testing.T) {
	// Mock
	os.Setenv(CATALOG_API_KEY, "env-key")
	defer os.Unsetenv(CATALOG_API_KEY)

	// Tested code + Asserts
	assert.Equal(t, "env-key", GetCatalogAPIKey())
}

func TestGetCatalogAPIKey_FromVcapServices(t *testing.T) {
	// Mock
	os.Unsetenv(CATALOG_API_KEY)
	os.Setenv(VCAP_SERVICES, sampleVcapServices)
	defer os.Unsetenv(VCAP_SERVICES)

	// Tested code + Asserts
	assert.Equal(t, "abc123", GetCatalogAPIKey())
}

func TestGetCatalogAPIKey_Missing(t *testing.T) {
	// Mock
	os.Unsetenv(CATALOG_API_KEY)
	os.Unsetenv(VCAP_SERVICES)

	// Tested code + Asserts
	assert.Equal(t, "", GetCatalogAPIKey())
}

func TestGetDefaultCollection(t *testing.T) {
	// Mock
	os.Unsetenv(SR_DEFAULT_COLLECTION)

	// Tested code + Asserts
	assert.Equal(t, "LANDSAT/LC08/C02/T1_L2", GetDefaultCollection())

	os.Setenv(SR_DEFAULT_COLLECTION, "LANDSAT/LC09/C02/T1_L2")
	defer os.Unsetenv(SR_DEFAULT_COLLECTION)
	assert.Equal(t, "LANDSAT/LC09/C02/T1_L2", GetDefaultCollection())
}
