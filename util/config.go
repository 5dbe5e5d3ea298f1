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

package util

import "os"

// Environment variables
const (
	CATALOG_API_URL       = "CATALOG_API_URL"
	CATALOG_API_KEY       = "CATALOG_API_KEY"
	SR_DEFAULT_COLLECTION = "SR_DEFAULT_COLLECTION"
	VCAP_SERVICES         = "VCAP_SERVICES"
)

// catalogVcapServiceName is the name of the bound catalog credentials service
// when running on Cloud Foundry
const catalogVcapServiceName = "sr-imagery-catalog"

const defaultCollection = "LANDSAT/LC08/C02/T1_L2"

// GetCatalogAPIURL returns a string for the CATALOG_API_URL environment variable
func GetCatalogAPIURL() string {
	catalogBaseURL, ok := os.LookupEnv(CATALOG_API_URL)
	if !ok {
		LogAlert(&BasicLogContext{}, "Did not get catalog API URL from the environment. The imagery catalog will not be available.")
	}
	return catalogBaseURL
}

// GetCatalogAPIKey returns the catalog API key from the CATALOG_API_KEY
// environment variable, falling back to bound VCAP_SERVICES credentials
func GetCatalogAPIKey() string {
	if key, ok := os.LookupEnv(CATALOG_API_KEY); ok {
		return key
	}

	if vcapJSON, ok := os.LookupEnv(VCAP_SERVICES); ok {
		LogInfo(&BasicLogContext{}, "Did not get explicit catalog API key from the environment. Looking for bound VCAP service credentials.")
		services, err := ParseVcapServices([]byte(vcapJSON))
		if err != nil {
			LogAlert(&BasicLogContext{}, "Could not parse VCAP_SERVICES: "+err.Error())
			return ""
		}
		if service := services.FindServiceByName(catalogVcapServiceName); service != nil {
			key, err := service.Credentials.String("api_key")
			if err != nil {
				LogAlert(&BasicLogContext{}, "Catalog VCAP service has no usable api_key: "+err.Error())
				return ""
			}
			return key
		}
	}

	LogAlert(&BasicLogContext{}, "Did not get catalog API key from the environment. Catalog requests will be unauthenticated.")
	return ""
}

// GetDefaultCollection returns the catalog collection to query when the
// caller does not name one
func GetDefaultCollection() string {
	if collection, ok := os.LookupEnv(SR_DEFAULT_COLLECTION); ok {
		return collection
	}
	return defaultCollection
}
