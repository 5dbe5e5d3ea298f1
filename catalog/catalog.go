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

package catalog

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"

	"github.com/geospectra/sr-point-broker/util"
)

// SearchImages returns the images matching the given point, date range, and
// cloud-cover ceiling, in the catalog's own iteration order
func SearchImages(options SearchOptions, context *Context) ([]ImageRef, error) {
	var (
		err          error
		response     *http.Response
		requestBody  []byte
		responseBody []byte
		req          request
	)

	req.ItemTypes = append(req.ItemTypes, options.Collection)
	req.Filter.Type = "AndFilter"
	req.Filter.Config = make([]interface{}, 0)
	if options.Point != nil {
		req.Filter.Config = append(req.Filter.Config, objectFilter{Type: "GeometryFilter", FieldName: "geometry", Config: options.Point})
	}
	if options.AcquiredDate != "" || options.MaxAcquiredDate != "" {
		dc := dateConfig{GTE: options.AcquiredDate, LTE: options.MaxAcquiredDate}
		req.Filter.Config = append(req.Filter.Config, objectFilter{Type: "DateRangeFilter", FieldName: "acquired", Config: dc})
	}
	if options.MaxCloudCover > 0 {
		cc := rangeConfig{LTE: options.MaxCloudCover}
		req.Filter.Config = append(req.Filter.Config, objectFilter{Type: "RangeFilter", FieldName: "cloud_cover", Config: cc})
	}
	if requestBody, err = json.Marshal(req); err != nil {
		err = util.LogSimpleErr(context, fmt.Sprintf("Failed to marshal request object %#v.", req), err)
		return nil, err
	}
	if response, err = catalogRequest(catalogRequestInput{method: "POST", inputURL: "catalog/v1/quick-search", body: requestBody, contentType: "application/json"}, context); err != nil {
		err = util.LogSimpleErr(context, fmt.Sprintf("Failed to complete catalog API request %#v.", string(requestBody)), err)
		return nil, err
	}
	switch {
	case (response.StatusCode >= 400) && (response.StatusCode < 500):
		message := fmt.Sprintf("Failed to discover images from the catalog API: %v. ", response.Status)
		err := util.HTTPErr{Status: response.StatusCode, Message: message}
		util.LogAlert(context, message)
		return nil, err
	case response.StatusCode >= 500:
		err = util.LogSimpleErr(context, "Failed to discover images from the catalog API.", errors.New(response.Status))
		return nil, err
	default:
		//no op
	}

	defer response.Body.Close()
	responseBody, _ = ioutil.ReadAll(response.Body)

	return parseSearchResults(context, responseBody)
}

// GetImageMetadata returns the correction metadata for a single image
func GetImageMetadata(options MetadataOptions, context *Context) (*ImageMetadata, error) {
	var (
		response *http.Response
		err      error
		body     []byte
	)
	inputURL := "catalog/v1/item-types/" + options.Collection + "/items/" + options.ID
	input := catalogRequestInput{method: "GET", inputURL: inputURL}
	if response, err = catalogRequest(input, context); err != nil {
		return nil, err
	}
	defer response.Body.Close()
	body, _ = ioutil.ReadAll(response.Body)
	switch {
	case (response.StatusCode >= 400) && (response.StatusCode < 500):
		message := fmt.Sprintf("Failed to find metadata for image %v: %v. ", options.ID, response.Status)
		err := util.HTTPErr{Status: response.StatusCode, Message: message}
		util.LogAlert(context, message)
		return nil, err
	case response.StatusCode >= 500:
		err = util.LogSimpleErr(context, fmt.Sprintf("Failed to retrieve metadata for image %v. ", options.ID), errors.New(response.Status))
		return nil, err
	default:
		//no op
	}

	metadata, err := parseImageMetadata(body)
	if err != nil {
		catErr := util.Error{LogMsg: "Failed to parse metadata response from the catalog API: " + err.Error(),
			SimpleMsg:  "The imagery catalog returned an unexpected response for this request. See log for further details.",
			Response:   string(body),
			URL:        inputURL,
			HTTPStatus: response.StatusCode}
		return nil, catErr.Log(context, "")
	}
	return metadata, nil
}

// SamplePoint samples the requested bands of a single image at one point and
// the given scale, returning the raw (uncorrected) values, one set per
// sampled feature
func SamplePoint(options SampleOptions, context *Context) ([]map[string]float64, error) {
	var (
		response     *http.Response
		err          error
		requestBody  []byte
		responseBody []byte
	)
	req := sampleRequest{Geometry: options.Point, Bands: options.Bands, Scale: options.Scale}
	if requestBody, err = json.Marshal(req); err != nil {
		err = util.LogSimpleErr(context, fmt.Sprintf("Failed to marshal sample request object %#v.", req), err)
		return nil, err
	}
	inputURL := "catalog/v1/item-types/" + options.Collection + "/items/" + options.ID + "/sample"
	input := catalogRequestInput{method: "POST", inputURL: inputURL, body: requestBody, contentType: "application/json"}
	if response, err = catalogRequest(input, context); err != nil {
		return nil, err
	}
	defer response.Body.Close()
	responseBody, _ = ioutil.ReadAll(response.Body)
	switch {
	case (response.StatusCode >= 400) && (response.StatusCode < 500):
		message := fmt.Sprintf("Failed to sample image %v: %v. ", options.ID, response.Status)
		err := util.HTTPErr{Status: response.StatusCode, Message: message}
		util.LogAlert(context, message)
		return nil, err
	case response.StatusCode >= 500:
		err = util.LogSimpleErr(context, fmt.Sprintf("Failed to sample image %v. ", options.ID), errors.New(response.Status))
		return nil, err
	default:
		//no op
	}

	samples, err := parseSampleResults(responseBody, options.Bands)
	if err != nil {
		catErr := util.Error{LogMsg: "Failed to parse sample response from the catalog API: " + err.Error(),
			SimpleMsg:  "The imagery catalog returned an unexpected response for this request. See log for further details.",
			Response:   string(responseBody),
			URL:        inputURL,
			HTTPStatus: response.StatusCode}
		return nil, catErr.Log(context, "")
	}
	return samples, nil
}

// catalogRequest performs the request
func catalogRequest(input catalogRequestInput, context *Context) (*http.Response, error) {
	var (
		request   *http.Request
		parsedURL *url.URL
		inputURL  string
		err       error
	)
	inputURL = input.inputURL
	if !strings.Contains(inputURL, context.BaseCatalogURL) {
		baseURL, _ := url.Parse(context.BaseCatalogURL)
		parsedRelativeURL, _ := url.Parse(input.inputURL)
		resolvedURL := baseURL.ResolveReference(parsedRelativeURL)

		if parsedURL, err = url.Parse(resolvedURL.String()); err != nil {
			err = util.LogSimpleErr(context, fmt.Sprintf("Failed to parse %v into a URL.", resolvedURL.String()), err)
			return nil, err
		}
		inputURL = parsedURL.String()
	}
	message := "Requesting data from the imagery catalog"
	bodyStr := string(input.body)
	if bodyStr != "" {
		message += ": " + bodyStr
	}
	if request, err = http.NewRequest(input.method, inputURL, bytes.NewBuffer(input.body)); err != nil {
		err = util.LogSimpleErr(context, fmt.Sprintf("Failed to make a new HTTP request for %v.", inputURL), err)
		return nil, err
	}
	if input.contentType != "" {
		request.Header.Set("Content-Type", input.contentType)
	}

	request.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(context.CatalogKey+":")))
	util.LogAudit(context, util.LogAuditInput{Actor: "catalog/doRequest", Action: input.method, Actee: inputURL, Message: message, Severity: util.INFO})
	util.LogAudit(context, util.LogAuditInput{Actor: inputURL, Action: input.method + " response", Actee: "catalog/doRequest", Message: "Receiving data from the catalog API", Severity: util.INFO})
	return util.HTTPClient().Do(request)
}
