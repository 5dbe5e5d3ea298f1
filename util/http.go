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

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

var httpClient = &http.Client{Timeout: 60 * time.Second}

// HTTPClient returns the shared HTTP client for upstream requests
func HTTPClient() *http.Client {
	return httpClient
}

type errorResponse struct {
	Error string `json:"error"`
}

// HTTPError writes an error message and status code to the response writer,
// logging it in passing
func HTTPError(request *http.Request, writer http.ResponseWriter, context LogContext, message string, status int) {
	LogAudit(context, LogAuditInput{
		Actor:    "sr-point-broker",
		Action:   fmt.Sprintf("%v response", status),
		Actee:    request.URL.String(),
		Message:  message,
		Severity: ERROR,
	})
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	body, _ := json.Marshal(errorResponse{Error: message})
	writer.Write(body)
}
