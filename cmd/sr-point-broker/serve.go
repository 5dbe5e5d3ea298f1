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

package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/geospectra/sr-point-broker/reflectance"
	"github.com/geospectra/sr-point-broker/util"
	"github.com/gorilla/mux"
	cli "gopkg.in/urfave/cli.v1"
)

func getPortStr() string {
	if port, ok := os.LookupEnv("PORT"); ok {
		return ":" + port
	}
	return ":8080"
}

func createRouter(ctx util.LogContext) (*mux.Router, error) {
	router := mux.NewRouter()
	router.HandleFunc("/", func(writer http.ResponseWriter, request *http.Request) {
		writer.Write([]byte("OK"))
	})
	// Collection identifiers contain slashes (LANDSAT/LC08/C02/T1_L2), so the
	// matcher must be greedy
	router.Handle("/reflectance/discover/{collection:.+}", reflectance.NewDiscoverHandler())
	return router, nil
}

func serveAction(*cli.Context) {
	logContext := &(util.BasicLogContext{})

	portStr := getPortStr()

	if len(util.GetCatalogAPIURL()) == 0 {
		util.LogAlert(logContext, "No catalog API URL found, discovery requests will fail")
	}

	if router, err := createRouter(logContext); err == nil {
		util.LogInfo(logContext, fmt.Sprintf("Starting sr-point-broker webserver on %s", portStr))
		launchServerFunc(portStr, router)
	} else {
		util.LogSimpleErr(logContext, "Failed to create router: ", err)
	}
}

var launchServerFunc = launchServer

func launchServer(portStr string, router *mux.Router) {
	server := http.Server{
		Addr:    portStr,
		Handler: router,
	}

	log.Fatal(server.ListenAndServe())
}
