package reflectance

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/geospectra/sr-point-broker/catalog"
	"github.com/geospectra/sr-point-broker/util"
	"github.com/gorilla/mux"
)

// DiscoverHandler is a handler for /reflectance/discover/{collection}
// @Title reflectanceDiscoverHandler
// @Description samples surface reflectance at a point across matching catalog images
// @Accept  plain
// @Param   collection      path    string  true         "The catalog collection to query"
// @Param   lon             query   string  true         "The longitude of the point of interest"
// @Param   lat             query   string  true         "The latitude of the point of interest"
// @Param   acquiredDate    query   string  false        "The minimum (earliest) acquired date, as YYYY-MM-DD"
// @Param   maxAcquiredDate query   string  false        "The maximum acquired date, as YYYY-MM-DD"
// @Param   bands           query   string  false        "Comma-separated band names (default SR_B4,SR_B3,SR_B2)"
// @Param   cloudCover      query   string  false        "The maximum cloud cover, as a percentage (0-100); negative disables the filter"
// @Param   scale           query   string  false        "The sampling resolution, in meters"
// @Param   format          query   string  false        "Response format: geojson (default) or csv"
// @Success 200 {object}  geojson.FeatureCollection
// @Failure 400 {object}  string
// @Router /reflectance/discover/{collection} [get]
type DiscoverHandler struct {
	Context *catalog.Context
}

// NewDiscoverHandler creates a new handler using configuration
// from environment variables
func NewDiscoverHandler() *DiscoverHandler {
	return &DiscoverHandler{Context: catalog.NewContext()}
}

// ServeHTTP implements the http.Handler interface for the DiscoverHandler type
func (h DiscoverHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	collection := mux.Vars(r)["collection"]

	lon, err := strconv.ParseFloat(r.FormValue("lon"), 64)
	if err != nil {
		message := fmt.Sprintf("The lon value of %v is invalid", r.FormValue("lon"))
		util.LogAlert(h.Context, message)
		util.HTTPError(r, w, h.Context, message, http.StatusBadRequest)
		return
	}
	lat, err := strconv.ParseFloat(r.FormValue("lat"), 64)
	if err != nil {
		message := fmt.Sprintf("The lat value of %v is invalid", r.FormValue("lat"))
		util.LogAlert(h.Context, message)
		util.HTTPError(r, w, h.Context, message, http.StatusBadRequest)
		return
	}

	options := Options{
		Longitude:  lon,
		Latitude:   lat,
		StartDate:  r.FormValue("acquiredDate"),
		EndDate:    r.FormValue("maxAcquiredDate"),
		Collection: collection,
	}

	if bands := r.FormValue("bands"); bands != "" {
		options.Bands = strings.Split(bands, ",")
	}
	if r.FormValue("cloudCover") != "" {
		if options.MaxCloudCover, err = strconv.ParseFloat(r.FormValue("cloudCover"), 64); err != nil {
			message := fmt.Sprintf("Cloud Cover value of %v is invalid.", r.FormValue("cloudCover"))
			util.LogSimpleErr(h.Context, message, err)
			util.HTTPError(r, w, h.Context, message, http.StatusBadRequest)
			return
		}
	}
	if r.FormValue("scale") != "" {
		if options.Scale, err = strconv.Atoi(r.FormValue("scale")); err != nil {
			message := fmt.Sprintf("Scale value of %v is invalid.", r.FormValue("scale"))
			util.LogSimpleErr(h.Context, message, err)
			util.HTTPError(r, w, h.Context, message, http.StatusBadRequest)
			return
		}
	}

	table, err := GetPointSeries(options, h.Context)
	if err != nil {
		message := fmt.Sprintf("Error sampling reflectance: %v", err)
		util.LogSimpleErr(h.Context, message, err)
		util.HTTPError(r, w, h.Context, message, http.StatusInternalServerError)
		return
	}

	if r.FormValue("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		if err = table.WriteCSV(w); err != nil {
			util.LogSimpleErr(h.Context, "Error writing CSV response", err)
		}
		return
	}

	featureCollection, err := table.GeoJSONFeatureCollection()
	if err != nil {
		message := fmt.Sprintf("Error converting to feature collection: %v", err)
		util.LogSimpleErr(h.Context, message, err)
		util.HTTPError(r, w, h.Context, message, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(featureCollection.String()))
}
