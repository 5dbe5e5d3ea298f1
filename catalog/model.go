package catalog

import (
	"time"

	"github.com/geospectra/sr-point-broker/util"
	"github.com/venicegeo/geojson-go/geojson"
)

// Context is the context for an imagery catalog operation
type Context struct {
	BaseCatalogURL string
	CatalogKey     string
	sessionID      string
}

// AppName returns the name of the application
func (c *Context) AppName() string {
	return "sr-point-broker"
}

// SessionID returns a Session ID, creating one if needed
func (c *Context) SessionID() string {
	if c.sessionID == "" {
		c.sessionID, _ = util.PsuUUID()
	}
	return c.sessionID
}

// LogRootDir returns an empty string
func (c *Context) LogRootDir() string {
	return ""
}

// NewContext creates a Context configured from the environment
func NewContext() *Context {
	return &Context{
		BaseCatalogURL: util.GetCatalogAPIURL(),
		CatalogKey:     util.GetCatalogAPIKey(),
	}
}

// SearchOptions are the search options for a quick-search request
type SearchOptions struct {
	Collection      string
	Point           *geojson.Point
	AcquiredDate    string
	MaxAcquiredDate string
	MaxCloudCover   float64 // percent (0-100); <= 0 disables the filter
}

// MetadataOptions are the options for a per-image metadata request
type MetadataOptions struct {
	Collection string
	ID         string
}

// SampleOptions are the options for a per-image point-sample request
type SampleOptions struct {
	Collection string
	ID         string
	Point      *geojson.Point
	Bands      []string
	Scale      int
}

// ImageRef is a single image returned by a quick-search: enough to fetch
// its metadata and sample it
type ImageRef struct {
	ID           string
	AcquiredDate time.Time
	CloudCover   float64
	Geometry     interface{}
}

// ImageMetadata is the per-image metadata needed for radiometric correction.
// The reflectance coefficients are the catalog's multiplicative and additive
// factors for converting raw digital numbers to surface reflectance; they are
// published against reference band 2.
type ImageMetadata struct {
	ID              string
	DateAcquired    time.Time
	CloudCover      float64
	ReflectanceMult float64
	ReflectanceAdd  float64
}

type request struct {
	ItemTypes []string `json:"item_types"`
	Filter    filter   `json:"filter"`
}

type filter struct {
	Type   string        `json:"type"`
	Config []interface{} `json:"config"`
}

type objectFilter struct {
	Type      string      `json:"type"`
	FieldName string      `json:"field_name"`
	Config    interface{} `json:"config"`
}

type dateConfig struct {
	GTE string `json:"gte,omitempty"`
	LTE string `json:"lte,omitempty"`
	GT  string `json:"gt,omitempty"`
	LT  string `json:"lt,omitempty"`
}

type rangeConfig struct {
	GTE float64 `json:"gte,omitempty"`
	LTE float64 `json:"lte,omitempty"`
	GT  float64 `json:"gt,omitempty"`
	LT  float64 `json:"lt,omitempty"`
}

type sampleRequest struct {
	Geometry *geojson.Point `json:"geometry"`
	Bands    []string       `json:"bands"`
	Scale    int            `json:"scale"`
}

type catalogRequestInput struct {
	method      string
	inputURL    string // URL may be relative or absolute based on BaseCatalogURL
	body        []byte
	contentType string
}
