package stac

import (
	"time"

	"github.com/venicegeo/eo-mapper/util"
)

// Context is the context for a STAC catalog operation
type Context struct {
	CatalogURL      string
	Provider        util.STACProvider
	SubscriptionKey string
	sessionID       string
}

// NewContext builds a Context from the configured provider
func NewContext() *Context {
	provider := util.GetSTACProvider()
	return &Context{
		CatalogURL:      provider.CatalogURL,
		Provider:        provider,
		SubscriptionKey: util.GetSubscriptionKey(),
	}
}

// AppName returns the name of this application
func (c *Context) AppName() string {
	return "eo-mapper"
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

// SearchOptions are the search options for a catalog search request
type SearchOptions struct {
	Collection string
	Intersects interface{} // a GeoJSON geometry in WGS84
	TimeStart  time.Time
	TimeEnd    time.Time
	MaxItems   int
	Limit      int
}

// searchRequest is the POST body of a STAC /search request
type searchRequest struct {
	Collections []string    `json:"collections"`
	Intersects  interface{} `json:"intersects,omitempty"`
	Datetime    string      `json:"datetime,omitempty"`
	Limit       int         `json:"limit,omitempty"`
}

// stacLink is one entry of a STAC "links" array
type stacLink struct {
	Rel    string                 `json:"rel"`
	Href   string                 `json:"href"`
	Method string                 `json:"method,omitempty"`
	Body   map[string]interface{} `json:"body,omitempty"`
}

// stacAsset is one entry of a STAC item's "assets" map
type stacAsset struct {
	Href  string `json:"href"`
	Type  string `json:"type,omitempty"`
	Title string `json:"title,omitempty"`
}

// stacItem carries the parts of a returned item that geojson-go does not
// surface: the item-level id, collection, and assets
type stacItem struct {
	ID         string               `json:"id"`
	Collection string               `json:"collection"`
	Assets     map[string]stacAsset `json:"assets"`
}

// searchResults shadows the feature collection for item-level fields and
// paging links
type searchResults struct {
	Features []stacItem `json:"features"`
	Links    []stacLink `json:"links"`
}

func (sr searchResults) nextLink() *stacLink {
	for i, link := range sr.Links {
		if link.Rel == "next" {
			return &sr.Links[i]
		}
	}
	return nil
}

type stacRequestInput struct {
	method      string
	inputURL    string // URL may be relative or absolute based on CatalogURL
	body        []byte
	contentType string
}
