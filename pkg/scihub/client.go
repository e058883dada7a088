// Package scihub talks to a Copernicus Open Access Hub instance: it
// searches the catalog, decodes the Atom response feed into products, and
// downloads product archives with checksum verification.
package scihub

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
)

const (
	// DefaultHub is the public Copernicus Open Access Hub root
	DefaultHub = "https://scihub.copernicus.eu/dhus"
	// ProductType is the only product class this client asks for
	ProductType = "GRD"
	// PageSize keeps every search on one fixed result page
	PageSize = 100

	requestTimeout    = 10 * time.Minute
	downloadChunkSize = 4096
)

// Search holds the credentials and transport of one hub session
type Search struct {
	initialized bool
	domain      string
	user        string
	password    string
	rawClient   *http.Client
}

// NewSearch takes the hub domain and credentials and returns a session.
// An empty domain selects the public Copernicus hub.
func NewSearch(domain, user, password string) (*Search, error) {
	if domain == "" {
		domain = DefaultHub
	}
	if _, err := url.Parse(domain); err != nil {
		return nil, err
	}

	rawClient := new(http.Client)
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	rawClient.Jar = jar

	s := &Search{
		initialized: true,
		domain:      strings.TrimRight(domain, "/"),
		user:        user,
		password:    password,
		rawClient:   rawClient,
	}

	return s, nil
}
