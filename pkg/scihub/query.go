package scihub

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/terrascope/geometry"

	"github.com/stigvig/rice/pkg/geo"
)

// Option is one key:value term of a hub query
type Option struct {
	Key   string
	Value string
}

// Query joins options into the hub query syntax, preserving their order
func Query(options []Option) string {
	terms := make([]string, len(options))
	for i := range options {
		terms[i] = options[i].Key + ":" + options[i].Value
	}
	return strings.Join(terms, " AND ")
}

func (s *Search) searchURL(options []Option) string {
	return s.domain + "/search?start=0&rows=" + strconv.Itoa(PageSize) +
		"&q=" + url.QueryEscape(Query(options))
}

// SearchIdentifier finds the product carrying exactly this identifier
func (s *Search) SearchIdentifier(identifier string) (ProductList, error) {
	options := []Option{
		{Key: "identifier", Value: identifier},
	}
	return s.products(options)
}

// SearchPosition finds products whose footprint intersects a box around
// the given position and which were ingested within the lookback window.
// Position axes follow WKT order: X is longitude, Y is latitude.
func (s *Search) SearchPosition(position geometry.Point, daysBack int) (ProductList, error) {
	return s.products(positionOptions(position, daysBack))
}

func positionOptions(position geometry.Point, daysBack int) []Option {
	box := geo.SearchBox(position, geo.SearchMargin)

	// The embedded quotes around Intersects(...) are part of the hub's
	// query syntax.
	return []Option{
		{Key: "ingestiondate", Value: "[NOW-" + strconv.Itoa(daysBack) + "DAYS TO NOW]"},
		{Key: "footprint", Value: `"Intersects(` + geo.BoxPolygon(box) + `)"`},
		{Key: "productType", Value: ProductType},
	}
}

func (s *Search) products(options []Option) (ProductList, error) {
	if s.initialized == false {
		return nil, fmt.Errorf("Please initialize with your credentials first. scihub.NewSearch()")
	}

	body, err := s.get(s.searchURL(options))
	if err != nil {
		return nil, err
	}

	return decodeFeed(body)
}
