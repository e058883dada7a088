// +build unit
// +build !integration

package scihub

import (
	"compress/gzip"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/terrascope/geometry"
)

func TestSearchIdentifier(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "user" || pass != "pass" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Path != "/search" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		q := r.URL.Query()
		if q.Get("start") != "0" || q.Get("rows") != "100" || q.Get("q") != "identifier:S1A_TEST" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Write([]byte(testFeed))
	}))
	defer ts.Close()

	s, err := NewSearch(ts.URL, "user", "pass")
	if err != nil {
		t.Fatalf("%v", err)
	}

	list, err := s.SearchIdentifier("S1A_TEST")
	if err != nil {
		t.Fatalf("%v", err)
	}
	if len(list) != 1 {
		t.Fatalf("Expected one product, got %d", len(list))
	}

	name, err := list[0].Name()
	if err != nil || name != "S1A_TEST" {
		t.Fatalf("Wrong name: %s - %v", name, err)
	}
}

func TestSearchGzipResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		gz.Write([]byte(testFeed))
		gz.Close()
	}))
	defer ts.Close()

	s, err := NewSearch(ts.URL, "user", "pass")
	if err != nil {
		t.Fatalf("%v", err)
	}

	list, err := s.SearchIdentifier("S1A_TEST")
	if err != nil {
		t.Fatalf("%v", err)
	}
	if len(list) != 1 {
		t.Fatalf("Expected one product from the compressed feed, got %d", len(list))
	}
}

func TestSearchStatusError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	s, err := NewSearch(ts.URL, "user", "wrong")
	if err != nil {
		t.Fatalf("%v", err)
	}

	list, err := s.SearchPosition(geometry.Point{X: 15.00, Y: 62.00}, 7)
	if err == nil {
		t.Fatalf("Expected the search to fail")
	}
	if list != nil {
		t.Fatalf("No product list should be produced on error")
	}

	status, ok := err.(*StatusError)
	if !ok {
		t.Fatalf("Expected a status error, got %v", err)
	}
	if status.Code != http.StatusUnauthorized {
		t.Fatalf("Wrong status code: %d", status.Code)
	}
}
