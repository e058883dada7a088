package testsuite

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/terrascope/geometry"

	"github.com/stigvig/rice/pkg/scihub"
)

const testIdentifier = "S1A_EW_GRDM_1SDH_20190103T170131_20190103T170231_025307_02CCA5_4A87"

const feedTemplate = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom" xmlns:opensearch="http://a9.com/-/spec/opensearch/1.1/">
<title>Sentinel-1 search results</title>
<entry>
<title>S1A_EW_GRDM_1SDH_20190103T170131_20190103T170231_025307_02CCA5_4A87</title>
<link href="%s/product"/>
<link rel="alternative" href="%s/odata/v1/Products('424c89d1-70d4-4f2f-9b36-7a7e6a6e3a35')/"/>
<id>424c89d1-70d4-4f2f-9b36-7a7e6a6e3a35</id>
<str name="identifier">S1A_EW_GRDM_1SDH_20190103T170131_20190103T170231_025307_02CCA5_4A87</str>
<str name="filename">S1A_EW_GRDM_1SDH_20190103T170131_20190103T170231_025307_02CCA5_4A87.SAFE</str>
<date name="beginposition">2019-01-03T17:01:31.064Z</date>
<date name="endposition">2019-01-03T17:02:31.059Z</date>
<date name="ingestiondate">2019-01-03T20:18:27.571Z</date>
<str name="sensoroperationalmode">EW</str>
<str name="footprint">POLYGON((10 60,11 60,11 61,10 61,10 60))</str>
<str name="size">934.31 MB</str>
</entry>
</feed>`

type HubTestSuite struct {
	suite.Suite
	hub     *httptest.Server
	search  *scihub.Search
	content []byte
	fetches int
	workDir string
}

// SetupTest starts a stub hub serving a one-product feed, its archive
// and its checksum, then points a search client at it.
func (s *HubTestSuite) SetupTest() {
	var err error

	s.fetches = 0
	s.content = []byte(strings.Repeat("sentinel bytes ", 512))

	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "user" || pass != "pass" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprintf(w, feedTemplate, s.hub.URL, s.hub.URL)
	})
	mux.HandleFunc("/product", func(w http.ResponseWriter, r *http.Request) {
		s.fetches++
		w.Write(s.content)
	})
	mux.HandleFunc("/odata/v1/Products('424c89d1-70d4-4f2f-9b36-7a7e6a6e3a35')/Checksum/Value/$value", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "%x", md5.Sum(s.content))
	})
	s.hub = httptest.NewServer(mux)

	s.search, err = scihub.NewSearch(s.hub.URL, "user", "pass")
	assert.Nil(s.T(), err)

	s.workDir, err = ioutil.TempDir("", "rice")
	assert.Nil(s.T(), err)
}

func (s *HubTestSuite) TearDownTest() {
	s.hub.Close()
	os.RemoveAll(s.workDir)
}

// TestSearchPosition checks that a position query reaches the hub and
// yields the stubbed product.
func (s *HubTestSuite) TestSearchPosition() {
	list, err := s.search.SearchPosition(geometry.Point{X: 15.00, Y: 62.00}, 7)
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), len(list), 1)

	log.Infof("%d products found", len(list))

	name, err := list[0].Name()
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), name, testIdentifier)
}

func (s *HubTestSuite) TestRenderKML() {
	list, err := s.search.SearchIdentifier(testIdentifier)
	assert.Nil(s.T(), err)

	doc, err := list.KML()
	assert.Nil(s.T(), err)
	assert.Contains(s.T(), doc, "<name>Products</name>")
	assert.Contains(s.T(), doc, "<name>"+testIdentifier+"</name>")
	assert.Contains(s.T(), doc, "10,60,0 11,60,0 11,61,0 10,61,0 10,60,0")
}

// TestDownloadVerified runs a download end to end: fetch, verify the
// checksum, and satisfy a repeated call from disk.
func (s *HubTestSuite) TestDownloadVerified() {
	list, err := s.search.SearchIdentifier(testIdentifier)
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), len(list), 1)

	path, err := list[0].Download(s.search, s.workDir)
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), path, filepath.Join(s.workDir, testIdentifier+".zip"))

	content, err := ioutil.ReadFile(path)
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), content, s.content)
	assert.Equal(s.T(), s.fetches, 1)

	_, err = list[0].Download(s.search, s.workDir)
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), s.fetches, 1)
}

func (s *HubTestSuite) TestExportCSV() {
	list, err := s.search.SearchPosition(geometry.Point{X: 15.00, Y: 62.00}, 7)
	assert.Nil(s.T(), err)

	buf := new(bytes.Buffer)
	err = list.WriteCSV(buf)
	assert.Nil(s.T(), err)
	assert.Contains(s.T(), buf.String(), "Identifier")
	assert.Contains(s.T(), buf.String(), testIdentifier)
}
