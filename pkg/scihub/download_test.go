// +build unit
// +build !integration

package scihub

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
	"testing"

	log "github.com/sirupsen/logrus"
)

func downloadServer(content []byte, sum string, fetches *int) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/product", func(w http.ResponseWriter, r *http.Request) {
		*fetches++
		w.Write(content)
	})
	mux.HandleFunc("/odata/v1/Products('424c89d1-70d4-4f2f-9b36-7a7e6a6e3a35')/Checksum/Value/$value", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sum))
	})
	return httptest.NewServer(mux)
}

func TestDownload(t *testing.T) {
	content := []byte(strings.Repeat("sentinel bytes ", 1024))
	sum := fmt.Sprintf("%x", md5.Sum(content))

	fetches := 0
	ts := downloadServer(content, sum, &fetches)
	defer ts.Close()

	s, err := NewSearch(ts.URL, "user", "pass")
	if err != nil {
		t.Fatalf("%v", err)
	}

	p := Product{
		UUID:     "424c89d1-70d4-4f2f-9b36-7a7e6a6e3a35",
		Filename: "S1A_TEST.SAFE",
		Link:     ts.URL + "/product",
	}

	dir := t.TempDir()
	path, err := p.Download(s, dir)
	if err != nil {
		t.Fatalf("%v", err)
	}
	if path != filepath.Join(dir, "S1A_TEST.zip") {
		t.Fatalf("Wrong download path: %s", path)
	}

	written, err := ioutil.ReadFile(path)
	if err != nil {
		t.Fatalf("%v", err)
	}
	if !bytes.Equal(written, content) {
		t.Fatalf("Downloaded file does not match the served content")
	}
	if fetches != 1 {
		t.Fatalf("Expected one fetch, got %d", fetches)
	}

	// A second call finds the file on disk and must not fetch again.
	path, err = p.Download(s, dir)
	if err != nil {
		t.Fatalf("%v", err)
	}
	if path != filepath.Join(dir, "S1A_TEST.zip") {
		t.Fatalf("Wrong download path on the second call: %s", path)
	}
	if fetches != 1 {
		t.Fatalf("Existing file was fetched again: %d fetches", fetches)
	}
}

func TestDownloadChecksumMismatch(t *testing.T) {
	content := []byte(strings.Repeat("sentinel bytes ", 1024))
	actual := fmt.Sprintf("%x", md5.Sum(content))
	expected := "0123456789abcdef0123456789abcdef"

	fetches := 0
	ts := downloadServer(content, expected, &fetches)
	defer ts.Close()

	s, err := NewSearch(ts.URL, "user", "pass")
	if err != nil {
		t.Fatalf("%v", err)
	}

	p := Product{
		UUID:     "424c89d1-70d4-4f2f-9b36-7a7e6a6e3a35",
		Filename: "S1A_TEST.SAFE",
		Link:     ts.URL + "/product",
	}

	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	defer log.SetOutput(os.Stderr)

	dir := t.TempDir()
	path, err := p.Download(s, dir)
	if err != nil {
		t.Fatalf("A mismatch must not fail the download: %v", err)
	}
	if path != filepath.Join(dir, "S1A_TEST.zip") {
		t.Fatalf("Wrong download path: %s", path)
	}

	logged := buf.String()
	if strings.Count(logged, "md5 checksum of S1A_TEST.zip failed") != 1 {
		t.Fatalf("Expected exactly one checksum warning, got: %s", logged)
	}
	if !strings.Contains(logged, "expected="+expected) || !strings.Contains(logged, "actual="+actual) {
		t.Fatalf("Warning is missing a digest: %s", logged)
	}
}

func TestDownloadChecksumCaseInsensitive(t *testing.T) {
	content := []byte(strings.Repeat("sentinel bytes ", 1024))
	sum := strings.ToUpper(fmt.Sprintf("%x", md5.Sum(content)))

	fetches := 0
	ts := downloadServer(content, sum, &fetches)
	defer ts.Close()

	s, err := NewSearch(ts.URL, "user", "pass")
	if err != nil {
		t.Fatalf("%v", err)
	}

	p := Product{
		UUID:     "424c89d1-70d4-4f2f-9b36-7a7e6a6e3a35",
		Filename: "S1A_TEST.SAFE",
		Link:     ts.URL + "/product",
	}

	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	defer log.SetOutput(os.Stderr)

	if _, err := p.Download(s, t.TempDir()); err != nil {
		t.Fatalf("%v", err)
	}
	if strings.Contains(buf.String(), "md5 checksum") {
		t.Fatalf("An uppercase digest must still verify: %s", buf.String())
	}
}
