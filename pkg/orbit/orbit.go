// Package orbit locates Sentinel-1 auxiliary orbit files on the ESA
// archive and fetches them for local processing.
package orbit

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"

	"github.com/stigvig/rice/pkg/archive"
)

// Orbit types published by the archive. Precise files trail the
// acquisition by roughly three weeks, restituted files by a few hours.
const (
	PreciseOrbit    = "POEORB"
	RestitutedOrbit = "RESORB"
)

// IndexURL is the listing page pattern: orbit type, mission and
// acquisition year/month.
const IndexURL = "https://step.esa.int/auxdata/orbits/Sentinel-1/%s/%s/%s/"

const (
	sceneTimeLayout = "20060102T150405"
	requestTimeout  = 5 * time.Minute
)

// Scene is the acquisition window of a Sentinel-1 product.
type Scene struct {
	Mission string
	Start   time.Time
	Stop    time.Time
}

// ParseScene reads the mission and acquisition window from a product
// identifier such as
// S1A_EW_GRDM_1SDH_20190103T170131_20190103T170231_025307_02CCA5_4A87.
func ParseScene(identifier string) (Scene, error) {
	scene := Scene{}

	name := strings.TrimSuffix(identifier, ".SAFE")
	parts := strings.Split(name, "_")
	if len(parts) < 3 || !strings.HasPrefix(parts[0], "S1") {
		return scene, fmt.Errorf("Not a Sentinel-1 identifier - %s", identifier)
	}
	scene.Mission = parts[0]

	// SLC identifiers carry a double underscore, so the timestamps are
	// found by scanning instead of indexing.
	for i := 1; i < len(parts)-1; i++ {
		start, err := time.Parse(sceneTimeLayout, parts[i])
		if err != nil {
			continue
		}
		stop, err := time.Parse(sceneTimeLayout, parts[i+1])
		if err != nil {
			continue
		}
		scene.Start = start
		scene.Stop = stop
		return scene, nil
	}
	return scene, fmt.Errorf("No acquisition window in identifier - %s", identifier)
}

// File is one downloadable orbit file and its validity window.
type File struct {
	Name       string
	URL        string
	ValidFrom  time.Time
	ValidUntil time.Time
}

// Locator resolves scenes against the orbit archive.
type Locator struct {
	indexURL string
	client   *http.Client
}

// NewLocator returns a Locator backed by indexURL, or the public
// archive when indexURL is empty.
func NewLocator(indexURL string) *Locator {
	if indexURL == "" {
		indexURL = IndexURL
	}
	return &Locator{
		indexURL: indexURL,
		client:   &http.Client{},
	}
}

// Find returns the orbit file covering the scene. Precise orbits are
// preferred, restituted ones serve as the fallback for fresh scenes.
func (l *Locator) Find(scene Scene) (File, error) {
	file, err := l.find(scene, PreciseOrbit)
	if err == nil {
		return file, nil
	}
	return l.find(scene, RestitutedOrbit)
}

func (l *Locator) find(scene Scene, orbitType string) (File, error) {
	pageURL := fmt.Sprintf(l.indexURL, orbitType, scene.Mission, scene.Start.Format("2006/01"))

	req, err := http.NewRequest("GET", pageURL, nil)
	if err != nil {
		return File{}, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	resp, err := l.client.Do(req.WithContext(ctx))
	if err != nil {
		return File{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return File{}, fmt.Errorf("Request failed: %s - %s", resp.Status, pageURL)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return File{}, err
	}

	found := File{}
	doc.Find("tr td").Each(func(i int, selection *goquery.Selection) {
		if found.Name != "" {
			return
		}
		title := selection.Find("a").Text()
		if title == "" || title == "Parent Directory" {
			return
		}
		file, err := parseIndexEntry(title, pageURL)
		if err != nil {
			return
		}
		if file.ValidFrom.Before(scene.Start) && file.ValidUntil.After(scene.Stop) {
			found = file
		}
	})
	if found.Name == "" {
		return File{}, fmt.Errorf("No %s file covers %s - %s", orbitType, scene.Start, scene.Stop)
	}
	return found, nil
}

// The validity window sits in the last two underscore tokens of the
// filename, e.g. ..._V20190102T225942_20190104T005942.EOF.zip.
func parseIndexEntry(title, pageURL string) (File, error) {
	parts := strings.Split(title, "_")
	if len(parts) < 2 {
		return File{}, fmt.Errorf("Unexpected orbit filename - %s", title)
	}
	from, err := time.Parse("V"+sceneTimeLayout, parts[len(parts)-2])
	if err != nil {
		return File{}, err
	}
	until, err := time.Parse(sceneTimeLayout+".EOF.zip", parts[len(parts)-1])
	if err != nil {
		return File{}, err
	}
	return File{
		Name:       title,
		URL:        pageURL + title,
		ValidFrom:  from,
		ValidUntil: until,
	}, nil
}

// Fetch downloads the orbit archive into destination, unpacks it and
// removes the archive. The path of the unpacked orbit file is returned.
func (l *Locator) Fetch(file File, destination string) (string, error) {
	if destination == "" {
		destination = "."
	}

	req, err := http.NewRequest("GET", file.URL, nil)
	if err != nil {
		return "", err
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	log.Infof("Fetching %s", file.Name)
	resp, err := l.client.Do(req.WithContext(ctx))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Request failed: %s - %s", resp.Status, file.URL)
	}

	archivePath := filepath.Join(destination, file.Name)
	out, err := os.Create(archivePath)
	if err != nil {
		return "", err
	}
	_, err = io.Copy(out, resp.Body)
	out.Close()
	if err != nil {
		return "", err
	}

	paths, err := archive.Extract(archivePath, destination)
	if err != nil {
		return "", err
	}
	if err := os.Remove(archivePath); err != nil {
		return "", err
	}
	if len(paths) == 0 {
		return "", fmt.Errorf("Empty orbit archive - %s", file.Name)
	}
	return paths[0], nil
}

// FetchForProduct resolves a product identifier to its orbit file and
// fetches that into destination.
func (l *Locator) FetchForProduct(identifier, destination string) (string, error) {
	scene, err := ParseScene(identifier)
	if err != nil {
		return "", err
	}
	file, err := l.Find(scene)
	if err != nil {
		return "", err
	}
	return l.Fetch(file, destination)
}
