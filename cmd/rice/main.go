package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/terrascope/geometry"

	"github.com/stigvig/rice/pkg/archive"
	"github.com/stigvig/rice/pkg/config"
	"github.com/stigvig/rice/pkg/orbit"
	"github.com/stigvig/rice/pkg/scihub"
)

const (
	ModesUsage    = "permitted modes: -list, -kml, -csv, -download and -orbit"
	ConfigUsage   = "path to an optional YAML config file"
	UserUsage     = "hub account name, overrides DHUS_USER"
	PasswordUsage = "hub account password, overrides DHUS_PASSWORD"
	ListUsage     = "print the names of the products at the search position"
	KMLUsage      = "print the products at the search position as a KML document"
	CSVUsage      = "write the products at the search position to this CSV file"
	DownloadUsage = "download the product archive with this identifier"
	UnzipUsage    = "unpack the archive after a download"
	OrbitUsage    = "fetch the orbit file for this product identifier"
	PositionUsage = "search position as lat,lon, e.g. 62.00,15.00"
	DaysUsage     = "ingestion window in days back from now"
	DestUsage     = "directory for downloaded files"
)

var (
	configFlag   string
	userFlag     string
	passwordFlag string
	listFlag     bool
	kmlFlag      bool
	csvFlag      string
	downloadFlag string
	unzipFlag    bool
	orbitFlag    string
	positionFlag string
	daysFlag     int
	destFlag     string
	// BuildTime is populated by the linker to tell builds apart after they shipped
	BuildTime string
)

func init() {
	flag.StringVar(&configFlag, "config", "", ConfigUsage)
	flag.StringVar(&userFlag, "user", "", UserUsage)
	flag.StringVar(&passwordFlag, "password", "", PasswordUsage)
	flag.BoolVar(&listFlag, "list", false, ListUsage)
	flag.BoolVar(&kmlFlag, "kml", false, KMLUsage)
	flag.StringVar(&csvFlag, "csv", "", CSVUsage)
	flag.StringVar(&downloadFlag, "download", "", DownloadUsage)
	flag.BoolVar(&unzipFlag, "unzip", false, UnzipUsage)
	flag.StringVar(&orbitFlag, "orbit", "", OrbitUsage)
	flag.StringVar(&positionFlag, "position", "", PositionUsage)
	flag.IntVar(&daysFlag, "days", 0, DaysUsage)
	flag.StringVar(&destFlag, "dest", "", DestUsage)
}

func main() {
	var (
		err error
		cfg *config.File
	)

	flag.Parse()

	log.SetFormatter(&log.TextFormatter{
		DisableColors: false,
		FullTimestamp: true,
	})

	log.WithFields(
		log.Fields{
			"Built on":   BuildTime,
			"Started at": time.Now().UTC(),
		},
	).Println("Application Started")

	cfg, err = config.New(configFlag)
	if err != nil {
		log.Fatalf("%v", err)
	}

	switch {
	case listFlag:
		products := positionProducts(cfg)
		names, err := products.Names()
		if err != nil {
			log.Fatalf("%v", err)
		}
		for _, name := range names {
			fmt.Println(name)
		}
	case kmlFlag:
		products := positionProducts(cfg)
		doc, err := products.KML()
		if err != nil {
			log.Fatalf("%v", err)
		}
		fmt.Print(doc)
	case len(csvFlag) > 0:
		products := positionProducts(cfg)
		out, err := os.Create(csvFlag)
		if err != nil {
			log.Fatalf("%v", err)
		}
		defer out.Close()
		if err := products.WriteCSV(out); err != nil {
			log.Fatalf("%v", err)
		}
		log.Infof("Wrote %d products to %s", len(products), csvFlag)
	case len(downloadFlag) > 0:
		s, err := hubSearch(cfg)
		if err != nil {
			log.Fatalf("%v", err)
		}
		products, err := s.SearchIdentifier(downloadFlag)
		if err != nil {
			log.Fatalf("%v", err)
		}
		if len(products) != 1 {
			log.Warnf("Couldn't find %s", downloadFlag)
			return
		}
		dir, unzip := downloadTarget(cfg)
		path, err := products[0].Download(s, dir)
		if err != nil {
			log.Fatalf("%v", err)
		}
		log.Infof("Saved %s", path)
		if unzip {
			paths, err := archive.Extract(path, dir)
			if err != nil {
				log.Fatalf("%v", err)
			}
			log.Infof("Unpacked %d entries from %s", len(paths), path)
		}
	case len(orbitFlag) > 0:
		dir, _ := downloadTarget(cfg)
		path, err := orbit.NewLocator("").FetchForProduct(orbitFlag, dir)
		if err != nil {
			log.Fatalf("%v", err)
		}
		log.Infof("Saved %s", path)
	default:
		log.WithField("Message", ModesUsage).Fatalln("No mode specified")
	}
}

// hubSearch builds a search client from the flags, falling back to the
// environment for credentials.
func hubSearch(cfg *config.File) (*scihub.Search, error) {
	if len(userFlag) > 0 && len(passwordFlag) > 0 {
		cfg.SetCredentials(userFlag, passwordFlag)
	} else if err := cfg.LoadCredentials(); err != nil {
		return nil, err
	}
	domain, user, password, err := cfg.GetHub()
	if err != nil {
		return nil, err
	}
	return scihub.NewSearch(domain, user, password)
}

func positionProducts(cfg *config.File) scihub.ProductList {
	s, err := hubSearch(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	lat, lon, daysBack := cfg.GetSearch()
	if len(positionFlag) > 0 {
		lat, lon, err = parsePosition(positionFlag)
		if err != nil {
			log.Fatalf("%v", err)
		}
	}
	if daysFlag > 0 {
		daysBack = daysFlag
	}

	products, err := s.SearchPosition(geometry.Point{X: lon, Y: lat}, daysBack)
	if err != nil {
		log.Fatalf("%v", err)
	}
	return products
}

// parsePosition reads a "lat,lon" pair, e.g. "62.00,15.00".
func parsePosition(raw string) (float64, float64, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("Position must be lat,lon - %s", raw)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, err
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, err
	}
	return lat, lon, nil
}

func downloadTarget(cfg *config.File) (string, bool) {
	dir, unzip := cfg.GetDownload()
	if len(destFlag) > 0 {
		dir = destFlag
	}
	return dir, unzip || unzipFlag
}
