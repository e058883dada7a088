package scihub

import (
	"fmt"
	"strings"

	"github.com/stigvig/rice/pkg/geo"
	"github.com/stigvig/rice/pkg/kml"
)

// Product is one catalog entry of a search response, immutable after
// construction. The fixed schema the client relies on lives in named
// fields; anything else the hub reports lands in Extra.
type Product struct {
	UUID          string
	Link          string
	Identifier    string
	Filename      string
	BeginPosition string
	EndPosition   string
	Mode          string
	IngestionDate string
	Footprint     string
	Extra         map[string]string
}

// Name returns the product identifier
func (p *Product) Name() (string, error) {
	if p.Identifier == "" {
		return "", &MissingAttributeError{Attribute: "identifier"}
	}
	return p.Identifier, nil
}

// TargetFilename derives the local archive name from the filename
// attribute; the hub stores .SAFE products but serves them as .zip
func (p *Product) TargetFilename() (string, error) {
	if p.Filename == "" {
		return "", &MissingAttributeError{Attribute: "filename"}
	}
	return strings.Replace(p.Filename, ".SAFE", ".zip", 1), nil
}

// Attribute looks up any attribute the hub reported, fixed schema first
func (p *Product) Attribute(name string) (string, error) {
	var value string
	switch name {
	case "identifier":
		value = p.Identifier
	case "filename":
		value = p.Filename
	case "beginposition":
		value = p.BeginPosition
	case "endposition":
		value = p.EndPosition
	case "sensoroperationalmode":
		value = p.Mode
	case "ingestiondate":
		value = p.IngestionDate
	case "footprint":
		value = p.Footprint
	default:
		value = p.Extra[name]
	}
	if value == "" {
		return "", &MissingAttributeError{Attribute: name}
	}
	return value, nil
}

// KML renders the product as one folder for mapping viewers
func (p *Product) KML() (kml.Folder, error) {
	var folder kml.Folder

	for _, name := range []string{
		"identifier",
		"beginposition",
		"endposition",
		"sensoroperationalmode",
		"ingestiondate",
		"footprint",
	} {
		if _, err := p.Attribute(name); err != nil {
			return folder, err
		}
	}

	coordinates, err := geo.RingCoordinates(p.Footprint)
	if err != nil {
		return folder, err
	}

	folder = kml.Folder{
		Name: p.BeginPosition,
		Placemark: kml.Placemark{
			Name: p.Identifier,
			TimeSpan: kml.TimeSpan{
				Begin: p.BeginPosition,
				End:   p.EndPosition,
			},
			ExtendedData: kml.ExtendedData{
				Data: []kml.Data{
					{Name: "Mode", Value: p.Mode},
					{Name: "ObservationTimeStart", Value: p.BeginPosition},
					{Name: "ObservationTimeStop", Value: p.EndPosition},
					{Name: "IngestionDate", Value: p.IngestionDate},
					{Name: "Id", Value: p.UUID},
					{Name: "DownloadLink", Value: p.Link},
				},
			},
			LinearRing: kml.LinearRing{
				Tessellate:   "true",
				AltitudeMode: "clampToGround",
				Coordinates:  coordinates,
			},
		},
	}

	return folder, nil
}

// ProductList preserves the server response order of one search
type ProductList []Product

// Names returns the product identifiers in response order
func (l ProductList) Names() ([]string, error) {
	names := make([]string, 0, len(l))
	for i := range l {
		name, err := l[i].Name()
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

// KML renders the whole list as one visualization document
func (l ProductList) KML() (string, error) {
	doc := kml.New("Products")

	for i := range l {
		folder, err := l[i].KML()
		if err != nil {
			return "", fmt.Errorf("%s - %v", l[i].Identifier, err)
		}
		doc.Append(folder)
	}

	return doc.Render()
}
