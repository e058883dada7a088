// Package kml builds the visualization documents consumed by mapping
// viewers such as Google Earth.
package kml

import (
	"encoding/xml"
)

// KML is the root element of one visualization document
type KML struct {
	XMLName  xml.Name `xml:"kml"`
	Document Document `xml:"Document"`
}

// Document groups the folders of one rendering under a display name
type Document struct {
	Name    string   `xml:"name"`
	Folders []Folder `xml:"Folder"`
}

// Folder wraps a single placemark
type Folder struct {
	Name      string    `xml:"name"`
	Placemark Placemark `xml:"Placemark"`
}

// Placemark carries the display name, the acquisition time span, the
// extended attributes, and the ground footprint of one product
type Placemark struct {
	Name         string       `xml:"name"`
	TimeSpan     TimeSpan     `xml:"TimeSpan"`
	ExtendedData ExtendedData `xml:"ExtendedData"`
	LinearRing   LinearRing   `xml:"LinearRing"`
}

// TimeSpan bounds the observation in time
type TimeSpan struct {
	Begin string `xml:"begin"`
	End   string `xml:"end"`
}

// ExtendedData holds free-form key/value pairs
type ExtendedData struct {
	Data []Data `xml:"Data"`
}

// Data is one key/value pair in an extended data block
type Data struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value"`
}

// LinearRing is a closed ring of ground coordinates
type LinearRing struct {
	Tessellate   string `xml:"tessellate"`
	AltitudeMode string `xml:"altitudeMode"`
	Coordinates  string `xml:"coordinates"`
}

// New returns an empty document carrying the given display name
func New(name string) *KML {
	return &KML{
		Document: Document{
			Name: name,
		},
	}
}

// Append adds one folder to the document
func (k *KML) Append(folder Folder) {
	k.Document.Folders = append(k.Document.Folders, folder)
}

// Render marshals the document as pretty-printed XML with tab indentation
func (k *KML) Render() (string, error) {
	out, err := xml.MarshalIndent(k, "", "\t")
	if err != nil {
		return "", err
	}
	return xml.Header + string(out) + "\n", nil
}
