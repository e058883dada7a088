package scihub

import (
	"encoding/xml"
	"fmt"
)

// Wire format of the hub search response: an Atom feed with one entry per
// matched product. The hub reports product attributes as typed value
// elements (str, date, double, int), each carrying a name attribute.
type atomFeed struct {
	Entries []atomEntry `xml:"http://www.w3.org/2005/Atom entry"`
}

type atomEntry struct {
	ID     string      `xml:"id"`
	Links  []atomLink  `xml:"link"`
	Fields []atomField `xml:",any"`
}

type atomLink struct {
	Rel  string `xml:"rel,attr"`
	HRef string `xml:"href,attr"`
}

type atomField struct {
	XMLName xml.Name
	Name    string `xml:"name,attr"`
	Value   string `xml:",chardata"`
}

func decodeFeed(raw []byte) (ProductList, error) {
	feed := new(atomFeed)
	if err := xml.Unmarshal(raw, feed); err != nil {
		return nil, fmt.Errorf("Decode search feed - %v", err)
	}

	list := make(ProductList, 0, len(feed.Entries))
	for i := range feed.Entries {
		list = append(list, newProduct(&feed.Entries[i]))
	}

	return list, nil
}

func newProduct(entry *atomEntry) Product {
	p := Product{
		UUID:  entry.ID,
		Extra: make(map[string]string),
	}

	// The download link carries no rel attribute; the entry also lists
	// rel=alternative and rel=icon links.
	for i := range entry.Links {
		if entry.Links[i].Rel == "" {
			p.Link = entry.Links[i].HRef
			break
		}
	}
	if p.Link == "" && len(entry.Links) > 0 {
		p.Link = entry.Links[0].HRef
	}

	for _, field := range entry.Fields {
		switch field.Name {
		case "":
		case "identifier":
			p.Identifier = field.Value
		case "filename":
			p.Filename = field.Value
		case "beginposition":
			p.BeginPosition = field.Value
		case "endposition":
			p.EndPosition = field.Value
		case "sensoroperationalmode":
			p.Mode = field.Value
		case "ingestiondate":
			p.IngestionDate = field.Value
		case "footprint":
			p.Footprint = field.Value
		default:
			p.Extra[field.Name] = field.Value
		}
	}

	return p
}
