package scihub

import (
	"io"

	"github.com/gocarina/gocsv"
)

// productRow flattens one product for spreadsheet triage
type productRow struct {
	Identifier    string `csv:"Identifier"`
	Filename      string `csv:"Filename"`
	Mode          string `csv:"Mode"`
	BeginPosition string `csv:"Observation Start"`
	EndPosition   string `csv:"Observation Stop"`
	IngestionDate string `csv:"Ingestion Date"`
	Footprint     string `csv:"Footprint"`
	UUID          string `csv:"Id"`
	Link          string `csv:"Download Link"`
}

// WriteCSV exports the list in response order
func (l ProductList) WriteCSV(w io.Writer) error {
	rows := make([]productRow, 0, len(l))
	for i := range l {
		rows = append(rows, productRow{
			Identifier:    l[i].Identifier,
			Filename:      l[i].Filename,
			Mode:          l[i].Mode,
			BeginPosition: l[i].BeginPosition,
			EndPosition:   l[i].EndPosition,
			IngestionDate: l[i].IngestionDate,
			Footprint:     l[i].Footprint,
			UUID:          l[i].UUID,
			Link:          l[i].Link,
		})
	}

	return gocsv.Marshal(&rows, w)
}
