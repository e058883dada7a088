package geo

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/terrascope/geometry"
)

// SearchMargin is the expansion in degrees applied in each direction
// around a position of interest
const SearchMargin = 5.0

// One outer ring, no holes
var polygonRe = regexp.MustCompile(`^POLYGON\s*\(\(([^()]+)\)\)$`)

// SearchBox expands a margin around a position. Axes follow WKT order:
// X is longitude, Y is latitude.
func SearchBox(position geometry.Point, margin float64) geometry.BoundingBox {
	return geometry.BBox(
		position.X-margin,
		position.Y-margin,
		position.X+margin,
		position.Y+margin,
	)
}

// BoxPolygon renders a bounding box as a WKT polygon literal, listing the
// corners NW, NE, SE, SW and closing the ring back at NW
func BoxPolygon(box geometry.BoundingBox) string {
	corners := []geometry.Point{
		{X: box.Min.X, Y: box.Max.Y},
		{X: box.Max.X, Y: box.Max.Y},
		{X: box.Max.X, Y: box.Min.Y},
		{X: box.Min.X, Y: box.Min.Y},
		{X: box.Min.X, Y: box.Max.Y},
	}

	pairs := make([]string, len(corners))
	for i := range corners {
		pairs[i] = formatDegrees(corners[i].X) + " " + formatDegrees(corners[i].Y)
	}

	return "POLYGON((" + strings.Join(pairs, ", ") + "))"
}

func formatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RingCoordinates converts a one-ring WKT polygon literal into KML
// coordinate text: each "lon lat" pair becomes "lon,lat,0" and the pairs
// are joined with spaces
func RingCoordinates(footprint string) (string, error) {
	m := polygonRe.FindStringSubmatch(strings.TrimSpace(footprint))
	if m == nil {
		return "", fmt.Errorf("Expected POLYGON((...)) literal - %q", footprint)
	}

	pairs := strings.Split(m[1], ",")
	coords := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		fields := strings.Fields(pair)
		if len(fields) != 2 {
			return "", fmt.Errorf("Malformed coordinate pair - %q", pair)
		}
		coords = append(coords, fields[0]+","+fields[1]+",0")
	}

	return strings.Join(coords, " "), nil
}
