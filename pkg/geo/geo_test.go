// +build unit
// +build !integration

package geo

import (
	"testing"

	"github.com/terrascope/geometry"
)

func TestSearchBox(t *testing.T) {
	box := SearchBox(geometry.Point{X: 15.00, Y: 62.00}, SearchMargin)

	if box.Min.X != 10 || box.Max.X != 20 {
		t.Fatalf("Wrong longitude range: %v - %v", box.Min.X, box.Max.X)
	}
	if box.Min.Y != 57 || box.Max.Y != 67 {
		t.Fatalf("Wrong latitude range: %v - %v", box.Min.Y, box.Max.Y)
	}
}

func TestBoxPolygon(t *testing.T) {
	box := SearchBox(geometry.Point{X: 15.00, Y: 62.00}, SearchMargin)

	want := "POLYGON((10 67, 20 67, 20 57, 10 57, 10 67))"
	if got := BoxPolygon(box); got != want {
		t.Fatalf("Wrong polygon literal:\ngot  %s\nwant %s", got, want)
	}
}

func TestRingCoordinates(t *testing.T) {
	got, err := RingCoordinates("POLYGON((10 60,11 60,11 61,10 61,10 60))")
	if err != nil {
		t.Fatalf("%v", err)
	}

	want := "10,60,0 11,60,0 11,61,0 10,61,0 10,60,0"
	if got != want {
		t.Fatalf("Wrong ring text:\ngot  %s\nwant %s", got, want)
	}
}

func TestRingCoordinatesWithSpacedPairs(t *testing.T) {
	got, err := RingCoordinates("POLYGON((10 67, 20 67, 20 57, 10 57, 10 67))")
	if err != nil {
		t.Fatalf("%v", err)
	}

	want := "10,67,0 20,67,0 20,57,0 10,57,0 10,67,0"
	if got != want {
		t.Fatalf("Wrong ring text:\ngot  %s\nwant %s", got, want)
	}
}

func TestRingCoordinatesRejectsOtherGeometries(t *testing.T) {
	var badFootprints = []string{
		"",
		"POINT(10 60)",
		"MULTIPOLYGON(((10 60,11 60,11 61,10 60)))",
		"POLYGON((10 60,11 60),(1 1,2 2))",
		"POLYGON((10 60 5,11 60 5))",
	}
	for _, footprint := range badFootprints {
		if _, err := RingCoordinates(footprint); err == nil {
			t.Fatalf("Accepted bad footprint: %s", footprint)
		}
	}
}
