package scihub

import "fmt"

// StatusError is returned when the hub answers with anything but 200
type StatusError struct {
	Code   int
	Status string
	URL    string
}

// Error implements the error interface
func (e *StatusError) Error() string {
	return fmt.Sprintf("Request failed: %s - %s", e.Status, e.URL)
}

// MissingAttributeError is returned when a product lacks an attribute the
// requested operation depends on
type MissingAttributeError struct {
	Attribute string
}

// Error implements the error interface
func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("No %s attribute on this product", e.Attribute)
}
