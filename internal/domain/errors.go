package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrLocationNotFound: a tool referenced a destination id with no row.
	ErrLocationNotFound = errors.New("location not found")
	// ErrMalformedToolArgs: the model's tool-call arguments failed to parse
	// or validate.
	ErrMalformedToolArgs = errors.New("malformed tool arguments")
	// ErrDataIntegrity: a numeric field in the tabular data is non-numeric.
	ErrDataIntegrity = errors.New("non-numeric value in tabular data")
)

// UpstreamError is a non-success response from the completion or weather API.
type UpstreamError struct {
	Service string
	Status  int
	Body    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: upstream status %d: %s", e.Service, e.Status, e.Body)
}
