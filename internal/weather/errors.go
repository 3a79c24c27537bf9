package weather

import (
	"errors"
	"fmt"
)

// ErrCityNotFound means geocoding produced no match for the requested city.
var ErrCityNotFound = errors.New("city not found")

// AcquisitionError represents a transport or HTTP failure against the
// upstream weather source. A single failed attempt is definitive; callers
// decide whether to degrade to cached data.
type AcquisitionError struct {
	Op  string // which upstream call failed: "geocode", "weather", "air_pollution"
	Err error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("acquisition failed during %s: %v", e.Op, e.Err)
}

func (e *AcquisitionError) Unwrap() error {
	return e.Err
}
