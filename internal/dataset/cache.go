package dataset

import (
	"github.com/weatherml/weather-prediction-service/internal/weather"
)

// Cache is an in-memory snapshot of the historical dataset, loaded once at
// process start and queried when live acquisition fails. It is immutable for
// the process lifetime, so concurrent readers need no synchronization; a
// concurrently-running collector appends to the file, not to this snapshot.
type Cache struct {
	rows []weather.Reading
}

// NewCache wraps an already-loaded set of rows. Insertion order is preserved.
func NewCache(rows []weather.Reading) *Cache {
	return &Cache{rows: rows}
}

// LoadCache reads the dataset at path into a snapshot.
func LoadCache(path string) (*Cache, error) {
	rows, err := Load(path)
	if err != nil {
		return nil, err
	}
	return NewCache(rows), nil
}

// Len reports the number of cached rows.
func (c *Cache) Len() int {
	return len(c.rows)
}

// LatestForCity returns the most recently inserted row for the given city.
func (c *Cache) LatestForCity(city string) (weather.Reading, bool) {
	for i := len(c.rows) - 1; i >= 0; i-- {
		if c.rows[i].City == city {
			return c.rows[i], true
		}
	}
	return weather.Reading{}, false
}

// Latest returns the most recently inserted row regardless of city.
func (c *Cache) Latest() (weather.Reading, bool) {
	if len(c.rows) == 0 {
		return weather.Reading{}, false
	}
	return c.rows[len(c.rows)-1], true
}

// Rows exposes the snapshot for offline consumers (training).
func (c *Cache) Rows() []weather.Reading {
	return c.rows
}
