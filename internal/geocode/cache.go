// SPDX-FileCopyrightText: The skyquorum authors
//
// SPDX-License-Identifier: MIT

package geocode

// Cache holds resolved coordinates for the lifetime of a single fetch batch.
// The orchestrator populates it once before fanning out to the source
// adapters; during fan-out it is read-only. That write-before-dispatch
// ordering is what makes the cache safe for concurrent readers without a
// lock, and what prevents duplicate concurrent geocoding calls.
type Cache struct {
	coords map[string]Coordinate
}

// NewCache returns an empty batch cache.
func NewCache() *Cache {
	return &Cache{coords: make(map[string]Coordinate)}
}

// Put stores a resolved coordinate for a city. Must only be called before
// the batch fans out.
func (c *Cache) Put(city string, coord Coordinate) {
	c.coords[city] = coord
}

// Get returns the cached coordinate for a city. A nil cache behaves like an
// empty one.
func (c *Cache) Get(city string) (Coordinate, bool) {
	if c == nil {
		return Coordinate{}, false
	}
	coord, ok := c.coords[city]
	return coord, ok
}
