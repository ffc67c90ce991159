// SPDX-FileCopyrightText: The skyquorum authors
//
// SPDX-License-Identifier: MIT

// Package store keeps the most recent fetch result per city in memory so the
// HTTP API can serve snapshots without triggering provider calls.
package store

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/skyquorum/skyquorum/internal/aggregate"
	"github.com/skyquorum/skyquorum/internal/fetch"
)

// ErrNotFound is returned when no snapshot exists for the requested city.
var ErrNotFound = errors.New("no snapshot for city")

// Snapshot is one completed and aggregated fetch batch.
type Snapshot struct {
	Report    *fetch.Report
	Summary   aggregate.Summary
	Timestamp time.Time
}

// Store holds the latest snapshot per city. Older snapshots are overwritten;
// there is no history.
type Store struct {
	mu        sync.RWMutex
	snapshots map[string]Snapshot
}

// New returns an empty store.
func New() *Store {
	return &Store{snapshots: make(map[string]Snapshot)}
}

// Save stores a snapshot, replacing any previous one for the same city.
func (s *Store) Save(city string, snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[key(city)] = snapshot
}

// Get returns the latest snapshot for a city.
func (s *Store) Get(city string) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot, ok := s.snapshots[key(city)]
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	return snapshot, nil
}

// Cities returns the cities that currently have a snapshot.
func (s *Store) Cities() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cities := make([]string, 0, len(s.snapshots))
	for _, snapshot := range s.snapshots {
		cities = append(cities, snapshot.Report.City)
	}
	return cities
}

func key(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}
