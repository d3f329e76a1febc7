// Package catalog loads the static university dataset and derives the
// metadata views the frontend consumes.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/aura/counsel/internal/parsing"
	"github.com/aura/counsel/internal/types"
)

// Dataset failure modes are distinct so the HTTP layer can tell "the file is
// gone" apart from "the file is garbage"; both fail the request closed.
var (
	ErrNotFound  = errors.New("universities dataset not found")
	ErrMalformed = errors.New("universities dataset is not valid JSON")
)

// Store serves the read-only catalog. Records are parsed once per load and
// never mutated; numeric views are always re-derived through parsing.
type Store struct {
	path string

	mu           sync.RWMutex
	universities []types.University
}

// NewStore creates a store reading from the given dataset path. The file is
// not touched until Load or Universities is called.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads and decodes the dataset, replacing any previously loaded copy.
func (s *Store) Load(_ context.Context) error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, s.path)
		}
		return fmt.Errorf("failed to read universities dataset %s: %w", s.path, err)
	}

	var universities []types.University
	if err := json.Unmarshal(data, &universities); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	s.mu.Lock()
	s.universities = universities
	s.mu.Unlock()
	return nil
}

// Universities returns the catalog, loading it on first use.
func (s *Store) Universities(ctx context.Context) ([]types.University, error) {
	s.mu.RLock()
	loaded := s.universities
	s.mu.RUnlock()
	if loaded != nil {
		return loaded, nil
	}

	if err := s.Load(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.universities, nil
}

// FindByID returns the record with the given id, or nil if absent.
func (s *Store) FindByID(ctx context.Context, id string) (*types.University, error) {
	universities, err := s.Universities(ctx)
	if err != nil {
		return nil, err
	}
	for i := range universities {
		if universities[i].ID == id {
			return &universities[i], nil
		}
	}
	return nil, nil
}

// States returns the sorted set of distinct states in the catalog.
func (s *Store) States(ctx context.Context) ([]string, error) {
	universities, err := s.Universities(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	states := make([]string, 0)
	for _, u := range universities {
		if u.State == "" || seen[u.State] {
			continue
		}
		seen[u.State] = true
		states = append(states, u.State)
	}
	sort.Strings(states)
	return states, nil
}

// Meta is the lightweight per-university metadata row served to the
// comparison view: raw strings as stored plus their parsed derivations.
type Meta struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	City             string  `json:"city"`
	State            string  `json:"state"`
	AnnualFeesRaw    string  `json:"annual_fees_raw"`
	PlacementRateRaw string  `json:"placement_rate_raw"`
	MedianPackageRaw string  `json:"median_package_raw"`
	AnnualFees       int     `json:"annual_fees"`
	PlacementRate    int     `json:"placement_rate"`
	MedianPackage    float64 `json:"median_package"`
	OfficialPage     string  `json:"official_page"`
}

// Metadata derives a Meta row for every catalog record.
func (s *Store) Metadata(ctx context.Context) ([]Meta, error) {
	universities, err := s.Universities(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]Meta, 0, len(universities))
	for _, u := range universities {
		rows = append(rows, Meta{
			ID:               u.ID,
			Name:             u.Name,
			City:             u.City,
			State:            u.State,
			AnnualFeesRaw:    u.AnnualFees,
			PlacementRateRaw: u.PlacementRate,
			MedianPackageRaw: u.MedianPackage,
			AnnualFees:       parsing.ParseAnnualFees(u.AnnualFees),
			PlacementRate:    parsing.ParseScore(u.PlacementRate),
			MedianPackage:    parsing.ParsePackage(u.MedianPackage),
			OfficialPage:     u.OfficialPage,
		})
	}
	return rows, nil
}
