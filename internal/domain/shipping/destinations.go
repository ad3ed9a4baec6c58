// internal/domain/shipping/destinations.go
package shipping

import "sort"

// Destination is a country the shop ships to. Cost is in minor currency units.
type Destination struct {
	Country     string `json:"country"`
	DisplayName string `json:"displayName"`
	Cost        int64  `json:"cost"`
}

// Set is the set of known shipping destinations, keyed by country code.
// Checkout may only be submitted for a member of this set.
type Set struct {
	byCountry map[string]Destination
	sorted    []Destination
}

// NewSet builds a destination set. Duplicate country codes keep the last entry.
func NewSet(destinations []Destination) *Set {
	byCountry := make(map[string]Destination, len(destinations))
	for _, d := range destinations {
		byCountry[d.Country] = d
	}

	sorted := make([]Destination, 0, len(byCountry))
	for _, d := range byCountry {
		sorted = append(sorted, d)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].DisplayName < sorted[j].DisplayName
	})

	return &Set{byCountry: byCountry, sorted: sorted}
}

// Lookup returns the destination for a country code
func (s *Set) Lookup(country string) (Destination, bool) {
	d, ok := s.byCountry[country]
	return d, ok
}

// Contains reports whether the country code is a known destination
func (s *Set) Contains(country string) bool {
	_, ok := s.byCountry[country]
	return ok
}

// All returns the destinations sorted by display name
func (s *Set) All() []Destination {
	out := make([]Destination, len(s.sorted))
	copy(out, s.sorted)
	return out
}

// Len returns the number of destinations
func (s *Set) Len() int {
	return len(s.byCountry)
}
