// Package boundary serves administrative boundary overlays (kecamatan,
// kelurahan, SLS) from a local GeoJSON file. Geometries are passed through
// untouched; only the BPS properties are inspected for filtering.
package boundary

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

type Properties struct {
	Nmkec  string `json:"nmkec"`
	Nmdesa string `json:"nmdesa"`
	Nmsls  string `json:"nmsls"`
	Kdkec  string `json:"kdkec"`
	Kddesa string `json:"kddesa"`
}

type Feature struct {
	Type       string          `json:"type"`
	Properties Properties      `json:"properties"`
	Geometry   json.RawMessage `json:"geometry"`
}

type featureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Manager loads the boundary file once and answers filter queries from
// memory for the rest of the session.
type Manager struct {
	path     string
	once     sync.Once
	features []Feature
	err      error
}

func NewManager(path string) *Manager {
	return &Manager{path: path}
}

func (m *Manager) load() {
	data, err := os.ReadFile(m.path)
	if err != nil {
		m.err = fmt.Errorf("reading boundary file: %w", err)
		return
	}
	var fc featureCollection
	if err = json.Unmarshal(data, &fc); err != nil {
		m.err = fmt.Errorf("parsing boundary file: %w", err)
		return
	}
	m.features = fc.Features
}

// ByDistrict returns all boundary features of one kecamatan.
func (m *Manager) ByDistrict(district string) ([]Feature, error) {
	m.once.Do(m.load)
	if m.err != nil {
		return nil, m.err
	}
	name := strings.ToUpper(district)
	var out []Feature
	for _, f := range m.features {
		if f.Properties.Nmkec == name {
			out = append(out, f)
		}
	}
	return out, nil
}

// Kelurahan lists the unique kelurahan names of a district, sorted.
func (m *Manager) Kelurahan(district string) ([]string, error) {
	features, err := m.ByDistrict(district)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var names []string
	for _, f := range features {
		if f.Properties.Nmdesa != "" && !seen[f.Properties.Nmdesa] {
			seen[f.Properties.Nmdesa] = true
			names = append(names, f.Properties.Nmdesa)
		}
	}
	sort.Strings(names)
	return names, nil
}

// ByKelurahan returns the boundary features of one kelurahan.
func (m *Manager) ByKelurahan(kelurahan string) ([]Feature, error) {
	m.once.Do(m.load)
	if m.err != nil {
		return nil, m.err
	}
	name := strings.ToUpper(kelurahan)
	var out []Feature
	for _, f := range m.features {
		if strings.ToUpper(f.Properties.Nmdesa) == name {
			out = append(out, f)
		}
	}
	return out, nil
}
