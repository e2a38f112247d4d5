// Package multiples holds the static valuation-multiple reference table:
// per archetype, a primary and secondary metric with low/median/high bounds
// and provenance metadata. The table is loaded once at startup and is
// immutable afterwards; callers inject it into the calculator so tests can
// substitute their own.
package multiples

import (
	_ "embed"
	"os"
	"sort"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/valuation-cli/internal/archetype"
)

//go:embed multiples.yaml
var defaultTableYAML []byte

// Bounds is a metric name with its low/median/high multiple. An all-zero
// bounds triple is the documented sentinel for "not multiple-based".
type Bounds struct {
	Metric string  `yaml:"metric" json:"metric"`
	Low    float64 `yaml:"low" json:"low"`
	Median float64 `yaml:"median" json:"median"`
	High   float64 `yaml:"high" json:"high"`
}

// IsZero reports whether all three bounds are zero (the non-multiple sentinel).
func (b Bounds) IsZero() bool {
	return b.Low == 0 && b.Median == 0 && b.High == 0
}

// Provenance records where an entry's multiples come from.
type Provenance struct {
	Source      string `yaml:"source" json:"source"`
	LastUpdated string `yaml:"last_updated" json:"last_updated"`
}

// Entry is the reference data for one archetype.
type Entry struct {
	Primary    Bounds     `yaml:"primary" json:"primary"`
	Secondary  Bounds     `yaml:"secondary" json:"secondary"`
	Provenance Provenance `yaml:"provenance" json:"provenance"`
}

// Table is an immutable multiples table keyed by archetype.
type Table struct {
	entries map[archetype.Archetype]Entry
}

// Entry returns the reference data for a, and whether a is present.
func (t *Table) Entry(a archetype.Archetype) (Entry, bool) {
	e, ok := t.entries[a]
	return e, ok
}

// Archetypes returns the archetype ids present in the table, sorted.
func (t *Table) Archetypes() []archetype.Archetype {
	ids := make([]archetype.Archetype, 0, len(t.entries))
	for a := range t.entries {
		ids = append(ids, a)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Entries returns a copy of the full table, keyed by archetype id. Used by
// the read-only API and CLI surfaces.
func (t *Table) Entries() map[archetype.Archetype]Entry {
	out := make(map[archetype.Archetype]Entry, len(t.entries))
	for a, e := range t.entries {
		out[a] = e
	}
	return out
}

// Default returns the embedded reference table. The embedded data is
// validated at build time by the package tests, so a failure here means a
// corrupted binary.
func Default() *Table {
	t, err := parse(defaultTableYAML)
	if err != nil {
		panic(eris.ToString(err, true))
	}
	return t
}

// Load reads and validates a multiples table from a YAML file. An empty
// path returns the embedded default. A missing or malformed file is a
// fatal configuration error for the caller.
func Load(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "multiples: read table %s", path)
	}
	t, err := parse(data)
	if err != nil {
		return nil, eris.Wrapf(err, "multiples: table %s", path)
	}
	return t, nil
}

func parse(data []byte) (*Table, error) {
	// Top-level "multiples" key keeps the file self-describing.
	var wrapper struct {
		Multiples map[string]Entry `yaml:"multiples"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrap(err, "parse yaml")
	}
	if len(wrapper.Multiples) == 0 {
		return nil, eris.New("no multiples entries")
	}

	entries := make(map[archetype.Archetype]Entry, len(wrapper.Multiples))
	for id, e := range wrapper.Multiples {
		a := archetype.Archetype(id)
		if !a.Valid() {
			return nil, eris.Errorf("unknown archetype %q", id)
		}
		if err := validateBounds("primary", e.Primary); err != nil {
			return nil, eris.Wrapf(err, "archetype %q", id)
		}
		if err := validateBounds("secondary", e.Secondary); err != nil {
			return nil, eris.Wrapf(err, "archetype %q", id)
		}
		entries[a] = e
	}

	// Every archetype must be covered; a partial table is a configuration
	// error, not a per-request one.
	for _, a := range archetype.All() {
		if _, ok := entries[a]; !ok {
			return nil, eris.Errorf("missing entry for archetype %q", a)
		}
	}

	return &Table{entries: entries}, nil
}

func validateBounds(side string, b Bounds) error {
	if b.Low < 0 || b.Median < 0 || b.High < 0 {
		return eris.Errorf("%s bounds must be non-negative", side)
	}
	if b.Low > b.Median || b.Median > b.High {
		return eris.Errorf("%s bounds must satisfy low <= median <= high", side)
	}
	return nil
}
