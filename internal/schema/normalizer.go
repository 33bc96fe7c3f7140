package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jengzang/civic-etl-go/internal/table"
)

// Epoch identifies a period during which a raw source kept a stable column layout
type Epoch string

const (
	EpochDefault Epoch = "default"
	EpochLegacy  Epoch = "legacy"
	EpochCurrent Epoch = "current"
)

// ErrUnknownEpoch is returned when a schema has no mapping for an epoch
var ErrUnknownEpoch = errors.New("no mapping for epoch")

// EpochMapping describes how one epoch's raw layout maps onto the canonical schema
type EpochMapping struct {
	// Drop lists source-specific columns removed before renaming
	Drop []string
	// Rename maps raw column names to canonical names
	Rename map[string]string
	// Fill gives the sentinel for canonical columns whose absence is expected
	Fill map[string]string
}

// Schema is the canonical column set of one entity type
type Schema struct {
	Entity   string
	Columns  []string
	Required []string
	Epochs   map[Epoch]EpochMapping
}

// ConfigError reports schema drift: canonical columns missing after normalization
type ConfigError struct {
	Entity  string
	Epoch   Epoch
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("schema %s (%s): missing required columns [%s]",
		e.Entity, e.Epoch, strings.Join(e.Missing, ", "))
}

// Normalize maps a raw table onto the canonical schema for an epoch.
// The input table is never modified.
func Normalize(t *table.Table, s Schema, e Epoch) (*table.Table, error) {
	m, ok := s.Epochs[e]
	if !ok {
		return nil, fmt.Errorf("schema %s: %w %q", s.Entity, ErrUnknownEpoch, e)
	}

	out := t.Drop(m.Drop...).Rename(m.Rename)

	for _, col := range s.Columns {
		if out.Has(col) {
			continue
		}
		if v, ok := m.Fill[col]; ok {
			out = out.WithColumn(col, v)
		}
	}

	var missing []string
	for _, col := range s.Required {
		if !out.Has(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &ConfigError{Entity: s.Entity, Epoch: e, Missing: missing}
	}

	selected, err := out.Select(s.Columns...)
	if err != nil {
		// optional canonical column with no fill value
		return nil, &ConfigError{Entity: s.Entity, Epoch: e, Missing: absent(out, s.Columns)}
	}
	return selected, nil
}

// Part is one raw source file tagged with its epoch
type Part struct {
	Name  string
	Epoch Epoch
	Table *table.Table
}

// NormalizeAll normalizes every part and concatenates them in order
func NormalizeAll(parts []Part, s Schema) (*table.Table, error) {
	normalized := make([]*table.Table, 0, len(parts))
	for _, p := range parts {
		t, err := Normalize(p.Table, s, p.Epoch)
		if err != nil {
			return nil, fmt.Errorf("failed to normalize %s: %w", p.Name, err)
		}
		normalized = append(normalized, t)
	}
	if len(normalized) == 0 {
		return table.New(s.Columns...), nil
	}
	return table.Concat(normalized...)
}

// TripEpochForYear returns the trip layout epoch for a source year
func TripEpochForYear(year, cutoff int) Epoch {
	if year < cutoff {
		return EpochLegacy
	}
	return EpochCurrent
}

func absent(t *table.Table, cols []string) []string {
	var out []string
	for _, c := range cols {
		if !t.Has(c) {
			out = append(out, c)
		}
	}
	return out
}
