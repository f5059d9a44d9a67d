package ojs

import "fmt"

const (
	MetaSheet = "Meta"
	MetaTable = "Meta"

	MetaKeyColumn   = "Key"
	MetaValueColumn = "Value"
)

// Meta is the key/value block of tournament facts from the Meta table.
type Meta map[string]Cell

// ReadMeta extracts the Meta table. Keys with empty values are kept so the
// caller can distinguish "present but blank" from "absent".
func ReadMeta(w *Workbook) (Meta, error) {
	td, err := w.Table(MetaSheet, MetaTable)
	if err != nil {
		return nil, err
	}
	if err := td.Require(MetaKeyColumn, MetaValueColumn); err != nil {
		return nil, err
	}
	meta := Meta{}
	for row := range td.Rows {
		key, err := td.Cell(row, MetaKeyColumn)
		if err != nil {
			return nil, err
		}
		if key.IsEmpty() {
			continue
		}
		value, err := td.Cell(row, MetaValueColumn)
		if err != nil {
			return nil, err
		}
		meta[key.String()] = value
	}
	return meta, nil
}

// Text returns the string value for a key, or "" when absent.
func (m Meta) Text(key string) string {
	return m[key].String()
}

// Count returns the numeric value for a key as a non-negative int. Absent
// or blank keys count as zero, matching how an unconfigured award quota
// behaves.
func (m Meta) Count(key string) (int, error) {
	cell, ok := m[key]
	if !ok || cell.IsEmpty() {
		return 0, nil
	}
	n, ok := cell.Int()
	if !ok || n < 0 {
		return 0, fmt.Errorf("meta key %q must be a non-negative whole number, got %q", key, cell.String())
	}
	return n, nil
}

// Require fails unless every named key is present.
func (m Meta) Require(keys ...string) error {
	for _, key := range keys {
		if _, ok := m[key]; !ok {
			return fmt.Errorf("meta table is missing required key %q", key)
		}
	}
	return nil
}
