// Package checks holds the generic cell-range predicates used by the rule
// evaluators. Each checker returns the cells violating the predicate; an
// empty result means the range is clean.
package checks

import (
	"fmt"

	"github.com/MrGibbage/OJS-Script-maker-NG/ojs"
)

type Kind int

const (
	EmptyCell Kind = iota
	NotANumber
	OutOfRange
	DisallowedValue
)

func (k Kind) String() string {
	switch k {
	case EmptyCell:
		return "empty-cell"
	case NotANumber:
		return "not-a-number"
	case OutOfRange:
		return "out-of-range"
	case DisallowedValue:
		return "disallowed-value"
	}
	return "unknown"
}

type Violation struct {
	Kind Kind
	Cell ojs.Cell
}

func (v Violation) String() string {
	switch v.Kind {
	case EmptyCell:
		return fmt.Sprintf("%s!%s is empty", v.Cell.Sheet, v.Cell.Ref)
	case NotANumber:
		return fmt.Sprintf("%s!%s=%q is not a number", v.Cell.Sheet, v.Cell.Ref, v.Cell.String())
	}
	return fmt.Sprintf("%s!%s=%s", v.Cell.Sheet, v.Cell.Ref, v.Cell.String())
}

// Empty reports every blank cell in the range.
func Empty(rng ojs.Range) []Violation {
	var out []Violation
	for _, row := range rng.Cells {
		for _, cell := range row {
			if cell.IsEmpty() {
				out = append(out, Violation{Kind: EmptyCell, Cell: cell})
			}
		}
	}
	return out
}

// Numeric reports every populated cell that does not hold a number.
// Blank cells are Empty's job, not ours.
func Numeric(rng ojs.Range) []Violation {
	var out []Violation
	for _, row := range rng.Cells {
		for _, cell := range row {
			if cell.IsEmpty() {
				continue
			}
			if cell.Kind != ojs.Number {
				out = append(out, Violation{Kind: NotANumber, Cell: cell})
			}
		}
	}
	return out
}

// Bounded reports every numeric cell outside [min, max]. Non-numeric cells
// are skipped: they are already reported once by Numeric and must not show
// up a second time as range violations.
func Bounded(rng ojs.Range, min, max float64) []Violation {
	var out []Violation
	for _, row := range rng.Cells {
		for _, cell := range row {
			if cell.Kind != ojs.Number {
				continue
			}
			if cell.Number < min || cell.Number > max {
				out = append(out, Violation{Kind: OutOfRange, Cell: cell})
			}
		}
	}
	return out
}

// Allowed reports every numeric cell whose value is not in the allowed set.
// Non-numeric cells are skipped for the same reason as in Bounded.
func Allowed(rng ojs.Range, allowed []float64) []Violation {
	var out []Violation
	for _, row := range rng.Cells {
		for _, cell := range row {
			if cell.Kind != ojs.Number {
				continue
			}
			ok := false
			for _, a := range allowed {
				if cell.Number == a {
					ok = true
					break
				}
			}
			if !ok {
				out = append(out, Violation{Kind: DisallowedValue, Cell: cell})
			}
		}
	}
	return out
}

// Refs collapses violations to their cell references, for messages.
func Refs(violations []Violation) []string {
	refs := make([]string, 0, len(violations))
	for _, v := range violations {
		refs = append(refs, v.Cell.Ref)
	}
	return refs
}
