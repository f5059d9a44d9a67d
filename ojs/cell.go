package ojs

import "strconv"

type CellKind int

const (
	Empty CellKind = iota
	Number
	Text
)

// Cell is a single workbook cell captured at read time. Sheet and Ref are
// kept so violations can point the operator at the exact cell to fix.
type Cell struct {
	Kind   CellKind
	Number float64
	Text   string
	Sheet  string
	Ref    string
}

func (c Cell) IsEmpty() bool {
	return c.Kind == Empty
}

func (c Cell) String() string {
	switch c.Kind {
	case Number:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case Text:
		return c.Text
	}
	return ""
}

// Int returns the cell value as an int when the cell holds a whole number.
func (c Cell) Int() (int, bool) {
	if c.Kind != Number {
		return 0, false
	}
	n := int(c.Number)
	if float64(n) != c.Number {
		return 0, false
	}
	return n, true
}

func newCell(sheet, ref, raw string) Cell {
	if raw == "" {
		return Cell{Kind: Empty, Sheet: sheet, Ref: ref}
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return Cell{Kind: Number, Number: n, Sheet: sheet, Ref: ref}
	}
	return Cell{Kind: Text, Text: raw, Sheet: sheet, Ref: ref}
}

// Range is a rectangular snapshot of cells, row-major. Checkers treat it as
// an immutable value; nothing here reaches back into the workbook.
type Range struct {
	Sheet string
	Ref   string
	Cells [][]Cell
}
