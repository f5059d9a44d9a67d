package ojs

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// Workbook wraps an open OJS spreadsheet. All reads snapshot cell values
// into plain Go values; nothing retains a live reference once Close is
// called.
type Workbook struct {
	Path string
	file *excelize.File
}

func Open(path string) (*Workbook, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &Error{Kind: Structural, Path: path, Msg: "workbook is missing or unreadable", Err: err}
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &Error{Kind: Structural, Path: path, Msg: "could not open workbook", Err: err}
	}
	return &Workbook{Path: path, file: f}, nil
}

func (w *Workbook) Close() error {
	return w.file.Close()
}

// File exposes the underlying excelize handle for write paths (template
// population during season setup). Validation code never needs it.
func (w *Workbook) File() *excelize.File {
	return w.file
}

// RangeSnapshot reads a rectangular A1-style range ("C2:E11") into a Range.
func (w *Workbook) RangeSnapshot(sheet, ref string) (Range, error) {
	start, end, err := splitRangeRef(ref)
	if err != nil {
		return Range{}, &Error{Kind: Structural, Path: w.Path, Sheet: sheet, Msg: fmt.Sprintf("bad range ref %q", ref), Err: err}
	}
	startCol, startRow, err := excelize.CellNameToCoordinates(start)
	if err != nil {
		return Range{}, &Error{Kind: Structural, Path: w.Path, Sheet: sheet, Msg: fmt.Sprintf("bad range ref %q", ref), Err: err}
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(end)
	if err != nil {
		return Range{}, &Error{Kind: Structural, Path: w.Path, Sheet: sheet, Msg: fmt.Sprintf("bad range ref %q", ref), Err: err}
	}

	rng := Range{Sheet: sheet, Ref: ref}
	for row := startRow; row <= endRow; row++ {
		var cells []Cell
		for col := startCol; col <= endCol; col++ {
			name, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return Range{}, &Error{Kind: Structural, Path: w.Path, Sheet: sheet, Msg: "bad cell coordinates", Err: err}
			}
			raw, err := w.file.GetCellValue(sheet, name)
			if err != nil {
				return Range{}, &Error{Kind: Structural, Path: w.Path, Sheet: sheet, Msg: fmt.Sprintf("could not read cell %s", name), Err: err}
			}
			cells = append(cells, newCell(sheet, name, raw))
		}
		rng.Cells = append(rng.Cells, cells)
	}
	return rng, nil
}

// Table reads a named table from a worksheet into a TableData. The first
// row of the table ref is the header row; lookups are by header text only.
func (w *Workbook) Table(sheet, table string) (*TableData, error) {
	tables, err := w.file.GetTables(sheet)
	if err != nil {
		return nil, &Error{Kind: Structural, Path: w.Path, Sheet: sheet, Table: table, Msg: "worksheet is missing", Err: err}
	}
	for _, t := range tables {
		if t.Name != table {
			continue
		}
		rng, err := w.RangeSnapshot(sheet, t.Range)
		if err != nil {
			return nil, err
		}
		if len(rng.Cells) == 0 {
			return nil, &Error{Kind: TableNotFound, Path: w.Path, Sheet: sheet, Table: table, Msg: "table has no header row"}
		}
		td := &TableData{Sheet: sheet, Name: table, index: map[string]int{}}
		for i, cell := range rng.Cells[0] {
			header := cell.String()
			td.Headers = append(td.Headers, header)
			if header != "" {
				td.index[header] = i
			}
		}
		td.Rows = rng.Cells[1:]
		return td, nil
	}
	return nil, &Error{Kind: TableNotFound, Path: w.Path, Sheet: sheet, Table: table, Msg: "named table not found on worksheet"}
}

func splitRangeRef(ref string) (string, string, error) {
	for i := 0; i < len(ref); i++ {
		if ref[i] == ':' {
			return ref[:i], ref[i+1:], nil
		}
	}
	// A single-cell ref is a 1x1 range
	if ref != "" {
		return ref, ref, nil
	}
	return "", "", fmt.Errorf("empty range ref")
}

// TableData is a named table snapshot: ordered rows plus a header index.
type TableData struct {
	Sheet   string
	Name    string
	Headers []string
	Rows    [][]Cell
	index   map[string]int
}

// Column returns the index of a header, or a SchemaMismatch error when the
// header is absent. A renamed header is a hard failure, never a skip.
func (t *TableData) Column(header string) (int, error) {
	i, ok := t.index[header]
	if !ok {
		return 0, &Error{Kind: SchemaMismatch, Sheet: t.Sheet, Table: t.Name, Msg: fmt.Sprintf("missing column %q", header)}
	}
	return i, nil
}

// Require fails with SchemaMismatch unless every header is present.
func (t *TableData) Require(headers ...string) error {
	for _, h := range headers {
		if _, err := t.Column(h); err != nil {
			return err
		}
	}
	return nil
}

// Cell returns the cell in the given row under the given header. Rows
// shorter than the header span read as empty cells.
func (t *TableData) Cell(row int, header string) (Cell, error) {
	i, err := t.Column(header)
	if err != nil {
		return Cell{}, err
	}
	if row < 0 || row >= len(t.Rows) {
		return Cell{}, fmt.Errorf("row %d out of range for table %q", row, t.Name)
	}
	if i >= len(t.Rows[row]) {
		return Cell{Kind: Empty, Sheet: t.Sheet}, nil
	}
	return t.Rows[row][i], nil
}
