package ojs

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorKind int

const (
	// Structural covers a missing or unreadable workbook, a lock file left
	// behind by an open Excel session, or a missing manifest entry.
	Structural ErrorKind = iota
	// FilenameFormat means an OJS filename does not match the expected
	// division-encoding pattern.
	FilenameFormat
	// TableNotFound means a named table is absent from its worksheet.
	TableNotFound
	// SchemaMismatch means a required column header is absent or renamed.
	SchemaMismatch
)

func (k ErrorKind) String() string {
	switch k {
	case Structural:
		return "structural"
	case FilenameFormat:
		return "filename-format"
	case TableNotFound:
		return "table-not-found"
	case SchemaMismatch:
		return "schema-mismatch"
	}
	return "unknown"
}

// Error is the extraction-layer error. Rule evaluators never return these;
// only reads of the workbook itself can fail this way.
type Error struct {
	Kind  ErrorKind
	Path  string
	Sheet string
	Table string
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	parts := make([]string, 0, 3)
	if e.Path != "" {
		parts = append(parts, e.Path)
	}
	if e.Sheet != "" {
		parts = append(parts, fmt.Sprintf("sheet %q", e.Sheet))
	}
	if e.Table != "" {
		parts = append(parts, fmt.Sprintf("table %q", e.Table))
	}
	where := strings.Join(parts, " ")
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Kind, where, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, where, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the extraction error kind, or false for any other error.
func KindOf(err error) (ErrorKind, bool) {
	var oe *Error
	if errors.As(err, &oe) {
		return oe.Kind, true
	}
	return 0, false
}
