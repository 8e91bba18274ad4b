package parser

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every error returned by this package unwraps to one of these,
// so callers can branch with errors.Is without caring about the concrete type.
var (
	// ErrFormat indicates a field, line or header that does not follow the ENDF-6 layout.
	ErrFormat = errors.New("endf6: format error")
	// ErrSectionNotFound indicates the requested (MF, MT) is absent from the document.
	ErrSectionNotFound = errors.New("endf6: section not found")
	// ErrUnterminatedSection indicates a section started but its terminator never came.
	ErrUnterminatedSection = errors.New("endf6: unterminated section")
	// ErrTruncatedTable indicates a header declaring more values than the section holds.
	ErrTruncatedTable = errors.New("endf6: truncated table")
)

// FormatError describes a decoding failure with enough context to find the
// offending text. Line and Field are -1 when unknown.
type FormatError struct {
	Line  int    // index of the line within the slice being read
	Field int    // 0-5 for data fields, -1 for control fields or whole lines
	Text  string // the raw text that failed
	Msg   string
	Err   error // underlying error, if any
}

func (e *FormatError) Error() string {
	loc := ""
	switch {
	case e.Line >= 0 && e.Field >= 0:
		loc = fmt.Sprintf(" at line %d field %d", e.Line, e.Field)
	case e.Line >= 0:
		loc = fmt.Sprintf(" at line %d", e.Line)
	}
	return fmt.Sprintf("endf6: format error%s: %s (%q)", loc, e.Msg, e.Text)
}

func (e *FormatError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrFormat, e.Err}
	}
	return []error{ErrFormat}
}

// SectionNotFoundError reports an absent (MAT, MF, MT). MAT is 0 when the
// lookup was not scoped to a material, MT is -1 for file lookups.
type SectionNotFoundError struct {
	MAT, MF, MT int
}

func (e *SectionNotFoundError) Error() string {
	return fmt.Sprintf("endf6: section not found: %s", describeKey(e.MAT, e.MF, e.MT))
}

func (e *SectionNotFoundError) Unwrap() error { return ErrSectionNotFound }

// UnterminatedSectionError reports a section that began at Start but ran into
// the end of the document (Stop == -1) or into a foreign line at Stop.
type UnterminatedSectionError struct {
	MAT, MF, MT int
	Start       int
	Stop        int
}

func (e *UnterminatedSectionError) Error() string {
	if e.Stop < 0 {
		return fmt.Sprintf("endf6: %s starting at line %d reaches end of document without terminator",
			describeKey(e.MAT, e.MF, e.MT), e.Start)
	}
	return fmt.Sprintf("endf6: %s starting at line %d interrupted at line %d before terminator",
		describeKey(e.MAT, e.MF, e.MT), e.Start, e.Stop)
}

func (e *UnterminatedSectionError) Unwrap() error { return ErrUnterminatedSection }

// TruncatedTableError reports a TAB1 header whose counts exceed the data present.
type TruncatedTableError struct {
	What      string // "interpolation regions" or "data points"
	Declared  int    // count from the header
	NeedLines int
	HaveLines int
}

func (e *TruncatedTableError) Error() string {
	return fmt.Sprintf("endf6: truncated table: %d %s need %d lines, only %d available",
		e.Declared, e.What, e.NeedLines, e.HaveLines)
}

func (e *TruncatedTableError) Unwrap() error { return ErrTruncatedTable }

func describeKey(mat, mf, mt int) string {
	s := fmt.Sprintf("MF=%d", mf)
	if mt >= 0 {
		s += fmt.Sprintf(" MT=%d", mt)
	}
	if mat != 0 {
		s = fmt.Sprintf("MAT=%d ", mat) + s
	}
	return s
}
