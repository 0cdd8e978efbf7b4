package simreport

import (
	"fmt"
)

// MalformedReportError indicates a report start marker with no following
// body line before end-of-file. The affected block is excluded; extraction
// of unrelated blocks continues.
type MalformedReportError struct {
	Code string
	Line int
}

// Error implements the error interface
func (e *MalformedReportError) Error() string {
	return fmt.Sprintf("malformed report %s: start marker at line %d has no body before end-of-file", e.Code, e.Line)
}

// NewMalformedReportError creates a new MalformedReportError
func NewMalformedReportError(code string, line int) *MalformedReportError {
	return &MalformedReportError{Code: code, Line: line}
}

// HeaderLayoutError indicates that no columns could be derived from a
// block's header rows.
type HeaderLayoutError struct {
	Code   string
	Line   int
	Reason string
}

// Error implements the error interface
func (e *HeaderLayoutError) Error() string {
	return fmt.Sprintf("header layout for %s at line %d: %s", e.Code, e.Line, e.Reason)
}

// NewHeaderLayoutError creates a new HeaderLayoutError
func NewHeaderLayoutError(code string, line int, reason string) *HeaderLayoutError {
	return &HeaderLayoutError{Code: code, Line: line, Reason: reason}
}

// LayoutMismatchError indicates that a continuation page's header layout is
// structurally incompatible with the layout established by the first
// occurrence of the same report code. Rows merged before the mismatch are
// kept; later pages for the code are dropped.
type LayoutMismatchError struct {
	Code string
	Page int
	Want []string
	Got  []string
}

// Error implements the error interface
func (e *LayoutMismatchError) Error() string {
	return fmt.Sprintf("layout mismatch for %s on page %d: want columns %v, got %v", e.Code, e.Page, e.Want, e.Got)
}

// NewLayoutMismatchError creates a new LayoutMismatchError
func NewLayoutMismatchError(code string, page int, want, got []string) *LayoutMismatchError {
	return &LayoutMismatchError{Code: code, Page: page, Want: want, Got: got}
}

// UnrecognizedTokenError indicates a data token that is neither
// numeric-coercible nor a recognized missing-value placeholder.
type UnrecognizedTokenError struct {
	Token  string
	Column string
	Line   int
}

// Error implements the error interface
func (e *UnrecognizedTokenError) Error() string {
	return fmt.Sprintf("unrecognized token %q in column %q at line %d", e.Token, e.Column, e.Line)
}

// NewUnrecognizedTokenError creates a new UnrecognizedTokenError
func NewUnrecognizedTokenError(token, column string, line int) *UnrecognizedTokenError {
	return &UnrecognizedTokenError{Token: token, Column: column, Line: line}
}

// Diagnostic records one skipped block or dropped continuation so callers
// can report what was excluded and why without aborting the whole file.
type Diagnostic struct {
	Code string `json:"code"`
	Page int    `json:"page"`
	Line int    `json:"line"`
	Err  error  `json:"-"`
}

// Reason returns the human-readable cause of the exclusion.
func (d Diagnostic) Reason() string {
	if d.Err == nil {
		return "unknown"
	}
	return d.Err.Error()
}
