package plan

import (
	"errors"
	"fmt"
)

// ValidationSeverity indicates whether a finding blocks mesh generation or
// is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks building
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding. Index is the
// offending segment, or -1 for shape-level findings.
type ValidationError struct {
	Index    int
	Message  string
	Severity ValidationSeverity
}

func (e ValidationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] segment %d: %s", e.Severity, e.Index, e.Message)
}

// ValidationResult separates blocking errors from warnings.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// OK reports whether there are no blocking errors.
func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

// Err joins the blocking errors into one error, or returns nil.
func (r ValidationResult) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = e
	}
	return errors.Join(errs...)
}

// Validate checks the preconditions mesh generation relies on. Non-finite
// coordinates and a declared size that disagrees with the segment count are
// errors; zero-length and duplicate segments are warnings, since they are
// still buildable but never enclose a floor. Validate never mutates s.
func Validate(s Shape) ValidationResult {
	var r ValidationResult

	if s.Size != len(s.Segments) {
		r.Errors = append(r.Errors, ValidationError{
			Index:    -1,
			Message:  fmt.Sprintf("declared size %d does not match %d segments", s.Size, len(s.Segments)),
			Severity: SeverityError,
		})
	}

	type undirected struct{ a, b PointKey }
	seen := make(map[undirected]int)

	for i, seg := range s.Segments {
		if !seg.IsFinite() {
			r.Errors = append(r.Errors, ValidationError{
				Index:    i,
				Message:  fmt.Sprintf("non-finite coordinate in %s", seg),
				Severity: SeverityError,
			})
			continue
		}
		if seg.IsDegenerate() {
			r.Warnings = append(r.Warnings, ValidationError{
				Index:    i,
				Message:  fmt.Sprintf("zero-length wall at %s", seg.Start()),
				Severity: SeverityWarning,
			})
		}

		a, b := KeyOf(seg.Start(), 0), KeyOf(seg.End(), 0)
		if b.X < a.X || (b.X == a.X && b.Y < a.Y) {
			a, b = b, a
		}
		key := undirected{a, b}
		if first, dup := seen[key]; dup {
			r.Warnings = append(r.Warnings, ValidationError{
				Index:    i,
				Message:  fmt.Sprintf("duplicates segment %d", first),
				Severity: SeverityWarning,
			})
		} else {
			seen[key] = i
		}
	}

	return r
}
