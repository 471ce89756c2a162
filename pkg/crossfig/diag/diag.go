// Package diag classifies resolution errors into the diagnostic
// taxonomy the CLI reports: malformed declarations, unresolved
// references, and name collisions. Every failure is fatal — the
// classification decides how it is reported, never whether it is
// recovered.
package diag

import (
	"errors"

	"github.com/bushrat011899/crossfig/pkg/crossfig"
)

// Category is the diagnostic class of a resolution error.
type Category int

const (
	// CategoryInternal covers everything outside the declaration
	// taxonomy: I/O failures, bad generated source, bugs.
	CategoryInternal Category = iota

	// CategoryMalformed covers structurally invalid declarations:
	// a switch without a fallback, a non-terminal fallback, or an
	// empty any/all.
	CategoryMalformed

	// CategoryUnresolved covers references to undeclared or
	// forward-referenced identities.
	CategoryUnresolved

	// CategoryCollision covers redeclared alias names.
	CategoryCollision
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryMalformed:
		return "malformed_declaration"
	case CategoryUnresolved:
		return "unresolved_reference"
	case CategoryCollision:
		return "name_collision"
	default:
		return "internal"
	}
}

// ExitCode maps the category to a process exit code, so scripts can
// tell declaration mistakes apart from tool failures.
func (c Category) ExitCode() int {
	switch c {
	case CategoryMalformed:
		return 2
	case CategoryUnresolved:
		return 3
	case CategoryCollision:
		return 4
	default:
		return 1
	}
}

// Classify maps an error onto its diagnostic category.
func Classify(err error) Category {
	switch {
	case errors.Is(err, crossfig.ErrUnresolvedRef):
		return CategoryUnresolved
	case errors.Is(err, crossfig.ErrNameCollision):
		return CategoryCollision
	case errors.Is(err, crossfig.ErrNoFallback),
		errors.Is(err, crossfig.ErrArmAfterFallback),
		errors.Is(err, crossfig.ErrEmptyCombinator),
		errors.Is(err, crossfig.ErrNilCond):
		return CategoryMalformed
	default:
		return CategoryInternal
	}
}
