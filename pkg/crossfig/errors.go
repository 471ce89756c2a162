package crossfig

import (
	"errors"
	"fmt"
)

// Sentinel errors for condition evaluation.
var (
	// ErrUnresolvedRef indicates a condition referenced an identity that
	// has not been declared in the current scope. Forward references to
	// identities declared later in a batch fail with this error.
	ErrUnresolvedRef = errors.New("undeclared identity")

	// ErrEmptyCombinator indicates Any or All was given zero operands.
	ErrEmptyCombinator = errors.New("combinator requires at least one operand")

	// ErrNilCond indicates a nil condition expression.
	ErrNilCond = errors.New("condition cannot be nil")

	// ErrNoEnv indicates a primitive condition leaf was evaluated without
	// a build environment to supply its predicate.
	ErrNoEnv = errors.New("no build environment configured")
)

// Sentinel errors for declarations.
var (
	// ErrNameCollision indicates a declaration's name is already taken:
	// an alias bound twice, or generated outputs folding to one name.
	ErrNameCollision = errors.New("identity already declared")

	// ErrNoFallback indicates a switch has no fallback arm.
	ErrNoFallback = errors.New("switch requires a fallback arm")

	// ErrArmAfterFallback indicates arms were declared after the fallback,
	// which would make them unreachable.
	ErrArmAfterFallback = errors.New("switch arms after the fallback are unreachable")
)

// errEmptyName rejects unnamed declarations.
var errEmptyName = errors.New("name cannot be empty")

// DeclError wraps an error with the declaration it occurred in, so a
// failed build pinpoints the offending construct.
type DeclError struct {
	// Construct is the kind of declaration: "alias", "switch", or "cond".
	Construct string
	// Name is the declared name, when one exists.
	Name string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *DeclError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%s declaration: %v", e.Construct, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Construct, e.Name, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *DeclError) Unwrap() error {
	return e.Err
}
