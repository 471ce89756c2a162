package crossfig

import (
	"fmt"
)

// Scope is an ordered table of declared identities. A new scope starts
// with the built-in identities bound under "enabled" and "disabled".
//
// Scope is not safe for concurrent declaration. Resolution is a
// single-pass, declaration-order affair; build it from one goroutine.
type Scope struct {
	idents map[string]Identity
	order  []string
}

// NewScope creates a scope with the built-in identities pre-declared.
func NewScope() *Scope {
	s := &Scope{idents: make(map[string]Identity)}
	s.idents[Enabled.Name()] = Enabled
	s.idents[Disabled.Name()] = Disabled
	return s
}

// Lookup returns the identity declared under name.
// Returns ErrUnresolvedRef if the name is not bound.
func (s *Scope) Lookup(name string) (Identity, error) {
	id, ok := s.idents[name]
	if !ok {
		return Identity{}, fmt.Errorf("%w: %q", ErrUnresolvedRef, name)
	}
	return id, nil
}

// Has reports whether name is bound in the scope.
func (s *Scope) Has(name string) bool {
	_, ok := s.idents[name]
	return ok
}

// Aliases returns the identities declared through Declare, in
// declaration order. The built-ins are not included.
func (s *Scope) Aliases() []Identity {
	out := make([]Identity, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.idents[name])
	}
	return out
}

// bind adds a declared identity to the scope.
func (s *Scope) bind(id Identity) error {
	if _, exists := s.idents[id.name]; exists {
		return fmt.Errorf("%w: %q", ErrNameCollision, id.name)
	}
	s.idents[id.name] = id
	s.order = append(s.order, id.name)
	return nil
}
