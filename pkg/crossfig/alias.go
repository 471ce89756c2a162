package crossfig

// AliasDecl declares a named identity bound to the resolution of a
// condition expression. The condition is evaluated once, where the
// declaration appears; the resulting identity carries a fixed kind from
// then on.
type AliasDecl struct {
	// Name binds the produced identity in the scope.
	Name string
	// Doc is attached to the identity and preserved through to
	// consumers, so an imported alias is self-describing.
	Doc string
	// Pub exports the identity outside the declaring component.
	Pub bool
	// Cond is the expression whose resolution fixes the identity's kind.
	Cond Cond
}

// Declare resolves a batch of alias declarations into the scope, top to
// bottom. A later entry's condition may reference an earlier entry's
// name; a forward reference fails with ErrUnresolvedRef and a
// redeclared name fails with ErrNameCollision. The batch is
// all-or-nothing in effect only up to the failing entry — on error the
// scope retains the entries declared before it, mirroring how a build
// aborts at the first bad declaration.
//
// Returns the produced identities in declaration order.
func (s *Scope) Declare(env Env, decls ...AliasDecl) ([]Identity, error) {
	ev := NewEvaluator(s, env)
	out := make([]Identity, 0, len(decls))

	for _, d := range decls {
		if d.Name == "" {
			return out, &DeclError{Construct: "alias", Err: errEmptyName}
		}
		if s.Has(d.Name) {
			return out, &DeclError{Construct: "alias", Name: d.Name, Err: ErrNameCollision}
		}
		kind, err := ev.Eval(d.Cond)
		if err != nil {
			return out, &DeclError{Construct: "alias", Name: d.Name, Err: err}
		}
		id := Identity{name: d.Name, kind: kind, doc: d.Doc, pub: d.Pub}
		if err := s.bind(id); err != nil {
			return out, &DeclError{Construct: "alias", Name: d.Name, Err: err}
		}
		out = append(out, id)
	}
	return out, nil
}
