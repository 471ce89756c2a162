package crossfig

// Env supplies the primitive build-condition predicate. The predicate
// is external to the engine: it decides whether an opaque term holds
// for the current build, and the engine only ever consumes the boolean.
//
// Implementations must be pure — the same term must always produce the
// same answer within one resolution pass.
type Env interface {
	// Cfg reports whether the primitive condition term holds.
	// An unrecognized term is an error, never a silent false.
	Cfg(term string) (bool, error)
}

// EnvFunc adapts a function to the Env interface.
type EnvFunc func(term string) (bool, error)

// Cfg implements Env.
func (f EnvFunc) Cfg(term string) (bool, error) {
	return f(term)
}

// Evaluator reduces condition expressions to a Kind within a fixed
// scope and build environment. Evaluation is deterministic and free of
// side effects; the same expression always reduces to the same kind
// for a given (scope, env) pair.
type Evaluator struct {
	scope *Scope
	env   Env
}

// NewEvaluator creates an evaluator over the given scope and build
// environment. A nil scope is replaced with a fresh one containing only
// the built-ins. Env may be nil for expressions without Cfg leaves.
func NewEvaluator(scope *Scope, env Env) *Evaluator {
	if scope == nil {
		scope = NewScope()
	}
	return &Evaluator{scope: scope, env: env}
}

// Scope returns the scope the evaluator resolves references against.
func (e *Evaluator) Scope() *Scope {
	return e.scope
}

// Eval reduces a condition to a Kind. The condition's structure is
// checked first, so malformed expressions (nil nodes, empty
// combinators) are rejected before any leaf is evaluated.
func (e *Evaluator) Eval(c Cond) (Kind, error) {
	if err := CheckCond(c); err != nil {
		return KindDisabled, err
	}
	return c.eval(e)
}

// eval dispatches without re-validating; used for interior nodes.
func (e *Evaluator) eval(c Cond) (Kind, error) {
	return c.eval(e)
}
