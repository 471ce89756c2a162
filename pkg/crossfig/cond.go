package crossfig

import (
	"fmt"
	"strings"
)

// Cond is a condition expression: a tree of primitive conditions,
// identity references, and the combinators Not, Any, and All. A Cond
// reduces to exactly one Kind when evaluated.
//
// Conds are immutable values. Build them with Ref, Cfg, Not, Any, and
// All, or parse the textual form with ParseCond.
type Cond interface {
	fmt.Stringer

	// eval reduces the condition within the evaluator's scope and
	// build environment. Implementations may assume CheckCond passed.
	eval(e *Evaluator) (Kind, error)
}

// Ref returns a condition that resolves to the kind of the identity
// declared under name. Evaluation fails with ErrUnresolvedRef if no
// such identity exists at the point of use.
func Ref(name string) Cond {
	return refCond{name: name}
}

// Cfg returns a primitive condition leaf. The term is opaque to the
// engine; the evaluator's Env decides whether it holds.
func Cfg(term string) Cond {
	return cfgCond{term: term}
}

// Not returns a condition that flips the kind of c.
func Not(c Cond) Cond {
	return notCond{inner: c}
}

// Any returns a condition that is enabled if at least one operand is
// enabled. Zero operands is a declaration error, rejected before any
// operand is evaluated. Operand order is not observable: evaluation is
// pure, so no ordering among siblings can matter.
func Any(conds ...Cond) Cond {
	return listCond{all: false, kids: conds}
}

// All returns a condition that is enabled only if every operand is
// enabled. Zero operands is a declaration error, rejected before any
// operand is evaluated.
func All(conds ...Cond) Cond {
	return listCond{all: true, kids: conds}
}

// CheckCond validates the structure of a condition without evaluating
// it: nil nodes and empty combinators are rejected. Evaluators run this
// check before touching any leaf.
func CheckCond(c Cond) error {
	if c == nil {
		return ErrNilCond
	}
	switch n := c.(type) {
	case notCond:
		return CheckCond(n.inner)
	case listCond:
		if len(n.kids) == 0 {
			return fmt.Errorf("%s: %w", n.opName(), ErrEmptyCombinator)
		}
		for _, kid := range n.kids {
			if err := CheckCond(kid); err != nil {
				return err
			}
		}
	}
	return nil
}

type refCond struct {
	name string
}

func (c refCond) String() string {
	return c.name
}

func (c refCond) eval(e *Evaluator) (Kind, error) {
	id, err := e.scope.Lookup(c.name)
	if err != nil {
		return KindDisabled, err
	}
	return id.Kind(), nil
}

type cfgCond struct {
	term string
}

func (c cfgCond) String() string {
	return "cfg(" + c.term + ")"
}

func (c cfgCond) eval(e *Evaluator) (Kind, error) {
	if e.env == nil {
		return KindDisabled, fmt.Errorf("cfg(%s): %w", c.term, ErrNoEnv)
	}
	ok, err := e.env.Cfg(c.term)
	if err != nil {
		return KindDisabled, fmt.Errorf("cfg(%s): %w", c.term, err)
	}
	return KindOf(ok), nil
}

type notCond struct {
	inner Cond
}

func (c notCond) String() string {
	return "not(" + c.inner.String() + ")"
}

func (c notCond) eval(e *Evaluator) (Kind, error) {
	k, err := e.eval(c.inner)
	if err != nil {
		return KindDisabled, err
	}
	return KindOf(!k.Bool()), nil
}

type listCond struct {
	all  bool
	kids []Cond
}

func (c listCond) opName() string {
	if c.all {
		return "all"
	}
	return "any"
}

func (c listCond) String() string {
	parts := make([]string, len(c.kids))
	for i, kid := range c.kids {
		if kid == nil {
			parts[i] = "<nil>"
			continue
		}
		parts[i] = kid.String()
	}
	return c.opName() + "(" + strings.Join(parts, ", ") + ")"
}

func (c listCond) eval(e *Evaluator) (Kind, error) {
	result := c.all
	for _, kid := range c.kids {
		k, err := e.eval(kid)
		if err != nil {
			return KindDisabled, err
		}
		if c.all {
			result = result && k.Bool()
		} else {
			result = result || k.Bool()
		}
	}
	return KindOf(result), nil
}
