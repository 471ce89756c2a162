package crossfig

// Switch is an ordered selection construct: a sequence of conditional
// arms terminated by one mandatory fallback. Resolving a switch picks
// the first arm whose condition is enabled, or the fallback when none
// are. Exactly one arm's block is ever selected; every other block
// stays opaque, unemitted text.
//
// Use NewSwitch to create a switch, then chain Case and Default calls:
//
//	sel, err := crossfig.NewSwitch("alloc").
//	    Case(crossfig.Ref("std"), stdBlock).
//	    Case(crossfig.Cfg("feature=alloc"), allocBlock).
//	    Default(bareBlock).
//	    Resolve(ev)
//
// Switch is not thread-safe during building; resolve from the goroutine
// that built it.
type Switch struct {
	name             string
	arms             []switchArm
	fallback         string
	hasFallback      bool
	armAfterFallback bool
}

type switchArm struct {
	cond  Cond
	block string
}

// Selection is the outcome of resolving a switch: the one block that
// survives, and which arm it came from.
type Selection struct {
	// Switch is the name of the resolved switch.
	Switch string
	// Arm is the index of the matched conditional arm, or -1 when the
	// fallback was selected.
	Arm int
	// Fallback reports whether the fallback arm was selected.
	Fallback bool
	// Block is the selected block, verbatim.
	Block string
}

// NewSwitch creates an empty switch builder. The name is used in
// diagnostics and generated output.
func NewSwitch(name string) *Switch {
	return &Switch{name: name}
}

// Name returns the switch's name.
func (sw *Switch) Name() string {
	return sw.name
}

// Case appends a conditional arm. Returns the switch for chaining.
//
// Panics if cond is nil: a nil condition is a programming error, not a
// build configuration. Structural problems inside cond are reported by
// Resolve instead.
func (sw *Switch) Case(cond Cond, block string) *Switch {
	if cond == nil {
		panic("crossfig: switch arm condition cannot be nil")
	}
	if sw.hasFallback {
		sw.armAfterFallback = true
	}
	sw.arms = append(sw.arms, switchArm{cond: cond, block: block})
	return sw
}

// Default sets the mandatory fallback arm. It must be the last arm
// declared. Returns the switch for chaining.
func (sw *Switch) Default(block string) *Switch {
	if sw.hasFallback {
		// A second fallback makes the first non-terminal.
		sw.armAfterFallback = true
		return sw
	}
	sw.fallback = block
	sw.hasFallback = true
	return sw
}

// validate rejects malformed switches before any arm is evaluated.
func (sw *Switch) validate() error {
	if !sw.hasFallback {
		return &DeclError{Construct: "switch", Name: sw.name, Err: ErrNoFallback}
	}
	if sw.armAfterFallback {
		return &DeclError{Construct: "switch", Name: sw.name, Err: ErrArmAfterFallback}
	}
	for _, arm := range sw.arms {
		if err := CheckCond(arm.cond); err != nil {
			return &DeclError{Construct: "switch", Name: sw.name, Err: err}
		}
	}
	return nil
}

// Resolve validates the switch and scans its arms in declared order,
// selecting the first whose condition evaluates to enabled, or the
// fallback when none does. A switch with only a fallback is legal and
// always selects it.
//
// Validation failures (no fallback, a non-terminal fallback, malformed
// arm conditions) are reported before any condition is evaluated.
func (sw *Switch) Resolve(ev *Evaluator) (Selection, error) {
	if ev == nil {
		ev = NewEvaluator(nil, nil)
	}
	if err := sw.validate(); err != nil {
		return Selection{}, err
	}

	for i, arm := range sw.arms {
		kind, err := ev.Eval(arm.cond)
		if err != nil {
			return Selection{}, &DeclError{Construct: "switch", Name: sw.name, Err: err}
		}
		if kind == KindEnabled {
			return Selection{Switch: sw.name, Arm: i, Block: arm.block}, nil
		}
	}
	return Selection{Switch: sw.name, Arm: -1, Fallback: true, Block: sw.fallback}, nil
}
