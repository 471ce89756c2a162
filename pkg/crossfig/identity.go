package crossfig

// Kind is the resolved state of an identity. An identity is either
// enabled or disabled; there is no third state and no "unresolved"
// value observable from outside the evaluator.
type Kind uint8

const (
	// KindDisabled marks an identity whose blocks are discarded.
	KindDisabled Kind = iota
	// KindEnabled marks an identity whose blocks pass through unchanged.
	KindEnabled
)

// String returns "enabled" or "disabled".
func (k Kind) String() string {
	if k == KindEnabled {
		return "enabled"
	}
	return "disabled"
}

// Bool returns true for KindEnabled.
func (k Kind) Bool() bool {
	return k == KindEnabled
}

// KindOf converts a boolean to the matching Kind.
func KindOf(b bool) Kind {
	if b {
		return KindEnabled
	}
	return KindDisabled
}

// Identity is a named boolean build condition whose kind was fixed when
// it was declared. Identities are immutable: the kind never varies by
// call site, and a consumer cannot re-resolve one.
type Identity struct {
	name string
	kind Kind
	doc  string
	pub  bool
}

// Built-in identities. Every scope binds them under the names "enabled"
// and "disabled" before any alias is declared.
var (
	Enabled  = Identity{name: "enabled", kind: KindEnabled, pub: true, doc: "Always active."}
	Disabled = Identity{name: "disabled", kind: KindDisabled, pub: true, doc: "Never active."}
)

// Name returns the name the identity was declared under.
func (id Identity) Name() string { return id.name }

// Kind returns the identity's resolved kind.
func (id Identity) Kind() Kind { return id.kind }

// Doc returns the documentation attached at declaration.
func (id Identity) Doc() string { return id.doc }

// Exported reports whether the identity is visible outside the
// declaring component.
func (id Identity) Exported() bool { return id.pub }

// Bool returns the boolean literal for the identity's kind. It has no
// side effects and never fails, so it can be used directly as a boolean
// operand.
func (id Identity) Bool() bool {
	return id.kind.Bool()
}

// Block gates a source block on the identity. Enabled identities pass
// the block through unchanged; disabled identities discard it. The
// block is opaque text — a discarded block is never parsed, so
// guaranteed-fail contents cannot break a build.
func (id Identity) Block(src string) string {
	if id.kind == KindEnabled {
		return src
	}
	return ""
}

// Choose is the if/else form of Block: it returns the first block for
// an enabled identity and the second for a disabled one.
func (id Identity) Choose(enabled, disabled string) string {
	if id.kind == KindEnabled {
		return enabled
	}
	return disabled
}
