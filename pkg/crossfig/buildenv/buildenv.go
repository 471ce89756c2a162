// Package buildenv resolves primitive build conditions against the
// facts of a build: enabled features, target OS and architecture, and
// build tags.
//
// The core engine treats a cfg(...) term as opaque; this package is the
// predicate that gives those terms meaning. A term is either a literal
// ("true", "false") or "form=value", where the form names a registered
// predicate:
//
//	feature=std   the "std" feature is enabled
//	os=linux      the target OS is linux
//	arch=arm64    the target architecture is arm64
//	tag=debug     the "debug" build tag is set
//
// Unknown forms and malformed terms are errors, never a silent false.
package buildenv

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/bushrat011899/crossfig/pkg/crossfig/registry"
)

// Facts are the build-time truths predicates test against. Facts are
// fixed before resolution starts and never change during a pass.
type Facts struct {
	// Features is the set of enabled feature names.
	Features map[string]bool
	// OS is the target operating system (GOOS).
	OS string
	// Arch is the target architecture (GOARCH).
	Arch string
	// Tags is the set of active build tags.
	Tags map[string]bool
}

// Predicate tests one primitive condition form against the facts.
type Predicate func(f Facts, value string) (bool, error)

// Env resolves primitive condition terms. It implements crossfig.Env.
type Env struct {
	facts Facts
	forms *registry.Registry[string, Predicate]
}

// Option configures an Env.
type Option func(*Env)

// WithFeatures enables the named features.
func WithFeatures(names ...string) Option {
	return func(e *Env) {
		for _, n := range names {
			e.facts.Features[n] = true
		}
	}
}

// WithTags sets the named build tags.
func WithTags(names ...string) Option {
	return func(e *Env) {
		for _, n := range names {
			e.facts.Tags[n] = true
		}
	}
}

// WithTarget sets the target OS and architecture. Empty values keep
// the current setting.
func WithTarget(os, arch string) Option {
	return func(e *Env) {
		if os != "" {
			e.facts.OS = os
		}
		if arch != "" {
			e.facts.Arch = arch
		}
	}
}

// WithForm registers a custom primitive condition form.
func WithForm(name string, p Predicate) Option {
	return func(e *Env) {
		e.forms.Register(name, p)
	}
}

// New creates an environment with the built-in forms registered and the
// target defaulting to the host (runtime.GOOS / runtime.GOARCH).
func New(opts ...Option) *Env {
	e := &Env{
		facts: Facts{
			Features: make(map[string]bool),
			Tags:     make(map[string]bool),
			OS:       runtime.GOOS,
			Arch:     runtime.GOARCH,
		},
		forms: registry.New[string, Predicate](),
	}
	e.forms.Register("feature", func(f Facts, v string) (bool, error) {
		return f.Features[v], nil
	})
	e.forms.Register("tag", func(f Facts, v string) (bool, error) {
		return f.Tags[v], nil
	})
	e.forms.Register("os", func(f Facts, v string) (bool, error) {
		return f.OS == v, nil
	})
	e.forms.Register("arch", func(f Facts, v string) (bool, error) {
		return f.Arch == v, nil
	})
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Facts returns a copy of the environment's facts.
func (e *Env) Facts() Facts {
	out := Facts{
		Features: make(map[string]bool, len(e.facts.Features)),
		Tags:     make(map[string]bool, len(e.facts.Tags)),
		OS:       e.facts.OS,
		Arch:     e.facts.Arch,
	}
	for k, v := range e.facts.Features {
		out.Features[k] = v
	}
	for k, v := range e.facts.Tags {
		out.Tags[k] = v
	}
	return out
}

// Cfg implements crossfig.Env: it reports whether the term holds for
// this build.
func (e *Env) Cfg(term string) (bool, error) {
	term = strings.TrimSpace(term)
	switch term {
	case "":
		return false, fmt.Errorf("empty primitive condition")
	case "true":
		return true, nil
	case "false":
		return false, nil
	}

	form, value, ok := strings.Cut(term, "=")
	if !ok {
		return false, fmt.Errorf("malformed primitive condition %q: want form=value, true, or false", term)
	}
	form = strings.TrimSpace(form)
	value = strings.TrimSpace(value)
	if value == "" {
		return false, fmt.Errorf("primitive condition %q has no value", term)
	}

	pred, found := e.forms.Get(form)
	if !found {
		return false, fmt.Errorf("unknown primitive condition form %q (known: %s)",
			form, strings.Join(e.forms.Keys(), ", "))
	}
	return pred(e.facts, value)
}
