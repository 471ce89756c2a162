package manifest

import (
	"errors"
	"fmt"

	"github.com/bushrat011899/crossfig/pkg/crossfig"
)

// Manifest declares a component's conditional configuration: the build
// facts it resolves against, the aliases it exports, and the switches
// that select its source variants.
type Manifest struct {
	// Package is the Go package name of the generated files.
	Package string `yaml:"package" json:"package"`
	// Output is the directory generated files are written to.
	// Defaults to ".".
	Output string `yaml:"output,omitempty" json:"output,omitempty"`
	// Vars are substituted into blocks as ${name}.
	Vars map[string]string `yaml:"vars,omitempty" json:"vars,omitempty"`
	// Build holds the primitive-condition facts for this build.
	Build Build `yaml:"build,omitempty" json:"build,omitempty"`
	// Aliases are declared in order; later entries may reference
	// earlier ones.
	Aliases []Alias `yaml:"aliases,omitempty" json:"aliases,omitempty"`
	// Switches each select exactly one block into a generated file.
	Switches []Switch `yaml:"switches,omitempty" json:"switches,omitempty"`
}

// Build names the facts the primitive-condition predicate tests.
type Build struct {
	// Features is the list of enabled feature names.
	Features []string `yaml:"features,omitempty" json:"features,omitempty"`
	// OS overrides the target OS; empty means the host's.
	OS string `yaml:"os,omitempty" json:"os,omitempty"`
	// Arch overrides the target architecture; empty means the host's.
	Arch string `yaml:"arch,omitempty" json:"arch,omitempty"`
	// Tags is the list of active build tags.
	Tags []string `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// Alias declares a named identity resolved at generation time.
type Alias struct {
	Name string `yaml:"name" json:"name"`
	Doc  string `yaml:"doc,omitempty" json:"doc,omitempty"`
	Pub  bool   `yaml:"pub,omitempty" json:"pub,omitempty"`
	// Cond is the textual condition form, e.g. "all(std, not(log))".
	Cond string `yaml:"cond" json:"cond"`
}

// Switch declares an ordered, fallback-terminated block selection.
type Switch struct {
	Name string `yaml:"name" json:"name"`
	// File is the generated file name. Defaults to
	// "zz_generated_<name>.go".
	File string `yaml:"file,omitempty" json:"file,omitempty"`
	Arms []Arm  `yaml:"arms" json:"arms"`
}

// Arm is one branch of a switch: either a conditional arm with a Cond,
// or the fallback with Default set.
type Arm struct {
	Cond    string `yaml:"cond,omitempty" json:"cond,omitempty"`
	Default bool   `yaml:"default,omitempty" json:"default,omitempty"`
	Block   string `yaml:"block" json:"block"`
}

// Validate checks the manifest's structure before resolution: a missing
// package name, unnamed declarations, unparseable conditions, and
// malformed switches (no fallback, non-terminal fallback, colliding
// output files) are all rejected here. Multiple problems are joined into one error.
//
// Resolution-time failures (undeclared references, unknown primitive
// terms) are reported later, when the manifest is resolved against a
// build environment.
func (m Manifest) Validate() error {
	var errs []error

	if m.Package == "" {
		errs = append(errs, errors.New("manifest: package name is required"))
	}

	seen := make(map[string]bool)
	for i, a := range m.Aliases {
		if a.Name == "" {
			errs = append(errs, fmt.Errorf("alias %d: name is required", i))
			continue
		}
		if seen[a.Name] {
			errs = append(errs, fmt.Errorf("alias %q: %w", a.Name, crossfig.ErrNameCollision))
		}
		seen[a.Name] = true
		if a.Cond == "" {
			errs = append(errs, fmt.Errorf("alias %q: cond is required", a.Name))
			continue
		}
		if _, err := crossfig.ParseCond(a.Cond); err != nil {
			errs = append(errs, fmt.Errorf("alias %q: %w", a.Name, err))
		}
	}

	seenSwitch := make(map[string]bool)
	seenFile := make(map[string]string)
	for i, sw := range m.Switches {
		name := sw.Name
		if name == "" {
			errs = append(errs, fmt.Errorf("switch %d: name is required", i))
			name = fmt.Sprintf("#%d", i)
		}
		if seenSwitch[name] {
			errs = append(errs, fmt.Errorf("switch %q: declared twice", name))
		}
		seenSwitch[name] = true

		// Each switch owns its output file; a shared name would let one
		// switch's block overwrite another's.
		file := sw.OutputFile()
		if file == AliasesFile {
			errs = append(errs, fmt.Errorf("switch %q: output file %q is reserved for the alias constants: %w", name, file, crossfig.ErrNameCollision))
		} else if prev, ok := seenFile[file]; ok {
			errs = append(errs, fmt.Errorf("switch %q: output file %q already used by switch %q: %w", name, file, prev, crossfig.ErrNameCollision))
		} else {
			seenFile[file] = name
		}

		errs = append(errs, sw.validate(name)...)
	}

	return errors.Join(errs...)
}

func (sw Switch) validate(name string) []error {
	var errs []error

	if len(sw.Arms) == 0 {
		errs = append(errs, fmt.Errorf("switch %q: %w", name, crossfig.ErrNoFallback))
		return errs
	}

	fallbackAt := -1
	for i, arm := range sw.Arms {
		if arm.Default {
			if arm.Cond != "" {
				errs = append(errs, fmt.Errorf("switch %q arm %d: a fallback arm cannot have a condition", name, i))
			}
			if fallbackAt >= 0 {
				errs = append(errs, fmt.Errorf("switch %q: %w", name, crossfig.ErrArmAfterFallback))
			}
			fallbackAt = i
			continue
		}
		if fallbackAt >= 0 {
			errs = append(errs, fmt.Errorf("switch %q: %w", name, crossfig.ErrArmAfterFallback))
			continue
		}
		if arm.Cond == "" {
			errs = append(errs, fmt.Errorf("switch %q arm %d: cond is required", name, i))
			continue
		}
		if _, err := crossfig.ParseCond(arm.Cond); err != nil {
			errs = append(errs, fmt.Errorf("switch %q arm %d: %w", name, i, err))
		}
	}
	if fallbackAt < 0 {
		errs = append(errs, fmt.Errorf("switch %q: %w", name, crossfig.ErrNoFallback))
	}

	return errs
}

// AliasesFile is the name of the generated alias constants file. No
// switch may write to it.
const AliasesFile = "zz_generated_aliases.go"

// OutputFile returns the generated file name for the switch.
func (sw Switch) OutputFile() string {
	if sw.File != "" {
		return sw.File
	}
	return "zz_generated_" + sw.Name + ".go"
}
