package gen

import (
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/bushrat011899/crossfig/pkg/crossfig"
	"github.com/bushrat011899/crossfig/pkg/crossfig/manifest"
)

// AliasesFile is the name of the generated alias constants file.
const AliasesFile = manifest.AliasesFile

// header is the first line of every generated file, in the form
// recognized by the Go tooling convention for generated code.
const header = "// Code generated by crossfig. DO NOT EDIT.\n\n"

// Render turns a resolved manifest into gofmt'd Go source files, keyed
// by file name. It is pure: nothing touches the filesystem.
//
// Aliases become documented boolean constants — exported names for pub
// aliases, unexported otherwise — so consumers read the defining
// component's resolution as a plain constant. Each switch becomes one
// file holding only its selected block; discarded blocks never appear
// in any output.
func Render(res *Result) (map[string][]byte, error) {
	files := make(map[string][]byte)

	vars := make(map[string]string, len(res.Vars)+1)
	for k, v := range res.Vars {
		vars[k] = v
	}
	if _, ok := vars["package"]; !ok {
		vars["package"] = res.Package
	}

	if len(res.Aliases) > 0 {
		src, err := renderAliases(res)
		if err != nil {
			return nil, err
		}
		files[AliasesFile] = src
	}

	for _, sel := range res.Selections {
		block, err := expandBlock(sel.Block, vars)
		if err != nil {
			return nil, fmt.Errorf("switch %q: %w", sel.Switch, err)
		}

		var b strings.Builder
		b.WriteString(header)
		fmt.Fprintf(&b, "package %s\n\n", res.Package)
		b.WriteString(block)
		if !strings.HasSuffix(block, "\n") {
			b.WriteByte('\n')
		}

		src, err := format.Source([]byte(b.String()))
		if err != nil {
			return nil, fmt.Errorf("switch %q: selected block is not valid Go: %w", sel.Switch, err)
		}
		files[sel.File] = src
	}

	return files, nil
}

func renderAliases(res *Result) ([]byte, error) {
	var b strings.Builder
	b.WriteString(header)
	fmt.Fprintf(&b, "package %s\n\n", res.Package)

	// Distinct alias names can fold to the same constant name (foo_bar
	// and foo-bar both become FooBar), which would leave a duplicate
	// const declaration for the consumer's compiler to reject.
	seen := make(map[string]string, len(res.Aliases))

	for i, a := range res.Aliases {
		if i > 0 {
			b.WriteByte('\n')
		}
		name := constName(a.Name(), a.Exported())
		if prev, ok := seen[name]; ok {
			return nil, fmt.Errorf("aliases %q and %q both render to constant %q: %w", prev, a.Name(), name, crossfig.ErrNameCollision)
		}
		seen[name] = a.Name()
		if a.Doc() != "" {
			for _, line := range strings.Split(strings.TrimRight(a.Doc(), "\n"), "\n") {
				fmt.Fprintf(&b, "// %s\n", line)
			}
			b.WriteString("//\n")
		}
		fmt.Fprintf(&b, "// Resolved from `%s`; %s in this build.\n", a.Cond, a.Kind())
		fmt.Fprintf(&b, "const %s = %t\n", name, a.Bool())
	}

	src, err := format.Source([]byte(b.String()))
	if err != nil {
		return nil, fmt.Errorf("aliases file: %w", err)
	}
	return src, nil
}

// constName converts an alias name to a Go constant name: snake_case
// becomes CamelCase, with the first rune lowered for unexported
// aliases.
func constName(name string, exported bool) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})
	var b strings.Builder
	for _, p := range parts {
		runes := []rune(p)
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}
	out := b.String()
	if out == "" {
		return name
	}
	if !exported {
		runes := []rune(out)
		runes[0] = unicode.ToLower(runes[0])
		out = string(runes)
	}
	return out
}

// Write puts rendered files in dir, creating it if needed. Files are
// written in sorted order so failures are deterministic.
func Write(dir string, files map[string][]byte) error {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, files[name], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}
