package gen

import (
	"fmt"
	"regexp"
	"strings"
)

// varPattern matches ${name} placeholders in blocks.
var varPattern = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// expandBlock substitutes ${name} placeholders in a block with the
// manifest's vars. A placeholder with no matching var is an error: a
// generated file with a dangling placeholder would not compile anyway,
// so the diagnostic belongs here.
func expandBlock(s string, vars map[string]string) (string, error) {
	var missing []string

	out := varPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := match[2 : len(match)-1]
		if val, ok := vars[name]; ok {
			return val
		}
		missing = append(missing, name)
		return match
	})

	if len(missing) > 0 {
		return "", fmt.Errorf("undefined block vars: %s", strings.Join(missing, ", "))
	}
	return out, nil
}
