package shaderc

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// ErrBadDefine is returned by ParseDefines for a malformed NAME=VALUE pair.
var ErrBadDefine = errors.New("shaderc: bad define")

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ParseDefines parses NAME=VALUE pairs. A bare NAME defines it as true.
func ParseDefines(pairs []string) (map[string]string, error) {
	defines := make(map[string]string, len(pairs))
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		name = strings.TrimSpace(name)
		if !ok {
			value = "true"
		}
		value = strings.TrimSpace(value)
		if !identRe.MatchString(name) || value == "" {
			return nil, fmt.Errorf("%w: %q", ErrBadDefine, p)
		}
		defines[name] = value
	}
	return defines, nil
}

// ApplyDefines injects defines into WGSL source. A module-scope
// `const NAME ... = ...;` already present has its initializer replaced so
// the declared type is kept; any other define is prepended as
// `const NAME = VALUE;` in name order.
func ApplyDefines(src string, defines map[string]string) string {
	if len(defines) == 0 {
		return src
	}
	names := make([]string, 0, len(defines))
	for name := range defines {
		names = append(names, name)
	}
	sort.Strings(names)

	var header strings.Builder
	for _, name := range names {
		value := defines[name]
		re := regexp.MustCompile(`(?m)^(\s*const\s+` + regexp.QuoteMeta(name) + `\b\s*(?::[^=]+)?=\s*)[^;]*;`)
		if re.MatchString(src) {
			src = re.ReplaceAllString(src, "${1}"+escapeReplacement(value)+";")
			continue
		}
		fmt.Fprintf(&header, "const %s = %s;\n", name, value)
	}
	if header.Len() == 0 {
		return src
	}
	return header.String() + src
}

func escapeReplacement(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}
