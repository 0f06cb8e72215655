package contract

import (
	"slices"
	"strings"
)

// Substitution is the outcome of filling a template. Missing lists the
// placeholders that had no value, in order of first appearance; Used holds the
// ones that were replaced.
type Substitution struct {
	Text    string
	Missing []string
	Used    map[string]bool
}

// Complete reports whether every placeholder was resolved.
func (s Substitution) Complete() bool {
	return len(s.Missing) == 0
}

// Substitute replaces {name} placeholders with values from fields. "{{" and "}}"
// produce literal braces. Unknown placeholders are left as written and reported
// in Missing; braces that do not enclose a valid name are copied unchanged.
func Substitute(tmpl string, fields Fields) Substitution {
	var (
		out     strings.Builder
		missing []string
		seen    = map[string]bool{}
		used    = map[string]bool{}
	)
	out.Grow(len(tmpl))

	for i := 0; i < len(tmpl); {
		c := tmpl[i]
		switch {
		case c == '{' && strings.HasPrefix(tmpl[i:], "{{"):
			out.WriteByte('{')
			i += 2
		case c == '}' && strings.HasPrefix(tmpl[i:], "}}"):
			out.WriteByte('}')
			i += 2
		case c == '{':
			end := strings.IndexByte(tmpl[i+1:], '}')
			if end < 0 || !isName(tmpl[i+1:i+1+end]) {
				out.WriteByte(c)
				i++
				continue
			}
			name := tmpl[i+1 : i+1+end]
			if v, ok := fields[name]; ok {
				out.WriteString(v)
				used[name] = true
			} else {
				out.WriteString(tmpl[i : i+end+2])
				if !seen[name] {
					seen[name] = true
					missing = append(missing, name)
				}
			}
			i += end + 2
		default:
			out.WriteByte(c)
			i++
		}
	}
	return Substitution{Text: out.String(), Missing: missing, Used: used}
}

// References reports whether the template used the {name} placeholder.
// Escaped literals such as {{name}} do not count.
func (s Substitution) References(name string) bool {
	return s.Used[name] || slices.Contains(s.Missing, name)
}

func isName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
