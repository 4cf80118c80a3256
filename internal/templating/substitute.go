// Package templating fills {token} placeholders in page copy.
package templating

import (
	"sort"
	"strings"
)

// Token names used by dynamic landing pages.
const (
	TokenCity          = "city"
	TokenState         = "state"
	TokenCareType      = "careType"
	TokenCommunityName = "communityName"
	TokenLocation      = "location"
)

// Tokens maps a token name to its replacement. Names match case-insensitively.
type Tokens map[string]string

// Substitute replaces every {name} in template whose name is in tokens.
// Unknown placeholders are left as written. The template is scanned once, so
// replacement values are never expanded again.
func Substitute(template string, tokens Tokens) string {
	if len(tokens) == 0 || !strings.Contains(template, "{") {
		return template
	}
	lookup := tokens.folded()

	var b strings.Builder
	b.Grow(len(template))
	rest := template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			break
		}
		end := strings.IndexByte(rest[open+1:], '}')
		if end < 0 {
			b.WriteString(rest)
			break
		}
		end += open + 1

		name := rest[open+1 : end]
		// A nested "{" restarts the match so "{{city}" still finds {city}.
		if inner := strings.LastIndexByte(name, '{'); inner >= 0 {
			b.WriteString(rest[:open+1+inner])
			rest = rest[open+1+inner:]
			continue
		}

		b.WriteString(rest[:open])
		if v, ok := lookup[strings.ToLower(name)]; ok {
			b.WriteString(v)
		} else {
			b.WriteString(rest[open : end+1])
		}
		rest = rest[end+1:]
	}
	return b.String()
}

// folded lower-cases the keys. When two keys fold to the same name the one
// that sorts first wins.
func (t Tokens) folded() map[string]string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]string, len(t))
	for _, k := range keys {
		lk := strings.ToLower(k)
		if _, exists := out[lk]; !exists {
			out[lk] = t[k]
		}
	}
	return out
}
