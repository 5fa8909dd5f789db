package vfs

import (
	"regexp"
	"strings"
)

// CompileGlob builds a case-insensitive regex anchored at the name end
// from a limited glob syntax: "*" matches any run of characters, "?"
// matches exactly one. No character classes, no brace expansion. An empty
// pattern or "*" matches everything.
func CompileGlob(pattern string) (*regexp.Regexp, error) {
	if pattern == "" || pattern == "*" {
		return regexp.Compile(`(?i)^.*$`)
	}

	var b strings.Builder
	b.WriteString(`(?i)^`)
	for _, r := range pattern {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString(`$`)
	return regexp.Compile(b.String())
}
