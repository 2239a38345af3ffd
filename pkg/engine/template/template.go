// Package template implements the {{variable}} substitution used by
// message and question nodes.
package template

import "regexp"

var placeholderRe = regexp.MustCompile(`\{\{\s*([a-zA-Z_][a-zA-Z0-9_]*)\s*\}\}`)

// Render replaces every {{variable}} occurrence with its value from vars.
// An unresolved variable is left as the literal placeholder text, so a
// misconfigured graph produces visible "Hi {{name}}" output instead of
// silently dropping words.
func Render(text string, vars map[string]string) string {
	if text == "" || !placeholderRe.MatchString(text) {
		return text
	}
	return placeholderRe.ReplaceAllStringFunc(text, func(match string) string {
		name := placeholderRe.FindStringSubmatch(match)[1]
		if value, ok := vars[name]; ok {
			return value
		}
		return match
	})
}

// Variables lists the distinct placeholder names referenced by a template,
// in order of first appearance.
func Variables(text string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range placeholderRe.FindAllStringSubmatch(text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}
