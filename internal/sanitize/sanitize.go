// Package sanitize maps arbitrary track and playlist titles to
// filesystem-safe strings.
package sanitize

import "strings"

// Placeholder replaces empty or absent names.
const Placeholder = "Unknown_Track"

// Characters illegal in filenames on at least one supported platform.
var illegal = strings.NewReplacer(
	`\`, "", `/`, "", `*`, "", `?`, "", `:`, "", `"`, "", `<`, "", `>`, "", `|`, "",
)

// Name strips illegal filename characters and surrounding whitespace.
// An empty input (before or after cleaning) yields Placeholder.
func Name(s string) string {
	cleaned := strings.TrimSpace(illegal.Replace(s))
	if cleaned == "" {
		return Placeholder
	}
	return cleaned
}
