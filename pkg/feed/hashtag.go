package feed

import "strings"

// FormatHashtag renders a hashtag slot for display: leading '#' characters
// and surrounding whitespace are removed and a single '#' is added back.
// Blank input formats to "".
func FormatHashtag(v string) string {
	clean := strings.TrimSpace(strings.TrimLeft(v, "#"))
	if clean == "" {
		return ""
	}
	return "#" + clean
}
