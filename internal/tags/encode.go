package tags

import (
	"strings"
)

// Separator is placed between encoded tags by Join.
const Separator = ", "

// Encode returns tag in a form that survives Join and Parse: values containing
// a comma or a quote are wrapped in quotes with every quote doubled. Anything
// else, newlines and backslashes included, is returned as is.
func Encode(tag string) string {
	if !strings.ContainsAny(tag, `,"`) {
		return tag
	}
	return `"` + strings.ReplaceAll(tag, `"`, `""`) + `"`
}

// Join encodes every tag and joins them with Separator.
func Join(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, tag := range tags {
		if i > 0 {
			sb.WriteString(Separator)
		}
		sb.WriteString(Encode(tag))
	}
	return sb.String()
}
