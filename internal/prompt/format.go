package prompt

import (
	"fmt"
	"strings"

	"github.com/VonLan233/cute-illustration-agent/internal/catalog"
)

// FormatStyles renders a set of style ids as a human-readable fragment for
// the optimizer. Unknown ids are skipped; an empty result falls back to a
// generic cute-style description.
func FormatStyles(ids []string) string {
	descriptions := make([]string, 0, len(ids))
	for _, id := range ids {
		style, ok := catalog.StyleByID(id)
		if !ok {
			continue
		}
		descriptions = append(descriptions, fmt.Sprintf("%s (%s)", style.Name, strings.Join(style.Features, ", ")))
	}
	if len(descriptions) == 0 {
		return "可爱风格"
	}
	return strings.Join(descriptions, "; ")
}

// FormatSize renders a size id as "name WxH (ratio)". Unknown ids render
// blank; they never fail.
func FormatSize(id string) string {
	size, ok := catalog.SizeByID(id)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s %s (%s)", size.Name, size.Dimensions, size.Ratio)
}
