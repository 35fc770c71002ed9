package utils

import "regexp"

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidHexColor reports whether s is a CSS hex colour like "#fff" or
// "#4B0082". Custom theme palettes only accept this form.
func ValidHexColor(s string) bool {
	return hexColorPattern.MatchString(s)
}
