package youtube

import "regexp"

// Anything other than letters, digits, underscore, period, parentheses, space or hyphen.
var unsafeFilenameChars = regexp.MustCompile(`[^\p{L}\p{N}_.)( -]`)

// SanitizeFilename replaces every character that Windows, macOS or Linux might refuse in a filename with an
// underscore. Applying it more than once changes nothing.
func SanitizeFilename(name string) string {
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}
