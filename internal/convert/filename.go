package convert

import "strings"

// OutputExtension is appended to every converted file name
const OutputExtension = ".webp"

// WebPFileName replaces the extension of name with .webp.
// A name without a dot keeps its full text and gets the extension appended.
func WebPFileName(name string) string {
	base := name
	if idx := strings.LastIndex(name, "."); idx != -1 {
		base = name[:idx]
	}
	return base + OutputExtension
}
