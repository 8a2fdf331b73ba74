package validators

import "strings"

// SanitizeString trims input and cuts it to maxLen bytes without splitting a rune.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen <= 0 || len(trimmed) <= maxLen {
		return trimmed
	}
	cut := maxLen
	for cut > 0 && !utf8RuneStart(trimmed[cut]) {
		cut--
	}
	return trimmed[:cut]
}

func utf8RuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
