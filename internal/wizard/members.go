package wizard

import (
	"strings"
	"unicode"
)

// MemberLabel is the short text shown inside a member's avatar bubble:
// the part before "@" for e-mail style names, whitespace removed, first three
// characters.
func MemberLabel(name string) string {
	base := strings.TrimSpace(name)
	if at := strings.Index(base, "@"); at >= 0 {
		base = base[:at]
	}
	base = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, base)

	runes := []rune(base)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return string(runes)
}
