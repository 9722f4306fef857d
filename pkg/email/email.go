package email

import (
	"strings"
	"unicode"
)

// DeriveDisplayName builds a human-readable name from an address's local
// part, e.g. "jane.smith@example.com" becomes "Jane Smith". Single-token
// local parts yield just that token; an unusable local part yields "Customer".
func DeriveDisplayName(email string) string {
	localPart := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		localPart = email[:at]
	}

	parts := strings.FieldsFunc(localPart, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})

	if len(parts) == 0 {
		return "Customer"
	}

	first := capitalize(parts[0])
	if len(parts) == 1 {
		return first
	}
	return first + " " + capitalize(parts[len(parts)-1])
}

// IsPlausible performs a cheap shape check: one '@' with text on both
// sides and a dot in the domain.
func IsPlausible(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at != strings.LastIndexByte(email, '@') {
		return false
	}
	domain := email[at+1:]
	dot := strings.LastIndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1 && !strings.ContainsAny(email, " \t\n")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
