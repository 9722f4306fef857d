package kvstore

// Storage keys. Each owner reads and writes only its own key.
const (
	KeyAuthSession         = "harborbank.auth.session"
	KeyPreferredLanguage   = "harborbank.preferred_language"
	KeyLanguageWelcomeSeen = "harborbank.language_welcome_seen"
)

// Keys lists every key in use.
func Keys() []string {
	return []string{KeyAuthSession, KeyPreferredLanguage, KeyLanguageWelcomeSeen}
}
