package names

// defaultAccounts are the common built-in account names from OWASP's
// guessable user account test (OWASP-AT-003).
var defaultAccounts = []string{"admin", "administrator", "root", "system", "guest", "operator", "super"}

// DefaultAccounts returns a fresh copy of the default account names.
func DefaultAccounts() []string {
	out := make([]string, len(defaultAccounts))
	copy(out, defaultAccounts)
	return out
}
