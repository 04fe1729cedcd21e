package prompt

import "strings"

// modTriggers are the fixed keywords that signal an intentional stylistic
// deviation in the user's notes. The match is a plain case-insensitive
// substring test; this is the only conditional policy in prompt synthesis.
var modTriggers = []string{
	"hybrid",
	"relic",
	"aged",
	"hot rod",
}

// HasModTrigger reports whether the notes text asks for a deliberate break
// from the instrument's original design philosophy.
func HasModTrigger(notes string) bool {
	lowered := strings.ToLower(notes)
	for _, trigger := range modTriggers {
		if strings.Contains(lowered, trigger) {
			return true
		}
	}
	return false
}
