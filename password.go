package vista

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMinPasswordLength is the minimum number of characters a valid
// password must have.
const DefaultMinPasswordLength = 8

// PasswordRule reports whether a password satisfies a single constraint.
type PasswordRule func(password string) bool

// RuleNotBlank rejects empty and whitespace-only passwords.
func RuleNotBlank(password string) bool {
	return strings.TrimSpace(password) != ""
}

// RuleHasUpper requires at least one uppercase letter.
func RuleHasUpper(password string) bool {
	return strings.IndexFunc(password, unicode.IsUpper) >= 0
}

// RuleHasLower requires at least one lowercase letter.
func RuleHasLower(password string) bool {
	return strings.IndexFunc(password, unicode.IsLower) >= 0
}

// RuleMinLength requires at least n characters.
func RuleMinLength(n int) PasswordRule {
	return func(password string) bool {
		return utf8.RuneCountInString(password) >= n
	}
}

// AllRules composes rules into one that passes only when every rule passes.
// An empty rule set accepts everything.
func AllRules(rules ...PasswordRule) PasswordRule {
	return func(password string) bool {
		for _, rule := range rules {
			if !rule(password) {
				return false
			}
		}
		return true
	}
}

// DefaultPasswordRules are the rules applied by ValidatePassword. There is
// no digit or symbol requirement.
var DefaultPasswordRules = []PasswordRule{
	RuleNotBlank,
	RuleHasUpper,
	RuleHasLower,
	RuleMinLength(DefaultMinPasswordLength),
}

var defaultPasswordRule = AllRules(DefaultPasswordRules...)

// ValidatePassword reports whether password is non-blank, contains an
// uppercase and a lowercase letter, and is at least eight characters long.
func ValidatePassword(password string) bool {
	return defaultPasswordRule(password)
}
