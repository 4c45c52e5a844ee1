package services

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	nameMinLen     = 2
	nameMaxLen     = 50
	passwordMinLen = 6
)

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// normalizeEmail trims and lowercases an address. All lookups and
// writes go through this, so the unique index sees one spelling per
// address.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validName(name string) (string, bool) {
	name = strings.TrimSpace(name)
	// Length limits are in characters, not bytes.
	if n := utf8.RuneCountInString(name); n < nameMinLen || n > nameMaxLen {
		return name, false
	}
	return name, true
}

func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func validPassword(password string) bool {
	return len(password) >= passwordMinLen
}
