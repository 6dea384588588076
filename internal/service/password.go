package service

import (
	"fmt"
	"strings"
	"unicode"
)

const MinPasswordLength = 8

const (
	msgPasswordUpper   = "Password must contain at least one uppercase letter."
	msgPasswordLower   = "Password must contain at least one lowercase letter."
	msgPasswordDigit   = "Password must contain at least one digit."
	msgPasswordSpecial = "Password must contain at least one special character."
	msgPasswordMatch   = "Password fields didn't match."
)

// asciiPunctuation is the only set counted as special characters.
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

type charClasses struct {
	upper, lower, digit, special bool
}

func analyzeCharClasses(password string) charClasses {
	var c charClasses
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			c.upper = true
		case r >= 'a' && r <= 'z':
			c.lower = true
		case unicode.IsDigit(r):
			c.digit = true
		case strings.ContainsRune(asciiPunctuation, r):
			c.special = true
		}
	}
	return c
}

// PasswordProblems lists every complexity rule the password breaks.
func PasswordProblems(password string) []string {
	var problems []string
	if len([]rune(password)) < MinPasswordLength {
		problems = append(problems, fmt.Sprintf("This password is too short. It must contain at least %d characters.", MinPasswordLength))
	}
	c := analyzeCharClasses(password)
	if !c.upper {
		problems = append(problems, msgPasswordUpper)
	}
	if !c.lower {
		problems = append(problems, msgPasswordLower)
	}
	if !c.digit {
		problems = append(problems, msgPasswordDigit)
	}
	if !c.special {
		problems = append(problems, msgPasswordSpecial)
	}
	return problems
}
