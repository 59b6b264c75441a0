package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TitleCase trims and title-cases free-text fields the way they are persisted.
// A fresh caser is created per call since cases.Caser is stateful.
func TitleCase(value string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(value))
}

// NormalizeEmail trims and lowercases an email address.
// Emails are compared and persisted in this normalized form.
func NormalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
