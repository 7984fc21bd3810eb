package booking

import "unicode"

// Capitalize upper-cases the first letter of the field and the first letter
// after every space or hyphen: "анна-мария иванова" -> "Анна-Мария Иванова".
// Cosmetic normalization of free-text fields, not validation.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	upperNext := true
	for i, r := range runes {
		if upperNext {
			runes[i] = unicode.ToUpper(r)
		}
		upperNext = r == ' ' || r == '-'
	}
	return string(runes)
}
