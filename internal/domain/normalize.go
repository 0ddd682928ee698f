package domain

import "strings"

// NormalizeHeadword is the comparison key of a headword in the uniqueness
// constraint: lowercase, trimmed, with inner whitespace runs collapsed to a
// single space. Diacritics, hyphens and apostrophes are preserved, so
// "Break  the Ice" and "break the ice" collide while "café" and "cafe" do not.
func NormalizeHeadword(headword string) string {
	return strings.Join(strings.Fields(strings.ToLower(headword)), " ")
}
