// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package era finds years in free-form titles and turns them into decade labels.
package era

import (
	"regexp"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Unknown is the label returned when no year is available.
const Unknown = "unknown"

// yearPattern matches a 4-digit year from 1800 through 2099. RE2's \b only
// knows ASCII word characters, so boundaries are checked by standalone.
var yearPattern = regexp.MustCompile(`(?:18|19|20)\d{2}`)

// FindYear returns the first year between 1800 and 2099 that appears in text
// as a standalone 4-digit number: not touching a letter, number, or
// underscore in any script. Later years in the text are ignored.
func FindYear(text string) (int, bool) {
	for _, loc := range yearPattern.FindAllStringIndex(text, -1) {
		if !standalone(text, loc[0], loc[1]) {
			continue
		}
		year, err := strconv.Atoi(text[loc[0]:loc[1]])
		if err != nil {
			return 0, false
		}
		return year, true
	}
	return 0, false
}

// standalone reports whether text[start:end] has no word character on
// either side.
func standalone(text string, start, end int) bool {
	if start > 0 {
		if r, _ := utf8.DecodeLastRuneInString(text[:start]); isWord(r) {
			return false
		}
	}
	if end < len(text) {
		if r, _ := utf8.DecodeRuneInString(text[end:]); isWord(r) {
			return false
		}
	}
	return true
}

func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// Derive returns the decade label for year, truncating toward the decade
// floor (1985 -> "1980s"). When ok is false it returns Unknown.
func Derive(year int, ok bool) string {
	if !ok {
		return Unknown
	}
	return strconv.Itoa(year/10*10) + "s"
}

// Label is Derive for a year known to be present.
func Label(year int) string {
	return Derive(year, true)
}
