// Package alphabet holds the fixed letter sets a secret word may be drawn from.
package alphabet

import (
	"strings"
	"unicode/utf8"
)

// Script names a supported alphabet
type Script string

const (
	Ukrainian Script = "uk"
	Russian   Script = "ru"
	English   Script = "en"
)

var letters = map[Script][]string{
	Ukrainian: {"а", "б", "в", "г", "ґ", "д", "е", "є", "ж", "з", "и", "і", "ї", "й", "к", "л", "м", "н", "о", "п", "р", "с", "т", "у", "ф", "х", "ц", "ч", "ш", "щ", "ь", "ю", "я"},
	Russian:   {"а", "б", "в", "г", "д", "е", "ё", "ж", "з", "и", "й", "к", "л", "м", "н", "о", "п", "р", "с", "т", "у", "ф", "х", "ц", "ч", "ш", "щ", "ъ", "ы", "ь", "э", "ю", "я"},
	English:   {"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m", "n", "o", "p", "q", "r", "s", "t", "u", "v", "w", "x", "y", "z"},
}

// detectOrder is the preference order when a word fits several scripts.
var detectOrder = []Script{Ukrainian, Russian, English}

// Scripts returns the supported scripts in detection order
func Scripts() []Script {
	return append([]Script(nil), detectOrder...)
}

// For returns the ordered letters of a script. The result is a fresh slice
// the caller may modify. Unknown scripts yield nil.
func For(script Script) []string {
	return append([]string(nil), letters[script]...)
}

// Contains reports whether letter is a single letter of script
func Contains(script Script, letter string) bool {
	if utf8.RuneCountInString(letter) != 1 {
		return false
	}
	for _, l := range letters[script] {
		if l == letter {
			return true
		}
	}
	return false
}

// Detect returns the first script containing every rune of the lower-cased
// word. It reports false for an empty word or a word mixing scripts.
func Detect(word string) (Script, bool) {
	word = strings.ToLower(word)
	if word == "" {
		return "", false
	}
	for _, script := range detectOrder {
		if covers(script, word) {
			return script, true
		}
	}
	return "", false
}

func covers(script Script, word string) bool {
	for _, r := range word {
		if !Contains(script, string(r)) {
			return false
		}
	}
	return true
}
