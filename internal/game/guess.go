package game

import "strings"

// GuessCorrect reports whether a guess hits the round's word. The match is
// case-sensitive substring containment, so "a blue whale" matches "whale".
func GuessCorrect(guess, word string) bool {
	return strings.Contains(guess, word)
}
