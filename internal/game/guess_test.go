package game

import "testing"

func TestGuessCorrectSubstring(t *testing.T) {
	if !GuessCorrect("whale", "whale") {
		t.Fatal("exact match should be correct")
	}
	if !GuessCorrect("is it a blue whale?", "whale") {
		t.Fatal("guess containing the word should be correct")
	}
	if GuessCorrect("wha le", "whale") {
		t.Fatal("split word should not match")
	}
	if GuessCorrect("Whale", "whale") {
		t.Fatal("match is case-sensitive")
	}
	if GuessCorrect("whal", "whale") {
		t.Fatal("partial word should not match")
	}
}
