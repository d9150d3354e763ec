// Package words supplies the secret words drawers have to sketch. Lists are
// embedded per difficulty and selection is uniform.
package words

import (
	"bufio"
	"crypto/rand"
	_ "embed"
	"fmt"
	"math/big"
	"strings"
	"sync"
)

//go:embed easy.txt
var embeddedEasy string

//go:embed medium.txt
var embeddedMedium string

//go:embed hard.txt
var embeddedHard string

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Source hands out random words by difficulty. The zero value is not usable;
// construct with NewSource.
type Source struct {
	mu    sync.Mutex
	lists map[string][]string
}

func NewSource() *Source {
	return &Source{
		lists: map[string][]string{
			DifficultyEasy:   parseList(embeddedEasy),
			DifficultyMedium: parseList(embeddedMedium),
			DifficultyHard:   parseList(embeddedHard),
		},
	}
}

// NextWord returns a uniformly chosen word from the difficulty's list.
func (s *Source) NextWord(difficulty string) (string, error) {
	s.mu.Lock()
	list, ok := s.lists[difficulty]
	s.mu.Unlock()
	if !ok {
		return "", fmt.Errorf("unknown difficulty %q", difficulty)
	}
	if len(list) == 0 {
		return "", fmt.Errorf("no words for difficulty %q", difficulty)
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(list))))
	if err != nil {
		return "", err
	}
	return list[n.Int64()], nil
}

func parseList(raw string) []string {
	var list []string
	scanner := bufio.NewScanner(strings.NewReader(raw))
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		list = append(list, strings.ToLower(word))
	}
	return list
}
