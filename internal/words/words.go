package words

import (
	"bufio"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
)

// Bank supplies secret words to rooms.
type Bank interface {
	// Draw returns up to count distinct words in random order.
	Draw(count int) []string
	Random() string
}

// List is a Bank backed by a fixed word list.
type List struct {
	words []string
}

func New(words []string) *List {
	cleaned := make([]string, 0, len(words))
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		key := strings.ToLower(w)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		cleaned = append(cleaned, w)
	}
	return &List{words: cleaned}
}

// Default returns the built-in word list.
func Default() *List {
	return New(defaultWords)
}

// Load reads a word list from a file, one word or phrase per line.
func Load(path string) (*List, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open words file %s: %w", path, err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read words file %s: %w", path, err)
	}

	list := New(lines)
	if list.Len() == 0 {
		return nil, fmt.Errorf("words file %s: %w", path, ErrEmptyList)
	}
	return list, nil
}

func (l *List) Len() int {
	return len(l.words)
}

func (l *List) Draw(count int) []string {
	if count <= 0 || len(l.words) == 0 {
		return nil
	}

	shuffled := make([]string, len(l.words))
	copy(shuffled, l.words)

	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if count > len(shuffled) {
		count = len(shuffled)
	}
	return shuffled[:count]
}

func (l *List) Random() string {
	if len(l.words) == 0 {
		return ""
	}
	return l.words[rand.IntN(len(l.words))]
}
