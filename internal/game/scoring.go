package game

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/ThakurMayank5/skribbl-rooms/internal/protocol"
)

// MaskWord hides every letter and digit of word behind an underscore.
// Spaces, hyphens, apostrophes and other punctuation stay visible so the
// word layout can be read.
func MaskWord(word string) string {
	var b strings.Builder
	b.Grow(len(word))
	for _, r := range word {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteByte('_')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func normalizeGuess(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func matchesWord(guess, word string) bool {
	return normalizeGuess(guess) == normalizeGuess(word)
}

// guessScore decays linearly from base+multiplier at the start of the
// drawing phase down to base at its end.
func guessScore(elapsed, total time.Duration) int {
	left := 0.0
	if total > 0 {
		left = 1 - float64(elapsed)/float64(total)
	}
	left = max(0, min(1, left))
	return int(guessScoreBase + guessScoreMultiplier*left)
}

func drawerScore(rosterSize int) int {
	if rosterSize <= 0 {
		return 0
	}
	return drawerScorePool / rosterSize
}

// rankPlayers orders players by score, ties keeping roster order, and
// stores the resulting rank on each player.
func rankPlayers(players []*Player) []protocol.PlayerData {
	ordered := make([]*Player, len(players))
	copy(ordered, players)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].score > ordered[j].score
	})

	list := make([]protocol.PlayerData, 0, len(ordered))
	for i, p := range ordered {
		p.rank = i + 1
		list = append(list, protocol.PlayerData{
			Username:  p.username,
			IsDrawing: p.isDrawing,
			Score:     p.score,
			Rank:      p.rank,
		})
	}
	return list
}
