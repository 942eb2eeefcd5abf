package quiz

import (
	"math/rand"
	"sort"
	"time"
)

// Selector picks a tag-balanced, difficulty-weighted subset of a question
// pool for one round. All randomness flows through the injected source so
// tests can seed it; everything before the final shuffle is deterministic
// for identical inputs.
type Selector struct {
	rng *rand.Rand
}

// NewSelector creates a Selector. A nil rng falls back to a time-seeded one.
func NewSelector(rng *rand.Rand) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Selector{rng: rng}
}

// Select returns up to count questions from pool whose tag is in allowedTags.
// An empty result means no eligible questions; that is an expected outcome,
// not an error. When count covers the whole filtered pool the round is just a
// shuffle of it. Otherwise questions are drawn round-robin across tags —
// hardest first within a tag when stats are given, random order when not —
// and the final list is shuffled so the tag interleaving is not visible.
func (s *Selector) Select(pool []Question, allowedTags map[string]bool, count int, stats map[int]AnswerStat) []Question {
	var filtered []Question
	for _, q := range pool {
		if allowedTags[q.Tag] {
			filtered = append(filtered, q)
		}
	}
	if len(filtered) == 0 {
		return nil
	}

	if count >= len(filtered) {
		s.rng.Shuffle(len(filtered), func(i, j int) {
			filtered[i], filtered[j] = filtered[j], filtered[i]
		})
		return filtered
	}

	selected := s.draw(filtered, count, stats)
	s.rng.Shuffle(len(selected), func(i, j int) {
		selected[i], selected[j] = selected[j], selected[i]
	})
	return selected
}

// draw performs the round-robin pick over per-tag groups, in first-seen tag
// order. The returned order is deterministic whenever stats are supplied.
func (s *Selector) draw(filtered []Question, count int, stats map[int]AnswerStat) []Question {
	byTag := make(map[string][]Question)
	var tags []string
	for _, q := range filtered {
		if _, seen := byTag[q.Tag]; !seen {
			tags = append(tags, q.Tag)
		}
		byTag[q.Tag] = append(byTag[q.Tag], q)
	}

	for _, tag := range tags {
		group := byTag[tag]
		if stats != nil {
			// Hardest first; stable so equal scores keep pool order.
			sort.SliceStable(group, func(i, j int) bool {
				return DifficultyScore(group[i], stats) > DifficultyScore(group[j], stats)
			})
		} else {
			s.rng.Shuffle(len(group), func(i, j int) {
				group[i], group[j] = group[j], group[i]
			})
		}
		byTag[tag] = group
	}

	selected := make([]Question, 0, count)
	idx := 0
	for len(selected) < count && len(tags) > 0 {
		pos := idx % len(tags)
		tag := tags[pos]
		if group := byTag[tag]; len(group) > 0 {
			selected = append(selected, group[0])
			byTag[tag] = group[1:]
		} else {
			tags = append(tags[:pos], tags[pos+1:]...)
		}
		idx++
	}
	return selected
}
