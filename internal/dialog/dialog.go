// Package dialog picks what the pet says based on how it is feeling.
package dialog

import (
	"math/rand"
	"time"

	"deskpet/internal/pet"
	"deskpet/internal/weighted"
)

// Category names a dialog pool.
type Category string

const (
	HungerHigh Category = "hunger_high"
	CleanLow   Category = "clean_low"
	MoodLow    Category = "mood_low"
	Sick       Category = "sick"
	Generic    Category = "generic"
)

// Rule says when a category may be spoken and how likely it is.
type Rule struct {
	Category  Category
	Cooldown  time.Duration
	Weight    float64
	Condition func(p *pet.Pet) bool
}

// DefaultRules are the built-in dialog rules.
var DefaultRules = []Rule{
	{HungerHigh, time.Minute, 20, func(p *pet.Pet) bool { return p.Hunger >= pet.HungryThreshold }},
	{CleanLow, time.Minute, 20, func(p *pet.Pet) bool { return p.Clean <= pet.DirtyThreshold }},
	{MoodLow, time.Minute, 20, func(p *pet.Pet) bool { return p.Mood < pet.LowMoodThreshold }},
	{Sick, time.Minute, 30, func(p *pet.Pet) bool { return p.Sick }},
	{Generic, 3 * time.Minute, 1, func(*pet.Pet) bool { return true }},
}

// LineSource supplies the localized lines for a category key.
type LineSource interface {
	Lines(key string) []string
}

// Line is one picked utterance.
type Line struct {
	Category Category `json:"category"`
	Text     string   `json:"text"`
}

// Selector remembers when each category was last used. It is not safe for
// concurrent use.
type Selector struct {
	rules     []Rule
	lines     LineSource
	rnd       weighted.Source
	lastShown map[Category]time.Time
}

// NewSelector returns a Selector over rules. A nil rnd uses math/rand.
func NewSelector(rules []Rule, lines LineSource, rnd weighted.Source) *Selector {
	if rnd == nil {
		rnd = rand.Float64
	}
	return &Selector{
		rules:     rules,
		lines:     lines,
		rnd:       rnd,
		lastShown: make(map[Category]time.Time),
	}
}

// Pick draws a category among those whose condition holds and whose
// cooldown has passed, marks it used at now and returns a random line from
// its pool.
func (s *Selector) Pick(p *pet.Pet, now time.Time) (Line, bool) {
	var candidates []weighted.Choice[Category]
	for _, r := range s.rules {
		if !r.Condition(p) {
			continue
		}
		if last, ok := s.lastShown[r.Category]; ok && now.Sub(last) < r.Cooldown {
			continue
		}
		candidates = append(candidates, weighted.Choice[Category]{Item: r.Category, Weight: r.Weight})
	}

	cat, ok := weighted.Pick(s.rnd, candidates)
	if !ok {
		return Line{}, false
	}
	s.lastShown[cat] = now

	pool := s.lines.Lines(string(cat))
	if len(pool) == 0 {
		return Line{}, false
	}
	return Line{Category: cat, Text: pool[weighted.Index(s.rnd, len(pool))]}, true
}

// LastShown returns when category was last picked.
func (s *Selector) LastShown(c Category) (time.Time, bool) {
	t, ok := s.lastShown[c]
	return t, ok
}

// Critical reports whether the pet needs attention badly enough that its
// dialog should always be shown.
func Critical(p *pet.Pet) bool {
	return p.Sick || p.Hunger >= pet.HungryThreshold || p.Clean <= pet.DirtyThreshold || p.Mood < pet.LowMoodThreshold
}

// ShowChance is the probability a picked line is actually shown, given
// how often dialog is attempted.
func ShowChance(p *pet.Pet, interval time.Duration) float64 {
	switch {
	case Critical(p):
		return 1.0
	case interval <= 20*time.Second:
		return 0.4
	case interval >= time.Minute:
		return 0.15
	}
	return 0.3
}
