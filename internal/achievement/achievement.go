// Package achievement unlocks achievements from player statistics.
package achievement

import (
	"log"

	"deskpet/internal/content"
	"deskpet/internal/pet"
	"deskpet/internal/player"
)

// Source supplies achievement definitions.
type Source interface {
	Achievements() []content.Achievement
}

// Evaluator checks achievements against a player's statistics.
type Evaluator struct {
	source Source
}

// NewEvaluator returns an Evaluator reading definitions from src.
func NewEvaluator(src Source) *Evaluator {
	return &Evaluator{source: src}
}

// Satisfied reports whether the player's statistics meet cond.
func Satisfied(cond content.Condition, stats player.Stats) bool {
	var have int
	switch cond.Type {
	case content.CondWorkCount:
		have = stats.WorkCount
	case content.CondStudyCount:
		have = stats.StudyCount
	case content.CondAdventureCount:
		have = stats.AdventureCount
	case content.CondEarnMoney:
		have = stats.TotalCoinsEarned
	case content.CondItemsUsed:
		have = stats.ItemsUsed
	default:
		return false
	}
	return have >= cond.Target
}

// CheckAll unlocks and rewards every achievement that is newly satisfied
// and returns them in definition order. Achievements already held are
// skipped without being evaluated.
func (e *Evaluator) CheckAll(pl *player.Player, p *pet.Pet) []content.Achievement {
	var unlocked []content.Achievement
	for _, a := range e.source.Achievements() {
		if pl.HasAchievement(a.ID) {
			continue
		}
		if !Satisfied(a.Condition, pl.Stats) {
			continue
		}

		pl.Unlock(a.ID)
		grant(a.Reward, pl, p)
		unlocked = append(unlocked, a)
	}
	return unlocked
}

func grant(r content.Reward, pl *player.Player, p *pet.Pet) {
	if r.Coins > 0 {
		pl.Coins += r.Coins
	}
	if r.Exp > 0 && p != nil {
		p.AddExperience(r.Exp)
	}
	for _, it := range r.Items {
		pl.AddItem(it.ID, it.Count)
	}
	if r.Coins > 0 || r.Exp > 0 || len(r.Items) > 0 {
		log.Printf("Achievement reward: %d coins, %.0f exp, %d item kinds", r.Coins, r.Exp, len(r.Items))
	}
}
