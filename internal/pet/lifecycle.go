package pet

import (
	"log"
	"time"
)

// Tick applies continuous decay and growth for the time elapsed since
// LastUpdate. A tick with no elapsed time changes nothing.
func (p *Pet) Tick(now time.Time) {
	hours := now.Sub(p.LastUpdate).Hours()
	if hours <= 0 {
		return
	}

	p.Hunger = clamp(p.Hunger + HungerRisePerHour*hours)
	p.Clean = clamp(p.Clean - CleanDropPerHour*hours)

	// Mood suffers from hunger and dirt
	if p.Hunger >= HungryThreshold {
		p.Mood = clamp(p.Mood - HungryMoodDropPerHour*hours)
	}
	if p.Clean <= DirtyThreshold {
		p.Mood = clamp(p.Mood - DirtyMoodDropPerHour*hours)
	}

	if p.Clean < SickCleanBelow && !p.Sick && RandFloat64() < SicknessHazardPerHour*hours {
		p.Sick = true
		log.Printf("Pet fell sick (clean %.1f)", p.Clean)
	}

	if p.Sick {
		p.Health = clamp(p.Health - SickHealthDropPerHour*hours)
	}

	if p.Health <= 0 && p.CurrentAction != ActionSleep {
		p.collapse()
	}

	if p.LastInteractionReset.Before(startOfDay(now)) {
		p.DailyInteractionGrowth = 0
		p.LastInteractionReset = now
	}

	p.AddExperience(PassiveExpPerHour * hours)
	p.LastUpdate = now
}

// collapse forces the pet to sleep. Running timers are dropped so a due
// completion cannot wake it back up.
func (p *Pet) collapse() {
	log.Printf("Pet collapsed while %s, forcing sleep", p.CurrentAction)
	p.State = ActionState{}
	p.AutoAction = false
	p.CurrentAction = ActionSleep
}

// OfflineSettle catches up on time spent while the process was not
// running. Absences over a day are forgiven entirely.
func (p *Pet) OfflineSettle(now time.Time) {
	elapsed := now.Sub(p.LastUpdate)
	if elapsed > DormancyThreshold {
		log.Printf("Dormancy protection: offline for %.1f hours, skipping decay", elapsed.Hours())
		p.LastUpdate = now
		return
	}

	p.Tick(now)

	if elapsed > OfflineProtectAfter {
		p.Hunger = min(p.Hunger, OfflineHungerCap)
		p.Clean = max(p.Clean, OfflineCleanFloor)
	}
}

// Feed lowers hunger and optionally lifts mood.
func (p *Pet) Feed(hungerReduction, moodBonus float64) {
	p.Hunger = clamp(p.Hunger - hungerReduction)
	p.Mood = clamp(p.Mood + moodBonus)
}

// Wash raises cleanliness and optionally mood.
func (p *Pet) Wash(cleanBonus, moodBonus float64) {
	p.Clean = clamp(p.Clean + cleanBonus)
	p.Mood = clamp(p.Mood + moodBonus)
}

// Play raises mood.
func (p *Pet) Play(moodBonus float64) {
	p.Mood = clamp(p.Mood + moodBonus)
}

// TakeMedicine cures sickness, restores health and costs some mood.
func (p *Pet) TakeMedicine(healthBonus, moodPenalty float64) {
	p.Sick = false
	p.Health = clamp(p.Health + healthBonus)
	p.Mood = clamp(p.Mood - moodPenalty)
}

// Touch is a click on the pet.
func (p *Pet) Touch() float64 {
	p.Mood = clamp(p.Mood + TouchMoodBonus)
	return p.AddInteractionExp(TouchExp)
}

// AddInteractionExp grants up to amount experience without letting the
// day's interaction growth pass MaxDailyInteractionGrowth. It returns what
// was actually granted.
func (p *Pet) AddInteractionExp(amount float64) float64 {
	if amount <= 0 || p.DailyInteractionGrowth >= MaxDailyInteractionGrowth {
		return 0
	}
	gain := min(amount, MaxDailyInteractionGrowth-p.DailyInteractionGrowth)
	p.AddExperience(gain)
	p.DailyInteractionGrowth += gain
	return gain
}

// ApplyPendingEffects consumes the staged payload written when a timed
// item was started. Without a payload it does nothing.
func (p *Pet) ApplyPendingEffects() bool {
	staged := p.State.Staged
	if staged == nil {
		return false
	}
	p.ApplyEffects(*staged)
	p.AddInteractionExp(PendingEffectsExp)
	p.State.Staged = nil
	return true
}

// CheckEvolution advances the stage when the level allows it and returns
// the new stage.
func (p *Pet) CheckEvolution() (Stage, bool) {
	switch {
	case p.Stage == StageEgg && p.Level >= BabyLevel:
		p.Stage = StageBaby
	case p.Stage == StageBaby && p.Level >= AdultLevel:
		p.Stage = StageAdult
	default:
		return "", false
	}
	log.Printf("Pet evolved to %s at level %d", p.Stage, p.Level)
	return p.Stage, true
}

func startOfDay(t time.Time) time.Time {
	local := t.Local()
	y, m, d := local.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
