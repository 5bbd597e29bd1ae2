package game

import (
	"log"
	"time"

	"deskpet/internal/action"
	"deskpet/internal/adventure"
	"deskpet/internal/content"
	"deskpet/internal/economy"
	"deskpet/internal/pet"
)

// StartWork sends the pet to jobID.
func (s *Session) StartWork(jobID string) action.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rules.StartWork(s.ctx(s.clock.Now()), jobID, false)
}

// FinishWork ends the current shift early and pays it in full.
func (s *Session) FinishWork() (economy.WorkOutcome, []Notice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out, ok := s.rules.CompleteWork(s.ctx(s.clock.Now()), true)
	if !ok {
		return economy.WorkOutcome{}, nil, false
	}
	s.pet.AddExperience(WorkBonusExp)
	notices := []Notice{notice(KeyEarnedMoney, "amount", out.Income)}
	return out, append(notices, unlockNotices(out.Unlocks)...), true
}

// StartStudy enrols the pet in studyID.
func (s *Session) StartStudy(studyID string) (action.Result, []Notice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, unlocks := s.rules.StartStudy(s.ctx(s.clock.Now()), studyID)
	return res, unlockNotices(unlocks)
}

// FinishStudy completes the running course immediately.
func (s *Session) FinishStudy() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rules.CompleteStudy(s.ctx(s.clock.Now()), true)
}

// UseItem uses one item from the inventory.
func (s *Session) UseItem(itemID string) (action.Result, []Notice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, unlocks := s.rules.UseItem(s.ctx(s.clock.Now()), itemID, false)
	return res, unlockNotices(unlocks)
}

// BuyItem buys quantity of itemID.
func (s *Session) BuyItem(itemID string, quantity int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rules.BuyItem(&s.player, itemID, quantity)
}

// Adventure sends the pet to locationID and settles the result at once.
func (s *Session) Adventure(locationID string) (adventure.Outcome, []Notice) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o := s.adventures.StartAdventure(&s.pet, locationID)
	if !o.Success {
		return o, nil
	}
	unlocks := s.adventures.Apply(&s.pet, &s.player, o)
	s.pet.LastInteractionTime = s.clock.Now()
	return o, unlockNotices(unlocks)
}

// Touch pets the pet and returns the experience it granted.
func (s *Session) Touch() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pet.LastInteractionTime = s.clock.Now()
	return s.pet.Touch()
}

// Jobs lists the jobs the pet qualifies for.
func (s *Session) Jobs() []content.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rules.AvailableJobs(&s.pet)
}

// Studies lists the courses the pet may see.
func (s *Session) Studies() []content.Study {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rules.Studies(&s.pet)
}

// Shop lists every item for sale.
func (s *Session) Shop() []content.Item {
	return s.rules.Items()
}

// Locations lists the adventure spots the pet's level can reach.
func (s *Session) Locations() []content.Location {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adventures.AvailableLocations(&s.pet)
}

// Remaining returns the time left on the timer for category.
func (s *Session) Remaining(category pet.Action) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return economy.Remaining(&s.pet, category, s.clock.Now())
}

// Debug menu operations.

// DebugResetGrowth turns the pet back into a level 0 egg.
func (s *Session) DebugResetGrowth() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pet.ResetGrowth()
}

// DebugCancel drops whatever the pet is doing, sleep included, without
// applying its result.
func (s *Session) DebugCancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	action.ResetState(&s.pet, s.pet.CurrentAction)
	log.Printf("Debug: cancelled current action")
}

// DebugAddCoins credits coins.
func (s *Session) DebugAddCoins(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.player.Coins += n
	log.Printf("Debug: added %d coins", n)
}

// DebugAddExp grants experience outside the daily interaction cap.
func (s *Session) DebugAddExp(amount float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pet.AddExperience(amount)
}

// DebugSetGauges overwrites the four gauges.
func (s *Session) DebugSetGauges(hunger, clean, mood, health float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pet.Hunger, s.pet.Clean, s.pet.Mood, s.pet.Health = 0, 0, 0, 0
	s.pet.ApplyEffects(pet.Effects{Hunger: hunger, Clean: clean, Mood: mood, Health: health})
}
