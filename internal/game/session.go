// Package game hosts one pet and its owner: it loads and saves them,
// drives the simulation tick and exposes every player-facing operation.
// All methods are safe for concurrent use.
package game

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"deskpet/internal/achievement"
	"deskpet/internal/action"
	"deskpet/internal/adventure"
	"deskpet/internal/content"
	"deskpet/internal/dialog"
	"deskpet/internal/economy"
	"deskpet/internal/pet"
	"deskpet/internal/player"
	"deskpet/internal/store"
	"deskpet/internal/weighted"
)

// WorkBonusExp is the plain experience granted on top of pay for every
// finished shift.
const WorkBonusExp = 20

// Notice keys.
const (
	KeyEarnedMoney   = "tray.earned_money"
	KeyUnlocked      = "tray.unlock_achievement"
	KeyStudyComplete = "tray.study_complete"
	KeyEatingDone    = "messages.eating_done"
	KeyCleaningDone  = "messages.cleaning_done"
	KeyPlayingDone   = "messages.playing_done"
	KeyActionDone    = "messages.action_done"
	KeyEvolution     = "messages.evolution"
	KeyLevelUp       = "messages.level_up"
	KeyCollapsed     = "messages.collapsed"
	KeyDialog        = "dialog.line"
)

// Notice is something the host should tell the player. Key is a stable
// lookup key; Args fill its placeholders.
type Notice struct {
	Key  string         `json:"key"`
	Args map[string]any `json:"args,omitempty"`
}

func notice(key string, kv ...any) Notice {
	n := Notice{Key: key}
	if len(kv) > 0 {
		n.Args = make(map[string]any, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			n.Args[kv[i].(string)] = kv[i+1]
		}
	}
	return n
}

func unlockNotices(unlocks []content.Achievement) []Notice {
	var out []Notice
	for _, a := range unlocks {
		out = append(out, notice(KeyUnlocked, "name", a.Name))
	}
	return out
}

// Snapshot is a copy of the game state at one instant.
type Snapshot struct {
	Pet      pet.Pet       `json:"pet"`
	Player   player.Player `json:"player"`
	Status   string        `json:"status"`
	Mode     Mode          `json:"mode"`
	Progress float64       `json:"progress"`
	AgeDays  int           `json:"age_days"`
	Now      time.Time     `json:"now"`
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option { return func(s *Session) { s.clock = c } }

// WithRand replaces the random source used for dialog and adventures.
func WithRand(rnd weighted.Source) Option { return func(s *Session) { s.rnd = rnd } }

// Session owns the pet and player.
type Session struct {
	mu sync.Mutex

	clock Clock
	rnd   weighted.Source
	store store.Store

	repo       *content.Repository
	rules      *economy.Rules
	adventures *adventure.Resolver
	dialog     *dialog.Selector

	pet    pet.Pet
	player player.Player
}

// New builds a session over repo. st may be nil for a session that is
// never persisted.
func New(repo *content.Repository, st store.Store, opts ...Option) *Session {
	s := &Session{
		clock: RealClock{},
		rnd:   rand.Float64,
		store: st,
		repo:  repo,
	}
	for _, opt := range opts {
		opt(s)
	}
	ev := achievement.NewEvaluator(repo)
	s.rules = economy.NewRules(repo, ev)
	s.adventures = adventure.NewResolver(repo, ev, s.rnd)
	s.dialog = dialog.NewSelector(dialog.DefaultRules, repo, s.rnd)
	return s
}

// Load restores the saved game and settles the time spent offline. With
// no save it starts a new egg called name. It reports whether an existing
// save was found.
func (s *Session) Load(name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if s.store == nil {
		s.fresh(name, now)
		return false, nil
	}

	data, err := s.store.Load()
	if errors.Is(err, store.ErrNoSave) {
		s.fresh(name, now)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load game: %w", err)
	}

	s.pet = data.Pet
	s.player = data.Player
	if s.player.Inventory == nil {
		s.player.Inventory = make(map[string]int)
	}
	if !s.pet.CurrentAction.Valid() {
		log.Printf("Unknown saved action %q, resetting to idle", s.pet.CurrentAction)
		s.pet.CurrentAction = pet.ActionIdle
	}
	if a := s.pet.CurrentAction; pet.SlotFor(a) != pet.SlotNone && s.pet.State.Timer(a) == nil {
		log.Printf("Saved action %s has no timer, resetting to idle", a)
		action.ResetState(&s.pet, a)
	}
	s.pet.OfflineSettle(now)
	log.Printf("Loaded %s (level %d, %d coins), last saved %s", s.pet.Name, s.pet.Level, s.player.Coins, data.LastSaved.Format(time.RFC3339))
	return true, nil
}

func (s *Session) fresh(name string, now time.Time) {
	s.pet = pet.New(name, now)
	s.player = player.New()
}

// Save persists the current state.
func (s *Session) Save() error {
	s.mu.Lock()
	data := store.SaveData{
		Version:   store.Version,
		Pet:       s.pet.Clone(),
		Player:    s.player.Clone(),
		LastSaved: s.clock.Now(),
	}
	s.mu.Unlock()

	if s.store == nil {
		return nil
	}
	if err := s.store.Save(data); err != nil {
		return fmt.Errorf("save game: %w", err)
	}
	return nil
}

// Snapshot returns a copy of the state for rendering.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()
	return Snapshot{
		Pet:      s.pet.Clone(),
		Player:   s.player.Clone(),
		Status:   pet.GetStatusWithLabel(s.pet),
		Mode:     EffectiveMode(s.player.Settings, now),
		Progress: s.pet.Progress(),
		AgeDays:  s.pet.AgeInDays(now),
		Now:      now,
	}
}

func (s *Session) ctx(now time.Time) action.Context {
	return action.Context{Pet: &s.pet, Player: &s.player, Now: now}
}

// Tick advances the simulation to now: decay, automation, due
// completions and evolution.
func (s *Session) Tick() []Notice {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	ctx := s.ctx(now)
	level := s.pet.Level
	wasAsleep := s.pet.CurrentAction == pet.ActionSleep

	var notices []Notice
	s.pet.Tick(now)
	if !wasAsleep && s.pet.CurrentAction == pet.ActionSleep {
		notices = append(notices, notice(KeyCollapsed))
	}

	if a, ok := s.rules.Automate(ctx); ok {
		notices = append(notices, notice(a.Key, "ref", a.Ref, "name", a.Name))
	}

	if out, ok := s.rules.CompleteWork(ctx, false); ok {
		notices = append(notices, notice(KeyEarnedMoney, "amount", out.Income))
		notices = append(notices, unlockNotices(out.Unlocks)...)
		s.pet.AddExperience(WorkBonusExp)
	}

	if id, ok := s.rules.CompleteStudy(ctx, false); ok {
		notices = append(notices, notice(KeyStudyComplete, "study", id))
	}

	category := s.pet.CurrentAction
	if id, ok := s.rules.CompleteActivity(ctx, false); ok {
		notices = append(notices, notice(activityDoneKey(category), "item", id))
	}

	if stage, ok := s.pet.CheckEvolution(); ok {
		notices = append(notices, notice(KeyEvolution, "stage", string(stage)))
	}
	if s.pet.Level > level {
		notices = append(notices, notice(KeyLevelUp, "level", s.pet.Level))
	}
	return notices
}

func activityDoneKey(a pet.Action) string {
	switch a {
	case pet.ActionEating:
		return KeyEatingDone
	case pet.ActionCleaning:
		return KeyCleaningDone
	case pet.ActionPlaying:
		return KeyPlayingDone
	}
	return KeyActionDone
}

// DialogTick may produce something for the pet to say. Dialog is skipped
// when bubbles are off or the current mode is silent; otherwise a picked
// line is shown with a probability that depends on the mode's dialog
// interval, and always when the pet is in a critical state.
func (s *Session) DialogTick() (dialog.Line, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	mode := EffectiveMode(s.player.Settings, now)
	if !s.player.Settings.BubbleEnabled || !mode.DialogEnabled {
		return dialog.Line{}, false
	}
	line, ok := s.dialog.Pick(&s.pet, now)
	if !ok {
		return dialog.Line{}, false
	}
	if s.rnd() > dialog.ShowChance(&s.pet, mode.DialogInterval) {
		return dialog.Line{}, false
	}
	return line, true
}

// Mode returns the mode in effect now.
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return EffectiveMode(s.player.Settings, s.clock.Now())
}

// SetMode changes the configured mode.
func (s *Session) SetMode(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.player.Settings.Mode = LookupMode(name).Name
	log.Printf("Mode set to %s", s.player.Settings.Mode)
}

// SetQuietHours replaces the do-not-disturb window.
func (s *Session) SetQuietHours(q player.QuietHours) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.player.Settings.QuietHours = q
}

// SetBubbles turns dialog bubbles on or off.
func (s *Session) SetBubbles(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.player.Settings.BubbleEnabled = on
}
