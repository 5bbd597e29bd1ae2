package pet

import (
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"deskpet/internal/growth"
)

// Testable time and random functions
var (
	TimeNow     = func() time.Time { return time.Now() }
	RandFloat64 = rand.Float64
)

// Stage is the growth stage. It only moves forward.
type Stage string

const (
	StageEgg   Stage = "egg"
	StageBaby  Stage = "baby"
	StageAdult Stage = "adult"
)

// Action is what the pet is doing right now.
type Action string

const (
	ActionIdle     Action = "idle"
	ActionWalk     Action = "walk"
	ActionSit      Action = "sit"
	ActionWork     Action = "work"
	ActionStudy    Action = "study"
	ActionSleep    Action = "sleep"
	ActionEating   Action = "eating"
	ActionCleaning Action = "cleaning"
	ActionPlaying  Action = "playing"
)

// Valid reports whether a is one of the known actions.
func (a Action) Valid() bool {
	switch a {
	case ActionIdle, ActionWalk, ActionSit, ActionWork, ActionStudy,
		ActionSleep, ActionEating, ActionCleaning, ActionPlaying:
		return true
	}
	return false
}

// Interruptible reports whether a new action may start from a.
func (a Action) Interruptible() bool {
	return a == ActionIdle || a == ActionWalk || a == ActionSit
}

// Slot groups the actions that share timing fields.
type Slot int

const (
	SlotNone Slot = iota
	SlotWork
	SlotStudy
	SlotActivity
)

var actionSlots = map[Action]Slot{
	ActionWork:     SlotWork,
	ActionStudy:    SlotStudy,
	ActionEating:   SlotActivity,
	ActionCleaning: SlotActivity,
	ActionPlaying:  SlotActivity,
}

var slotFields = map[Slot]func(*ActionState) **Timer{
	SlotWork:     func(s *ActionState) **Timer { return &s.Work },
	SlotStudy:    func(s *ActionState) **Timer { return &s.Study },
	SlotActivity: func(s *ActionState) **Timer { return &s.Activity },
}

// SlotFor returns the timing slot used by a. Idle-like actions and sleep have none.
func SlotFor(a Action) Slot {
	return actionSlots[a]
}

// Timer records one running time-boxed action.
type Timer struct {
	Ref       string        `json:"ref,omitempty"` // job, study or item id
	StartedAt time.Time     `json:"started_at"`
	EndsAt    time.Time     `json:"ends_at"`
	Duration  time.Duration `json:"duration"`
}

// Due reports whether the timer has elapsed at now.
func (t *Timer) Due(now time.Time) bool {
	return t != nil && !now.Before(t.EndsAt)
}

// Remaining returns the time left, never negative.
func (t *Timer) Remaining(now time.Time) time.Duration {
	if t == nil || !now.Before(t.EndsAt) {
		return 0
	}
	return t.EndsAt.Sub(now)
}

// ActionState holds the per-slot timers and the staged effect payload.
// Staged is nil when nothing is waiting to be applied.
type ActionState struct {
	Work     *Timer   `json:"work,omitempty"`
	Study    *Timer   `json:"study,omitempty"`
	Activity *Timer   `json:"activity,omitempty"`
	Staged   *Effects `json:"staged,omitempty"`
}

// Timer returns the running timer for a's slot, or nil.
func (s *ActionState) Timer(a Action) *Timer {
	field, ok := slotFields[SlotFor(a)]
	if !ok {
		return nil
	}
	return *field(s)
}

// SetTimer stores t in a's slot. Actions without a slot are ignored.
func (s *ActionState) SetTimer(a Action, t *Timer) {
	if field, ok := slotFields[SlotFor(a)]; ok {
		*field(s) = t
	}
}

// Clear drops the slot state for a. Clearing the activity slot also drops
// any staged effects.
func (s *ActionState) Clear(a Action) {
	slot := SlotFor(a)
	if field, ok := slotFields[slot]; ok {
		*field(s) = nil
	}
	if slot == SlotActivity {
		s.Staged = nil
	}
}

// Effects is an additive change to gauges and growth stats.
type Effects struct {
	Hunger       float64 `json:"hunger,omitempty" yaml:"hunger,omitempty"`
	Clean        float64 `json:"clean,omitempty" yaml:"clean,omitempty"`
	Mood         float64 `json:"mood,omitempty" yaml:"mood,omitempty"`
	Health       float64 `json:"health,omitempty" yaml:"health,omitempty"`
	Cure         bool    `json:"cure,omitempty" yaml:"cure,omitempty"`
	Strength     float64 `json:"strength,omitempty" yaml:"strength,omitempty"`
	Dexterity    float64 `json:"dexterity,omitempty" yaml:"dexterity,omitempty"`
	Endurance    float64 `json:"endurance,omitempty" yaml:"endurance,omitempty"`
	Intelligence float64 `json:"intelligence,omitempty" yaml:"intelligence,omitempty"`
	Luck         float64 `json:"luck,omitempty" yaml:"luck,omitempty"`
	Charm        float64 `json:"charm,omitempty" yaml:"charm,omitempty"`
}

// Scaled multiplies every numeric field by f. Cure is kept as is.
func (e Effects) Scaled(f float64) Effects {
	if f == 1 {
		return e
	}
	e.Hunger *= f
	e.Clean *= f
	e.Mood *= f
	e.Health *= f
	e.Strength *= f
	e.Dexterity *= f
	e.Endurance *= f
	e.Intelligence *= f
	e.Luck *= f
	e.Charm *= f
	return e
}

// Stats are the six growth stats.
type Stats struct {
	Strength     float64 `json:"strength"`
	Dexterity    float64 `json:"dexterity"`
	Endurance    float64 `json:"endurance"`
	Intelligence float64 `json:"intelligence"`
	Luck         float64 `json:"luck"`
	Charm        float64 `json:"charm"`
}

// Pet represents the simulated creature
type Pet struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Stage Stage   `json:"stage"`
	Level int     `json:"level"`
	Exp   float64 `json:"exp"`

	Hunger float64 `json:"hunger"`
	Clean  float64 `json:"clean"`
	Mood   float64 `json:"mood"`
	Health float64 `json:"health"`

	Stats

	Sick bool `json:"sick"`

	CurrentAction Action      `json:"current_action"`
	State         ActionState `json:"state"`
	AutoAction    bool        `json:"auto_action,omitempty"`

	DailyInteractionGrowth float64   `json:"daily_interaction_growth"`
	LastInteractionReset   time.Time `json:"last_interaction_reset"`
	LastInteractionTime    time.Time `json:"last_interaction_time"`

	CompletedStudies []string `json:"completed_studies,omitempty"`

	LastUpdate time.Time `json:"last_update"`
	BornAt     time.Time `json:"born_at"`
}

// New creates an egg born at now.
func New(name string, now time.Time) Pet {
	if name == "" {
		name = DefaultPetName
	}
	p := Pet{
		ID:     uuid.NewString(),
		Name:   name,
		Stage:  StageEgg,
		Hunger: InitialHunger,
		Clean:  InitialClean,
		Mood:   InitialMood,
		Health: InitialHealth,
		Stats: Stats{
			Strength:     InitialStat,
			Dexterity:    InitialStat,
			Endurance:    InitialStat,
			Intelligence: InitialStat,
			Luck:         InitialStat,
			Charm:        InitialStat,
		},
		CurrentAction:        ActionIdle,
		LastInteractionReset: now,
		LastInteractionTime:  now,
		LastUpdate:           now,
		BornAt:               now,
	}
	log.Printf("Created new pet: %s (%s)", p.Name, p.ID)
	return p
}

// AddExperience adds exp and levels up through the growth table.
func (p *Pet) AddExperience(amount float64) bool {
	level, exp, up := growth.Advance(p.Level, p.Exp, amount)
	p.Level, p.Exp = level, exp
	if up {
		log.Printf("Pet leveled up to %d (exp %.0f)", p.Level, p.Exp)
	}
	return up
}

// Progress returns the fraction of the way to the next level.
func (p *Pet) Progress() float64 {
	return growth.Progress(p.Level, p.Exp)
}

// AgeInDays returns whole days since birth.
func (p *Pet) AgeInDays(now time.Time) int {
	return growth.AgeInDays(p.BornAt, now)
}

// HasCompleted reports whether the study id was finished before.
func (p *Pet) HasCompleted(studyID string) bool {
	for _, id := range p.CompletedStudies {
		if id == studyID {
			return true
		}
	}
	return false
}

// MarkCompleted records a finished study once.
func (p *Pet) MarkCompleted(studyID string) {
	if !p.HasCompleted(studyID) {
		p.CompletedStudies = append(p.CompletedStudies, studyID)
	}
}

// Frail reports whether the pet is too unwell for work or study.
func (p *Pet) Frail() bool {
	return p.Sick || p.Health < FrailHealthBelow
}

// ApplyEffects adds e to the pet. Gauges are clamped to [0,100]; growth
// stats only have a floor of zero.
func (p *Pet) ApplyEffects(e Effects) {
	p.Hunger = clamp(p.Hunger + e.Hunger)
	p.Clean = clamp(p.Clean + e.Clean)
	p.Mood = clamp(p.Mood + e.Mood)
	p.Health = clamp(p.Health + e.Health)
	if e.Cure {
		p.Sick = false
	}
	p.Strength = floor0(p.Strength + e.Strength)
	p.Dexterity = floor0(p.Dexterity + e.Dexterity)
	p.Endurance = floor0(p.Endurance + e.Endurance)
	p.Intelligence = floor0(p.Intelligence + e.Intelligence)
	p.Luck = floor0(p.Luck + e.Luck)
	p.Charm = floor0(p.Charm + e.Charm)
}

// ResetGrowth is a debug override that puts level, exp and stage back to
// an egg. It is the only path that lowers level or stage.
func (p *Pet) ResetGrowth() {
	p.Level = 0
	p.Exp = 0
	p.Stage = StageEgg
	log.Printf("Debug: reset growth for %s", p.Name)
}

func clamp(v float64) float64 {
	return math.Max(MinGauge, math.Min(MaxGauge, v))
}

func floor0(v float64) float64 {
	return math.Max(0, v)
}

// Clone returns a deep copy of p.
func (p Pet) Clone() Pet {
	c := p
	c.State = ActionState{}
	for _, a := range []Action{ActionWork, ActionStudy, ActionEating} {
		if t := p.State.Timer(a); t != nil {
			tc := *t
			c.State.SetTimer(a, &tc)
		}
	}
	if p.State.Staged != nil {
		staged := *p.State.Staged
		c.State.Staged = &staged
	}
	c.CompletedStudies = append([]string(nil), p.CompletedStudies...)
	return c
}
