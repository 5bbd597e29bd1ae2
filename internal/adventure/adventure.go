// Package adventure resolves one-shot trips to content locations. A trip
// is decided in a single roll and never runs as a timed action.
package adventure

import (
	"log"
	"math/rand"

	"deskpet/internal/content"
	"deskpet/internal/pet"
	"deskpet/internal/player"
	"deskpet/internal/weighted"
)

const messagePrefix = "adventure_results."

// Failure keys.
const (
	ReasonUnknownLocation = messagePrefix + "unknown_location"
	ReasonLevelLow        = messagePrefix + "level_low"
	ReasonStrengthLow     = messagePrefix + "str_low"
	ReasonDexterityLow    = messagePrefix + "dex_low"
	ReasonEnduranceLow    = messagePrefix + "end_low"
	ReasonIntelligenceLow = messagePrefix + "int_low"
	ReasonLuckLow         = messagePrefix + "luk_low"
	ReasonCharmLow        = messagePrefix + "cha_low"
	ReasonTooHungry       = messagePrefix + "too_hungry"
	ReasonSick            = messagePrefix + "sick"

	// KeyNothingFound is returned for a location without an outcome table.
	KeyNothingFound = messagePrefix + "nothing_found"
)

// MinHealth is the health an adventurer needs.
const MinHealth = 20

// LuckRollFactor is how much each point of luck shifts the roll.
const LuckRollFactor = 0.5

// Locations supplies adventure definitions.
type Locations interface {
	Location(id string) (content.Location, bool)
	Locations() []content.Location
}

// Unlocker is told about the adventure count changing.
type Unlocker interface {
	CheckAll(pl *player.Player, p *pet.Pet) []content.Achievement
}

// Rewards are gains from a trip. Effects carries stat and mood deltas.
type Rewards struct {
	Coins   int                 `json:"coins,omitempty"`
	Exp     float64             `json:"exp,omitempty"`
	Items   []content.ItemGrant `json:"items,omitempty"`
	Effects pet.Effects         `json:"effects"`
}

// Outcome is the result of StartAdventure. On failure only Message is set.
// Cost.Hunger is the hunger the trip adds; the other cost fields are
// negative gauge deltas.
type Outcome struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	LocationID string      `json:"location_id,omitempty"`
	Roll       float64     `json:"roll,omitempty"`
	Rewards    Rewards     `json:"rewards"`
	Cost       pet.Effects `json:"cost"`
}

func fail(reason string) Outcome {
	return Outcome{Message: reason}
}

// Resolver decides adventure outcomes.
type Resolver struct {
	locations Locations
	unlocker  Unlocker
	rnd       weighted.Source
}

// NewResolver returns a Resolver. A nil rnd uses math/rand.
func NewResolver(locations Locations, unlocker Unlocker, rnd weighted.Source) *Resolver {
	if rnd == nil {
		rnd = rand.Float64
	}
	return &Resolver{locations: locations, unlocker: unlocker, rnd: rnd}
}

// AvailableLocations lists the locations the pet's level can see. Other
// requirements decide whether a trip may start, not whether it is shown.
func (r *Resolver) AvailableLocations(p *pet.Pet) []content.Location {
	var out []content.Location
	for _, loc := range r.locations.Locations() {
		if loc.Requirements.Level > 0 && p.Level < loc.Requirements.Level {
			continue
		}
		out = append(out, loc)
	}
	return out
}

func checkRequirements(req content.Requirement, p *pet.Pet) string {
	checks := []struct {
		need, have float64
		reason     string
	}{
		{float64(req.Level), float64(p.Level), ReasonLevelLow},
		{req.Strength, p.Strength, ReasonStrengthLow},
		{req.Dexterity, p.Dexterity, ReasonDexterityLow},
		{req.Endurance, p.Endurance, ReasonEnduranceLow},
		{req.Intelligence, p.Intelligence, ReasonIntelligenceLow},
		{req.Luck, p.Luck, ReasonLuckLow},
		{req.Charm, p.Charm, ReasonCharmLow},
	}
	for _, c := range checks {
		if c.need > 0 && c.have < c.need {
			return c.reason
		}
	}
	return ""
}

// StartAdventure checks the pet can go to locationID and rolls the
// outcome. It does not touch the pet or player; pass a successful outcome
// to Apply.
func (r *Resolver) StartAdventure(p *pet.Pet, locationID string) Outcome {
	loc, ok := r.locations.Location(locationID)
	if !ok {
		return fail(ReasonUnknownLocation)
	}
	if reason := checkRequirements(loc.Requirements, p); reason != "" {
		return fail(reason)
	}
	if p.Hunger+loc.Cost > pet.MaxGauge {
		return fail(ReasonTooHungry)
	}
	if p.Health < MinHealth {
		return fail(ReasonSick)
	}

	o := Outcome{
		Success:    true,
		LocationID: loc.ID,
		Roll:       r.rnd()*100 + p.Luck*LuckRollFactor,
		Cost:       pet.Effects{Hunger: loc.Cost},
	}
	table, ok := outcomeTables[loc.ID]
	if !ok {
		o.Message = KeyNothingFound
		return o
	}
	resolve(table, o.Roll, r.rnd, &o)
	return o
}

// Apply settles a successful outcome on the pet and player, counts the
// trip and returns any achievements it unlocked.
func (r *Resolver) Apply(p *pet.Pet, pl *player.Player, o Outcome) []content.Achievement {
	if !o.Success {
		return nil
	}

	p.ApplyEffects(o.Cost)
	p.ApplyEffects(o.Rewards.Effects)
	if o.Rewards.Exp > 0 {
		p.AddExperience(o.Rewards.Exp)
	}
	if o.Rewards.Coins > 0 {
		pl.Coins += o.Rewards.Coins
	}
	for _, it := range o.Rewards.Items {
		pl.AddItem(it.ID, it.Count)
	}
	pl.Stats.AdventureCount++
	log.Printf("Adventure to %s: %s (roll %.1f)", o.LocationID, o.Message, o.Roll)

	if r.unlocker == nil {
		return nil
	}
	return r.unlocker.CheckAll(pl, p)
}
