package adventure

import (
	"deskpet/internal/content"
	"deskpet/internal/weighted"
)

// tier is one roll band. A tier applies when roll < below; the last tier
// of a table catches everything above.
type tier struct {
	below   float64
	message string
	apply   func(rnd weighted.Source, o *Outcome)
}

func items(grants ...content.ItemGrant) []content.ItemGrant { return grants }

func one(id string) content.ItemGrant { return content.ItemGrant{ID: id, Count: 1} }

var outcomeTables = map[string][]tier{
	"park": {
		{20, "park_stroll", func(_ weighted.Source, o *Outcome) {
			o.Rewards.Effects.Mood = 10
		}},
		{60, "park_flower", func(rnd weighted.Source, o *Outcome) {
			o.Rewards.Coins = weighted.IntBetween(rnd, 10, 29)
			o.Rewards.Exp = 10
		}},
		{90, "park_friend", func(_ weighted.Source, o *Outcome) {
			o.Rewards.Exp = 20
			o.Rewards.Effects.Charm = 1
		}},
		{0, "park_toy", func(_ weighted.Source, o *Outcome) {
			o.Rewards.Items = items(one("ball"))
			o.Rewards.Exp = 30
		}},
	},
	"forest": {
		{30, "forest_lost", func(_ weighted.Source, o *Outcome) {
			o.Cost.Mood = -15
			o.Cost.Health = -5
			o.Rewards.Exp = 15
		}},
		{60, "forest_berry", func(_ weighted.Source, o *Outcome) {
			o.Rewards.Items = items(one("bread"))
			o.Rewards.Exp = 40
		}},
		{85, "forest_herb", func(_ weighted.Source, o *Outcome) {
			o.Rewards.Items = items(one("mystic_herb"))
			o.Rewards.Exp = 60
		}},
		{0, "forest_elf", func(_ weighted.Source, o *Outcome) {
			o.Rewards.Coins = 200
			o.Rewards.Items = items(one("feast"))
			o.Rewards.Effects.Charm = 2
			o.Rewards.Exp = 120
		}},
	},
	"city": {
		{40, "city_splash", func(_ weighted.Source, o *Outcome) {
			o.Cost.Clean = -40
			o.Cost.Mood = -25
		}},
		{70, "city_work", func(_ weighted.Source, o *Outcome) {
			o.Rewards.Coins = 120
			o.Rewards.Exp = 60
		}},
		{90, "city_arcade", func(_ weighted.Source, o *Outcome) {
			o.Rewards.Effects.Dexterity = 3
			o.Rewards.Effects.Intelligence = 2
			o.Rewards.Exp = 100
		}},
		{0, "city_tech", func(_ weighted.Source, o *Outcome) {
			o.Rewards.Items = items(one("game_console"))
			o.Rewards.Exp = 180
		}},
	},
	"ruins": {
		{40, "ruins_trap", func(_ weighted.Source, o *Outcome) {
			o.Cost.Health = -20
			o.Cost.Clean = -50
			o.Cost.Mood = -30
		}},
		{70, "ruins_coin", func(_ weighted.Source, o *Outcome) {
			o.Rewards.Items = items(one("ancient_coin"))
			o.Rewards.Exp = 80
		}},
		{90, "ruins_text", func(_ weighted.Source, o *Outcome) {
			o.Rewards.Effects.Intelligence = 5
			o.Rewards.Exp = 150
		}},
		{0, "ruins_feather", func(_ weighted.Source, o *Outcome) {
			o.Rewards.Items = items(one("golden_feather"))
			o.Rewards.Effects.Luck = 5
			o.Rewards.Exp = 300
		}},
	},
	"space_station": {
		{50, "space_guard", func(_ weighted.Source, o *Outcome) {
			o.Cost.Mood = -50
			o.Rewards.Exp = 20
		}},
		{75, "space_training", func(_ weighted.Source, o *Outcome) {
			o.Rewards.Effects.Strength = 3
			o.Rewards.Effects.Endurance = 3
			o.Rewards.Exp = 100
		}},
		{95, "space_tech", func(_ weighted.Source, o *Outcome) {
			o.Rewards.Items = items(one("alien_chip"))
			o.Rewards.Exp = 200
		}},
		{0, "space_contact", func(_ weighted.Source, o *Outcome) {
			o.Rewards.Items = items(content.ItemGrant{ID: "alien_chip", Count: 2}, one("nutrition"))
			o.Rewards.Effects.Charm = 5
			o.Rewards.Exp = 500
		}},
	},
}

// resolve picks the tier for roll and fills o from it.
func resolve(table []tier, roll float64, rnd weighted.Source, o *Outcome) {
	for i, t := range table {
		if i == len(table)-1 || roll < t.below {
			o.Message = messagePrefix + t.message
			t.apply(rnd, o)
			return
		}
	}
}

// hasTable reports whether locationID has an outcome table.
func hasTable(locationID string) bool {
	_, ok := outcomeTables[locationID]
	return ok
}

// tiers returns the message keys of a location's outcome table, lowest roll
// first.
func tiers(locationID string) []string {
	var keys []string
	for _, t := range outcomeTables[locationID] {
		keys = append(keys, messagePrefix+t.message)
	}
	return keys
}
