package adventure

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deskpet/internal/achievement"
	"deskpet/internal/content"
	"deskpet/internal/pet"
	"deskpet/internal/player"
)

func testRepo(t *testing.T) *content.Repository {
	t.Helper()
	repo, err := content.NewRepository(content.Pack{
		Adventures: []content.Location{
			{ID: "park", Name: "Park", Cost: 20, Risk: "low"},
			{ID: "forest", Name: "Forest", Cost: 30, Risk: "medium", Requirements: content.Requirement{Level: 3}},
			{ID: "city", Name: "City", Cost: 25, Risk: "medium", Requirements: content.Requirement{Dexterity: 15}},
			{ID: "ruins", Name: "Ruins", Cost: 40, Risk: "high"},
			{ID: "space_station", Name: "Station", Cost: 50, Risk: "extreme"},
			{ID: "pond", Name: "Pond", Cost: 5, Risk: "low"},
		},
		Achievements: []content.Achievement{
			{ID: "explorer", Condition: content.Condition{Type: content.CondAdventureCount, Target: 1}},
		},
	})
	require.NoError(t, err)
	return repo
}

// fixed returns a source that yields vals in order and then repeats the last.
func fixed(vals ...float64) func() float64 {
	i := 0
	return func() float64 {
		v := vals[min(i, len(vals)-1)]
		i++
		return v
	}
}

func newPet() pet.Pet {
	p := pet.New("Test", time.Now())
	p.Luck = 0
	return p
}

func TestTooHungryScenario(t *testing.T) {
	r := NewResolver(testRepo(t), nil, fixed(0.5))
	p := newPet()
	p.Hunger = 90
	before := p

	o := r.StartAdventure(&p, "park")
	assert.False(t, o.Success)
	assert.Equal(t, "adventure_results.too_hungry", o.Message)
	assert.Equal(t, before, p)
}

func TestGating(t *testing.T) {
	r := NewResolver(testRepo(t), nil, fixed(0.5))

	p := newPet()
	assert.Equal(t, ReasonUnknownLocation, r.StartAdventure(&p, "moon").Message)
	assert.Equal(t, ReasonLevelLow, r.StartAdventure(&p, "forest").Message)
	assert.Equal(t, ReasonDexterityLow, r.StartAdventure(&p, "city").Message)

	p.Health = 19
	assert.Equal(t, ReasonSick, r.StartAdventure(&p, "park").Message)

	p.Health = 100
	p.Hunger = 80
	assert.True(t, r.StartAdventure(&p, "park").Success, "80 + 20 is exactly full")
}

func TestAvailableLocationsFiltersByLevelOnly(t *testing.T) {
	r := NewResolver(testRepo(t), nil, nil)
	p := newPet()

	var ids []string
	for _, loc := range r.AvailableLocations(&p) {
		ids = append(ids, loc.ID)
	}
	assert.Equal(t, []string{"park", "city", "ruins", "space_station", "pond"}, ids)

	p.Level = 3
	assert.Len(t, r.AvailableLocations(&p), 6)
}

func TestOutcomeTiers(t *testing.T) {
	tests := []struct {
		location string
		draw     float64
		luck     float64
		want     string
	}{
		{"park", 0.0, 0, "adventure_results.park_stroll"},
		{"park", 0.1999, 0, "adventure_results.park_stroll"},
		{"park", 0.20, 0, "adventure_results.park_flower"},
		{"park", 0.60, 0, "adventure_results.park_friend"},
		{"park", 0.90, 0, "adventure_results.park_toy"},
		{"park", 0.99, 60, "adventure_results.park_toy"},
		{"park", 0.75, 40, "adventure_results.park_toy"},
		{"forest", 0.29, 0, "adventure_results.forest_lost"},
		{"forest", 0.30, 0, "adventure_results.forest_berry"},
		{"forest", 0.60, 0, "adventure_results.forest_herb"},
		{"forest", 0.85, 0, "adventure_results.forest_elf"},
		{"city", 0.39, 0, "adventure_results.city_splash"},
		{"city", 0.40, 0, "adventure_results.city_work"},
		{"city", 0.70, 0, "adventure_results.city_arcade"},
		{"city", 0.90, 0, "adventure_results.city_tech"},
		{"ruins", 0.0, 0, "adventure_results.ruins_trap"},
		{"ruins", 0.45, 0, "adventure_results.ruins_coin"},
		{"ruins", 0.80, 0, "adventure_results.ruins_text"},
		{"ruins", 0.95, 0, "adventure_results.ruins_feather"},
		{"space_station", 0.49, 0, "adventure_results.space_guard"},
		{"space_station", 0.50, 0, "adventure_results.space_training"},
		{"space_station", 0.75, 0, "adventure_results.space_tech"},
		{"space_station", 0.95, 0, "adventure_results.space_contact"},
		{"pond", 0.5, 0, KeyNothingFound},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			r := NewResolver(testRepo(t), nil, fixed(tt.draw))
			p := newPet()
			p.Level = 3
			p.Dexterity = 15
			p.Luck = tt.luck
			p.Hunger = 0

			o := r.StartAdventure(&p, tt.location)
			require.True(t, o.Success, o.Message)
			assert.Equal(t, tt.want, o.Message)
		})
	}
}

func TestTierTablesAreComplete(t *testing.T) {
	for _, id := range []string{"park", "forest", "city", "ruins", "space_station"} {
		assert.True(t, hasTable(id), id)
		assert.Len(t, tiers(id), 4, id)
	}
	assert.False(t, hasTable("pond"))
}

func TestParkFlowerCoins(t *testing.T) {
	// first draw picks the tier, second the coin spread
	r := NewResolver(testRepo(t), nil, fixed(0.3, 0.0))
	p := newPet()
	o := r.StartAdventure(&p, "park")
	assert.Equal(t, "adventure_results.park_flower", o.Message)
	assert.Equal(t, 10, o.Rewards.Coins)

	r = NewResolver(testRepo(t), nil, fixed(0.3, 0.9999))
	o = r.StartAdventure(&p, "park")
	assert.Equal(t, 29, o.Rewards.Coins)
}

func TestApplyOutcome(t *testing.T) {
	repo := testRepo(t)
	r := NewResolver(repo, achievement.NewEvaluator(repo), fixed(0.0))
	p := newPet()
	p.Level = 3
	p.Hunger = 10
	pl := player.New()

	o := r.StartAdventure(&p, "forest")
	require.True(t, o.Success)
	require.Equal(t, "adventure_results.forest_lost", o.Message)

	unlocks := r.Apply(&p, &pl, o)
	assert.Equal(t, 40.0, p.Hunger)
	assert.Equal(t, 65.0, p.Mood)
	assert.Equal(t, 95.0, p.Health)
	assert.Equal(t, 1, pl.Stats.AdventureCount)
	require.Len(t, unlocks, 1)
	assert.Equal(t, "explorer", unlocks[0].ID)
}

func TestApplyRewards(t *testing.T) {
	r := NewResolver(testRepo(t), nil, fixed(0.99))
	p := newPet()
	pl := player.New()
	p.Hunger = 0

	o := r.StartAdventure(&p, "space_station")
	require.Equal(t, "adventure_results.space_contact", o.Message)
	r.Apply(&p, &pl, o)

	assert.Equal(t, 2, pl.Count("alien_chip"))
	assert.Equal(t, 1, pl.Count("nutrition"))
	assert.Equal(t, 15.0, p.Charm)
	assert.Equal(t, 50.0, p.Hunger)
	assert.Equal(t, 500.0, p.Exp)
}

func TestApplyIgnoresFailure(t *testing.T) {
	r := NewResolver(testRepo(t), nil, nil)
	p := newPet()
	pl := player.New()
	assert.Nil(t, r.Apply(&p, &pl, fail(ReasonSick)))
	assert.Zero(t, pl.Stats.AdventureCount)
}
