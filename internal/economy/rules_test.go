package economy

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deskpet/internal/achievement"
	"deskpet/internal/action"
	"deskpet/internal/content"
	"deskpet/internal/pet"
	"deskpet/internal/player"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)

func testRepo(t *testing.T) *content.Repository {
	t.Helper()
	repo, err := content.NewRepository(content.Pack{
		Jobs: []content.Job{
			{ID: "waiter", Name: "Waiter", Income: 5, Duration: 60, Requirement: content.Requirement{Charm: 10}},
			{ID: "courier", Name: "Courier", Income: 9, Duration: 1},
			{ID: "builder", Name: "Builder", Income: 15, Duration: 120, Requirement: content.Requirement{Level: 5, Strength: 30}},
			{ID: "elder", Name: "Elder", Income: 50, Duration: 60, Requirement: content.Requirement{Stages: []pet.Stage{pet.StageAdult}}},
		},
		Studies: []content.Study{
			{ID: "gym", Name: "Gym", Cost: 20, Duration: 30, CostStats: content.StudyCost{Hunger: 10},
				Effect: content.StudyEffect{Strength: 5, Exp: 10}},
			{ID: "dojo", Name: "Dojo", Cost: 40, Duration: 30, PreReqID: "gym",
				Effect: content.StudyEffect{Strength: 95}},
			{ID: "college", Name: "College", Cost: 10, Duration: 30,
				Requirements: content.StudyRequirements{Stages: []pet.Stage{pet.StageAdult}}},
			{ID: "therapy", Name: "Therapy", Cost: 0, Duration: 30, CostStats: content.StudyCost{Mood: 90}},
		},
		Items: []content.Item{
			{ID: "steak", Name: "Steak", Type: content.ItemFood, Price: 20, Duration: 15, Effects: pet.Effects{Hunger: -60, Mood: 10}},
			{ID: "bread", Name: "Bread", Type: content.ItemFood, Price: 5, Duration: 10, Effects: pet.Effects{Hunger: -30}},
			{ID: "soap", Name: "Soap", Type: content.ItemClean, Price: 10, Duration: 10, Effects: pet.Effects{Clean: 40}},
			{ID: "pill", Name: "Pill", Type: content.ItemMedicine, Price: 20, Duration: 1, Effects: pet.Effects{Cure: true, Mood: -5}},
			{ID: "herb", Name: "Herb", Type: content.ItemSpecial, Price: 80, Duration: 10, Effects: pet.Effects{Health: 20, Intelligence: 2}},
			{ID: "candy", Name: "Candy", Type: content.ItemFood, Price: 6, Effects: pet.Effects{Mood: 5}},
		},
		Achievements: []content.Achievement{
			{ID: "first_job", Condition: content.Condition{Type: content.CondWorkCount, Target: 1}, Reward: content.Reward{Coins: 10}},
		},
	})
	require.NoError(t, err)
	return repo
}

type fixture struct {
	rules *Rules
	pet   pet.Pet
	pl    player.Player
}

func newFixture(t *testing.T) *fixture {
	repo := testRepo(t)
	return &fixture{
		rules: NewRules(repo, achievement.NewEvaluator(repo)),
		pet:   pet.New("Test", t0),
		pl:    player.New(),
	}
}

func (f *fixture) ctx(now time.Time) action.Context {
	return action.Context{Pet: &f.pet, Player: &f.pl, Now: now}
}

func TestWorkCompletionScenario(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, 10.0, f.pet.Charm)

	res := f.rules.StartWork(f.ctx(t0), "waiter", false)
	require.True(t, res.OK(), res.Reason)
	assert.Equal(t, pet.ActionWork, f.pet.CurrentAction)
	assert.Equal(t, t0, f.pet.LastInteractionTime)

	_, done := f.rules.CompleteWork(f.ctx(t0.Add(59*time.Second)), false)
	assert.False(t, done)
	assert.Equal(t, pet.ActionWork, f.pet.CurrentAction)

	out, done := f.rules.CompleteWork(f.ctx(t0.Add(60*time.Second)), false)
	require.True(t, done)
	assert.Equal(t, 5, out.Income)
	assert.Equal(t, pet.ActionIdle, f.pet.CurrentAction)
	assert.Nil(t, f.pet.State.Work)
	assert.Equal(t, 1, f.pl.Stats.WorkCount)
	assert.Equal(t, 5, f.pl.Stats.TotalCoinsEarned)

	require.Len(t, out.Unlocks, 1)
	assert.Equal(t, "first_job", out.Unlocks[0].ID)
	assert.Equal(t, player.StartingCoins+5+10, f.pl.Coins)
}

func TestIncomePenaltiesCompound(t *testing.T) {
	job := content.Job{Income: 15}
	assert.Equal(t, 15, Income(job, 80, false))
	assert.Equal(t, 7, Income(job, 59, false))
	assert.Equal(t, 7, Income(job, 80, true))
	assert.Equal(t, 3, Income(job, 10, true))
}

func TestWorkRequirements(t *testing.T) {
	f := newFixture(t)

	res := f.rules.StartWork(f.ctx(t0), "builder", false)
	assert.Equal(t, ReasonLevelTooLow, res.Reason)

	f.pet.Level = 5
	res = f.rules.StartWork(f.ctx(t0), "builder", false)
	assert.Equal(t, ReasonStrengthTooLow, res.Reason)

	res = f.rules.StartWork(f.ctx(t0), "elder", false)
	assert.Equal(t, ReasonInvalidStage, res.Reason)

	res = f.rules.StartWork(f.ctx(t0), "astronaut", false)
	assert.Equal(t, ReasonWorkNotFound, res.Reason)

	assert.Equal(t, pet.ActionIdle, f.pet.CurrentAction)
}

func TestWorkDurationFloor(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.rules.StartWork(f.ctx(t0), "courier", true).OK())
	assert.Equal(t, MinWorkDuration, f.pet.State.Work.Duration)
	assert.True(t, f.pet.AutoAction)
	assert.True(t, f.pet.LastInteractionTime.Equal(t0), "automated work is not an interaction")

	out, done := f.rules.CompleteWork(f.ctx(t0.Add(MinWorkDuration)), false)
	require.True(t, done)
	assert.Equal(t, 4, out.Income, "automated shifts pay half")
	assert.False(t, f.pet.AutoAction)
}

func TestSickPetCannotWorkOrStudy(t *testing.T) {
	f := newFixture(t)
	f.pet.Sick = true
	assert.Equal(t, action.ReasonTooSick, f.rules.StartWork(f.ctx(t0), "waiter", false).Reason)
	res, _ := f.rules.StartStudy(f.ctx(t0), "gym")
	assert.Equal(t, action.ReasonTooSick, res.Reason)

	// medicine is still allowed
	f.pl.AddItem("pill", 1)
	res, _ = f.rules.UseItem(f.ctx(t0), "pill", false)
	assert.True(t, res.OK())
	assert.Equal(t, pet.ActionEating, f.pet.CurrentAction)
}

func TestCompleteWorkUnknownJobResets(t *testing.T) {
	f := newFixture(t)
	f.pet.CurrentAction = pet.ActionWork
	f.pet.State.Work = &pet.Timer{Ref: "deleted", EndsAt: t0}

	_, done := f.rules.CompleteWork(f.ctx(t0), false)
	assert.False(t, done)
	assert.Equal(t, pet.ActionIdle, f.pet.CurrentAction)
	assert.Nil(t, f.pet.State.Work)
}

func TestStudyLifecycle(t *testing.T) {
	f := newFixture(t)

	res, _ := f.rules.StartStudy(f.ctx(t0), "dojo")
	assert.Equal(t, ReasonPrerequisite, res.Reason)

	res, _ = f.rules.StartStudy(f.ctx(t0), "gym")
	require.True(t, res.OK(), res.Reason)
	assert.Equal(t, player.StartingCoins-20, f.pl.Coins)
	assert.Equal(t, float64(pet.InitialHunger+10), f.pet.Hunger)
	assert.Equal(t, 1, f.pl.Stats.StudyCount)

	// busy while studying
	assert.Equal(t, action.ReasonBusy, f.rules.StartWork(f.ctx(t0), "waiter", false).Reason)

	_, done := f.rules.CompleteStudy(f.ctx(t0.Add(10*time.Second)), false)
	assert.False(t, done)

	id, done := f.rules.CompleteStudy(f.ctx(t0.Add(30*time.Second)), false)
	require.True(t, done)
	assert.Equal(t, "gym", id)
	assert.Equal(t, 15.0, f.pet.Strength)
	assert.Equal(t, 10.0, f.pet.Exp)
	assert.Equal(t, []string{"gym"}, f.pet.CompletedStudies)

	// study gains are capped
	f.pl.Coins = 100
	res, _ = f.rules.StartStudy(f.ctx(t0.Add(time.Minute)), "dojo")
	require.True(t, res.OK(), res.Reason)
	_, done = f.rules.CompleteStudy(f.ctx(t0.Add(time.Minute)), true)
	require.True(t, done)
	assert.Equal(t, 100.0, f.pet.Strength)
	assert.Equal(t, []string{"gym", "dojo"}, f.pet.CompletedStudies)
}

func TestStudyChecks(t *testing.T) {
	f := newFixture(t)

	res, _ := f.rules.StartStudy(f.ctx(t0), "college")
	assert.Equal(t, ReasonInvalidStage, res.Reason)

	res, _ = f.rules.StartStudy(f.ctx(t0), "therapy")
	assert.Equal(t, ReasonMoodTooLow, res.Reason)

	f.pet.Hunger = 95
	res, _ = f.rules.StartStudy(f.ctx(t0), "gym")
	assert.Equal(t, ReasonTooHungry, res.Reason)

	f.pet.Hunger = 20
	f.pl.Coins = 5
	res, _ = f.rules.StartStudy(f.ctx(t0), "gym")
	assert.Equal(t, ReasonNotEnoughCoins, res.Reason)
	assert.Equal(t, 5, f.pl.Coins)
	assert.Equal(t, 0, f.pl.Stats.StudyCount)

	res, _ = f.rules.StartStudy(f.ctx(t0), "nope")
	assert.Equal(t, ReasonStudyNotFound, res.Reason)
}

func TestTimedItemStagesEffects(t *testing.T) {
	f := newFixture(t)
	f.pet.Hunger = 70
	f.pl.AddItem("steak", 1)

	res, _ := f.rules.UseItem(f.ctx(t0), "steak", false)
	require.True(t, res.OK(), res.Reason)
	assert.Equal(t, pet.ActionEating, f.pet.CurrentAction)
	assert.Equal(t, 0, f.pl.Count("steak"))
	_, present := f.pl.Inventory["steak"]
	assert.False(t, present)
	assert.Equal(t, 1, f.pl.Stats.ItemsUsed)
	require.NotNil(t, f.pet.State.Staged)
	assert.Equal(t, 70.0, f.pet.Hunger, "effects wait for completion")

	_, done := f.rules.CompleteActivity(f.ctx(t0.Add(5*time.Second)), false)
	assert.False(t, done)

	id, done := f.rules.CompleteActivity(f.ctx(t0.Add(15*time.Second)), false)
	require.True(t, done)
	assert.Equal(t, "steak", id)
	assert.Equal(t, 10.0, f.pet.Hunger)
	assert.Equal(t, 90.0, f.pet.Mood)
	assert.Equal(t, float64(pet.PendingEffectsExp), f.pet.Exp)
	assert.Nil(t, f.pet.State.Staged)
	assert.Equal(t, pet.ActionIdle, f.pet.CurrentAction)

	_, done = f.rules.CompleteActivity(f.ctx(t0.Add(time.Minute)), true)
	assert.False(t, done, "nothing left to complete")
}

func TestAutomatedItemHalfEfficiency(t *testing.T) {
	f := newFixture(t)
	f.pet.Hunger = 90
	f.pl.AddItem("steak", 1)

	res, _ := f.rules.UseItem(f.ctx(t0), "steak", true)
	require.True(t, res.OK())
	require.NotNil(t, f.pet.State.Staged)
	assert.Equal(t, -30.0, f.pet.State.Staged.Hunger)
	assert.Equal(t, 5.0, f.pet.State.Staged.Mood)
}

func TestInstantAndSpecialItems(t *testing.T) {
	f := newFixture(t)
	f.pet.CurrentAction = pet.ActionWalk
	f.pl.AddItem("candy", 2)
	f.pl.AddItem("herb", 1)
	f.pet.Health = 50

	res, _ := f.rules.UseItem(f.ctx(t0), "candy", false)
	require.True(t, res.OK())
	assert.Equal(t, pet.ActionIdle, f.pet.CurrentAction)
	assert.Nil(t, f.pet.State.Activity)
	assert.Equal(t, 85.0, f.pet.Mood)
	assert.Equal(t, float64(InstantItemExp), f.pet.Exp)
	assert.Equal(t, 1, f.pl.Count("candy"))

	res, _ = f.rules.UseItem(f.ctx(t0), "herb", false)
	require.True(t, res.OK())
	assert.Equal(t, 70.0, f.pet.Health)
	assert.Equal(t, 12.0, f.pet.Intelligence)
	assert.Equal(t, pet.ActionIdle, f.pet.CurrentAction)
}

func TestUseItemFailures(t *testing.T) {
	f := newFixture(t)

	res, _ := f.rules.UseItem(f.ctx(t0), "steak", false)
	assert.Equal(t, ReasonNotEnoughItems, res.Reason)

	res, _ = f.rules.UseItem(f.ctx(t0), "ghost", false)
	assert.Equal(t, ReasonItemNotFound, res.Reason)

	f.pl.AddItem("bread", 2)
	res, _ = f.rules.UseItem(f.ctx(t0), "bread", false)
	require.True(t, res.OK())
	res, _ = f.rules.UseItem(f.ctx(t0), "bread", false)
	assert.Equal(t, action.ReasonBusy, res.Reason)
	assert.Equal(t, 1, f.pl.Count("bread"))
}

func TestBuyItem(t *testing.T) {
	f := newFixture(t)

	f.pl.Coins = 10
	assert.False(t, f.rules.BuyItem(&f.pl, "steak", 1))
	assert.Equal(t, 10, f.pl.Coins)
	assert.Empty(t, f.pl.Inventory)

	assert.True(t, f.rules.BuyItem(&f.pl, "bread", 2))
	assert.Equal(t, 0, f.pl.Coins)
	assert.Equal(t, 2, f.pl.Count("bread"))

	assert.False(t, f.rules.BuyItem(&f.pl, "ghost", 1))
	assert.False(t, f.rules.BuyItem(&f.pl, "bread", 0))
}

func TestBuyItemHugeQuantity(t *testing.T) {
	f := newFixture(t)
	f.pl.Coins = 50

	// 5 * this wraps to 4 in 64-bit arithmetic
	assert.False(t, f.rules.BuyItem(&f.pl, "bread", 3689348814741910324))
	assert.False(t, f.rules.BuyItem(&f.pl, "bread", math.MaxInt))
	assert.False(t, f.rules.BuyItem(&f.pl, "bread", 11))
	assert.Equal(t, 50, f.pl.Coins)
	assert.Empty(t, f.pl.Inventory)

	assert.True(t, f.rules.BuyItem(&f.pl, "bread", 10))
	assert.Equal(t, 0, f.pl.Coins)
	assert.Equal(t, 10, f.pl.Count("bread"))
}

func TestListings(t *testing.T) {
	f := newFixture(t)

	var jobIDs []string
	for _, j := range f.rules.AvailableJobs(&f.pet) {
		jobIDs = append(jobIDs, j.ID)
	}
	assert.Equal(t, []string{"waiter", "courier"}, jobIDs)

	var studyIDs []string
	for _, s := range f.rules.Studies(&f.pet) {
		studyIDs = append(studyIDs, s.ID)
	}
	assert.Equal(t, []string{"gym", "therapy"}, studyIDs, "costs do not hide courses")

	assert.Len(t, f.rules.Items(), 6)
}

func TestRemaining(t *testing.T) {
	f := newFixture(t)
	assert.Zero(t, Remaining(&f.pet, pet.ActionWork, t0))

	require.True(t, f.rules.StartWork(f.ctx(t0), "waiter", false).OK())
	assert.Equal(t, 45*time.Second, Remaining(&f.pet, pet.ActionWork, t0.Add(15*time.Second)))
	assert.Zero(t, Remaining(&f.pet, pet.ActionWork, t0.Add(2*time.Minute)))
}

func TestAutomate(t *testing.T) {
	later := t0.Add(AutomationIdleAfter)

	t.Run("waits for idle period", func(t *testing.T) {
		f := newFixture(t)
		f.pet.Hunger = 90
		_, ok := f.rules.Automate(f.ctx(t0.Add(time.Minute)))
		assert.False(t, ok)
	})

	t.Run("uses cheapest food in inventory", func(t *testing.T) {
		f := newFixture(t)
		f.pet.Hunger = 90
		f.pl.AddItem("steak", 1)
		f.pl.AddItem("bread", 1)

		a, ok := f.rules.Automate(f.ctx(later))
		require.True(t, ok)
		assert.Equal(t, KeyAutoFeed, a.Key)
		assert.Equal(t, "bread", a.Ref)
		assert.Equal(t, 0, f.pl.Count("bread"))
		assert.True(t, f.pet.AutoAction)
	})

	t.Run("buys food when inventory is empty", func(t *testing.T) {
		f := newFixture(t)
		f.pet.Hunger = 90

		a, ok := f.rules.Automate(f.ctx(later))
		require.True(t, ok)
		assert.Equal(t, KeyAutoBuyFeed, a.Key)
		assert.Equal(t, "bread", a.Ref)
		assert.Equal(t, player.StartingCoins-5, f.pl.Coins)
		assert.Equal(t, pet.ActionEating, f.pet.CurrentAction)
	})

	t.Run("cleans when dirty", func(t *testing.T) {
		f := newFixture(t)
		f.pet.Clean = 10

		a, ok := f.rules.Automate(f.ctx(later))
		require.True(t, ok)
		assert.Equal(t, KeyAutoBuyClean, a.Key)
		assert.Equal(t, "soap", a.Ref)
	})

	t.Run("works when broke", func(t *testing.T) {
		f := newFixture(t)
		f.pet.Hunger = 90
		f.pl.Coins = 0

		a, ok := f.rules.Automate(f.ctx(later))
		require.True(t, ok)
		assert.Equal(t, KeyAutoWork, a.Key)
		assert.Equal(t, "courier", a.Ref, "best paying job the pet qualifies for")
		assert.Equal(t, pet.ActionWork, f.pet.CurrentAction)
		assert.True(t, f.pet.AutoAction)
	})

	t.Run("content pet is left alone", func(t *testing.T) {
		f := newFixture(t)
		_, ok := f.rules.Automate(f.ctx(later))
		assert.False(t, ok)
	})
}
