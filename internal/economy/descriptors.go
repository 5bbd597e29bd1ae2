package economy

import (
	"math"
	"time"

	"deskpet/internal/action"
	"deskpet/internal/content"
	"deskpet/internal/pet"
)

// Duration floors per category.
const (
	MinWorkDuration  = 5 * time.Second
	MinStudyDuration = 5 * time.Second
	MinItemDuration  = 2 * time.Second
)

// Efficiency multipliers for item use.
const (
	ManualEfficiency = 1.0
	AutoEfficiency   = 0.5
)

// InstantItemExp is the plain experience per unit of efficiency granted by
// an item with no duration.
const InstantItemExp = 10

// StudyStatCap bounds growth stats raised by studying.
const StudyStatCap = 100

// Reason keys.
const (
	ReasonWorkNotFound       = "messages.work_not_found"
	ReasonStudyNotFound      = "messages.study_not_found"
	ReasonItemNotFound       = "messages.item_not_found"
	ReasonLevelTooLow        = "messages.level_too_low"
	ReasonStrengthTooLow     = "messages.strength_too_low"
	ReasonDexterityTooLow    = "messages.dexterity_too_low"
	ReasonEnduranceTooLow    = "messages.endurance_too_low"
	ReasonIntelligenceTooLow = "messages.intelligence_too_low"
	ReasonLuckTooLow         = "messages.luck_too_low"
	ReasonCharmTooLow        = "messages.charm_too_low"
	ReasonInvalidStage       = "messages.invalid_stage"
	ReasonPrerequisite       = "messages.prerequisite_not_met"
	ReasonTooHungry          = "messages.too_hungry"
	ReasonMoodTooLow         = "messages.mood_too_low"
	ReasonTooDirty           = "messages.too_dirty"
	ReasonTooSick            = "messages.too_sick"
	ReasonNotEnoughCoins     = "messages.not_enough_coins"
	ReasonNotEnoughItems     = "messages.not_enough_items"
)

func seconds(s float64, floor time.Duration) time.Duration {
	d := time.Duration(s * float64(time.Second))
	if d < floor {
		return floor
	}
	return d
}

// checkRequirement reports the first unmet job requirement.
func checkRequirement(req content.Requirement, p *pet.Pet) action.Result {
	checks := []struct {
		need, have float64
		reason     string
	}{
		{float64(req.Level), float64(p.Level), ReasonLevelTooLow},
		{req.Strength, p.Strength, ReasonStrengthTooLow},
		{req.Dexterity, p.Dexterity, ReasonDexterityTooLow},
		{req.Endurance, p.Endurance, ReasonEnduranceTooLow},
		{req.Intelligence, p.Intelligence, ReasonIntelligenceTooLow},
		{req.Luck, p.Luck, ReasonLuckTooLow},
		{req.Charm, p.Charm, ReasonCharmTooLow},
	}
	for _, c := range checks {
		if c.need > 0 && c.have < c.need {
			return action.Fail(c.reason)
		}
	}
	if !req.AllowsStage(p.Stage) {
		return action.Fail(ReasonInvalidStage)
	}
	return action.Success
}

// WorkDescriptor builds the action for one shift of job. Income is paid
// by CompleteWork, so the completion list is empty.
func WorkDescriptor(job content.Job) action.Descriptor {
	return action.Descriptor{
		ID:       job.ID,
		Category: pet.ActionWork,
		Duration: seconds(job.Duration, MinWorkDuration),
		Conditions: []action.Condition{
			func(ctx action.Context) action.Result {
				return checkRequirement(job.Requirement, ctx.Pet)
			},
		},
	}
}

func studyRequirements(study content.Study) action.Condition {
	return func(ctx action.Context) action.Result {
		req := study.Requirements
		if !req.AllowsStage(ctx.Pet.Stage) {
			return action.Fail(ReasonInvalidStage)
		}
		if req.Level > 0 && ctx.Pet.Level < req.Level {
			return action.Fail(ReasonLevelTooLow)
		}
		if study.PreReqID != "" && !ctx.Pet.HasCompleted(study.PreReqID) {
			return action.Fail(ReasonPrerequisite)
		}
		return action.Success
	}
}

// StudyDescriptor builds the action for one study course.
func StudyDescriptor(study content.Study) action.Descriptor {
	cost := study.CostStats
	gain := study.Effect
	return action.Descriptor{
		ID:       study.ID,
		Category: pet.ActionStudy,
		Duration: seconds(study.Duration, MinStudyDuration),
		Conditions: []action.Condition{
			studyRequirements(study),
			func(ctx action.Context) action.Result {
				p := ctx.Pet
				switch {
				case cost.Hunger > 0 && p.Hunger+cost.Hunger > pet.MaxGauge:
					return action.Fail(ReasonTooHungry)
				case cost.Mood > 0 && p.Mood-cost.Mood < pet.MinGauge:
					return action.Fail(ReasonMoodTooLow)
				case cost.Clean > 0 && p.Clean-cost.Clean < pet.MinGauge:
					return action.Fail(ReasonTooDirty)
				case cost.Health > 0 && p.Health-cost.Health < pet.MinGauge:
					return action.Fail(ReasonTooSick)
				}
				return action.Success
			},
			func(ctx action.Context) action.Result {
				if ctx.Player.Coins < study.Cost {
					return action.Fail(ReasonNotEnoughCoins)
				}
				return action.Success
			},
		},
		OnStart: []action.Effect{
			func(ctx action.Context) {
				ctx.Player.Coins -= study.Cost
				ctx.Pet.ApplyEffects(pet.Effects{
					Hunger: cost.Hunger,
					Clean:  -cost.Clean,
					Mood:   -cost.Mood,
					Health: -cost.Health,
				})
			},
		},
		OnComplete: []action.Effect{
			func(ctx action.Context) {
				p := ctx.Pet
				p.Strength = raiseCapped(p.Strength, gain.Strength)
				p.Dexterity = raiseCapped(p.Dexterity, gain.Dexterity)
				p.Endurance = raiseCapped(p.Endurance, gain.Endurance)
				p.Intelligence = raiseCapped(p.Intelligence, gain.Intelligence)
				p.Luck = raiseCapped(p.Luck, gain.Luck)
				p.Charm = raiseCapped(p.Charm, gain.Charm)
				if gain.Exp > 0 {
					p.AddInteractionExp(gain.Exp)
				}
				p.MarkCompleted(study.ID)
			},
		},
	}
}

func raiseCapped(v, gain float64) float64 {
	if gain == 0 {
		return v
	}
	return math.Min(StudyStatCap, v+gain)
}

var itemCategories = map[content.ItemType]pet.Action{
	content.ItemFood:     pet.ActionEating,
	content.ItemClean:    pet.ActionCleaning,
	content.ItemToy:      pet.ActionPlaying,
	content.ItemMedicine: pet.ActionEating,
}

// ItemDescriptor builds the action for using quantity of item. Items with
// no duration, and special items, apply at once and leave the pet idle.
// Timed items stage their effects, scaled by efficiency, until the
// activity completes.
func ItemDescriptor(item content.Item, quantity int, efficiency float64) action.Descriptor {
	category, timed := itemCategories[item.Type]
	if item.Duration <= 0 {
		timed = false
	}

	d := action.Descriptor{
		ID:       item.ID,
		Category: pet.ActionIdle,
		Conditions: []action.Condition{
			func(ctx action.Context) action.Result {
				if ctx.Player.Count(item.ID) < quantity {
					return action.Fail(ReasonNotEnoughItems)
				}
				return action.Success
			},
		},
	}

	if timed {
		d.Category = category
		d.Duration = seconds(item.Duration, MinItemDuration)
	}

	d.OnStart = []action.Effect{
		func(ctx action.Context) {
			ctx.Player.RemoveItem(item.ID, quantity)
			if timed {
				staged := item.Effects.Scaled(efficiency)
				ctx.Pet.State.Staged = &staged
				return
			}
			ctx.Pet.ApplyEffects(item.Effects.Scaled(efficiency))
			ctx.Pet.AddExperience(InstantItemExp * efficiency)
		},
	}
	return d
}

// activityDescriptor completes whatever timed item is running and applies
// its staged effects.
func activityDescriptor(p *pet.Pet) action.Descriptor {
	category := p.CurrentAction
	if pet.SlotFor(category) != pet.SlotActivity {
		category = pet.ActionEating
	}
	ref := ""
	if t := p.State.Activity; t != nil {
		ref = t.Ref
	}
	return action.Descriptor{
		ID:       ref,
		Category: category,
		OnComplete: []action.Effect{
			func(ctx action.Context) { ctx.Pet.ApplyPendingEffects() },
		},
	}
}
