// Package economy turns content records into pet actions: work, study,
// item use and shopping, plus the automation that looks after a neglected
// pet.
package economy

import (
	"log"
	"math"
	"sort"
	"time"

	"deskpet/internal/action"
	"deskpet/internal/content"
	"deskpet/internal/pet"
	"deskpet/internal/player"
)

// Income multipliers applied at work completion.
const (
	LowMoodIncomeBelow  = 60
	LowMoodIncomeFactor = 0.5
	AutoIncomeFactor    = 0.5
)

// Catalog is the content the rules read from.
type Catalog interface {
	Job(id string) (content.Job, bool)
	Jobs() []content.Job
	Study(id string) (content.Study, bool)
	Studies() []content.Study
	Item(id string) (content.Item, bool)
	Items() []content.Item
}

// Unlocker is told about every statistic change.
type Unlocker interface {
	CheckAll(pl *player.Player, p *pet.Pet) []content.Achievement
}

// Rules builds and runs economy actions.
type Rules struct {
	catalog  Catalog
	unlocker Unlocker
}

// NewRules returns Rules over catalog. unlocker may be nil.
func NewRules(catalog Catalog, unlocker Unlocker) *Rules {
	return &Rules{catalog: catalog, unlocker: unlocker}
}

func (r *Rules) checkAchievements(ctx action.Context) []content.Achievement {
	if r.unlocker == nil {
		return nil
	}
	return r.unlocker.CheckAll(ctx.Player, ctx.Pet)
}

func touch(ctx action.Context, auto bool) {
	ctx.Pet.AutoAction = auto
	if !auto {
		ctx.Pet.LastInteractionTime = ctx.Now
	}
}

// WorkOutcome is what a finished shift paid.
type WorkOutcome struct {
	JobID   string                `json:"job_id"`
	Income  int                   `json:"income"`
	Unlocks []content.Achievement `json:"unlocks,omitempty"`
}

// Income computes the pay for one shift of job. The low-mood and
// automation penalties compound and the result is floored once.
func Income(job content.Job, mood float64, auto bool) int {
	income := float64(job.Income)
	if mood < LowMoodIncomeBelow {
		income *= LowMoodIncomeFactor
	}
	if auto {
		income *= AutoIncomeFactor
	}
	return int(math.Floor(income))
}

// StartWork sends the pet to work at jobID.
func (r *Rules) StartWork(ctx action.Context, jobID string, auto bool) action.Result {
	job, ok := r.catalog.Job(jobID)
	if !ok {
		return action.Fail(ReasonWorkNotFound)
	}
	res := action.Start(WorkDescriptor(job), ctx)
	if res.OK() {
		touch(ctx, auto)
	}
	return res
}

// CompleteWork finishes the running shift when it is due, or at once when
// force is set, and pays the player. It reports false when there is no
// shift to finish. A shift for a job that no longer exists is dropped.
func (r *Rules) CompleteWork(ctx action.Context, force bool) (WorkOutcome, bool) {
	t := ctx.Pet.State.Work
	if t == nil {
		return WorkOutcome{}, false
	}
	job, ok := r.catalog.Job(t.Ref)
	if !ok {
		log.Printf("Dropping shift for unknown job %q", t.Ref)
		action.ResetState(ctx.Pet, pet.ActionWork)
		return WorkOutcome{}, false
	}

	income := Income(job, ctx.Pet.Mood, ctx.Pet.AutoAction)
	if !action.Complete(WorkDescriptor(job), ctx, force) {
		return WorkOutcome{}, false
	}

	ctx.Pet.AutoAction = false
	if income > 0 {
		ctx.Player.Coins += income
	}
	ctx.Player.Stats.WorkCount++
	ctx.Player.Stats.TotalCoinsEarned += income
	log.Printf("Work %s finished, earned %d coins (balance %d)", job.ID, income, ctx.Player.Coins)

	return WorkOutcome{
		JobID:   job.ID,
		Income:  income,
		Unlocks: r.checkAchievements(ctx),
	}, true
}

// StartStudy enrolls the pet in studyID. Studying is always manual.
func (r *Rules) StartStudy(ctx action.Context, studyID string) (action.Result, []content.Achievement) {
	study, ok := r.catalog.Study(studyID)
	if !ok {
		return action.Fail(ReasonStudyNotFound), nil
	}
	res := action.Start(StudyDescriptor(study), ctx)
	if !res.OK() {
		return res, nil
	}
	touch(ctx, false)
	ctx.Player.Stats.StudyCount++
	return res, r.checkAchievements(ctx)
}

// CompleteStudy finishes the running course when it is due, or at once
// when force is set.
func (r *Rules) CompleteStudy(ctx action.Context, force bool) (string, bool) {
	t := ctx.Pet.State.Study
	if t == nil {
		return "", false
	}
	study, ok := r.catalog.Study(t.Ref)
	if !ok {
		log.Printf("Dropping course for unknown study %q", t.Ref)
		action.ResetState(ctx.Pet, pet.ActionStudy)
		return "", false
	}
	if !action.Complete(StudyDescriptor(study), ctx, force) {
		return "", false
	}
	return study.ID, true
}

// UseItem consumes one itemID from the inventory. Automated use runs at
// reduced efficiency.
func (r *Rules) UseItem(ctx action.Context, itemID string, auto bool) (action.Result, []content.Achievement) {
	item, ok := r.catalog.Item(itemID)
	if !ok {
		return action.Fail(ReasonItemNotFound), nil
	}
	efficiency := ManualEfficiency
	if auto {
		efficiency = AutoEfficiency
	}
	res := action.Start(ItemDescriptor(item, 1, efficiency), ctx)
	if !res.OK() {
		return res, nil
	}
	touch(ctx, auto)
	ctx.Player.Stats.ItemsUsed++
	log.Printf("Used %s (efficiency %.1f)", item.ID, efficiency)
	return res, r.checkAchievements(ctx)
}

// CompleteActivity finishes a timed item when it is due, or at once when
// force is set, applying its staged effects.
func (r *Rules) CompleteActivity(ctx action.Context, force bool) (string, bool) {
	if ctx.Pet.State.Activity == nil {
		return "", false
	}
	d := activityDescriptor(ctx.Pet)
	if !action.Complete(d, ctx, force) {
		return "", false
	}
	ctx.Pet.AutoAction = false
	return d.ID, true
}

// BuyItem debits the price of quantity itemID and credits the inventory.
// Nothing changes when the item is unknown or the balance is short.
func (r *Rules) BuyItem(pl *player.Player, itemID string, quantity int) bool {
	item, ok := r.catalog.Item(itemID)
	if !ok || quantity <= 0 {
		return false
	}
	// price * quantity must not wrap
	if item.Price > 0 && quantity > pl.Coins/item.Price {
		log.Printf("Cannot buy %d x %s with balance %d", quantity, itemID, pl.Coins)
		return false
	}
	if !pl.Spend(item.Price * quantity) {
		return false
	}
	pl.AddItem(itemID, quantity)
	log.Printf("Bought %d x %s, balance %d", quantity, itemID, pl.Coins)
	return true
}

// AvailableJobs lists the jobs whose requirements the pet meets.
func (r *Rules) AvailableJobs(p *pet.Pet) []content.Job {
	var jobs []content.Job
	for _, job := range r.catalog.Jobs() {
		if checkRequirement(job.Requirement, p).OK() {
			jobs = append(jobs, job)
		}
	}
	return jobs
}

// Studies lists the courses the pet qualifies for. Costs are not checked.
func (r *Rules) Studies(p *pet.Pet) []content.Study {
	var studies []content.Study
	for _, s := range r.catalog.Studies() {
		if studyRequirements(s)(action.Context{Pet: p}).OK() {
			studies = append(studies, s)
		}
	}
	return studies
}

// Items lists the shop.
func (r *Rules) Items() []content.Item {
	return r.catalog.Items()
}

// Remaining returns how long the timer for category has left.
func Remaining(p *pet.Pet, category pet.Action, now time.Time) time.Duration {
	return p.State.Timer(category).Remaining(now)
}

// AutomationIdleAfter is how long the pet must be left alone before
// automation steps in.
const AutomationIdleAfter = 15 * time.Minute

// Automation message keys.
const (
	KeyAutoFeed     = "messages.auto_feed"
	KeyAutoBuyFeed  = "messages.auto_buy_feed"
	KeyAutoClean    = "messages.auto_clean"
	KeyAutoBuyClean = "messages.auto_buy_clean"
	KeyAutoWork     = "messages.auto_work"
)

// Automation describes what automation did.
type Automation struct {
	Key  string `json:"key"`
	Ref  string `json:"ref"`
	Name string `json:"name"`
}

// Automate looks after an idle pet nobody has touched for a while: it
// feeds or washes it from the inventory, buys the cheapest supply when the
// inventory is empty, and otherwise sends it to the best paying job. At
// most one thing happens per call.
func (r *Rules) Automate(ctx action.Context) (Automation, bool) {
	p := ctx.Pet
	if p.CurrentAction != pet.ActionIdle {
		return Automation{}, false
	}
	last := p.LastInteractionTime
	if last.IsZero() {
		last = p.BornAt
	}
	if ctx.Now.Sub(last) < AutomationIdleAfter {
		return Automation{}, false
	}

	if p.Hunger >= pet.HungryThreshold {
		if a, ok := r.supply(ctx, isFood, KeyAutoFeed, KeyAutoBuyFeed); ok {
			return a, true
		}
	}
	if p.Clean <= pet.DirtyThreshold {
		if a, ok := r.supply(ctx, isCleaner, KeyAutoClean, KeyAutoBuyClean); ok {
			return a, true
		}
	}

	if p.Hunger >= pet.HungryThreshold || p.Clean <= pet.DirtyThreshold {
		jobs := r.AvailableJobs(p)
		sort.SliceStable(jobs, func(i, j int) bool { return jobs[i].Income > jobs[j].Income })
		if len(jobs) > 0 && r.StartWork(ctx, jobs[0].ID, true).OK() {
			return Automation{Key: KeyAutoWork, Ref: jobs[0].ID, Name: jobs[0].Name}, true
		}
	}
	return Automation{}, false
}

func isFood(it content.Item) bool { return it.Type == content.ItemFood }

func isCleaner(it content.Item) bool {
	return it.Type == content.ItemClean || it.Effects.Clean > 0
}

func (r *Rules) supply(ctx action.Context, match func(content.Item) bool, useKey, buyKey string) (Automation, bool) {
	var candidates []content.Item
	for _, it := range r.catalog.Items() {
		if match(it) {
			candidates = append(candidates, it)
		}
	}
	if len(candidates) == 0 {
		return Automation{}, false
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].Price < candidates[j].Price })

	for _, it := range candidates {
		if ctx.Player.Count(it.ID) > 0 {
			if res, _ := r.UseItem(ctx, it.ID, true); res.OK() {
				return Automation{Key: useKey, Ref: it.ID, Name: it.Name}, true
			}
			return Automation{}, false
		}
	}

	cheapest := candidates[0]
	if !r.BuyItem(ctx.Player, cheapest.ID, 1) {
		return Automation{}, false
	}
	if res, _ := r.UseItem(ctx, cheapest.ID, true); !res.OK() {
		return Automation{}, false
	}
	return Automation{Key: buyKey, Ref: cheapest.ID, Name: cheapest.Name}, true
}
