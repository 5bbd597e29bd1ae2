// Package action runs the lifecycle shared by every time-boxed pet
// activity: validate, start, complete, reset.
package action

import (
	"log"
	"time"

	"deskpet/internal/pet"
	"deskpet/internal/player"
)

// Reason keys owned by the engine.
const (
	ReasonBusy    = "messages.pet_busy_now"
	ReasonTooSick = "messages.pet_too_sick"
)

// Result is the outcome of a check or a start. An empty Reason means
// success; otherwise it is a stable lookup key for the host to localize.
type Result struct {
	Reason string `json:"reason,omitempty"`
}

// OK reports success.
func (r Result) OK() bool { return r.Reason == "" }

// Success is the zero Result.
var Success = Result{}

// Fail returns a failed Result with the given key.
func Fail(reason string) Result { return Result{Reason: reason} }

// Context carries the aggregates an action reads and mutates.
type Context struct {
	Pet    *pet.Pet
	Player *player.Player
	Now    time.Time
}

// Condition is a start-time precondition.
type Condition func(ctx Context) Result

// Effect mutates the aggregates.
type Effect func(ctx Context)

// Descriptor describes one attempted action. It is built fresh from
// content data on every attempt and never persisted.
type Descriptor struct {
	ID         string
	Category   pet.Action
	Duration   time.Duration
	Conditions []Condition
	OnStart    []Effect
	OnComplete []Effect
}

// CanStart validates d against the current state without mutating it.
func CanStart(d Descriptor, ctx Context) Result {
	if !ctx.Pet.CurrentAction.Interruptible() {
		return Fail(ReasonBusy)
	}
	if ctx.Pet.Frail() && (d.Category == pet.ActionWork || d.Category == pet.ActionStudy) {
		return Fail(ReasonTooSick)
	}
	for _, cond := range d.Conditions {
		if r := cond(ctx); !r.OK() {
			return r
		}
	}
	return Success
}

// Start validates d and, on success, applies its start effects and puts
// the pet into d.Category. Start effects are final.
func Start(d Descriptor, ctx Context) Result {
	if r := CanStart(d, ctx); !r.OK() {
		log.Printf("Cannot start action %s: %s", d.ID, r.Reason)
		return r
	}

	for _, effect := range d.OnStart {
		effect(ctx)
	}

	ctx.Pet.CurrentAction = d.Category
	if pet.SlotFor(d.Category) != pet.SlotNone {
		ctx.Pet.State.SetTimer(d.Category, &pet.Timer{
			Ref:       d.ID,
			StartedAt: ctx.Now,
			EndsAt:    ctx.Now.Add(d.Duration),
			Duration:  d.Duration,
		})
	}
	log.Printf("Started %s %s for %s", d.Category, d.ID, d.Duration)
	return Success
}

// Complete finishes d when its timer has elapsed, or at once when force is
// set. It returns false when no timer is running for d's category or the
// timer is not yet due.
func Complete(d Descriptor, ctx Context, force bool) bool {
	t := ctx.Pet.State.Timer(d.Category)
	if t == nil {
		return false
	}
	if !force && !t.Due(ctx.Now) {
		return false
	}

	for _, effect := range d.OnComplete {
		effect(ctx)
	}

	ResetState(ctx.Pet, d.Category)
	log.Printf("Completed %s %s (forced: %t)", d.Category, d.ID, force)
	return true
}

// ResetState clears the slot for category and puts the pet back to idle.
// It is used for force-cancel and to recover from dangling references.
func ResetState(p *pet.Pet, category pet.Action) {
	p.State.Clear(category)
	p.CurrentAction = pet.ActionIdle
}
