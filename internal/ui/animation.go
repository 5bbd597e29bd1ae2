package ui

import (
	"time"

	"deskpet/internal/pet"
)

// AnimationType represents the type of action animation
type AnimationType int

const (
	AnimNone AnimationType = iota
	AnimEat
	AnimClean
	AnimPlay
	AnimSleep
	AnimWork
	AnimStudy
	AnimAdventure
	AnimEvolve
)

// Animation holds the current animation state
type Animation struct {
	Type      AnimationType
	Frame     int
	StartTime time.Time
}

// AnimationFrames contains ASCII art frames for each animation type
var AnimationFrames = map[AnimationType][]string{
	AnimEat: {
		`
  🍞        🐣
`,
		`
     🍞     🐣
`,
		`
        🍞🐣
    *chomp*
`,
		`
         🐥
    *gulp* ✨
`,
	},
	AnimClean: {
		`
   🧼      😿
`,
		`
      🧼   😿
`,
		`
        🫧 😺 🫧
`,
		`
       ✨ 😸 ✨
        *sparkle*
`,
	},
	AnimPlay: {
		`
   🐥   ⚽
`,
		`
    🐥 ⚽
  *kick*
`,
		`
   🐥        ⚽
`,
		`
   🐥            ⚽ 🥅
`,
		`
   🎉 🐥 🎉
    *goal!*
`,
	},
	AnimSleep: {
		`
    🐥   🌙
`,
		`
    😑   🌙
   *yawn*
`,
		`
    😴  💤
        🌙
`,
		`
    😴    💤
       💤  🌙
`,
	},
	AnimWork: {
		`
     😺  💼
`,
		`
   💼😺 →
`,
		`
        😺💼 →
`,
		`
            🏢
          *clock in*
`,
	},
	AnimStudy: {
		`
     😺  📚
`,
		`
     😺📖
`,
		`
     🤓📖
      *hmm*
`,
		`
     🤓💡
`,
	},
	AnimAdventure: {
		`
  😺 🎒
`,
		`
     😺🎒 →
`,
		`
  🌳    😺🎒 →  🌳
`,
		`
  🗺️        😸
          *found something!*
`,
	},
	AnimEvolve: {
		`
     🥚
`,
		`
     🥚
    *crack*
`,
		`
   ✨ 🐣 ✨
`,
		`
  ✨✨ 😸 ✨✨
`,
	},
}

// actionAnimations maps the action a pet just started to its animation.
var actionAnimations = map[pet.Action]AnimationType{
	pet.ActionEating:   AnimEat,
	pet.ActionCleaning: AnimClean,
	pet.ActionPlaying:  AnimPlay,
	pet.ActionSleep:    AnimSleep,
	pet.ActionWork:     AnimWork,
	pet.ActionStudy:    AnimStudy,
}

// AnimationFor returns the animation played when a starts.
func AnimationFor(a pet.Action) AnimationType {
	return actionAnimations[a]
}

// AnimationDuration is how long each frame displays
const AnimationFrameDuration = 200 * time.Millisecond

// GetAnimationFrame returns the current frame for an animation
func GetAnimationFrame(anim Animation) string {
	frames := AnimationFrames[anim.Type]
	if len(frames) == 0 {
		return ""
	}
	if anim.Frame >= len(frames) {
		return frames[len(frames)-1]
	}
	return frames[anim.Frame]
}

// IsAnimationComplete returns true if the animation has finished
func IsAnimationComplete(anim Animation) bool {
	frames := AnimationFrames[anim.Type]
	return anim.Frame >= len(frames)
}

// AnimationTotalFrames returns the number of frames for an animation type
func AnimationTotalFrames(animType AnimationType) int {
	return len(AnimationFrames[animType])
}
