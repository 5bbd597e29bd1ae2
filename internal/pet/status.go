package pet

var activityEmoji = map[Action]string{
	ActionSleep:    StatusEmojiSleeping,
	ActionWork:     StatusEmojiWorking,
	ActionStudy:    StatusEmojiStudying,
	ActionEating:   StatusEmojiEating,
	ActionCleaning: StatusEmojiCleaning,
	ActionPlaying:  StatusEmojiPlaying,
}

// GetStatus returns the status emoji(s) for the pet
func GetStatus(p Pet) string {
	if p.Stage == StageEgg && p.CurrentAction.Interruptible() {
		return StatusEmojiEgg
	}

	// Icon 1: Activity (what pet is DOING)
	activity, ok := activityEmoji[p.CurrentAction]
	if !ok {
		activity = StatusEmojiHappy
	}

	// Icon 2: Feeling (most critical need)
	switch {
	case p.Sick:
		return activity + StatusEmojiSick
	case p.Hunger >= HungryThreshold:
		return activity + StatusEmojiHungry
	case p.Clean <= DirtyThreshold:
		return activity + StatusEmojiDirty
	case p.Mood < LowMoodThreshold:
		return activity + StatusEmojiSad
	}
	return activity
}

// GetStatusWithLabel returns status with text labels for the UI
func GetStatusWithLabel(p Pet) string {
	status := GetStatus(p)

	switch {
	case p.CurrentAction == ActionSleep && p.Health <= 0:
		return status + " Collapsed"
	case p.Sick:
		return status + " Sick"
	case p.Hunger >= HungryThreshold:
		return status + " Hungry"
	case p.Clean <= DirtyThreshold:
		return status + " Dirty"
	case p.Mood < LowMoodThreshold:
		return status + " Bored"
	}

	switch p.CurrentAction {
	case ActionWork:
		return status + " Working"
	case ActionStudy:
		return status + " Studying"
	case ActionEating:
		return status + " Eating"
	case ActionCleaning:
		return status + " Bathing"
	case ActionPlaying:
		return status + " Playing"
	case ActionSleep:
		return status + " Sleeping"
	}
	if p.Stage == StageEgg {
		return status + " Egg"
	}
	return status + " Happy"
}
