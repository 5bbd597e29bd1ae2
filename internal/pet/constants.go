package pet

import "time"

// Game constants
const (
	DefaultPetName = "Qbit"
	MaxGauge       = 100
	MinGauge       = 0

	// Initial values for a freshly hatched egg
	InitialHunger = 20
	InitialClean  = 80
	InitialMood   = 80
	InitialHealth = 100
	InitialStat   = 10

	// Continuous rates (per hour)
	HungerRisePerHour     = 20
	CleanDropPerHour      = 15
	HungryMoodDropPerHour = 10 // while hunger >= HungryThreshold
	DirtyMoodDropPerHour  = 5  // while clean <= DirtyThreshold
	SickHealthDropPerHour = 5
	PassiveExpPerHour     = 10
	SicknessHazardPerHour = 0.01 // linear approximation, see DESIGN.md

	HungryThreshold  = 80
	DirtyThreshold   = 20
	SickCleanBelow   = 20
	LowMoodThreshold = 40
	FrailHealthBelow = 20 // work/study refused below this health

	// Daily interaction growth
	MaxDailyInteractionGrowth = 500
	PendingEffectsExp         = 10
	TouchMoodBonus            = 2
	TouchExp                  = 2

	// Offline settlement
	DormancyThreshold   = 24 * time.Hour
	OfflineProtectAfter = 12 * time.Hour
	OfflineHungerCap    = 90
	OfflineCleanFloor   = 10

	// Evolution level gates
	BabyLevel  = 1
	AdultLevel = 5
)

// Status emojis
const (
	StatusEmojiHappy    = "😸"
	StatusEmojiSleeping = "😴"
	StatusEmojiHungry   = "🙀"
	StatusEmojiSad      = "😿"
	StatusEmojiSick     = "🤢"
	StatusEmojiDirty    = "💩"
	StatusEmojiWorking  = "💼"
	StatusEmojiStudying = "📚"
	StatusEmojiEating   = "🍖"
	StatusEmojiCleaning = "🛁"
	StatusEmojiPlaying  = "🎾"
	StatusEmojiEgg      = "🥚"
)
