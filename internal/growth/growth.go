// Package growth holds the experience curve shared by every pet.
package growth

import "time"

// MaxLevel is the level cap. Experience keeps accruing past it.
const MaxLevel = 99

// Hand-tuned thresholds for the first levels; the rest follow
// table[i] = table[i-1] + i*100.
var baseThresholds = []float64{0, 100, 300, 600, 1000, 1500, 2100, 2800, 3600, 4500, 5500}

var table = buildTable()

func buildTable() [MaxLevel + 1]float64 {
	var t [MaxLevel + 1]float64
	copy(t[:], baseThresholds)
	for i := len(baseThresholds); i <= MaxLevel; i++ {
		t[i] = t[i-1] + float64(i*100)
	}
	return t
}

// Threshold returns the total experience needed to reach level.
func Threshold(level int) float64 {
	if level < 0 {
		return 0
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	return table[level]
}

// LevelFor returns the largest level whose threshold is <= exp.
func LevelFor(exp float64) int {
	level := 0
	for level < MaxLevel && exp >= table[level+1] {
		level++
	}
	return level
}

// Advance adds amount to exp and raises level while the next threshold
// is crossed. Levels never go down here.
func Advance(level int, exp, amount float64) (int, float64, bool) {
	exp += amount
	leveledUp := false
	for level < MaxLevel && exp >= table[level+1] {
		level++
		leveledUp = true
	}
	return level, exp, leveledUp
}

// Progress returns how far exp is between level and level+1, in [0,1].
func Progress(level int, exp float64) float64 {
	if level >= MaxLevel {
		return 1
	}
	if level < 0 {
		level = 0
	}
	cur := table[level]
	next := table[level+1]
	p := (exp - cur) / (next - cur)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// AgeInDays is the number of whole days between born and now.
func AgeInDays(born, now time.Time) int {
	d := now.Sub(born)
	if d < 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}
