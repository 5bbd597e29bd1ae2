// Package content holds the read-only game definitions: jobs, studies,
// items, adventure locations, achievements and dialog lines.
package content

import "deskpet/internal/pet"

// ItemType classifies shop items.
type ItemType string

const (
	ItemFood     ItemType = "food"
	ItemClean    ItemType = "clean"
	ItemToy      ItemType = "toy"
	ItemMedicine ItemType = "medicine"
	ItemSpecial  ItemType = "special"
)

// Requirement gates jobs and adventure locations.
type Requirement struct {
	Level        int         `yaml:"level,omitempty" json:"level,omitempty"`
	Strength     float64     `yaml:"strength,omitempty" json:"strength,omitempty"`
	Dexterity    float64     `yaml:"dexterity,omitempty" json:"dexterity,omitempty"`
	Endurance    float64     `yaml:"endurance,omitempty" json:"endurance,omitempty"`
	Intelligence float64     `yaml:"intelligence,omitempty" json:"intelligence,omitempty"`
	Luck         float64     `yaml:"luck,omitempty" json:"luck,omitempty"`
	Charm        float64     `yaml:"charm,omitempty" json:"charm,omitempty"`
	Stages       []pet.Stage `yaml:"stages,omitempty" json:"stages,omitempty"`
}

// AllowsStage reports whether s is permitted. An empty list allows all.
func (r Requirement) AllowsStage(s pet.Stage) bool {
	if len(r.Stages) == 0 {
		return true
	}
	for _, st := range r.Stages {
		if st == s {
			return true
		}
	}
	return false
}

// Job is paid work. Duration is in seconds.
type Job struct {
	ID          string      `yaml:"id" json:"id"`
	Name        string      `yaml:"name" json:"name"`
	Description string      `yaml:"description,omitempty" json:"description,omitempty"`
	Income      int         `yaml:"income" json:"income"`
	Requirement Requirement `yaml:"requirement" json:"requirement"`
	Duration    float64     `yaml:"duration" json:"duration"`
}

// Item is something sold in the shop. Duration is in seconds; zero means
// the effects apply instantly.
type Item struct {
	ID          string      `yaml:"id" json:"id"`
	Name        string      `yaml:"name" json:"name"`
	Description string      `yaml:"description,omitempty" json:"description,omitempty"`
	Type        ItemType    `yaml:"type" json:"type"`
	Price       int         `yaml:"price" json:"price"`
	Duration    float64     `yaml:"duration,omitempty" json:"duration,omitempty"`
	Effects     pet.Effects `yaml:"effects" json:"effects"`
	Durability  int         `yaml:"durability,omitempty" json:"durability,omitempty"`
}

// StudyRequirements gate a study course.
type StudyRequirements struct {
	Level  int         `yaml:"level,omitempty" json:"level,omitempty"`
	Stages []pet.Stage `yaml:"stages,omitempty" json:"stages,omitempty"`
}

// AllowsStage reports whether s is permitted. An empty list allows all.
func (r StudyRequirements) AllowsStage(s pet.Stage) bool {
	return Requirement{Stages: r.Stages}.AllowsStage(s)
}

// StudyCost is what a study takes out of the pet when it starts. Hunger
// rises; the other gauges drop.
type StudyCost struct {
	Hunger float64 `yaml:"hunger,omitempty" json:"hunger,omitempty"`
	Clean  float64 `yaml:"clean,omitempty" json:"clean,omitempty"`
	Mood   float64 `yaml:"mood,omitempty" json:"mood,omitempty"`
	Health float64 `yaml:"health,omitempty" json:"health,omitempty"`
}

// StudyEffect is granted when a study completes.
type StudyEffect struct {
	Strength     float64 `yaml:"strength,omitempty" json:"strength,omitempty"`
	Dexterity    float64 `yaml:"dexterity,omitempty" json:"dexterity,omitempty"`
	Endurance    float64 `yaml:"endurance,omitempty" json:"endurance,omitempty"`
	Intelligence float64 `yaml:"intelligence,omitempty" json:"intelligence,omitempty"`
	Luck         float64 `yaml:"luck,omitempty" json:"luck,omitempty"`
	Charm        float64 `yaml:"charm,omitempty" json:"charm,omitempty"`
	Exp          float64 `yaml:"exp,omitempty" json:"exp,omitempty"`
}

// Study is a paid course. Duration is in seconds.
type Study struct {
	ID           string            `yaml:"id" json:"id"`
	Name         string            `yaml:"name" json:"name"`
	Description  string            `yaml:"description,omitempty" json:"description,omitempty"`
	Cost         int               `yaml:"cost" json:"cost"`
	Duration     float64           `yaml:"duration" json:"duration"`
	PreReqID     string            `yaml:"prereq,omitempty" json:"prereq,omitempty"`
	Requirements StudyRequirements `yaml:"requirements,omitempty" json:"requirements,omitempty"`
	CostStats    StudyCost         `yaml:"cost_stats,omitempty" json:"cost_stats,omitempty"`
	Effect       StudyEffect       `yaml:"effect" json:"effect"`
}

// Location is an adventure destination. Cost is the hunger it adds.
type Location struct {
	ID           string      `yaml:"id" json:"id"`
	Name         string      `yaml:"name" json:"name"`
	Description  string      `yaml:"description,omitempty" json:"description,omitempty"`
	Cost         float64     `yaml:"cost" json:"cost"`
	Duration     float64     `yaml:"duration,omitempty" json:"duration,omitempty"`
	Risk         string      `yaml:"risk" json:"risk"`
	Requirements Requirement `yaml:"requirements,omitempty" json:"requirements,omitempty"`
}

// ConditionType names the player statistic an achievement watches.
type ConditionType string

const (
	CondWorkCount      ConditionType = "work_count"
	CondStudyCount     ConditionType = "study_count"
	CondAdventureCount ConditionType = "adventure_count"
	CondEarnMoney      ConditionType = "earn_money"
	CondItemsUsed      ConditionType = "items_used"
)

// ItemGrant is a count of one item.
type ItemGrant struct {
	ID    string `yaml:"id" json:"id"`
	Count int    `yaml:"count" json:"count"`
}

// Condition compares one statistic against a target.
type Condition struct {
	Type   ConditionType `yaml:"type" json:"type"`
	Target int           `yaml:"target" json:"target"`
}

// Reward is paid out when an achievement unlocks.
type Reward struct {
	Coins int         `yaml:"coins,omitempty" json:"coins,omitempty"`
	Exp   float64     `yaml:"exp,omitempty" json:"exp,omitempty"`
	Items []ItemGrant `yaml:"items,omitempty" json:"items,omitempty"`
}

// Achievement unlocks once when a statistic reaches Target.
type Achievement struct {
	ID          string    `yaml:"id" json:"id"`
	Name        string    `yaml:"name" json:"name"`
	Description string    `yaml:"description,omitempty" json:"description,omitempty"`
	Condition   Condition `yaml:"condition" json:"condition"`
	Reward      Reward    `yaml:"reward,omitempty" json:"reward,omitempty"`
}

// Pack is one content file, or the merge of several.
type Pack struct {
	Items        []Item              `yaml:"items,omitempty"`
	Jobs         []Job               `yaml:"jobs,omitempty"`
	Studies      []Study             `yaml:"studies,omitempty"`
	Adventures   []Location          `yaml:"adventures,omitempty"`
	Achievements []Achievement       `yaml:"achievements,omitempty"`
	Dialog       map[string][]string `yaml:"dialog,omitempty"`
}
