// Package player holds the human operator's account: coins, inventory,
// statistics and unlocked achievements.
package player

import "log"

// StartingCoins is the balance of a brand new account.
const StartingCoins = 50

// Stats are lifetime counters used by achievements.
type Stats struct {
	WorkCount        int `json:"work_count"`
	StudyCount       int `json:"study_count"`
	AdventureCount   int `json:"adventure_count"`
	TotalCoinsEarned int `json:"total_coins_earned"`
	ItemsUsed        int `json:"items_used"`
}

// QuietHours is a do-not-disturb window in local hours. End may be
// smaller than Start to wrap past midnight.
type QuietHours struct {
	Enabled bool `json:"enabled"`
	Start   int  `json:"start"`
	End     int  `json:"end"`
}

// Contains reports whether hour falls inside the window.
func (q QuietHours) Contains(hour int) bool {
	if !q.Enabled {
		return false
	}
	if q.Start <= q.End {
		return hour >= q.Start && hour < q.End
	}
	return hour >= q.Start || hour < q.End
}

// Settings are gameplay preferences saved with the player.
type Settings struct {
	Language      string     `json:"language,omitempty"`
	AutoSave      bool       `json:"auto_save"`
	BubbleEnabled bool       `json:"bubble_enabled"`
	Mode          string     `json:"mode,omitempty"`
	QuietHours    QuietHours `json:"quiet_hours"`
}

// Player is the operator's account
type Player struct {
	Coins        int            `json:"coins"`
	Inventory    map[string]int `json:"inventory"`
	Stats        Stats          `json:"stats"`
	Achievements []string       `json:"achievements"`
	Settings     Settings       `json:"settings"`
}

// New returns a default account.
func New() Player {
	return Player{
		Coins:        StartingCoins,
		Inventory:    make(map[string]int),
		Achievements: []string{},
		Settings: Settings{
			Language:      "en-US",
			AutoSave:      true,
			BubbleEnabled: true,
			Mode:          "roam",
			QuietHours:    QuietHours{Enabled: false, Start: 22, End: 7},
		},
	}
}

// Count returns how many of an item the player holds.
func (p *Player) Count(itemID string) int {
	return p.Inventory[itemID]
}

// AddItem credits n of an item.
func (p *Player) AddItem(itemID string, n int) {
	if n <= 0 {
		return
	}
	if p.Inventory == nil {
		p.Inventory = make(map[string]int)
	}
	p.Inventory[itemID] += n
}

// RemoveItem debits n of an item, deleting the entry at zero. It fails
// without mutation when the player holds fewer than n.
func (p *Player) RemoveItem(itemID string, n int) bool {
	have := p.Inventory[itemID]
	if n <= 0 || have < n {
		return false
	}
	if have == n {
		delete(p.Inventory, itemID)
		return true
	}
	p.Inventory[itemID] = have - n
	return true
}

// Spend debits coins when the balance allows it.
func (p *Player) Spend(amount int) bool {
	if amount < 0 || p.Coins < amount {
		return false
	}
	p.Coins -= amount
	return true
}

// HasAchievement reports whether id was unlocked already.
func (p *Player) HasAchievement(id string) bool {
	for _, a := range p.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

// Unlock records an achievement id once.
func (p *Player) Unlock(id string) {
	if p.HasAchievement(id) {
		return
	}
	p.Achievements = append(p.Achievements, id)
	log.Printf("Achievement unlocked: %s", id)
}

// Clone returns a deep copy of p.
func (p Player) Clone() Player {
	c := p
	c.Inventory = make(map[string]int, len(p.Inventory))
	for k, v := range p.Inventory {
		c.Inventory[k] = v
	}
	c.Achievements = append([]string{}, p.Achievements...)
	return c
}
