package ui

import (
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"deskpet/internal/game"
	"deskpet/internal/pet"
)

// Screen is the menu currently shown.
type Screen int

const (
	ScreenMain Screen = iota
	ScreenWork
	ScreenStudy
	ScreenShop
	ScreenInventory
	ScreenAdventure
	ScreenDebug
)

var mainMenuOptions = []string{"Work", "Study", "Shop", "Inventory", "Adventure", "Pet", "Quit"}

// entry is one selectable line of a submenu.
type entry struct {
	ID    string
	Label string
}

// Model represents the game state
type Model struct {
	Game           *game.Session
	Snap           game.Snapshot
	Screen         Screen
	Choice         int
	Quitting       bool
	Message        string
	MessageExpires time.Time
	Bubble         string
	BubbleExpires  time.Time
	Animation      Animation
	AutoSave       time.Duration
}

type tickMsg time.Time
type talkMsg time.Time
type saveMsg time.Time
type animTickMsg struct {
	started time.Time
}

// NewModel creates a new game model over a loaded session
func NewModel(s *game.Session, autosave time.Duration) Model {
	return Model{
		Game:     s,
		Snap:     s.Snapshot(),
		AutoSave: autosave,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tick(m.Snap.Mode), talk(m.Snap.Mode)}
	if m.AutoSave > 0 {
		cmds = append(cmds, autosave(m.AutoSave))
	}
	return tea.Batch(cmds...)
}

func tick(mode game.Mode) tea.Cmd {
	return tea.Tick(mode.TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func talk(mode game.Mode) tea.Cmd {
	return tea.Tick(mode.DialogInterval, func(t time.Time) tea.Msg {
		return talkMsg(t)
	})
}

func autosave(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return saveMsg(t)
	})
}

func animTick(start time.Time) tea.Cmd {
	return tea.Tick(AnimationFrameDuration, func(t time.Time) tea.Msg {
		return animTickMsg{started: start}
	})
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// While an animation is playing, ignore inputs except quit keys
		if m.Animation.Type != AnimNone {
			switch msg.String() {
			case "ctrl+c", "q":
				return m.quit()
			default:
				return m, nil
			}
		}
		return m.handleKey(msg.String())

	case tickMsg:
		prev := m.Animation.StartTime
		for _, n := range m.Game.Tick() {
			m.notify(n)
		}
		m.refresh()
		return m, tea.Batch(tick(m.Snap.Mode), m.animCmd(prev))

	case talkMsg:
		if line, ok := m.Game.DialogTick(); ok {
			m.Bubble = line.Text
			m.BubbleExpires = pet.TimeNow().Add(5 * time.Second)
		}
		return m, talk(m.Snap.Mode)

	case saveMsg:
		if err := m.Game.Save(); err != nil {
			log.Printf("Autosave failed: %v", err)
		}
		return m, autosave(m.AutoSave)

	case animTickMsg:
		// Drop ticks that belong to an older animation (e.g., if a new action started)
		if m.Animation.Type == AnimNone || !m.Animation.StartTime.Equal(msg.started) {
			return m, nil
		}

		m.Animation.Frame++
		if IsAnimationComplete(m.Animation) {
			m.Animation = Animation{}
			return m, nil
		}

		return m, animTick(m.Animation.StartTime)
	}

	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.Quitting = true
	if err := m.Game.Save(); err != nil {
		log.Printf("Save on quit failed: %v", err)
	}
	return m, tea.Quit
}

func (m Model) handleKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", "q":
		return m.quit()
	case "c":
		if m.Screen == ScreenDebug {
			m.back()
		} else {
			m.Screen = ScreenDebug
			m.Choice = 0
		}
		return m, nil
	case "esc", "backspace":
		m.back()
		return m, nil
	case "up", "k":
		if m.Choice > 0 {
			m.Choice--
		}
	case "down", "j":
		if m.Choice < m.optionCount()-1 {
			m.Choice++
		}
	case "enter", " ":
		prev := m.Animation.StartTime
		m.selectChoice()
		m.refresh()
		if m.Quitting {
			return m.quit()
		}
		return m, m.animCmd(prev)
	}
	return m, nil
}

func (m *Model) back() {
	if m.Screen != ScreenMain {
		m.Choice = int(m.Screen) - 1
		if m.Screen == ScreenDebug {
			m.Choice = 0
		}
	}
	m.Screen = ScreenMain
}

func (m Model) optionCount() int {
	switch m.Screen {
	case ScreenMain:
		return len(mainMenuOptions)
	case ScreenDebug:
		return len(debugMenuOptions)
	}
	return len(m.entries())
}

// entries lists the selectable lines of the current submenu.
func (m Model) entries() []entry {
	var out []entry
	switch m.Screen {
	case ScreenWork:
		for _, j := range m.Game.Jobs() {
			out = append(out, entry{j.ID, fmt.Sprintf("%-14s %3d 💰 / %s", j.Name, j.Income, seconds(j.Duration))})
		}
	case ScreenStudy:
		for _, s := range m.Game.Studies() {
			label := fmt.Sprintf("%-14s %3d 💰 / %s", s.Name, s.Cost, seconds(s.Duration))
			if m.Snap.Pet.HasCompleted(s.ID) {
				label += " ✔"
			}
			out = append(out, entry{s.ID, label})
		}
	case ScreenShop:
		for _, it := range m.Game.Shop() {
			out = append(out, entry{it.ID, fmt.Sprintf("%-14s %3d 💰  (have %d)", it.Name, it.Price, m.Snap.Player.Inventory[it.ID])})
		}
	case ScreenInventory:
		for _, it := range m.Game.Shop() {
			if n := m.Snap.Player.Inventory[it.ID]; n > 0 {
				out = append(out, entry{it.ID, fmt.Sprintf("%-14s x%d", it.Name, n)})
			}
		}
	case ScreenAdventure:
		for _, loc := range m.Game.Locations() {
			out = append(out, entry{loc.ID, fmt.Sprintf("%-14s +%.0f hunger  (%s risk)", loc.Name, loc.Cost, loc.Risk)})
		}
	}
	return out
}

func seconds(s float64) string {
	return time.Duration(s * float64(time.Second)).String()
}

func (m *Model) selectChoice() {
	switch m.Screen {
	case ScreenMain:
		switch mainMenuOptions[m.Choice] {
		case "Work":
			m.open(ScreenWork)
		case "Study":
			m.open(ScreenStudy)
		case "Shop":
			m.open(ScreenShop)
		case "Inventory":
			m.open(ScreenInventory)
		case "Adventure":
			m.open(ScreenAdventure)
		case "Pet":
			m.touch()
		case "Quit":
			m.Quitting = true
		}
		return
	case ScreenDebug:
		m.executeDebug()
		return
	}

	entries := m.entries()
	if m.Choice >= len(entries) {
		return
	}
	id := entries[m.Choice].ID
	switch m.Screen {
	case ScreenWork:
		m.startWork(id)
	case ScreenStudy:
		m.startStudy(id)
	case ScreenShop:
		m.buy(id)
	case ScreenInventory:
		m.useItem(id)
	case ScreenAdventure:
		m.adventure(id)
	}
}

func (m *Model) open(s Screen) {
	m.Screen = s
	m.Choice = 0
	if len(m.entries()) == 0 {
		m.setMessage("Nothing here yet")
	}
}

func (m *Model) refresh() {
	m.Snap = m.Game.Snapshot()
}

func (m *Model) setMessage(msg string) {
	m.Message = msg
	m.MessageExpires = pet.TimeNow().Add(3 * time.Second)
}

func (m *Model) notify(n game.Notice) {
	m.setMessage(Text(n.Key, n.Args))
	switch n.Key {
	case game.KeyEvolution:
		m.startAnimation(AnimEvolve)
	case game.KeyCollapsed:
		m.startAnimation(AnimSleep)
	}
}

func (m *Model) startAnimation(animType AnimationType) {
	m.Animation = Animation{
		Type:      animType,
		Frame:     0,
		StartTime: pet.TimeNow(),
	}
}

// animCmd starts the frame ticker when an animation started after prev.
func (m Model) animCmd(prev time.Time) tea.Cmd {
	if m.Animation.Type == AnimNone || m.Animation.StartTime.Equal(prev) {
		return nil
	}
	return animTick(m.Animation.StartTime)
}

func (m *Model) startWork(jobID string) {
	if res := m.Game.StartWork(jobID); !res.OK() {
		m.setMessage(Text(res.Reason, nil))
		return
	}
	log.Printf("Started work %s", jobID)
	m.setMessage("💼 Off to work!")
	m.startAnimation(AnimWork)
	m.Screen = ScreenMain
}

func (m *Model) startStudy(studyID string) {
	res, notices := m.Game.StartStudy(studyID)
	if !res.OK() {
		m.setMessage(Text(res.Reason, nil))
		return
	}
	log.Printf("Started study %s", studyID)
	m.setMessage("📚 Hitting the books!")
	for _, n := range notices {
		m.notify(n)
	}
	m.startAnimation(AnimStudy)
	m.Screen = ScreenMain
}

func (m *Model) buy(itemID string) {
	if !m.Game.BuyItem(itemID, 1) {
		m.setMessage(Text("messages.not_enough_coins", nil))
		return
	}
	m.setMessage("🛍️ Bought one!")
}

func (m *Model) useItem(itemID string) {
	res, notices := m.Game.UseItem(itemID)
	if !res.OK() {
		m.setMessage(Text(res.Reason, nil))
		return
	}
	log.Printf("Used item %s", itemID)
	m.setMessage("👍 Used it!")
	for _, n := range notices {
		m.notify(n)
	}
	if a := AnimationFor(m.Game.Snapshot().Pet.CurrentAction); a != AnimNone {
		m.startAnimation(a)
	}
	m.Screen = ScreenMain
}

func (m *Model) adventure(locationID string) {
	o, notices := m.Game.Adventure(locationID)
	m.setMessage(Text(o.Message, nil))
	if !o.Success {
		return
	}
	for _, n := range notices {
		m.notify(n)
	}
	m.startAnimation(AnimAdventure)
	m.Screen = ScreenMain
}

func (m *Model) touch() {
	exp := m.Game.Touch()
	if exp > 0 {
		m.setMessage(fmt.Sprintf("💕 Purr! +%.0f exp", exp))
	} else {
		m.setMessage("💕 Purr!")
	}
}
