package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"deskpet/internal/economy"
	"deskpet/internal/pet"
)

var gameStyles = struct {
	title   lipgloss.Style
	status  lipgloss.Style
	menuBox lipgloss.Style
	stats   lipgloss.Style
	bubble  lipgloss.Style
}{
	title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF75B5")).
		Padding(0, 1),

	status: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF75B5")).
		Width(40),

	stats: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF75B5")).
		Width(40),

	menuBox: lipgloss.NewStyle().
		Padding(0, 2),

	bubble: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#FFD700")).
		Padding(0, 1),
}

var stageEmoji = map[pet.Stage]string{
	pet.StageEgg:   "🥚",
	pet.StageBaby:  "🐱",
	pet.StageAdult: "😺",
}

var screenTitles = map[Screen]string{
	ScreenWork:      "💼 Jobs",
	ScreenStudy:     "📚 Courses",
	ScreenShop:      "🛍️ Shop",
	ScreenInventory: "🎒 Inventory",
	ScreenAdventure: "🗺️ Adventures",
}

// View implements tea.Model
func (m Model) View() string {
	if m.Quitting {
		return "Thanks for playing!\n"
	}
	if m.Screen == ScreenDebug {
		return m.renderDebugMenu()
	}

	// Show animation if one is active
	if m.Animation.Type != AnimNone {
		return m.renderAnimation()
	}

	sections := []string{
		m.renderTitle(),
		"",
		m.renderStats(),
		"",
		m.renderStatus(),
	}

	if m.Bubble != "" && pet.TimeNow().Before(m.BubbleExpires) {
		sections = append(sections, "", gameStyles.bubble.Render("💬 "+m.Bubble))
	}

	if m.Message != "" && pet.TimeNow().Before(m.MessageExpires) {
		sections = append(sections, "", gameStyles.status.Render(m.Message))
	}

	sections = append(sections,
		"",
		m.renderMenu(),
		"",
		gameStyles.status.Render(m.helpText()),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTitle() string {
	emoji := stageEmoji[m.Snap.Pet.Stage]
	return gameStyles.title.Render(emoji + " " + m.Snap.Pet.Name + " " + emoji)
}

func (m Model) helpText() string {
	if m.Screen == ScreenMain {
		return "arrows to move • enter to select • c debug • q to quit"
	}
	return "arrows to move • enter to select • esc back • q to quit"
}

func (m Model) renderStats() string {
	p := m.Snap.Pet
	stats := []struct {
		name, value string
	}{
		{"Stage", capitalize(string(p.Stage))},
		{"Level", fmt.Sprintf("%d (%.0f%%)", p.Level, m.Snap.Progress*100)},
		{"Age", fmt.Sprintf("%d days", m.Snap.AgeDays)},
		{"Coins", fmt.Sprintf("%d", m.Snap.Player.Coins)},
		{"Hunger", fmt.Sprintf("%.0f%%", p.Hunger)},
		{"Clean", fmt.Sprintf("%.0f%%", p.Clean)},
		{"Mood", fmt.Sprintf("%.0f%%", p.Mood)},
		{"Health", fmt.Sprintf("%.0f%%", p.Health)},
		{"STR/DEX", fmt.Sprintf("%.0f / %.0f", p.Strength, p.Dexterity)},
		{"END/INT", fmt.Sprintf("%.0f / %.0f", p.Endurance, p.Intelligence)},
		{"LUK/CHA", fmt.Sprintf("%.0f / %.0f", p.Luck, p.Charm)},
		{"Mode", m.Snap.Mode.Name},
	}

	var lines []string
	for _, stat := range stats {
		lines = append(lines, fmt.Sprintf("%-10s %s", stat.name+":", stat.value))
	}

	return gameStyles.stats.Render(strings.Join(lines, "\n"))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (m Model) renderStatus() string {
	status := fmt.Sprintf("Status: %s", m.Snap.Status)
	if left := economy.Remaining(&m.Snap.Pet, m.Snap.Pet.CurrentAction, m.Snap.Now); left > 0 {
		status += fmt.Sprintf(" (%s left)", left.Round(time.Second))
	}
	return gameStyles.status.Render(status)
}

func (m Model) renderMenu() string {
	var choices []string
	header := ""
	if m.Screen == ScreenMain {
		choices = mainMenuOptions
	} else {
		header = gameStyles.title.Render(screenTitles[m.Screen])
		for _, e := range m.entries() {
			choices = append(choices, e.Label)
		}
		if len(choices) == 0 {
			choices = []string{"(empty)"}
		}
	}

	var menuItems []string
	for i, choice := range choices {
		cursor := " "
		if m.Choice == i {
			cursor = ">"
		}
		menuItems = append(menuItems, fmt.Sprintf("%s %s", cursor, choice))
	}

	menu := gameStyles.menuBox.Render(strings.Join(menuItems, "\n"))
	if header == "" {
		return menu
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, menu)
}

var debugMenuOptions = []string{
	"Max Gauges",
	"Critical Gauges",
	"+100 Coins",
	"+100 Exp",
	"Finish Work Now",
	"Finish Study Now",
	"Cancel Current Action",
	"Reset Growth",
	"Toggle Bubbles",
	"Cycle Mode",
	"Back",
}

func (m Model) renderDebugMenu() string {
	var menuItems []string
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF0000")).
		Render("⚠️  DEBUG MENU ⚠️")

	for i, choice := range debugMenuOptions {
		cursor := " "
		if m.Choice == i {
			cursor = ">"
		}
		menuItems = append(menuItems, fmt.Sprintf("%s %s", cursor, choice))
	}

	sections := []string{
		header,
		"",
		gameStyles.menuBox.Render(strings.Join(menuItems, "\n")),
	}
	if m.Message != "" && pet.TimeNow().Before(m.MessageExpires) {
		sections = append(sections, "", gameStyles.status.Render(m.Message))
	}
	sections = append(sections, "", gameStyles.status.Render("Press 'c' or Esc to exit"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

var modeCycle = map[string]string{
	"quiet":    "roam",
	"roam":     "mischief",
	"mischief": "quiet",
}

func (m *Model) executeDebug() {
	switch debugMenuOptions[m.Choice] {
	case "Max Gauges":
		m.Game.DebugSetGauges(pet.MinGauge, pet.MaxGauge, pet.MaxGauge, pet.MaxGauge)
		m.setMessage("🎮 All gauges maxed!")
	case "Critical Gauges":
		m.Game.DebugSetGauges(90, 10, 10, 10)
		m.setMessage("🎮 Gauges set to critical!")
	case "+100 Coins":
		m.Game.DebugAddCoins(100)
		m.setMessage("🎮 +100 coins")
	case "+100 Exp":
		m.Game.DebugAddExp(100)
		m.setMessage("🎮 +100 exp")
	case "Finish Work Now":
		if _, notices, ok := m.Game.FinishWork(); ok {
			for _, n := range notices {
				m.notify(n)
			}
		} else {
			m.setMessage("🎮 Not working")
		}
	case "Finish Study Now":
		if id, ok := m.Game.FinishStudy(); ok {
			m.setMessage(Text("tray.study_complete", map[string]any{"study": id}))
		} else {
			m.setMessage("🎮 Not studying")
		}
	case "Cancel Current Action":
		m.Game.DebugCancel()
		m.setMessage("🎮 Back to idle")
	case "Reset Growth":
		m.Game.DebugResetGrowth()
		m.setMessage("🎮 Back to an egg")
	case "Toggle Bubbles":
		on := !m.Snap.Player.Settings.BubbleEnabled
		m.Game.SetBubbles(on)
		m.setMessage(fmt.Sprintf("🎮 Bubbles: %t", on))
	case "Cycle Mode":
		next := modeCycle[m.Snap.Player.Settings.Mode]
		m.Game.SetMode(next)
		m.setMessage("🎮 Mode: " + m.Game.Mode().Name)
	case "Back":
		m.back()
	}
}

func (m Model) renderAnimation() string {
	frame := GetAnimationFrame(m.Animation)

	animStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFD700")).
		Bold(true).
		Padding(1, 2)

	sections := []string{
		m.renderTitle(),
		"",
		animStyle.Render(frame),
	}

	if m.Message != "" && pet.TimeNow().Before(m.MessageExpires) {
		sections = append(sections, "", gameStyles.status.Render(m.Message))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
