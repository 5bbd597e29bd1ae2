package ui

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"deskpet/internal/game"
	"deskpet/internal/store"
)

// StatsModel is a simple Bubble Tea model for displaying stats
type StatsModel struct {
	Snap    game.Snapshot
	History []store.Entry
}

// Init implements tea.Model
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, tea.Quit
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			return m, tea.Quit
		}
	}
	return m, nil
}

func makeBar(value float64) string {
	filled := int(value) / 20
	var bar strings.Builder
	for i := 0; i < 5; i++ {
		if i < filled {
			bar.WriteString("█")
		} else {
			bar.WriteString("░")
		}
	}
	return bar.String()
}

// View implements tea.Model
func (m StatsModel) View() string {
	p := m.Snap.Pet
	pl := m.Snap.Player
	emoji := stageEmoji[p.Stage]

	sick := "No"
	if p.Sick {
		sick = "Yes"
	}

	var s strings.Builder
	s.WriteString("╔════════════════════════════════════╗\n")
	s.WriteString(fmt.Sprintf("║  %s %-30s ║\n", emoji, p.Name))
	s.WriteString("╠════════════════════════════════════╣\n")
	s.WriteString(fmt.Sprintf("║  Stage:   %-24s ║\n", capitalize(string(p.Stage))))
	s.WriteString(fmt.Sprintf("║  Level:   %-24s ║\n", fmt.Sprintf("%d (%.0f%% to next)", p.Level, m.Snap.Progress*100)))
	s.WriteString(fmt.Sprintf("║  Age:     %-24s ║\n", fmt.Sprintf("%d days", m.Snap.AgeDays)))
	s.WriteString(fmt.Sprintf("║  Status:  %-24s ║\n", m.Snap.Status))
	s.WriteString(fmt.Sprintf("║  Coins:   %-24d ║\n", pl.Coins))
	s.WriteString("║                                    ║\n")
	s.WriteString(fmt.Sprintf("║  Hunger:    [%s] %3.0f%%           ║\n", makeBar(p.Hunger), p.Hunger))
	s.WriteString(fmt.Sprintf("║  Clean:     [%s] %3.0f%%           ║\n", makeBar(p.Clean), p.Clean))
	s.WriteString(fmt.Sprintf("║  Mood:      [%s] %3.0f%%           ║\n", makeBar(p.Mood), p.Mood))
	s.WriteString(fmt.Sprintf("║  Health:    [%s] %3.0f%%           ║\n", makeBar(p.Health), p.Health))
	s.WriteString(fmt.Sprintf("║  Sick:      %-23s║\n", sick))
	s.WriteString("║                                    ║\n")
	s.WriteString(fmt.Sprintf("║  STR %-5.0f DEX %-5.0f END %-5.0f    ║\n", p.Strength, p.Dexterity, p.Endurance))
	s.WriteString(fmt.Sprintf("║  INT %-5.0f LUK %-5.0f CHA %-5.0f    ║\n", p.Intelligence, p.Luck, p.Charm))
	s.WriteString("║                                    ║\n")
	s.WriteString(fmt.Sprintf("║  Shifts: %-4d Courses: %-4d        ║\n", pl.Stats.WorkCount, pl.Stats.StudyCount))
	s.WriteString(fmt.Sprintf("║  Trips:  %-4d Items:   %-4d        ║\n", pl.Stats.AdventureCount, pl.Stats.ItemsUsed))
	s.WriteString(fmt.Sprintf("║  Achievements: %-19d ║\n", len(pl.Achievements)))
	s.WriteString("╚════════════════════════════════════╝\n")

	if len(m.History) > 0 {
		s.WriteString("\nRecent saves:\n")
		for _, e := range m.History {
			s.WriteString(fmt.Sprintf("  #%-4d %s  lvl %-3d %5d 💰  %d bytes\n",
				e.ID, e.SavedAt.Local().Format("2006-01-02 15:04"), e.Level, e.Coins, e.Size))
		}
		s.WriteString("  deskpet -backend sqlite -id <#> restore brings one back\n")
	}

	s.WriteString("\nPress ESC, click, or any key to close...")

	return s.String()
}

// DisplayStats shows the stats display
func DisplayStats(snap game.Snapshot, history []store.Entry) {
	program := tea.NewProgram(StatsModel{Snap: snap, History: history}, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := program.Run(); err != nil {
		fmt.Printf("Error running stats display: %v\n", err)
		os.Exit(1)
	}
}
