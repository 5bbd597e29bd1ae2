package game

import (
	"context"
	"log"
	"time"
)

// Run drives the session until ctx is done: it ticks at the current
// mode's pace, offers dialog lines and saves every autosave interval. A
// zero autosave disables periodic saving. The state is saved once more on
// the way out.
func (s *Session) Run(ctx context.Context, autosave time.Duration, notify func(Notice)) error {
	if notify == nil {
		notify = func(Notice) {}
	}

	mode := s.Mode()
	tick := time.NewTicker(mode.TickInterval)
	defer tick.Stop()
	talk := time.NewTicker(mode.DialogInterval)
	defer talk.Stop()

	var save <-chan time.Time
	if autosave > 0 {
		saveTicker := time.NewTicker(autosave)
		defer saveTicker.Stop()
		save = saveTicker.C
	}

	for {
		select {
		case <-ctx.Done():
			return s.Save()
		case <-tick.C:
			for _, n := range s.Tick() {
				notify(n)
			}
			if m := s.Mode(); m.Name != mode.Name {
				log.Printf("Switching to %s mode", m.Name)
				mode = m
				tick.Reset(mode.TickInterval)
				talk.Reset(mode.DialogInterval)
			}
		case <-talk.C:
			if line, ok := s.DialogTick(); ok {
				notify(notice(KeyDialog, "category", string(line.Category), "text", line.Text))
			}
		case <-save:
			if err := s.Save(); err != nil {
				log.Printf("Autosave failed: %v", err)
			}
		}
	}
}
