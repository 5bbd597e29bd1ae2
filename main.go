package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cloudwego/hertz/pkg/app/server"

	"deskpet/internal/api"
	"deskpet/internal/config"
	"deskpet/internal/content"
	"deskpet/internal/game"
	"deskpet/internal/player"
	"deskpet/internal/store"
	"deskpet/internal/ui"
)

const usage = `usage: deskpet [flags] [play|stats|serve|restore]

  play     run the pet in the terminal (default)
  stats    show the pet's stats and recent saves
  serve    run the pet headless with the local HTTP API
  restore  make save -id the newest one (sqlite backend)

flags:
`

// options are the command line overrides for the settings file.
type options struct {
	command string
	name    string
	backend string
	addr    string
	history int
	id      int64
}

func parseArgs(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("deskpet", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}
	fs.StringVar(&o.name, "name", "", "name for a newly hatched pet")
	fs.StringVar(&o.backend, "backend", "", "save backend: json or sqlite")
	fs.StringVar(&o.addr, "addr", "", "listen address for serve")
	fs.IntVar(&o.history, "history", 5, "number of recent saves listed by stats (sqlite backend)")
	fs.Int64Var(&o.id, "id", 0, "save id to restore, as listed by stats")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	o.command = "play"
	switch rest := fs.Args(); len(rest) {
	case 0:
	case 1:
		o.command = rest[0]
	default:
		return options{}, fmt.Errorf("too many arguments: %v", rest)
	}
	switch o.command {
	case "play", "stats", "serve":
	case "restore":
		if o.id <= 0 {
			return options{}, fmt.Errorf("restore needs -id")
		}
	default:
		return options{}, fmt.Errorf("unknown command %q", o.command)
	}
	return o, nil
}

func (o options) apply(s *config.Settings) {
	if o.name != "" {
		s.PetName = o.name
	}
	if o.backend != "" {
		s.Backend = o.backend
	}
	if o.addr != "" {
		s.APIAddr = o.addr
	}
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Printf("Alas, there's been an error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	opts, err := parseArgs(args)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	settings, err := config.Load()
	if err != nil {
		return err
	}
	if err := writeDefaults(settings); err != nil {
		return err
	}
	opts.apply(&settings)
	if err := settings.Validate(); err != nil {
		return err
	}

	// bubbletea owns the terminal, so the log goes to a file
	if opts.command != "serve" {
		f, err := tea.LogToFile(settings.LogFile, "deskpet")
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
	}

	repo, err := content.Load(settings.ContentDir)
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}
	st, err := store.Open(settings.Backend, settings.SaveDir)
	if err != nil {
		return err
	}
	defer st.Close()
	if opts.command == "restore" {
		return restore(st, opts.id)
	}

	session := game.New(repo, st)
	found, err := session.Load(settings.PetName)
	if err != nil {
		return err
	}
	session.SetMode(settings.Mode)
	session.SetQuietHours(player.QuietHours(settings.QuietHours))
	if !found {
		log.Printf("Hatched a new egg named %s", settings.PetName)
	}

	switch opts.command {
	case "stats":
		return showStats(session, st, opts.history)
	case "serve":
		return serve(session, settings)
	}
	return play(session, settings)
}

// writeDefaults leaves an editable settings file behind on first run.
func writeDefaults(settings config.Settings) error {
	path, err := config.Path()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := config.Save(settings); err != nil {
		return err
	}
	log.Printf("Wrote default settings to %s", path)
	return nil
}

func restore(st store.Store, id int64) error {
	db, ok := st.(*store.SQLite)
	if !ok {
		return fmt.Errorf("restore needs the sqlite backend")
	}
	data, err := db.LoadID(id)
	if errors.Is(err, store.ErrNoSave) {
		return fmt.Errorf("no save #%d", id)
	}
	if err != nil {
		return err
	}
	if err := db.Save(data); err != nil {
		return err
	}
	log.Printf("Restored save #%d", id)
	fmt.Printf("Restored %s (level %d, %d coins) from save #%d\n", data.Pet.Name, data.Pet.Level, data.Player.Coins, id)
	return nil
}

func play(session *game.Session, settings config.Settings) error {
	program := tea.NewProgram(ui.NewModel(session, settings.AutoSave))
	_, err := program.Run()
	if saveErr := session.Save(); saveErr != nil {
		log.Printf("Final save failed: %v", saveErr)
	}
	return err
}

func showStats(session *game.Session, st store.Store, limit int) error {
	session.Tick()
	var history []store.Entry
	if db, ok := st.(*store.SQLite); ok {
		entries, err := db.History(limit)
		if err != nil {
			return err
		}
		history = entries
	}
	ui.DisplayStats(session.Snapshot(), history)
	return nil
}

func serve(session *game.Session, settings config.Settings) error {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- session.Run(ctx, settings.AutoSave, func(n game.Notice) {
			log.Printf("%s %v", n.Key, n.Args)
		})
	}()

	h := server.Default(server.WithHostPorts(settings.APIAddr))
	api.Handler{Game: session}.RegisterRoutes(h)
	log.Printf("deskpet API listening on %s", settings.APIAddr)
	h.Spin()

	cancel()
	return <-done
}
