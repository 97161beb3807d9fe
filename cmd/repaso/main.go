package main

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/mherran/repaso/internal/config"
	"github.com/mherran/repaso/internal/domain"
	"github.com/mherran/repaso/internal/queue"
	"github.com/mherran/repaso/internal/scheduler"
	"github.com/mherran/repaso/internal/storage"
	"github.com/mherran/repaso/internal/sync"
)

func main() {
	flags := pflag.NewFlagSet("repaso", pflag.ExitOnError)
	cfgPath := flags.StringP("config", "c", "", "path to a YAML config file")
	flags.String("db", "repaso.db", "path to the sqlite database")
	flags.String("repos", "repos", "directory where git sources are cloned")
	flags.String("deck", "", "default deck to review")
	seed := flags.Int64("seed", 0, "seed for reinsertion randomness (0 = time-based)")
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: repaso [flags] <command>

Commands:
  sync                 reconcile all registered sources into the database
  add-source <path>    register a local directory or git URL as a deck source
  decks                list decks
  review [deck]        run a review session (default command)

Flags:
%s`, flags.FlagUsages())
	}
	flags.Parse(os.Args[1:])

	cfg, err := config.Load(*cfgPath, flags)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DB)
	if err != nil {
		slog.Error("Failed to open database", "path", cfg.DB, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	args := flags.Args()
	command := "review"
	if len(args) > 0 {
		command = args[0]
	}

	switch command {
	case "sync":
		err = sync.Run(db, cfg.Repos)
	case "add-source":
		if len(args) < 2 {
			err = errors.New("add-source needs a path or git URL")
			break
		}
		err = addSource(db, args[1])
	case "decks":
		err = listDecks(db)
	case "review":
		deckName := cfg.Deck
		if len(args) > 1 {
			deckName = args[1]
		}
		err = runReview(db, deckName, *seed)
	default:
		flags.Usage()
		os.Exit(2)
	}

	if err != nil {
		slog.Error("Command failed", "command", command, "error", err)
		os.Exit(1)
	}
}

func addSource(db *storage.DB, path string) error {
	existing, err := db.FindSourceByPath(path)
	if err != nil {
		return err
	}
	if existing != nil {
		fmt.Printf("Source already registered: %s\n", path)
		return nil
	}
	kind := sync.KindOf(path)
	if _, err := db.InsertSource(path, kind); err != nil {
		return err
	}
	fmt.Printf("Registered %s source: %s\n", kind, path)
	fmt.Println("Run 'repaso sync' to pull its cards in.")
	return nil
}

func listDecks(db *storage.DB) error {
	decks, err := db.ListDecks()
	if err != nil {
		return err
	}
	if len(decks) == 0 {
		fmt.Println("No decks yet. Register a source and run 'repaso sync'.")
		return nil
	}
	for _, d := range decks {
		last := "never reviewed"
		if d.LastSession.Valid {
			last = "last reviewed " + d.LastSession.Time.Format("2006-01-02")
		}
		fmt.Printf("  %s (%s)\n", d.Name, last)
	}
	return nil
}

func runReview(db *storage.DB, deckName string, seed int64) error {
	if deckName == "" {
		return errors.New("no deck specified: pass a deck name or set 'deck' in the config")
	}
	deck, err := db.FindDeckByName(deckName)
	if err != nil {
		return err
	}
	if deck == nil {
		return fmt.Errorf("deck %q not found: register a source and run 'repaso sync'", deckName)
	}
	cards, err := db.GetCards(deck.ID)
	if err != nil {
		return err
	}
	if len(cards) == 0 {
		fmt.Printf("Deck %q has no cards.\n", deckName)
		return nil
	}

	var lastSession *time.Time
	if deck.LastSession.Valid {
		t := deck.LastSession.Time
		lastSession = &t
	}

	clock := scheduler.System()
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	save := func(all []domain.Card) error {
		return db.SaveCards(deck.ID, all, clock.Today())
	}

	session := queue.NewSession(cards, lastSession, clock, rng, save)
	if session.Pending() == 0 {
		fmt.Println("No cards due for review!")
		return nil
	}

	fmt.Printf("Starting review of %q - %d card(s) ready\n", deckName, session.Pending())
	fmt.Println("Rate each card 1=Again, 2=Hard, 3=Good, 4=Easy; cards rated")
	fmt.Println("below Easy come back around until you close them with a 4.")
	fmt.Println()

	stats, err := session.Run(newTerminalUI())
	if err != nil {
		return err
	}

	if stats.Cancelled {
		fmt.Println("\nSession cancelled. Progress so far is saved.")
	} else {
		fmt.Println("\nSession complete!")
	}
	fmt.Printf("  Ratings given:   %d\n", stats.Reviewed)
	fmt.Printf("  Cards completed: %d\n", stats.Completed)
	return nil
}
