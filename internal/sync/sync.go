// Package sync reconciles registered deck sources with the database. New
// cards are inserted with default scheduling state; cards already known keep
// their state untouched; cards that disappeared from a source are removed.
package sync

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/mherran/repaso/internal/gitsource"
	"github.com/mherran/repaso/internal/parser"
	"github.com/mherran/repaso/internal/storage"
)

// Run iterates over all registered sources and reconciles them. reposDir is
// where git sources keep their local clones.
func Run(db *storage.DB, reposDir string) error {
	slog.Info("Starting sync process for all sources...")
	sources, err := db.GetAllSources()
	if err != nil {
		return fmt.Errorf("getting sources: %w", err)
	}

	if len(sources) == 0 {
		slog.Info("No sources configured. Add one with: repaso add-source <path/or/url.git>")
		return nil
	}

	if err := os.MkdirAll(reposDir, 0o755); err != nil {
		return fmt.Errorf("creating repos directory: %w", err)
	}

	for _, source := range sources {
		slog.Info("Syncing source", "id", source.ID, "kind", source.Kind, "path", source.Path)

		sourceToReconcile := source

		switch source.Kind {
		case "git":
			localRepoPath, err := gitURLToLocalPath(reposDir, source.Path)
			if err != nil {
				slog.Error("Error determining local path for git repo", "url", source.Path, "error", err)
				continue
			}
			if err := gitsource.Sync(source.Path, localRepoPath); err != nil {
				slog.Error("Error syncing git repo", "url", source.Path, "error", err)
				continue
			}
			sourceToReconcile.Path = localRepoPath
			reconcileLocalSource(db, &sourceToReconcile)
		default:
			reconcileLocalSource(db, &sourceToReconcile)
		}
	}
	slog.Info("Sync process complete.")
	return nil
}

func reconcileLocalSource(db *storage.DB, source *storage.Source) {
	var reconcileErrors []error
	var parsedCards, insertedCards int
	found := make(map[storage.CardRef]bool)

	walkErr := filepath.WalkDir(source.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}

		decks, parseErr := parser.ParseFile(path)
		if parseErr != nil {
			reconcileErrors = append(reconcileErrors, fmt.Errorf("parsing %s: %w", path, parseErr))
			return nil
		}

		for _, deck := range decks {
			deckID, deckErr := db.EnsureDeck(deck.Name)
			if deckErr != nil {
				reconcileErrors = append(reconcileErrors, fmt.Errorf("creating deck %s: %w", deck.Name, deckErr))
				continue
			}
			for _, card := range deck.Cards {
				parsedCards++
				found[storage.CardRef{DeckID: deckID, CardID: card.ID}] = true

				exists, findErr := db.HasCard(deckID, card.ID)
				if findErr != nil {
					reconcileErrors = append(reconcileErrors, fmt.Errorf("db check for %s: %w", card.ID, findErr))
					continue
				}
				if !exists {
					slog.Info("New card found, inserting...", "deck", deck.Name, "id", card.ID)
					if insertErr := db.InsertCard(deckID, card, source.ID); insertErr != nil {
						reconcileErrors = append(reconcileErrors, fmt.Errorf("db insert for %s: %w", card.ID, insertErr))
						continue
					}
					insertedCards++
				}
			}
		}
		return nil
	})

	if walkErr != nil {
		slog.Error("Error walking directory", "path", source.Path, "error", walkErr)
		return
	}

	refs, err := db.GetCardRefsBySourceID(source.ID)
	if err != nil {
		slog.Error("Error getting cards for source", "source_id", source.ID, "error", err)
		return
	}

	var orphanedCards int
	for _, ref := range refs {
		if !found[ref] {
			slog.Info("Orphaned card, deleting", "deck_id", ref.DeckID, "id", ref.CardID)
			orphanedCards++
			if err := db.DeleteCard(ref.DeckID, ref.CardID); err != nil {
				slog.Warn("Failed to delete orphaned card", "id", ref.CardID, "error", err)
			}
		}
	}

	if err := db.UpdateSourceLastScanned(source.ID); err != nil {
		slog.Warn("Failed to update last scanned for source", "source_id", source.ID, "error", err)
	}

	slog.Info("reconciliation complete",
		"path", source.Path,
		"parsed_cards", parsedCards,
		"inserted", insertedCards,
		"orphaned_deleted", orphanedCards,
		"errors", len(reconcileErrors),
	)
}

// KindOf guesses whether a source path is a git URL or a local directory.
func KindOf(path string) string {
	if strings.HasSuffix(path, ".git") || strings.HasPrefix(path, "git@") ||
		strings.HasPrefix(path, "https://") || strings.HasPrefix(path, "http://") {
		return "git"
	}
	return "local"
}

func gitURLToLocalPath(baseDir, repoURL string) (string, error) {
	parsedURL, err := url.Parse(repoURL)
	if err != nil || (parsedURL.Scheme != "https" && parsedURL.Scheme != "http") {
		// scp-like syntax: git@host:user/repo.git
		if strings.Contains(repoURL, "@") {
			parts := strings.Split(repoURL, ":")
			if len(parts) == 2 {
				hostAndUser := strings.Split(parts[0], "@")
				if len(hostAndUser) == 2 {
					host := hostAndUser[1]
					repoPath := strings.TrimSuffix(parts[1], ".git")
					return filepath.Join(baseDir, host, repoPath), nil
				}
			}
		}
		return "", fmt.Errorf("could not parse git URL: %s", repoURL)
	}

	sanitizedPath := strings.TrimSuffix(parsedURL.Path, ".git")
	return filepath.Join(baseDir, parsedURL.Host, sanitizedPath), nil
}
