// Package parser extracts flashcard decks from plain markdown files.
//
// Consecutive non-blank lines pair up as term then definition. A line
// starting with "#" opens a new named deck; cards before any heading belong
// to a deck named after the file. A trailing term with no definition is
// dropped.
package parser

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mherran/repaso/internal/domain"
	"github.com/mherran/repaso/internal/identity"
)

// Deck is a named group of parsed cards, in file order.
type Deck struct {
	Name  string
	Cards []domain.Card
}

type state int

const (
	wantTerm state = iota
	wantDefinition
)

// ParseFile reads the file at path and extracts its decks. Cards outside any
// heading land in a deck named after the file (base name without extension).
func ParseFile(path string) ([]Deck, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	base := filepath.Base(path)
	fallback := strings.TrimSuffix(base, filepath.Ext(base))
	return Parse(file, fallback)
}

// Parse reads decks from r. fallback names the deck for cards that appear
// before any heading.
func Parse(r io.Reader, fallback string) ([]Deck, error) {
	scanner := bufio.NewScanner(r)

	var decks []Deck
	current := Deck{Name: fallback}
	seen := make(map[string]bool) // per-deck duplicate guard

	var term string
	currentState := wantTerm

	finishDeck := func() {
		if len(current.Cards) > 0 {
			decks = append(decks, current)
		}
		seen = make(map[string]bool)
		term = ""
		currentState = wantTerm
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, "#") {
			finishDeck()
			name := strings.TrimSpace(strings.TrimLeft(line, "#"))
			if name == "" {
				name = fallback
			}
			current = Deck{Name: name}
			continue
		}

		if line == "" {
			continue
		}

		switch currentState {
		case wantTerm:
			term = line
			currentState = wantDefinition
		case wantDefinition:
			id := identity.Hash(term, line)
			// The same pair appearing twice in one file is a single card.
			if !seen[id] {
				seen[id] = true
				current.Cards = append(current.Cards, domain.NewCard(id, term, line))
			}
			term = ""
			currentState = wantTerm
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	finishDeck()
	return decks, nil
}
