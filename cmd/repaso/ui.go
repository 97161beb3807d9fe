package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mherran/repaso/internal/domain"
)

// terminalUI implements queue.UI over stdin/stdout.
type terminalUI struct {
	in    *bufio.Reader
	out   io.Writer
	shown int
}

func newTerminalUI() *terminalUI {
	return &terminalUI{
		in:  bufio.NewReader(os.Stdin),
		out: os.Stdout,
	}
}

func (u *terminalUI) Present(card domain.Card, remaining int) error {
	u.shown++
	fmt.Fprintln(u.out, strings.Repeat("-", 50))
	fmt.Fprintf(u.out, "Card %d (%d in queue)\n", u.shown, remaining)
	fmt.Fprintf(u.out, "Term: %s\n", card.Term)
	fmt.Fprint(u.out, "Press Enter to reveal the definition...")
	if _, err := u.in.ReadString('\n'); err != nil {
		return err
	}
	fmt.Fprintf(u.out, "\nDefinition: %s\n\n", card.Definition)
	return nil
}

func (u *terminalUI) NextRating() (domain.Rating, bool, error) {
	for {
		fmt.Fprint(u.out, "Rate recall (1=Again, 2=Hard, 3=Good, 4=Easy, q=quit): ")
		line, err := u.in.ReadString('\n')
		if err != nil {
			// EOF on stdin is a quit, not a failure.
			if errors.Is(err, io.EOF) {
				return 0, false, nil
			}
			return 0, false, err
		}
		input := strings.ToLower(strings.TrimSpace(line))
		if input == "q" || input == "quit" {
			return 0, false, nil
		}
		n, convErr := strconv.Atoi(input)
		if convErr == nil && domain.Rating(n).IsValid() {
			return domain.Rating(n), true, nil
		}
		fmt.Fprintln(u.out, "Please enter a number between 1 and 4, or 'q' to quit.")
	}
}

func (u *terminalUI) Completed(card domain.Card) {
	fmt.Fprintf(u.out, "Card completed! Next review in %d day(s).\n\n", card.Interval)
}

func (u *terminalUI) Requeued(card domain.Card) {
	fmt.Fprintf(u.out, "Card will come back around (attempt %d).\n\n", card.SessionAttempts)
}
