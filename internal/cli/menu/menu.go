// Package menu implements the interactive account editor shown when
// lunar-accounts runs without a subcommand.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/steviee/lunar-accounts/internal/accounts"
)

// Main menu choices.
const (
	OptionCreate = iota + 1
	OptionRemove
	OptionList
	OptionExit
)

// Remove sub-menu choices.
const (
	RemoveAll = iota + 1
	RemoveCracked
	RemovePremium
)

const clearSequence = "\033[H\033[2J"

// Persister writes the whole document back to its backing file.
type Persister interface {
	Persist(ctx context.Context, doc *accounts.Document) error
}

// Options tune the menu presentation.
type Options struct {
	// ClearScreen clears the terminal before each screen when the output is a TTY.
	ClearScreen bool
}

// Menu drives the main menu loop over a single in-memory document.
type Menu struct {
	in    *bufio.Scanner
	out   io.Writer
	store Persister
	doc   *accounts.Document
	opts  Options

	title   lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
	success lipgloss.Style
}

// New creates a menu reading operator input from in and writing to out.
// Every mutation is persisted through store before the next prompt.
func New(in io.Reader, out io.Writer, store Persister, doc *accounts.Document, opts Options) *Menu {
	r := lipgloss.NewRenderer(out)
	return &Menu{
		in:      bufio.NewScanner(in),
		out:     out,
		store:   store,
		doc:     doc,
		opts:    opts,
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ADD8")),
		warning: r.NewStyle().Foreground(lipgloss.Color("#FFA500")),
		failure: r.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true),
		success: r.NewStyle().Foreground(lipgloss.Color("#00FF00")),
	}
}

// Document returns the document the menu edits.
func (m *Menu) Document() *accounts.Document {
	return m.doc
}

// Run shows the main menu until the operator exits or input ends.
// It returns an error only when reading input or persisting fails.
func (m *Menu) Run(ctx context.Context) error {
	err := m.loop(ctx)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (m *Menu) loop(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.clearScreen()
		m.println(m.title.Render("What would you like to do:"))
		m.println("1. Create Account")
		m.println("2. Remove Accounts")
		m.println("3. View Installed Accounts")
		m.println("4. Exit the program")

		line, err := m.prompt("Please type your option (1-4) here: ")
		if err != nil {
			return err
		}

		choice, err := ParseChoice(line, OptionExit)
		if err != nil {
			slog.Debug("invalid menu option", "input", line)
			m.println(m.failure.Render("Your choice is invalid. Please pick an option (1-4)."))
		} else {
			switch choice {
			case OptionCreate:
				err = m.createAccount(ctx)
			case OptionRemove:
				err = m.removeAccounts(ctx)
			case OptionList:
				m.showAccounts()
			case OptionExit:
				return nil
			}
			if err != nil {
				return err
			}
		}

		if _, err := m.prompt("Press ENTER to return to the main menu..."); err != nil {
			return err
		}
	}
}

// createAccount asks for a username and a UUID and stores the new account.
// Declining to retry an invalid UUID leaves the document untouched.
func (m *Menu) createAccount(ctx context.Context) error {
	m.clearScreen()

	username, err := m.prompt("Enter your desired username: ")
	if err != nil {
		return err
	}

	if warnings := accounts.CheckUsername(username); len(warnings) > 0 {
		m.println(m.warning.Render("[WARNING] You may experience issues joining servers because of your username being invalid."))
		for _, w := range warnings {
			m.println(m.warning.Render("  - " + w))
		}
	}

	id, ok, err := m.promptUUID()
	if err != nil {
		return err
	}
	if !ok {
		m.println("Returning to main menu.")
		return nil
	}

	if _, err := m.doc.Create(id, username); err != nil {
		return fmt.Errorf("create account: %w", err)
	}

	if err := m.store.Persist(ctx, m.doc); err != nil {
		return err
	}

	slog.Debug("account created", "uuid", id, "username", username)
	m.println(m.success.Render("Your account has successfully been created."))
	return nil
}

// promptUUID asks until a valid UUID is entered or the operator declines
// to retry. ok is false when the operator gave up.
func (m *Menu) promptUUID() (id string, ok bool, err error) {
	for {
		id, err = m.prompt("Enter a valid UUID: ")
		if err != nil {
			return "", false, err
		}

		if verr := accounts.ValidateUUID(id); verr == nil {
			return id, true, nil
		}

		var retry string
		retry, err = m.prompt("Would you like to try again? (y/n): ")
		if err != nil {
			return "", false, err
		}
		if strings.ToLower(retry) != "y" {
			return "", false, nil
		}
	}
}

// removeAccounts applies one of the removal filters and persists.
func (m *Menu) removeAccounts(ctx context.Context) error {
	m.clearScreen()
	m.println(m.title.Render("Choose an option to remove accounts:"))
	m.println("1. Remove All Accounts")
	m.println("2. Remove Cracked Accounts (keeps accounts whose access token is their UUID)")
	m.println("3. Remove Premium Accounts (keeps accounts whose access token differs from their UUID)")

	line, err := m.prompt("Please type your option (1-3) here: ")
	if err != nil {
		return err
	}

	choice, err := ParseChoice(line, RemovePremium)
	if err != nil {
		m.println(m.failure.Render("An error occurred: Input string was not in a correct format."))
		return nil
	}

	var (
		removed int
		message string
	)
	switch choice {
	case RemoveAll:
		removed = m.doc.RemoveAll()
		message = "All accounts have been removed."
	case RemoveCracked:
		removed = m.doc.RemoveCracked()
		message = "Cracked accounts have been successfully removed."
	case RemovePremium:
		removed = m.doc.RemovePremium()
		message = "Premium accounts have been successfully removed."
	}

	if err := m.store.Persist(ctx, m.doc); err != nil {
		return err
	}

	slog.Debug("accounts removed", "option", choice, "removed", removed)
	m.println(m.success.Render(message))
	return nil
}

func (m *Menu) showAccounts() {
	m.println(m.title.Render("Installed Accounts:"))
	for _, e := range m.doc.Entries() {
		m.println(fmt.Sprintf("%s: %s", e.ID, e.Username))
	}
}

// ParseChoice parses a numbered menu selection in the range 1..limit.
// Surrounding whitespace is ignored.
func ParseChoice(input string, limit int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 1 || n > limit {
		return 0, fmt.Errorf("%w: %q", accounts.ErrInvalidOption, input)
	}
	return n, nil
}

// prompt writes query and reads one line. io.EOF means input has ended.
func (m *Menu) prompt(query string) (string, error) {
	_, _ = fmt.Fprint(m.out, query)

	if !m.in.Scan() {
		// Finish the prompt line before returning
		_, _ = fmt.Fprintln(m.out)
		if err := m.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.EOF
	}

	return strings.TrimRight(m.in.Text(), "\r"), nil
}

func (m *Menu) println(s string) {
	_, _ = fmt.Fprintln(m.out, s)
}

func (m *Menu) clearScreen() {
	if !m.opts.ClearScreen {
		return
	}
	f, ok := m.out.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return
	}
	_, _ = fmt.Fprint(m.out, clearSequence)
}
