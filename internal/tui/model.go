package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/steviee/lunar-accounts/internal/accounts"
)

// Store is the accounts file the browser reads and writes.
type Store interface {
	Path() string
	Open(ctx context.Context) (*accounts.Document, error)
	Persist(ctx context.Context, doc *accounts.Document) error
}

// Model is the bubbletea model for the account browser
type Model struct {
	accounts    []AccountInfo
	doc         *accounts.Document
	selectedIdx int
	lastUpdate  time.Time
	err         error
	errorTime   time.Time
	notice      string
	loading     bool
	saving      bool
	width       int
	height      int
	store       Store
	ctx         context.Context
	quitting    bool
}

// NewModel creates a new browser model over store
func NewModel(ctx context.Context, store Store) *Model {
	return &Model{
		accounts:   []AccountInfo{},
		lastUpdate: time.Now(),
		loading:    true,
		store:      store,
		ctx:        ctx,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return loadAccountsCmd(m.ctx, m.store)
}

// Run opens the browser full-screen and blocks until the user quits.
func Run(ctx context.Context, store Store) error {
	p := tea.NewProgram(NewModel(ctx, store), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run account browser: %w", err)
	}
	return nil
}

// loadAccountsCmd returns a command that reads the accounts file,
// creating it first when it is missing
func loadAccountsCmd(ctx context.Context, store Store) tea.Cmd {
	return func() tea.Msg {
		doc, err := store.Open(ctx)
		return accountsLoadedMsg{
			doc: doc,
			err: err,
		}
	}
}

// persistCmd returns a command that writes doc after an account was removed
func persistCmd(ctx context.Context, store Store, doc *accounts.Document, removed AccountInfo) tea.Cmd {
	return func() tea.Msg {
		return accountRemovedMsg{
			account: removed,
			err:     store.Persist(ctx, doc),
		}
	}
}

// clearErrorCmd returns a command that clears the error message after a delay
func clearErrorCmd() tea.Cmd {
	return tea.Tick(3*time.Second, func(t time.Time) tea.Msg {
		return clearErrorMsg{}
	})
}
