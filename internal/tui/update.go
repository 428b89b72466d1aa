package tui

import (
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case accountsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = fmt.Errorf("failed to load accounts: %w", msg.err)
			m.errorTime = time.Now()
			slog.Error("failed to load accounts", "error", msg.err)
			return m, clearErrorCmd()
		}

		m.doc = msg.doc
		m.accounts = buildAccountList(m.doc)
		m.lastUpdate = time.Now()
		m.clampSelection()
		return m, nil

	case accountRemovedMsg:
		m.saving = false
		if msg.err != nil {
			m.err = fmt.Errorf("remove %s failed: %w", msg.account.ID, msg.err)
			m.errorTime = time.Now()
			slog.Error("failed to persist removal", "uuid", msg.account.ID, "error", msg.err)
			// The file still holds the account; show what is on disk
			m.loading = true
			return m, tea.Batch(clearErrorCmd(), loadAccountsCmd(m.ctx, m.store))
		}

		m.notice = fmt.Sprintf("Removed %s (%s)", msg.account.Username, msg.account.ID)
		m.lastUpdate = time.Now()
		slog.Info("account removed", "uuid", msg.account.ID, "username", msg.account.Username)
		return m, nil

	case clearErrorMsg:
		// Only clear if error is older than 3 seconds
		if time.Since(m.errorTime) >= 3*time.Second {
			m.err = nil
		}
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit

	case "r":
		if m.saving || m.loading {
			return m, nil
		}
		m.loading = true
		m.notice = ""
		return m, loadAccountsCmd(m.ctx, m.store)
	}

	// If no accounts, ignore navigation and action keys
	if len(m.accounts) == 0 {
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		if m.selectedIdx > 0 {
			m.selectedIdx--
		}
		return m, nil

	case "down", "j":
		if m.selectedIdx < len(m.accounts)-1 {
			m.selectedIdx++
		}
		return m, nil

	case "d":
		if m.saving || m.loading || m.doc == nil {
			return m, nil
		}

		selected := m.accounts[m.selectedIdx]
		if !m.doc.Remove(selected.ID) {
			return m, nil
		}

		m.accounts = buildAccountList(m.doc)
		m.clampSelection()
		m.saving = true
		m.notice = ""
		return m, persistCmd(m.ctx, m.store, m.doc, selected)
	}

	return m, nil
}

// clampSelection keeps the selected index inside the account list
func (m *Model) clampSelection() {
	if len(m.accounts) == 0 {
		m.selectedIdx = 0
	} else if m.selectedIdx >= len(m.accounts) {
		m.selectedIdx = len(m.accounts) - 1
	}
}
