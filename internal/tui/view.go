package tui

import (
	"fmt"
	"strings"
	"time"
)

// View renders the TUI
func (m Model) View() string {
	if m.quitting {
		return "Account browser closed.\n"
	}

	var b strings.Builder

	// Render header
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	// Render table
	if m.loading && len(m.accounts) == 0 {
		b.WriteString("\nLoading accounts...\n")
	} else if len(m.accounts) == 0 {
		b.WriteString("\nNo accounts found. Create one with 'lunar-accounts accounts create <uuid> <username>'\n")
	} else {
		b.WriteString(m.renderTable())
	}

	// Render footer
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(noticeStyle.Render(m.notice))
	}

	// Render error message if any
	if m.err != nil && time.Since(m.errorTime) < 3*time.Second {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %s", m.err)))
	}

	return b.String()
}

// renderHeader renders the browser header
func (m Model) renderHeader() string {
	title := "Lunar Client Accounts"
	lastUpdate := fmt.Sprintf("Last Update: %s", m.lastUpdate.Format("15:04:05"))

	// Calculate spacing to align title and update time
	totalWidth := 80
	if m.width > 0 {
		totalWidth = m.width
	}

	spacing := totalWidth - len(title) - len(lastUpdate) - 4 // 4 for padding
	if spacing < 1 {
		spacing = 1
	}

	var b strings.Builder
	b.WriteString("╭")
	b.WriteString(strings.Repeat("─", totalWidth-2))
	b.WriteString("╮\n")

	headerText := fmt.Sprintf(" %s%s%s ", title, strings.Repeat(" ", spacing), lastUpdate)
	b.WriteString("│")
	b.WriteString(headerStyle.Render(headerText))
	b.WriteString("│\n")

	b.WriteString("╰")
	b.WriteString(strings.Repeat("─", totalWidth-2))
	b.WriteString("╯\n")

	b.WriteString(footerStyle.Render(m.store.Path()))

	return b.String()
}

// renderTable renders the account list
func (m Model) renderTable() string {
	var b strings.Builder

	nameWidth := 16
	idWidth := 36
	kindWidth := 7

	for _, account := range m.accounts {
		if len(account.Username) > nameWidth {
			nameWidth = len(account.Username)
		}
	}

	headerRow := fmt.Sprintf("  %-*s  %-*s  %-*s  %s",
		nameWidth, "USERNAME",
		idWidth, "UUID",
		kindWidth, "KIND",
		"ACTIVE",
	)
	b.WriteString(tableHeaderStyle.Render(headerRow))
	b.WriteString("\n")

	for i, account := range m.accounts {
		active := ""
		if account.Active {
			active = "*"
		}

		if i == m.selectedIdx {
			row := fmt.Sprintf("> %-*s  %-*s  %-*s  %s",
				nameWidth, account.Username,
				idWidth, account.ID,
				kindWidth, account.Kind,
				active,
			)
			b.WriteString(selectedRowStyle.Render(row))
		} else {
			kind := getKindStyle(account.Kind).Render(fmt.Sprintf("%-*s", kindWidth, account.Kind))
			b.WriteString(fmt.Sprintf("  %-*s  %-*s  %s  %s",
				nameWidth, account.Username,
				idWidth, account.ID,
				kind,
				active,
			))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// renderFooter renders the key help and account totals
func (m Model) renderFooter() string {
	cracked := 0
	for _, account := range m.accounts {
		if account.Kind == KindCracked {
			cracked++
		}
	}

	status := fmt.Sprintf("%d account(s), %d cracked, %d premium", len(m.accounts), cracked, len(m.accounts)-cracked)
	if m.saving {
		status += " | saving..."
	}

	help := "[↑/k] Up  [↓/j] Down  [d] Remove  [r] Reload  [q] Quit"
	return footerStyle.Render(status + "\n" + help)
}
