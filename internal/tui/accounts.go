package tui

import (
	"sort"
	"strings"

	"github.com/steviee/lunar-accounts/internal/accounts"
)

// Account kinds shown in the browser.
const (
	KindCracked = "cracked"
	KindPremium = "premium"
)

// AccountInfo represents an account row in the browser
type AccountInfo struct {
	ID       string
	Username string
	Kind     string
	Active   bool
}

// buildAccountList turns doc into browser rows ordered by username, then
// UUID. Usernames compare case-insensitively.
func buildAccountList(doc *accounts.Document) []AccountInfo {
	if doc == nil {
		return []AccountInfo{}
	}

	rows := make([]AccountInfo, 0, doc.Len())
	for id, r := range doc.Accounts {
		row := AccountInfo{
			ID:     id,
			Kind:   KindPremium,
			Active: id == doc.ActiveAccountLocalID,
		}
		if r != nil {
			row.Username = r.Username
		}
		if accounts.IsCracked(id, r) {
			row.Kind = KindCracked
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := strings.ToLower(rows[i].Username), strings.ToLower(rows[j].Username)
		if a != b {
			return a < b
		}
		return rows[i].ID < rows[j].ID
	})

	return rows
}
