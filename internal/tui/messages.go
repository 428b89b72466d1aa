package tui

import "github.com/steviee/lunar-accounts/internal/accounts"

// accountsLoadedMsg is sent when the accounts file has been read
type accountsLoadedMsg struct {
	doc *accounts.Document
	err error
}

// accountRemovedMsg is sent when the document without account was written
type accountRemovedMsg struct {
	account AccountInfo
	err     error
}

// clearErrorMsg is sent to clear the error message
type clearErrorMsg struct{}
