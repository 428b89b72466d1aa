// Package accounts models the launcher accounts document and the
// operations the editor performs on it.
//
// Nothing here touches the filesystem; callers own a *Document, mutate it
// through these methods, and hand it to the state package to persist.
package accounts

import (
	"sort"
)

// Entry is one line of an account listing.
type Entry struct {
	ID       string `json:"uuid" yaml:"uuid"`
	Username string `json:"username" yaml:"username"`
}

// Create validates id and stores a new record for it, replacing any record
// already under that key. The first account ever created becomes active.
func (d *Document) Create(id, username string) (*Record, error) {
	if err := ValidateUUID(id); err != nil {
		return nil, err
	}

	if d.Accounts == nil {
		d.Accounts = map[string]*Record{}
	}

	record := NewRecord(id, username)
	d.Accounts[id] = record

	if d.ActiveAccountLocalID == "" {
		d.ActiveAccountLocalID = id
	}

	return record, nil
}

// RemoveAll drops every account and returns how many were removed.
func (d *Document) RemoveAll() int {
	n := len(d.Accounts)
	d.Accounts = map[string]*Record{}
	return n
}

// RemoveCracked keeps only the accounts whose access token equals their key.
func (d *Document) RemoveCracked() int {
	return d.retain(IsCracked)
}

// RemovePremium keeps only the accounts whose access token differs from their key.
func (d *Document) RemovePremium() int {
	return d.retain(func(id string, r *Record) bool {
		return !IsCracked(id, r)
	})
}

// Remove deletes a single account. It reports whether the key was present.
func (d *Document) Remove(id string) bool {
	if _, ok := d.Accounts[id]; !ok {
		return false
	}
	delete(d.Accounts, id)
	return true
}

// Entries lists the accounts ordered by key.
func (d *Document) Entries() []Entry {
	entries := make([]Entry, 0, len(d.Accounts))
	for id, r := range d.Accounts {
		e := Entry{ID: id}
		if r != nil {
			e.Username = r.Username
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID < entries[j].ID
	})

	return entries
}

// Len returns the number of accounts.
func (d *Document) Len() int {
	return len(d.Accounts)
}

// IsCracked reports whether the record stored under id carries id as its
// access token. Only the equality is checked, not the token's format.
func IsCracked(id string, r *Record) bool {
	return r != nil && r.AccessToken == id
}

// retain keeps the accounts for which keep returns true and returns how
// many were dropped.
func (d *Document) retain(keep func(id string, r *Record) bool) int {
	kept := make(map[string]*Record, len(d.Accounts))
	for id, r := range d.Accounts {
		if keep(id, r) {
			kept[id] = r
		}
	}

	removed := len(d.Accounts) - len(kept)
	d.Accounts = kept
	return removed
}
