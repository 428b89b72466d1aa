package accounts

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const (
	// AccountTypeXbox is the only account type this tool writes.
	AccountTypeXbox = "Xbox"

	// PlaceholderExpiry is written as accessTokenExpiresAt for every new account.
	PlaceholderExpiry = "2050-07-02T10:56:30.717167800Z"
)

// Profile is the Minecraft profile embedded in an account record.
type Profile struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	keys keySet
	null bool
}

var profileKeys = []string{"id", "name"}

type plainProfile Profile

var zeroProfileFields = mustFields(plainProfile{})

// MarshalJSON implements json.Marshaler.
func (p Profile) MarshalJSON() ([]byte, error) {
	if p.null && p.ID == "" && p.Name == "" {
		return []byte("null"), nil
	}
	data, err := json.Marshal(plainProfile(p))
	if err != nil {
		return nil, err
	}
	return pickFields(data, p.keys, zeroProfileFields)
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Profile) UnmarshalJSON(data []byte) error {
	var plain plainProfile
	if err := json.Unmarshal(data, &plain); err != nil {
		return err
	}
	keys, err := presentKeys(data)
	if err != nil {
		return err
	}
	plain.keys = keys
	plain.null = string(bytes.TrimSpace(data)) == "null"

	*p = Profile(plain)
	return nil
}

// Record is one entry of the accounts map.
//
// Keys the launcher writes that Record does not model are kept in Extra
// and written back unchanged. A decoded record writes back only the
// modelled keys it was read with, plus any modelled field set since.
type Record struct {
	AccessToken          string  `json:"accessToken"`
	AccessTokenExpiresAt string  `json:"accessTokenExpiresAt"`
	EligibleForMigration bool    `json:"eligibleForMigration"`
	HasMultipleProfiles  bool    `json:"hasMultipleProfiles"`
	Legacy               bool    `json:"legacy"`
	Persistent           bool    `json:"persistent"`
	UserProperties       []any   `json:"userProperties"`
	LocalID              string  `json:"localId"`
	MinecraftProfile     Profile `json:"minecraftProfile"`
	RemoteID             string  `json:"remoteId"`
	Type                 string  `json:"type"`
	Username             string  `json:"username"`

	Extra map[string]any `json:"-"`

	keys keySet
}

var recordKeys = []string{
	"accessToken", "accessTokenExpiresAt", "eligibleForMigration",
	"hasMultipleProfiles", "legacy", "persistent", "userProperties",
	"localId", "minecraftProfile", "remoteId", "type", "username",
}

type plainRecord Record

var zeroRecordFields = mustFields(plainRecord{})

// NewRecord builds the record written for an offline account. Every
// identifier field carries id, so the access token equals the map key.
func NewRecord(id, username string) *Record {
	return &Record{
		AccessToken:          id,
		AccessTokenExpiresAt: PlaceholderExpiry,
		EligibleForMigration: false,
		HasMultipleProfiles:  false,
		Legacy:               true,
		Persistent:           true,
		UserProperties:       []any{},
		LocalID:              id,
		MinecraftProfile: Profile{
			ID:   id,
			Name: username,
			keys: newKeySet(profileKeys),
		},
		RemoteID: id,
		Type:     AccountTypeXbox,
		Username: username,
		keys:     newKeySet(recordKeys),
	}
}

// MarshalJSON implements json.Marshaler.
func (r Record) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(plainRecord(r))
	if err != nil {
		return nil, err
	}
	data, err = pickFields(data, r.keys, zeroRecordFields)
	if err != nil {
		return nil, err
	}
	return mergeExtra(data, r.Extra)
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Record) UnmarshalJSON(data []byte) error {
	var p plainRecord
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	extra, err := splitExtra(data, recordKeys)
	if err != nil {
		return err
	}
	p.Extra = extra

	keys, err := presentKeys(data)
	if err != nil {
		return err
	}
	p.keys = keys

	*r = Record(p)
	return nil
}

// Document is the in-memory form of the accounts file.
type Document struct {
	Accounts             map[string]*Record `json:"accounts"`
	ActiveAccountLocalID string             `json:"activeAccountLocalId,omitempty"`

	Extra map[string]any `json:"-"`
}

var documentKeys = []string{"accounts", "activeAccountLocalId"}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{
		Accounts: map[string]*Record{},
	}
}

// MarshalJSON implements json.Marshaler.
func (d Document) MarshalJSON() ([]byte, error) {
	type plain Document
	p := plain(d)
	if p.Accounts == nil {
		p.Accounts = map[string]*Record{}
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return mergeExtra(data, d.Extra)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Document) UnmarshalJSON(data []byte) error {
	type plain Document
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	if p.Accounts == nil {
		p.Accounts = map[string]*Record{}
	}

	extra, err := splitExtra(data, documentKeys)
	if err != nil {
		return err
	}
	p.Extra = extra

	*d = Document(p)
	return nil
}

// splitExtra returns the object members of data whose keys are not in known.
func splitExtra(data []byte, known []string) (map[string]any, error) {
	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for _, k := range known {
		delete(all, k)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all, nil
}

// keySet records which object keys a decoded value was read with. A nil
// set means the value was built in code and writes every key.
type keySet map[string]bool

func newKeySet(keys []string) keySet {
	set := make(keySet, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}

// presentKeys returns the member names of the JSON object data. A JSON
// null yields an empty set.
func presentKeys(data []byte) (keySet, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	set := make(keySet, len(fields))
	for k := range fields {
		set[k] = true
	}
	return set, nil
}

func mustFields(v any) map[string]json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		panic(err)
	}
	return fields
}

// pickFields drops members of the encoded object data that are absent from
// keys and still hold their zero encoding. A nil keys keeps everything.
func pickFields(data []byte, keys keySet, zero map[string]json.RawMessage) ([]byte, error) {
	if keys == nil {
		return data, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("decode modelled fields: %w", err)
	}
	for k, v := range fields {
		if keys[k] {
			continue
		}
		if bytes.Equal(v, zero[k]) {
			delete(fields, k)
		}
	}
	return json.Marshal(fields)
}

// mergeExtra adds extra members to the encoded object data. Modelled
// fields win over extra members with the same key.
func mergeExtra(data []byte, extra map[string]any) ([]byte, error) {
	if len(extra) == 0 {
		return data, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("decode modelled fields: %w", err)
	}
	for k, v := range extra {
		if _, ok := fields[k]; ok {
			continue
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode extra field %q: %w", k, err)
		}
		fields[k] = raw
	}
	return json.Marshal(fields)
}
