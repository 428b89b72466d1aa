package accounts

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// MinUsernameLength and MaxUsernameLength bound the usernames Minecraft servers accept.
	MinUsernameLength = 3
	MaxUsernameLength = 16
)

// uuidRegex matches a hyphenated 8-4-4-4-12 UUID in either case.
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// ValidateUUID validates an account identifier.
// The input is matched as given: surrounding whitespace makes it invalid.
func ValidateUUID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: UUID cannot be empty", ErrInvalidUUID)
	}

	if !uuidRegex.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrInvalidUUID, id)
	}

	return nil
}

// CheckUsername reports why a username may be rejected by servers.
// The result is advisory; an account is created whatever it says.
func CheckUsername(name string) []string {
	var warnings []string

	length := utf8.RuneCountInString(name)
	switch {
	case length == 0:
		warnings = append(warnings, "username is empty")
	case length < MinUsernameLength || length > MaxUsernameLength:
		warnings = append(warnings, fmt.Sprintf("username must be %d-%d characters long, got %d",
			MinUsernameLength, MaxUsernameLength, length))
	}

	if strings.Contains(name, " ") {
		warnings = append(warnings, "username contains a space")
	}

	return warnings
}
