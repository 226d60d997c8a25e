package safe

import (
	"fmt"
	"strings"
)

// Slot identifies one of the predefined secret slots.
type Slot int

const (
	AccessToken Slot = iota + 1
	UserID
	APIKey
)

// Storage keys shared with existing installations. Do not change.
const (
	accessTokenKey = "access_token"
	userIDKey      = "user_id"
	apiKeyKey      = "key"
)

// Slots returns every predefined slot.
func Slots() []Slot {
	return []Slot{AccessToken, UserID, APIKey}
}

// Key returns the string the slot is persisted under.
func (s Slot) Key() string {
	switch s {
	case AccessToken:
		return accessTokenKey
	case UserID:
		return userIDKey
	case APIKey:
		return apiKeyKey
	}
	return ""
}

// String returns the command line name of the slot.
func (s Slot) String() string {
	switch s {
	case AccessToken:
		return "access-token"
	case UserID:
		return "user-id"
	case APIKey:
		return "api-key"
	}
	return fmt.Sprintf("Slot(%d)", int(s))
}

// ParseSlot accepts either the command line name or the storage key.
func ParseSlot(name string) (Slot, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, s := range Slots() {
		if n == s.String() || n == s.Key() {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSlot, name)
}
