package domain

import "time"

// Telegram-style numeric identifiers.
type UserID int64
type ChatID int64

type ListID string

// ListType classifies what kind of list a message produced.
type ListType string

const (
	ListTypeGrocery  ListType = "grocery"
	ListTypeTodo     ListType = "todo"
	ListTypeReminder ListType = "reminder"
	ListTypeGeneral  ListType = "general"
)

// ParseListType maps free text to a ListType. Anything outside the four
// known values falls back to general instead of failing the request.
func ParseListType(s string) ListType {
	switch ListType(s) {
	case ListTypeGrocery, ListTypeTodo, ListTypeReminder, ListTypeGeneral:
		return ListType(s)
	default:
		return ListTypeGeneral
	}
}

// Source records the medium a list was created from.
type Source string

const (
	SourceText  Source = "text"
	SourceVoice Source = "voice"
)

type Timestamp = time.Time
