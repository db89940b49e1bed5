package domain

import (
	"context"
	"time"
)

// ListExtractor defines how the core application asks an LLM to turn free
// text into a typed list. Implementations must resolve every relative date
// reference themselves: items come back with absolute UTC due dates only.
type ListExtractor interface {
	ExtractList(ctx context.Context, content string, now time.Time, timezone string) (*ExtractedList, error)
}

// Transcriber converts an audio file into plain text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// ListStore defines list persistence. Both list-returning queries are
// ordered newest-first.
type ListStore interface {
	CreateList(ctx context.Context, list *List) error
	ListByUser(ctx context.Context, userID UserID) ([]*List, error)
	ListByUserAndType(ctx context.Context, userID UserID, listType ListType) ([]*List, error)

	// UpdateItem sets the completed flag on one item. Returns the updated
	// list, or nil when the list or the item index does not exist.
	UpdateItem(ctx context.Context, userID UserID, listID ListID, itemIndex int, completed bool) (*List, error)

	// DeleteList reports whether a list was actually removed.
	DeleteList(ctx context.Context, userID UserID, listID ListID) (bool, error)
}
