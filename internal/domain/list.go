package domain

// ListItem is one entry within a list.
type ListItem struct {
	Name      string `json:"name"`
	Quantity  string `json:"quantity,omitempty"`
	Category  string `json:"category,omitempty"`
	Completed bool   `json:"completed"`
	// DueDate, when present, is always an absolute instant already in UTC.
	DueDate *Timestamp `json:"due_date,omitempty"`
}

// List represents a titled, typed collection of items owned by one user.
// Item order is preserved exactly as extraction produced it.
type List struct {
	ID     ListID
	UserID UserID
	Type   ListType
	Title  string
	Items  []ListItem

	Source     Source
	RawContent string

	CreatedAt Timestamp
	UpdatedAt Timestamp
}

// ExtractedList is the structured result of running list extraction over a
// message, before it is persisted.
type ExtractedList struct {
	Type  ListType
	Title string
	Items []ListItem
}
