package llm

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PabloGalante/anota-bot/internal/domain"
)

// Wire shape of the model's answer. Fields are deliberately loose: the model
// occasionally returns numbers where we asked for strings.
type rawList struct {
	Type  string    `json:"type"`
	Title string    `json:"title"`
	Items []rawItem `json:"items"`
}

type rawItem struct {
	Name     string `json:"name"`
	Quantity any    `json:"quantity"`
	Category string `json:"category"`
	DueDate  string `json:"dueDate"`
}

// ParseExtraction enforces the extraction contract on the model's raw text:
//   - malformed JSON or an empty title is an extraction failure
//   - a type outside the four known values falls back to general
//   - items without a name are dropped
//   - a dueDate that does not parse as an absolute instant is dropped from
//     the item, never fatal
func ParseExtraction(text string) (*domain.ExtractedList, error) {
	var raw rawList
	if err := json.Unmarshal([]byte(stripFences(text)), &raw); err != nil {
		return nil, fmt.Errorf("%w: decoding model output: %v", domain.ErrExtractionFailed, err)
	}

	title := strings.TrimSpace(raw.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: model returned no title", domain.ErrExtractionFailed)
	}

	out := &domain.ExtractedList{
		Type:  domain.ParseListType(strings.ToLower(strings.TrimSpace(raw.Type))),
		Title: title,
		Items: make([]domain.ListItem, 0, len(raw.Items)),
	}

	for _, it := range raw.Items {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			continue
		}

		item := domain.ListItem{
			Name:     name,
			Quantity: asString(it.Quantity),
			Category: strings.TrimSpace(it.Category),
		}

		if it.DueDate != "" {
			if t, err := time.Parse(time.RFC3339, it.DueDate); err == nil {
				utc := t.UTC()
				item.DueDate = &utc
			}
			// unparseable dates are dropped, the item survives
		}

		out.Items = append(out.Items, item)
	}

	return out, nil
}

// stripFences tolerates a model that wraps its JSON in markdown fences
// despite the prompt saying not to.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return ""
	}
}
