package llm

import (
	"context"
	"strings"
	"time"

	"github.com/PabloGalante/anota-bot/internal/domain"
)

// MockLLM is a deterministic stand-in for local development: it splits the
// message on commas/newlines and calls everything a general list.
type MockLLM struct{}

func NewMockLLM() *MockLLM {
	return &MockLLM{}
}

func (m *MockLLM) ExtractList(
	ctx context.Context,
	content string,
	now time.Time,
	timezone string,
) (*domain.ExtractedList, error) {
	var items []domain.ListItem
	for _, part := range strings.FieldsFunc(content, func(r rune) bool {
		return r == ',' || r == '\n'
	}) {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		items = append(items, domain.ListItem{Name: name})
	}

	title := content
	if len(title) > 30 {
		title = strings.TrimSpace(title[:30]) + "..."
	}

	return &domain.ExtractedList{
		Type:  domain.ListTypeGeneral,
		Title: title,
		Items: items,
	}, nil
}

func (m *MockLLM) Transcribe(ctx context.Context, audioPath string) (string, error) {
	return "mock transcript of " + audioPath, nil
}
