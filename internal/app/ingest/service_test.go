package ingest_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	memstore "github.com/PabloGalante/anota-bot/internal/adapters/storage/memory"
	"github.com/PabloGalante/anota-bot/internal/app/ingest"
	"github.com/PabloGalante/anota-bot/internal/domain"
)

type stubExtractor struct {
	result  *domain.ExtractedList
	err     error
	gotText string
}

func (s *stubExtractor) ExtractList(ctx context.Context, content string, now time.Time, tz string) (*domain.ExtractedList, error) {
	s.gotText = content
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type stubTranscriber struct {
	transcript string
	err        error
	called     bool
}

func (s *stubTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	s.called = true
	if s.err != nil {
		return "", s.err
	}
	return s.transcript, nil
}

func textMessage(text string) *domain.ProcessedMessage {
	return &domain.ProcessedMessage{
		UserID:  42,
		ChatID:  100,
		Kind:    domain.KindText,
		Content: text,
	}
}

func voiceMessage() *domain.ProcessedMessage {
	return &domain.ProcessedMessage{
		UserID:   42,
		ChatID:   100,
		Kind:     domain.KindVoice,
		Audio:    []byte("fake-ogg-bytes"),
		AudioExt: "ogg",
	}
}

func TestProcessContentPersistsExtraction(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewListStore()

	due := time.Date(2024, 3, 19, 0, 0, 0, 0, time.UTC)
	extractor := &stubExtractor{result: &domain.ExtractedList{
		Type:  domain.ListTypeGrocery,
		Title: "Weekly shopping",
		Items: []domain.ListItem{
			{Name: "milk", Quantity: "2"},
			{Name: "bread", Category: "bakery"},
			{Name: "call store", DueDate: &due},
		},
	}}

	svc := ingest.NewService(extractor, &stubTranscriber{}, store, time.UTC)

	out, err := svc.ProcessContent(ctx, textMessage("milk, bread"))
	if err != nil {
		t.Fatalf("ProcessContent failed: %v", err)
	}
	if out.List == nil {
		t.Fatalf("expected a persisted list")
	}

	// Round-trip: listing by user must match the extraction exactly.
	lists, err := store.ListByUser(ctx, 42)
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(lists) != 1 {
		t.Fatalf("expected 1 list, got %d", len(lists))
	}

	got := lists[0]
	if got.Title != "Weekly shopping" || got.Type != domain.ListTypeGrocery {
		t.Fatalf("unexpected list: %+v", got)
	}
	if got.Source != domain.SourceText || got.RawContent != "milk, bread" {
		t.Fatalf("unexpected source/raw content: %+v", got)
	}
	wantNames := []string{"milk", "bread", "call store"}
	if len(got.Items) != len(wantNames) {
		t.Fatalf("expected %d items, got %d", len(wantNames), len(got.Items))
	}
	for i, name := range wantNames {
		if got.Items[i].Name != name {
			t.Fatalf("item %d: expected %q, got %q", i, name, got.Items[i].Name)
		}
	}

	// The confirmation carries the announcement headline and item details.
	if !strings.Contains(out.Reply, `new grocery list: "Weekly shopping"`) {
		t.Fatalf("reply missing announcement: %q", out.Reply)
	}
	if !strings.Contains(out.Reply, "1. milk (2)") {
		t.Fatalf("reply missing quantity line: %q", out.Reply)
	}
	if !strings.Contains(out.Reply, "2. bread [bakery]") {
		t.Fatalf("reply missing category line: %q", out.Reply)
	}
	if !strings.Contains(out.Reply, "Due: 3/19/2024") {
		t.Fatalf("reply missing due date: %q", out.Reply)
	}
}

func TestProcessContentZeroItemsStillPersists(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewListStore()
	extractor := &stubExtractor{result: &domain.ExtractedList{
		Type:  domain.ListTypeGeneral,
		Title: "Empty thoughts",
	}}

	svc := ingest.NewService(extractor, &stubTranscriber{}, store, time.UTC)

	out, err := svc.ProcessContent(ctx, textMessage("hmm"))
	if err != nil {
		t.Fatalf("ProcessContent failed: %v", err)
	}
	if out.List == nil || len(out.List.Items) != 0 {
		t.Fatalf("expected persisted list with zero items, got %+v", out.List)
	}

	lists, _ := store.ListByUser(ctx, 42)
	if len(lists) != 1 {
		t.Fatalf("expected 1 list, got %d", len(lists))
	}
}

func TestProcessContentExtractionFailureDegrades(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewListStore()
	extractor := &stubExtractor{err: fmt.Errorf("%w: model said no", domain.ErrExtractionFailed)}

	svc := ingest.NewService(extractor, &stubTranscriber{}, store, time.UTC)

	out, err := svc.ProcessContent(ctx, textMessage("just rambling"))
	if err != nil {
		t.Fatalf("extraction failure must not error the pipeline: %v", err)
	}
	if out.Reply != "just rambling" {
		t.Fatalf("expected raw content back, got %q", out.Reply)
	}
	if out.List != nil {
		t.Fatalf("no list should be created on extraction failure")
	}

	lists, _ := store.ListByUser(ctx, 42)
	if len(lists) != 0 {
		t.Fatalf("store must stay empty, got %d lists", len(lists))
	}
}

func TestProcessContentTranscriptionFailureIsFatal(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewListStore()
	extractor := &stubExtractor{result: &domain.ExtractedList{Type: domain.ListTypeGeneral, Title: "x"}}
	transcriber := &stubTranscriber{err: fmt.Errorf("%w: garbled", domain.ErrTranscriptionFailed)}

	svc := ingest.NewService(extractor, transcriber, store, time.UTC)

	_, err := svc.ProcessContent(ctx, voiceMessage())
	if !errors.Is(err, domain.ErrTranscriptionFailed) {
		t.Fatalf("expected ErrTranscriptionFailed, got %v", err)
	}

	if extractor.gotText != "" {
		t.Fatalf("extractor must not run after transcription failure")
	}
	lists, _ := store.ListByUser(ctx, 42)
	if len(lists) != 0 {
		t.Fatalf("no store write expected, got %d lists", len(lists))
	}
}

func TestProcessContentVoiceUsesTranscript(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewListStore()
	extractor := &stubExtractor{result: &domain.ExtractedList{
		Type:  domain.ListTypeTodo,
		Title: "Errands",
		Items: []domain.ListItem{{Name: "pick up package"}},
	}}
	transcriber := &stubTranscriber{transcript: "pick up the package tomorrow"}

	svc := ingest.NewService(extractor, transcriber, store, time.UTC)

	out, err := svc.ProcessContent(ctx, voiceMessage())
	if err != nil {
		t.Fatalf("ProcessContent failed: %v", err)
	}

	if !transcriber.called {
		t.Fatalf("transcriber was not called")
	}
	if extractor.gotText != "pick up the package tomorrow" {
		t.Fatalf("extractor got %q, want the transcript", extractor.gotText)
	}
	if out.List.Source != domain.SourceVoice {
		t.Fatalf("expected voice source, got %s", out.List.Source)
	}
	if out.List.RawContent != "pick up the package tomorrow" {
		t.Fatalf("raw content should be the transcript, got %q", out.List.RawContent)
	}
}

func TestCompleteListMarksNewestMatch(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewListStore()
	extractor := &stubExtractor{}
	svc := ingest.NewService(extractor, &stubTranscriber{}, store, time.UTC)

	older := &domain.List{
		ID: "a", UserID: 42, Type: domain.ListTypeTodo, Title: "Chores",
		Items: []domain.ListItem{{Name: "dishes"}},
	}
	newer := &domain.List{
		ID: "b", UserID: 42, Type: domain.ListTypeTodo, Title: "Chores",
		Items: []domain.ListItem{{Name: "laundry"}, {Name: "vacuum"}},
	}
	if err := store.CreateList(ctx, older); err != nil {
		t.Fatal(err)
	}
	if err := store.CreateList(ctx, newer); err != nil {
		t.Fatal(err)
	}

	reply, err := svc.CompleteList(ctx, 42, "Chores")
	if err != nil {
		t.Fatalf("CompleteList failed: %v", err)
	}
	if !strings.Contains(reply, "completed") {
		t.Fatalf("unexpected reply: %q", reply)
	}

	for i, item := range newer.Items {
		if !item.Completed {
			t.Fatalf("newer list item %d not completed", i)
		}
	}
	if older.Items[0].Completed {
		t.Fatalf("older list must stay untouched")
	}
}

func TestCompleteListUnknownTitle(t *testing.T) {
	ctx := context.Background()
	svc := ingest.NewService(&stubExtractor{}, &stubTranscriber{}, memstore.NewListStore(), time.UTC)

	reply, err := svc.CompleteList(ctx, 42, "Nope")
	if err != nil {
		t.Fatalf("CompleteList failed: %v", err)
	}
	if !strings.Contains(reply, "couldn't find") {
		t.Fatalf("expected not-found reply, got %q", reply)
	}
}
