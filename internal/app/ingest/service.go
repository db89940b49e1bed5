package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/PabloGalante/anota-bot/internal/announce"
	"github.com/PabloGalante/anota-bot/internal/domain"
	"github.com/PabloGalante/anota-bot/internal/observability"
	"github.com/PabloGalante/anota-bot/internal/tempfile"
	"github.com/PabloGalante/anota-bot/internal/timefmt"
)

// Service is the ingestion pipeline: it turns one content message into at
// most one persisted list plus a user-facing confirmation.
type Service struct {
	extractor   domain.ListExtractor
	transcriber domain.Transcriber
	store       domain.ListStore
	loc         *time.Location
	now         func() time.Time
}

func NewService(
	extractor domain.ListExtractor,
	transcriber domain.Transcriber,
	store domain.ListStore,
	loc *time.Location,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		extractor:   extractor,
		transcriber: transcriber,
		store:       store,
		loc:         loc,
		now:         time.Now,
	}
}

// Result is what the pipeline hands back to the transport.
type Result struct {
	// Reply is the text to send to the user: a list confirmation, or the
	// resolved content itself when extraction degraded.
	Reply string

	// List is the persisted list, nil when extraction failed.
	List *domain.List
}

// ProcessContent runs the pipeline on a content-classified message:
// resolve to text (transcribing audio if needed), extract a structured list,
// persist it atomically, format the confirmation.
//
// Transcription failure is fatal to the request. Extraction failure is not:
// the pipeline logs it and returns the resolved text untouched, creating
// nothing.
func (s *Service) ProcessContent(ctx context.Context, msg *domain.ProcessedMessage) (*Result, error) {
	log := observability.LoggerFromContext(ctx).With(
		"user_id", msg.UserID,
		"chat_id", msg.ChatID,
		"kind", msg.Kind,
	)

	content, err := s.resolveContent(ctx, msg)
	if err != nil {
		log.Error("failed to resolve message content", "error", err)
		return nil, err
	}

	now := s.now()

	extracted, err := s.extractor.ExtractList(ctx, content, now, s.loc.String())
	if err != nil {
		// Degrade gracefully: the original content is never lost.
		log.Error("list extraction failed, returning raw content", "error", err)
		return &Result{Reply: content}, nil
	}

	list := &domain.List{
		ID:         domain.ListID(uuid.NewString()),
		UserID:     msg.UserID,
		Type:       extracted.Type,
		Title:      extracted.Title,
		Items:      extracted.Items,
		Source:     domain.SourceFromKind(msg.Kind),
		RawContent: content,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.store.CreateList(ctx, list); err != nil {
		log.Error("failed to persist list", "error", err)
		return nil, err
	}

	log.Info("list created",
		"list_id", list.ID,
		"type", list.Type,
		"items", len(list.Items))

	return &Result{
		Reply: s.confirmation(list),
		List:  list,
	}, nil
}

// resolveContent returns the message text, transcribing voice/audio first.
// The temp file holding the payload is removed on every exit path.
func (s *Service) resolveContent(ctx context.Context, msg *domain.ProcessedMessage) (string, error) {
	if msg.Kind == domain.KindText {
		return msg.Content, nil
	}

	if len(msg.Audio) == 0 {
		return "", fmt.Errorf("%w: empty audio payload", domain.ErrTranscriptionFailed)
	}

	ext := msg.AudioExt
	if ext == "" {
		ext = "ogg"
	}

	path, err := tempfile.Save(msg.Audio, ext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTranscriptionFailed, err)
	}
	defer func() {
		if err := tempfile.Remove(path); err != nil {
			observability.LoggerFromContext(ctx).Error("failed to remove temp audio file", "error", err)
		}
	}()

	transcript, err := s.transcriber.Transcribe(ctx, path)
	if err != nil {
		return "", err
	}
	return transcript, nil
}

// confirmation builds the announcement message. Its first line follows the
// announce pattern so a later "done" reply can be matched back to the list.
func (s *Service) confirmation(list *domain.List) string {
	var b strings.Builder
	b.WriteString(announce.Headline(list.Type, list.Title))
	b.WriteString("\n\nItems:\n")

	lines := make([]string, 0, len(list.Items))
	for i, item := range list.Items {
		line := fmt.Sprintf("%d. %s", i+1, item.Name)
		if item.Quantity != "" {
			line += fmt.Sprintf(" (%s)", item.Quantity)
		}
		if item.Category != "" {
			line += fmt.Sprintf(" [%s]", item.Category)
		}
		if item.DueDate != nil {
			line += " - Due: " + timefmt.ForDisplay(*item.DueDate, s.loc)
		}
		lines = append(lines, line)
	}
	b.WriteString(strings.Join(lines, "\n"))

	return b.String()
}

// CompleteList handles a "done" reply to a list announcement: every item of
// the newest list with the announced title is marked completed.
func (s *Service) CompleteList(ctx context.Context, userID domain.UserID, title string) (string, error) {
	log := observability.LoggerFromContext(ctx).With("user_id", userID, "title", title)

	lists, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		log.Error("failed to load lists", "error", err)
		return "", err
	}

	// Newest-first, so the first title match is the most recent list.
	var target *domain.List
	for _, l := range lists {
		if l.Title == title {
			target = l
			break
		}
	}
	if target == nil {
		return fmt.Sprintf("❌ I couldn't find a list called %q anymore.", title), nil
	}

	for i := range target.Items {
		if _, err := s.store.UpdateItem(ctx, userID, target.ID, i, true); err != nil {
			log.Error("failed to mark item completed", "item_index", i, "error", err)
			return "", err
		}
	}

	log.Info("list completed", "list_id", target.ID, "items", len(target.Items))

	return fmt.Sprintf("✅ Marked all items in %q as completed.", title), nil
}
