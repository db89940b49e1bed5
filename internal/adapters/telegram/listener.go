package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/PabloGalante/anota-bot/internal/app/classify"
	"github.com/PabloGalante/anota-bot/internal/app/commands"
	"github.com/PabloGalante/anota-bot/internal/app/ingest"
	"github.com/PabloGalante/anota-bot/internal/domain"
	"github.com/PabloGalante/anota-bot/internal/observability"
)

// User-facing replies per error kind. Internal detail stays in the logs.
const (
	replyTranscriptionFailed = "❌ I couldn't transcribe that audio. Please try sending it again."
	replyInvalidIndex        = "❌ Invalid list number. Please try again."
	replyGenericError        = "❌ Sorry, something went wrong while processing your message."
	replyUnsupported         = "I can only handle text and voice messages right now."
)

// Listener consumes the update stream and dispatches each message through
// the classifier to the command router or the ingestion pipeline. Updates
// are handled one at a time, in arrival order.
type Listener struct {
	gw     *Gateway
	ingest *ingest.Service
	router *commands.Router
}

func NewListener(gw *Gateway, ingestSvc *ingest.Service, router *commands.Router) *Listener {
	return &Listener{
		gw:     gw,
		ingest: ingestSvc,
		router: router,
	}
}

// Run blocks until ctx is cancelled.
func (l *Listener) Run(ctx context.Context) error {
	updates := l.gw.Updates()
	log := observability.Logger()
	log.Info("telegram listener started")

	for {
		select {
		case <-ctx.Done():
			l.gw.Stop()
			log.Info("telegram listener stopped")
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			l.handleMessage(observability.WithUpdateID(ctx, update.UpdateID), update.Message)
		}
	}
}

func (l *Listener) handleMessage(ctx context.Context, m *tgbotapi.Message) {
	log := observability.LoggerFromContext(ctx).With("chat_id", m.Chat.ID)

	msg, ok := l.toProcessedMessage(ctx, m)
	if !ok {
		return
	}

	reply, err := l.dispatch(ctx, msg)
	if err != nil {
		log.Error("message handling failed", "error", err)
		reply = replyFor(err)
	}

	if reply == "" {
		return
	}
	if err := l.gw.Send(msg.ChatID, reply); err != nil {
		log.Error("failed to send reply", "error", err)
	}
}

// toProcessedMessage maps a wire message into the transport-agnostic shape,
// downloading the audio payload for voice/audio messages. ok is false when
// the message was already answered (or ignored) here.
func (l *Listener) toProcessedMessage(ctx context.Context, m *tgbotapi.Message) (*domain.ProcessedMessage, bool) {
	log := observability.LoggerFromContext(ctx).With("chat_id", m.Chat.ID)

	msg := &domain.ProcessedMessage{
		ChatID:    domain.ChatID(m.Chat.ID),
		MessageID: m.MessageID,
	}
	if m.From != nil {
		msg.UserID = domain.UserID(m.From.ID)
	}
	if m.ReplyToMessage != nil {
		msg.ReplyToText = m.ReplyToMessage.Text
	}

	switch {
	case m.Text != "":
		msg.Kind = domain.KindText
		msg.Content = m.Text

	case m.Voice != nil:
		msg.Kind = domain.KindVoice
		msg.AudioExt = "ogg"
		data, err := l.gw.GetAudio(m.Voice.FileID)
		if err != nil {
			log.Error("failed to download voice payload", "error", err)
			l.sendOrLog(ctx, msg.ChatID, replyTranscriptionFailed)
			return nil, false
		}
		msg.Audio = data

	case m.Audio != nil:
		msg.Kind = domain.KindAudio
		msg.AudioExt = extForMime(m.Audio.MimeType)
		data, err := l.gw.GetAudio(m.Audio.FileID)
		if err != nil {
			log.Error("failed to download audio payload", "error", err)
			l.sendOrLog(ctx, msg.ChatID, replyTranscriptionFailed)
			return nil, false
		}
		msg.Audio = data

	default:
		l.sendOrLog(ctx, msg.ChatID, replyUnsupported)
		return nil, false
	}

	return msg, true
}

func (l *Listener) dispatch(ctx context.Context, msg *domain.ProcessedMessage) (string, error) {
	switch res := classify.Classify(msg); res.Kind {
	case classify.KindCommand:
		return l.router.Handle(ctx, res.Command, res.Args, msg.UserID)
	case classify.KindCompletion:
		return l.ingest.CompleteList(ctx, msg.UserID, res.Title)
	default:
		out, err := l.ingest.ProcessContent(ctx, msg)
		if err != nil {
			return "", err
		}
		return out.Reply, nil
	}
}

func replyFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrTranscriptionFailed):
		return replyTranscriptionFailed
	case errors.Is(err, domain.ErrInvalidInput):
		return replyInvalidIndex
	default:
		return replyGenericError
	}
}

func (l *Listener) sendOrLog(ctx context.Context, chatID domain.ChatID, text string) {
	if err := l.gw.Send(chatID, text); err != nil {
		observability.LoggerFromContext(ctx).Error("failed to send reply", "error", err)
	}
}

func extForMime(mime string) string {
	switch mime {
	case "audio/mpeg", "audio/mp3":
		return "mp3"
	case "audio/mp4", "audio/x-m4a":
		return "m4a"
	case "audio/wav", "audio/x-wav":
		return "wav"
	default:
		return "ogg"
	}
}
