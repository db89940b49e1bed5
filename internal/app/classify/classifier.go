// Package classify decides what to do with an inbound message before any
// external call is made. Classification is pure: no I/O, no side effects.
package classify

import (
	"strings"

	"github.com/PabloGalante/anota-bot/internal/announce"
	"github.com/PabloGalante/anota-bot/internal/domain"
)

// Kind is the disposition of an inbound message.
type Kind string

const (
	// KindCommand means the text starts with a slash-command.
	KindCommand Kind = "command"
	// KindCompletion means the message replies "done"/"complete" to a
	// prior list announcement.
	KindCompletion Kind = "completion"
	// KindContent means free-form content for the ingestion pipeline.
	KindContent Kind = "content"
)

// Result carries the disposition plus the fields the dispatcher needs.
type Result struct {
	Kind Kind

	// Command name without the leading slash, and its argument string.
	Command string
	Args    string

	// Title of the announced list a completion reply targets.
	Title string
}

// Classify branches one inbound message. Voice and audio messages are always
// content; only text can be a command or a completion reply. A "done" reply
// whose reply-to text does not carry the announcement pattern falls back to
// content rather than erroring.
func Classify(msg *domain.ProcessedMessage) Result {
	if msg.Kind != domain.KindText {
		return Result{Kind: KindContent}
	}

	text := strings.TrimSpace(msg.Content)

	if strings.HasPrefix(text, "/") {
		cmd, args := splitCommand(text)
		return Result{Kind: KindCommand, Command: cmd, Args: args}
	}

	if msg.ReplyToText != "" && isCompletionWord(text) {
		if _, title, ok := announce.ParseHeadline(msg.ReplyToText); ok {
			return Result{Kind: KindCompletion, Title: title}
		}
	}

	return Result{Kind: KindContent}
}

func isCompletionWord(text string) bool {
	switch strings.ToLower(text) {
	case "done", "complete":
		return true
	}
	return false
}

// splitCommand separates "/delete 2" into ("delete", "2"), dropping the
// "@BotName" suffix Telegram appends in group chats.
func splitCommand(text string) (cmd, args string) {
	cmd = text[1:]
	if i := strings.IndexAny(cmd, " \t\n"); i >= 0 {
		args = strings.TrimSpace(cmd[i:])
		cmd = cmd[:i]
	}
	if i := strings.Index(cmd, "@"); i >= 0 {
		cmd = cmd[:i]
	}
	return strings.ToLower(cmd), args
}
