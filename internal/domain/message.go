package domain

// MessageKind is the medium of an inbound chat message.
type MessageKind string

const (
	KindText  MessageKind = "text"
	KindVoice MessageKind = "voice"
	KindAudio MessageKind = "audio"
)

// ProcessedMessage is the transient, transport-agnostic view of one inbound
// message. It lives for the duration of a single request and is never stored.
type ProcessedMessage struct {
	UserID    UserID
	ChatID    ChatID
	MessageID int
	Kind      MessageKind

	// Content is the message text. For voice/audio it starts empty and is
	// filled in by the ingestion pipeline after transcription.
	Content string

	// ReplyToText carries the text of the message this one replies to,
	// when the transport provides it. Used by the completion-reply flow.
	ReplyToText string

	// Audio holds the raw payload for voice/audio messages, plus a
	// container hint ("ogg", "mp3", ...).
	Audio    []byte
	AudioExt string
}

// SourceFromKind maps the message medium to the persisted list source.
func SourceFromKind(k MessageKind) Source {
	if k == KindText {
		return SourceText
	}
	return SourceVoice
}
