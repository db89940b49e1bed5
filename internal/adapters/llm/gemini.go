package llm

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/PabloGalante/anota-bot/internal/domain"
	"google.golang.org/genai"
)

// GeminiClient implements domain.ListExtractor and domain.Transcriber on top
// of Vertex AI (Gemini). One client serves both since Gemini accepts inline
// audio parts.
type GeminiClient struct {
	client    *genai.Client
	modelName string
}

// NewGeminiClient creates the Vertex AI backed client.
func NewGeminiClient(ctx context.Context, projectID, location, modelName string) (*GeminiClient, error) {
	if projectID == "" || location == "" {
		return nil, fmt.Errorf("projectID and location are required for the Gemini client")
	}
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Vertex AI client: %w", err)
	}

	return &GeminiClient{
		client:    client,
		modelName: modelName,
	}, nil
}

// ExtractList implements domain.ListExtractor.
func (g *GeminiClient) ExtractList(
	ctx context.Context,
	content string,
	now time.Time,
	timezone string,
) (*domain.ExtractedList, error) {
	p := BuildExtractionPrompt(content, now, timezone)

	// Low temperature: we want the schema followed, not creativity.
	temp := float32(0.2)
	outputTokens := int32(2048)

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(p.System, genai.RoleUser),
		Temperature:       &temp,
		MaxOutputTokens:   outputTokens,
		ResponseMIMEType:  "application/json",
	}

	contents := []*genai.Content{
		genai.NewContentFromText(p.User, genai.RoleUser),
	}

	res, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: gemini generate content: %v", domain.ErrExtractionFailed, err)
	}

	text := res.Text()
	if text == "" {
		return nil, fmt.Errorf("%w: gemini returned empty text", domain.ErrExtractionFailed)
	}

	return ParseExtraction(text)
}

// Transcribe implements domain.Transcriber by sending the audio file inline.
func (g *GeminiClient) Transcribe(ctx context.Context, audioPath string) (string, error) {
	data, err := os.ReadFile(audioPath)
	if err != nil {
		return "", fmt.Errorf("%w: reading audio file: %v", domain.ErrTranscriptionFailed, err)
	}

	parts := []*genai.Part{
		genai.NewPartFromText(transcriptionPrompt),
		genai.NewPartFromBytes(data, mimeForExt(filepath.Ext(audioPath))),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	res, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, nil)
	if err != nil {
		return "", fmt.Errorf("%w: gemini transcription: %v", domain.ErrTranscriptionFailed, err)
	}

	text := res.Text()
	if text == "" {
		return "", fmt.Errorf("%w: gemini returned empty transcript", domain.ErrTranscriptionFailed)
	}

	return text, nil
}

func mimeForExt(ext string) string {
	switch ext {
	case ".mp3":
		return "audio/mpeg"
	case ".wav":
		return "audio/wav"
	case ".m4a":
		return "audio/mp4"
	default:
		// Telegram voice notes are ogg/opus.
		return "audio/ogg"
	}
}
