// Package telegram is the messaging gateway: it is the only package that
// talks the chat transport's wire protocol. Everything behind it works with
// domain.ProcessedMessage and plain reply strings.
package telegram

import (
	"fmt"
	"io"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/PabloGalante/anota-bot/internal/domain"
)

type Gateway struct {
	bot *tgbotapi.BotAPI
}

func NewGateway(token string) (*Gateway, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram token is required")
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("creating telegram bot: %w", err)
	}

	return &Gateway{bot: bot}, nil
}

var botCommands = []tgbotapi.BotCommand{
	{Command: "start", Description: "Start the bot"},
	{Command: "help", Description: "Show available commands"},
	{Command: "list", Description: "Show all your lists"},
	{Command: "today", Description: "Show today's reminders"},
	{Command: "grocery", Description: "Show grocery lists"},
	{Command: "todo", Description: "Show todo lists"},
	{Command: "reminder", Description: "Show reminder lists"},
	{Command: "delete", Description: "Delete a list"},
}

// RegisterCommands publishes the command menu to the chat client.
func (g *Gateway) RegisterCommands() error {
	if _, err := g.bot.Request(tgbotapi.NewSetMyCommands(botCommands...)); err != nil {
		return fmt.Errorf("registering commands: %w", err)
	}
	return nil
}

// Send delivers a plain-text reply to a chat.
func (g *Gateway) Send(chatID domain.ChatID, text string) error {
	msg := tgbotapi.NewMessage(int64(chatID), text)
	if _, err := g.bot.Send(msg); err != nil {
		return fmt.Errorf("sending message: %w", err)
	}
	return nil
}

// GetAudio downloads a voice/audio payload by its file reference.
func (g *Gateway) GetAudio(fileID string) ([]byte, error) {
	url, err := g.bot.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("resolving file url: %w", err)
	}

	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("downloading audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("downloading audio: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading audio body: %w", err)
	}
	return data, nil
}

// Updates opens the long-poll update stream.
func (g *Gateway) Updates() tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	return g.bot.GetUpdatesChan(u)
}

// Stop closes the update stream.
func (g *Gateway) Stop() {
	g.bot.StopReceivingUpdates()
}
