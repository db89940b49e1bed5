package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PabloGalante/anota-bot/internal/domain"
	"github.com/PabloGalante/anota-bot/internal/observability"
	"github.com/PabloGalante/anota-bot/internal/timefmt"
)

const startMessage = "Welcome to your Note-Taking Assistant! 📝\n\n" +
	"I can help you manage your:\n" +
	"- 🛒 Grocery lists\n" +
	"- ✅ Todo lists\n" +
	"- ⏰ Reminders\n" +
	"- 📝 General lists\n\n" +
	"Just send me a message or voice note, and I'll help you organize it.\n\n" +
	"Use /help to see all available commands."

const helpMessage = "Available commands:\n\n" +
	"/start - Start the bot\n" +
	"/help - Show this help message\n" +
	"/list - Show all your lists\n" +
	"/today - Show today's reminders\n" +
	"/grocery - Show your grocery lists\n" +
	"/todo - Show your todo lists\n" +
	"/reminder - Show your reminder lists\n" +
	"/delete - Delete a list\n\n" +
	"You can also:\n" +
	"- Send a text message with items to create a new list\n" +
	"- Send a voice message to create a list from speech\n" +
	"- Reply to a list with \"done\" to mark items as completed"

// Router maps slash-commands to list store reads/deletes. It is stateless:
// every call resolves against the store.
type Router struct {
	store domain.ListStore
	loc   *time.Location
	now   func() time.Time
}

func NewRouter(store domain.ListStore, loc *time.Location) *Router {
	if loc == nil {
		loc = time.UTC
	}
	return &Router{
		store: store,
		loc:   loc,
		now:   time.Now,
	}
}

// Handle runs one command and returns the reply text. A bad delete index
// returns domain.ErrInvalidInput; store failures propagate wrapped.
func (r *Router) Handle(ctx context.Context, command, args string, userID domain.UserID) (string, error) {
	log := observability.LoggerFromContext(ctx).With("command", command, "user_id", userID)
	log.Info("handling command")

	switch command {
	case "start":
		return startMessage, nil
	case "help":
		return helpMessage, nil
	case "list":
		return r.handleList(ctx, userID)
	case "today":
		return r.handleToday(ctx, userID)
	case "grocery":
		return r.handleListByType(ctx, userID, domain.ListTypeGrocery)
	case "todo":
		return r.handleListByType(ctx, userID, domain.ListTypeTodo)
	case "reminder":
		return r.handleListByType(ctx, userID, domain.ListTypeReminder)
	case "delete":
		return r.handleDelete(ctx, userID, args)
	default:
		return "❌ Unknown command. Use /help to see available commands.", nil
	}
}

func (r *Router) handleList(ctx context.Context, userID domain.UserID) (string, error) {
	lists, err := r.store.ListByUser(ctx, userID)
	if err != nil {
		return "", err
	}

	if len(lists) == 0 {
		return "You don't have any lists yet. Send me a message to create one!", nil
	}

	blocks := make([]string, 0, len(lists))
	for i, list := range lists {
		blocks = append(blocks, fmt.Sprintf(
			"%d. %s (%s)\n   Items: %d\n   Created: %s\n",
			i+1, list.Title, list.Type, len(list.Items),
			timefmt.DateOnly(list.CreatedAt, r.loc),
		))
	}

	return "Your lists:\n\n" + strings.Join(blocks, "\n"), nil
}

func (r *Router) handleToday(ctx context.Context, userID domain.UserID) (string, error) {
	reminders, err := r.store.ListByUserAndType(ctx, userID, domain.ListTypeReminder)
	if err != nil {
		return "", err
	}

	today := r.now().UTC().Truncate(24 * time.Hour)

	var blocks []string
	for _, list := range reminders {
		var lines []string
		n := 0
		for _, item := range list.Items {
			if !dueOn(item, today) {
				continue
			}
			n++
			mark := "⏳"
			if item.Completed {
				mark = "✅"
			}
			lines = append(lines, fmt.Sprintf("%d. %s %s", n, item.Name, mark))
		}
		if len(lines) > 0 {
			blocks = append(blocks, list.Title+":\n"+strings.Join(lines, "\n"))
		}
	}

	if len(blocks) == 0 {
		return "No reminders for today! 🎉", nil
	}

	return "Today's reminders:\n\n" + strings.Join(blocks, "\n\n"), nil
}

// dueOn matches an item against a calendar day: both sides truncated to the
// UTC day, so time-of-day never affects inclusion.
func dueOn(item domain.ListItem, day time.Time) bool {
	if item.DueDate == nil {
		return false
	}
	return item.DueDate.UTC().Truncate(24 * time.Hour).Equal(day)
}

func (r *Router) handleListByType(
	ctx context.Context,
	userID domain.UserID,
	listType domain.ListType,
) (string, error) {
	lists, err := r.store.ListByUserAndType(ctx, userID, listType)
	if err != nil {
		return "", err
	}

	if len(lists) == 0 {
		return fmt.Sprintf("No %s lists found. Create one by sending me a message!", listType), nil
	}

	blocks := make([]string, 0, len(lists))
	for _, list := range lists {
		var b strings.Builder
		fmt.Fprintf(&b, "📝 %q\n", list.Title)

		lines := make([]string, 0, len(list.Items))
		for _, item := range list.Items {
			line := "- " + item.Name
			if item.Quantity != "" {
				line += fmt.Sprintf(" (%s)", item.Quantity)
			}
			if item.Category != "" {
				line += fmt.Sprintf(" [%s]", item.Category)
			}
			// Due dates only make sense on reminders.
			if item.DueDate != nil && listType == domain.ListTypeReminder {
				line += " - Due: " + timefmt.ForDisplay(*item.DueDate, r.loc)
			}
			lines = append(lines, line)
		}
		b.WriteString(strings.Join(lines, "\n"))
		blocks = append(blocks, b.String())
	}

	return fmt.Sprintf("Your %s lists:\n\n%s", listType, strings.Join(blocks, "\n\n")), nil
}

func (r *Router) handleDelete(ctx context.Context, userID domain.UserID, args string) (string, error) {
	lists, err := r.store.ListByUser(ctx, userID)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(args) == "" {
		lines := make([]string, 0, len(lists))
		for i, list := range lists {
			lines = append(lines, fmt.Sprintf("%d. %s (%s)", i+1, list.Title, list.Type))
		}
		return "Which list would you like to delete? Reply with:\n\n" +
			strings.Join(lines, "\n") +
			"\n\nUse /delete <number> to delete a list.", nil
	}

	// 1-based index over newest-first lists.
	n, err := strconv.Atoi(strings.Fields(args)[0])
	if err != nil || n < 1 || n > len(lists) {
		return "", fmt.Errorf("%w: delete index %q out of range", domain.ErrInvalidInput, args)
	}

	target := lists[n-1]
	deleted, err := r.store.DeleteList(ctx, userID, target.ID)
	if err != nil {
		return "", err
	}
	if !deleted {
		return "❌ Failed to delete the list. Please try again.", nil
	}

	return fmt.Sprintf("✅ Deleted list: %s", target.Title), nil
}
