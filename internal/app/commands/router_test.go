package commands

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	memstore "github.com/PabloGalante/anota-bot/internal/adapters/storage/memory"
	"github.com/PabloGalante/anota-bot/internal/domain"
)

const testUser domain.UserID = 42

func newTestRouter(store domain.ListStore, now time.Time) *Router {
	r := NewRouter(store, time.UTC)
	r.now = func() time.Time { return now }
	return r
}

func seedList(t *testing.T, store domain.ListStore, id, title string, typ domain.ListType, items ...domain.ListItem) {
	t.Helper()
	err := store.CreateList(context.Background(), &domain.List{
		ID:     domain.ListID(id),
		UserID: testUser,
		Type:   typ,
		Title:  title,
		Items:  items,
	})
	if err != nil {
		t.Fatalf("seeding list %q: %v", title, err)
	}
}

func TestListEmptyState(t *testing.T) {
	r := newTestRouter(memstore.NewListStore(), time.Now())

	reply, err := r.Handle(context.Background(), "list", "", testUser)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !strings.Contains(reply, "don't have any lists yet") {
		t.Fatalf("expected empty-state message, got %q", reply)
	}
}

func TestTodayFilterMatchesUTCDay(t *testing.T) {
	due := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		now     time.Time
		include bool
	}{
		{"same day, late evening", time.Date(2024, 3, 15, 23, 30, 0, 0, time.UTC), true},
		{"same day, midnight", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"day before", time.Date(2024, 3, 14, 12, 0, 0, 0, time.UTC), false},
		{"day after", time.Date(2024, 3, 16, 12, 0, 0, 0, time.UTC), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := memstore.NewListStore()
			seedList(t, store, "r1", "Appointments", domain.ListTypeReminder,
				domain.ListItem{Name: "dentist", DueDate: &due})

			r := newTestRouter(store, tc.now)
			reply, err := r.Handle(context.Background(), "today", "", testUser)
			if err != nil {
				t.Fatalf("Handle failed: %v", err)
			}

			got := strings.Contains(reply, "dentist")
			if got != tc.include {
				t.Fatalf("include=%v, want %v; reply=%q", got, tc.include, reply)
			}
		})
	}
}

func TestTodayIgnoresUndatedItems(t *testing.T) {
	store := memstore.NewListStore()
	seedList(t, store, "r1", "Loose ends", domain.ListTypeReminder,
		domain.ListItem{Name: "someday task"})

	r := newTestRouter(store, time.Now())
	reply, err := r.Handle(context.Background(), "today", "", testUser)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !strings.Contains(reply, "No reminders for today") {
		t.Fatalf("expected empty-state, got %q", reply)
	}
}

func TestListByTypeShowsDueDatesOnlyForReminders(t *testing.T) {
	due := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	store := memstore.NewListStore()
	seedList(t, store, "g1", "Shopping", domain.ListTypeGrocery,
		domain.ListItem{Name: "milk", Quantity: "2", DueDate: &due})
	seedList(t, store, "r1", "Deadlines", domain.ListTypeReminder,
		domain.ListItem{Name: "taxes", DueDate: &due})

	r := newTestRouter(store, time.Now())

	groceries, err := r.Handle(context.Background(), "grocery", "", testUser)
	if err != nil {
		t.Fatalf("grocery failed: %v", err)
	}
	if strings.Contains(groceries, "Due:") {
		t.Fatalf("grocery listing must not show due dates: %q", groceries)
	}
	if !strings.Contains(groceries, "milk (2)") {
		t.Fatalf("grocery listing missing quantity: %q", groceries)
	}

	reminders, err := r.Handle(context.Background(), "reminder", "", testUser)
	if err != nil {
		t.Fatalf("reminder failed: %v", err)
	}
	if !strings.Contains(reminders, "Due: 4/1/2024") {
		t.Fatalf("reminder listing missing due date: %q", reminders)
	}
}

func TestDeleteByIndex(t *testing.T) {
	store := memstore.NewListStore()
	// Created oldest to newest; /delete indexes newest-first.
	seedList(t, store, "a", "First", domain.ListTypeGeneral)
	seedList(t, store, "b", "Second", domain.ListTypeGeneral)
	seedList(t, store, "c", "Third", domain.ListTypeGeneral)

	r := newTestRouter(store, time.Now())

	reply, err := r.Handle(context.Background(), "delete", "2", testUser)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if !strings.Contains(reply, "Deleted list: Second") {
		t.Fatalf("unexpected reply: %q", reply)
	}

	lists, _ := store.ListByUser(context.Background(), testUser)
	if len(lists) != 2 {
		t.Fatalf("expected 2 lists remaining, got %d", len(lists))
	}
	if lists[0].Title != "Third" || lists[1].Title != "First" {
		t.Fatalf("wrong lists remain: %q, %q", lists[0].Title, lists[1].Title)
	}
}

func TestDeleteBadIndexIsUserError(t *testing.T) {
	store := memstore.NewListStore()
	seedList(t, store, "a", "First", domain.ListTypeGeneral)
	seedList(t, store, "b", "Second", domain.ListTypeGeneral)
	seedList(t, store, "c", "Third", domain.ListTypeGeneral)

	r := newTestRouter(store, time.Now())

	for _, args := range []string{"5", "abc", "0", "-1"} {
		_, err := r.Handle(context.Background(), "delete", args, testUser)
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("args %q: expected ErrInvalidInput, got %v", args, err)
		}
	}

	lists, _ := store.ListByUser(context.Background(), testUser)
	if len(lists) != 3 {
		t.Fatalf("lists must be untouched, got %d", len(lists))
	}
}

func TestDeleteWithoutArgsPromptsWithCandidates(t *testing.T) {
	store := memstore.NewListStore()
	seedList(t, store, "a", "Groceries", domain.ListTypeGrocery)

	r := newTestRouter(store, time.Now())
	reply, err := r.Handle(context.Background(), "delete", "", testUser)
	if err != nil {
		t.Fatalf("delete prompt failed: %v", err)
	}
	if !strings.Contains(reply, "1. Groceries (grocery)") {
		t.Fatalf("prompt missing candidates: %q", reply)
	}
	if !strings.Contains(reply, "/delete <number>") {
		t.Fatalf("prompt missing usage hint: %q", reply)
	}
}

func TestUnknownCommand(t *testing.T) {
	r := newTestRouter(memstore.NewListStore(), time.Now())
	reply, err := r.Handle(context.Background(), "frobnicate", "", testUser)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !strings.Contains(reply, "Unknown command") {
		t.Fatalf("expected unknown-command reply, got %q", reply)
	}
}
