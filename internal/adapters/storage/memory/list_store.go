package memory

import (
	"context"
	"sync"

	"github.com/PabloGalante/anota-bot/internal/domain"
)

// ListStore is a simple in-memory implementation of domain.ListStore.
// It is NOT persistent and is only suitable for development / local mode.
type ListStore struct {
	mu     sync.RWMutex
	byUser map[domain.UserID][]*domain.List
}

func NewListStore() *ListStore {
	return &ListStore{
		byUser: make(map[domain.UserID][]*domain.List),
	}
}

func (s *ListStore) CreateList(ctx context.Context, list *domain.List) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byUser[list.UserID] = append(s.byUser[list.UserID], list)
	return nil
}

// ListByUser returns the user's lists newest-first. Lists are appended in
// creation order, so walking backwards gives created_at descending.
func (s *ListStore) ListByUser(ctx context.Context, userID domain.UserID) ([]*domain.List, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lists := s.byUser[userID]
	out := make([]*domain.List, 0, len(lists))
	for i := len(lists) - 1; i >= 0; i-- {
		out = append(out, lists[i])
	}
	return out, nil
}

func (s *ListStore) ListByUserAndType(
	ctx context.Context,
	userID domain.UserID,
	listType domain.ListType,
) ([]*domain.List, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lists := s.byUser[userID]
	var out []*domain.List
	for i := len(lists) - 1; i >= 0; i-- {
		if lists[i].Type == listType {
			out = append(out, lists[i])
		}
	}
	return out, nil
}

func (s *ListStore) UpdateItem(
	ctx context.Context,
	userID domain.UserID,
	listID domain.ListID,
	itemIndex int,
	completed bool,
) (*domain.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, list := range s.byUser[userID] {
		if list.ID != listID {
			continue
		}
		if itemIndex < 0 || itemIndex >= len(list.Items) {
			return nil, nil
		}
		list.Items[itemIndex].Completed = completed
		return list, nil
	}
	return nil, nil
}

func (s *ListStore) DeleteList(ctx context.Context, userID domain.UserID, listID domain.ListID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lists := s.byUser[userID]
	for i, list := range lists {
		if list.ID == listID {
			s.byUser[userID] = append(lists[:i:i], lists[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
