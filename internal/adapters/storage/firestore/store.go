package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/PabloGalante/anota-bot/internal/domain"
)

type Store struct {
	client *firestore.Client
}

// NewStore creates a Firestore store.
// Uses the project passed (ANOTA_GCP_PROJECT).
func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client}, nil
}

// ─────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────

func (s *Store) listsCol() *firestore.CollectionRef {
	return s.client.Collection("lists")
}

func (s *Store) listRef(id domain.ListID) *firestore.DocumentRef {
	return s.listsCol().Doc(string(id))
}

// ─────────────────────────────────────────
// Firestore Types
// ─────────────────────────────────────────

type listDoc struct {
	UserID     int64     `firestore:"user_id"`
	Type       string    `firestore:"type"`
	Title      string    `firestore:"title"`
	Items      []itemDoc `firestore:"items"`
	Source     string    `firestore:"source"`
	RawContent string    `firestore:"raw_content"`
	CreatedAt  time.Time `firestore:"created_at"`
	UpdatedAt  time.Time `firestore:"updated_at"`
}

type itemDoc struct {
	Name      string     `firestore:"name"`
	Quantity  string     `firestore:"quantity"`
	Category  string     `firestore:"category"`
	Completed bool       `firestore:"completed"`
	DueDate   *time.Time `firestore:"due_date"`
}

func toListDoc(list *domain.List) listDoc {
	items := make([]itemDoc, 0, len(list.Items))
	for _, it := range list.Items {
		items = append(items, itemDoc{
			Name:      it.Name,
			Quantity:  it.Quantity,
			Category:  it.Category,
			Completed: it.Completed,
			DueDate:   it.DueDate,
		})
	}

	return listDoc{
		UserID:     int64(list.UserID),
		Type:       string(list.Type),
		Title:      list.Title,
		Items:      items,
		Source:     string(list.Source),
		RawContent: list.RawContent,
		CreatedAt:  list.CreatedAt,
		UpdatedAt:  list.UpdatedAt,
	}
}

func fromListDoc(id string, doc listDoc) *domain.List {
	items := make([]domain.ListItem, 0, len(doc.Items))
	for _, it := range doc.Items {
		items = append(items, domain.ListItem{
			Name:      it.Name,
			Quantity:  it.Quantity,
			Category:  it.Category,
			Completed: it.Completed,
			DueDate:   it.DueDate,
		})
	}

	return &domain.List{
		ID:         domain.ListID(id),
		UserID:     domain.UserID(doc.UserID),
		Type:       domain.ListType(doc.Type),
		Title:      doc.Title,
		Items:      items,
		Source:     domain.Source(doc.Source),
		RawContent: doc.RawContent,
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}
}

// ─────────────────────────────────────────
// ListStore implementation
// ─────────────────────────────────────────

// CreateList inserts the list as a single atomic document create.
func (s *Store) CreateList(ctx context.Context, list *domain.List) error {
	_, err := s.listRef(list.ID).Create(ctx, toListDoc(list))
	if err != nil {
		return fmt.Errorf("%w: firestore CreateList: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *Store) ListByUser(ctx context.Context, userID domain.UserID) ([]*domain.List, error) {
	q := s.listsCol().
		Where("user_id", "==", int64(userID)).
		OrderBy("created_at", firestore.Desc)
	return s.runListQuery(ctx, q, "ListByUser")
}

func (s *Store) ListByUserAndType(
	ctx context.Context,
	userID domain.UserID,
	listType domain.ListType,
) ([]*domain.List, error) {
	q := s.listsCol().
		Where("user_id", "==", int64(userID)).
		Where("type", "==", string(listType)).
		OrderBy("created_at", firestore.Desc)
	return s.runListQuery(ctx, q, "ListByUserAndType")
}

func (s *Store) runListQuery(ctx context.Context, q firestore.Query, op string) ([]*domain.List, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []*domain.List
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("%w: firestore %s: %v", domain.ErrStoreUnavailable, op, err)
		}

		var doc listDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("%w: decode listDoc: %v", domain.ErrStoreUnavailable, err)
		}

		out = append(out, fromListDoc(snap.Ref.ID, doc))
	}
	return out, nil
}

// UpdateItem flips one item's completed flag. The whole items array is
// rewritten: Firestore cannot update a single array element in place.
func (s *Store) UpdateItem(
	ctx context.Context,
	userID domain.UserID,
	listID domain.ListID,
	itemIndex int,
	completed bool,
) (*domain.List, error) {
	snap, err := s.listRef(listID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: firestore UpdateItem get: %v", domain.ErrStoreUnavailable, err)
	}

	var doc listDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode listDoc: %v", domain.ErrStoreUnavailable, err)
	}

	if doc.UserID != int64(userID) || itemIndex < 0 || itemIndex >= len(doc.Items) {
		return nil, nil
	}

	doc.Items[itemIndex].Completed = completed
	doc.UpdatedAt = time.Now().UTC()

	if _, err := s.listRef(listID).Set(ctx, doc); err != nil {
		return nil, fmt.Errorf("%w: firestore UpdateItem set: %v", domain.ErrStoreUnavailable, err)
	}

	return fromListDoc(string(listID), doc), nil
}

func (s *Store) DeleteList(ctx context.Context, userID domain.UserID, listID domain.ListID) (bool, error) {
	snap, err := s.listRef(listID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, fmt.Errorf("%w: firestore DeleteList get: %v", domain.ErrStoreUnavailable, err)
	}

	var doc listDoc
	if err := snap.DataTo(&doc); err != nil {
		return false, fmt.Errorf("%w: decode listDoc: %v", domain.ErrStoreUnavailable, err)
	}

	// Ownership check: never delete another user's list.
	if doc.UserID != int64(userID) {
		return false, nil
	}

	if _, err := s.listRef(listID).Delete(ctx); err != nil {
		return false, fmt.Errorf("%w: firestore DeleteList: %v", domain.ErrStoreUnavailable, err)
	}
	return true, nil
}
