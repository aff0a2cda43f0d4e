package widgets

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"
)

// ErrPageNotFound is returned by stores when a page id is unknown.
var ErrPageNotFound = errors.New("widgets: page not found")

// Page is a named widget configuration supplied by a content collaborator.
type Page struct {
	ID        string         `json:"id"`
	Slug      string         `json:"slug,omitempty"`
	Title     string         `json:"title,omitempty"`
	Config    WidgetConfig   `json:"config"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// PageStore persists pages. Implementations must be safe for concurrent use.
type PageStore interface {
	Save(ctx context.Context, page Page) (Page, error)
	Get(ctx context.Context, id string) (Page, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Page, error)
}

// InMemoryPageStore keeps pages in a map.
type InMemoryPageStore struct {
	mu    sync.RWMutex
	pages map[string]Page
}

// NewInMemoryPageStore creates an empty store.
func NewInMemoryPageStore() *InMemoryPageStore {
	return &InMemoryPageStore{pages: make(map[string]Page)}
}

// Save inserts or replaces a page.
func (s *InMemoryPageStore) Save(_ context.Context, page Page) (Page, error) {
	page.ID = strings.TrimSpace(page.ID)
	if page.ID == "" {
		return Page{}, errMissingPageID
	}
	page.Metadata = cloneMetadata(page.Metadata)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[page.ID] = page
	return page, nil
}

// Get returns the page or ErrPageNotFound.
func (s *InMemoryPageStore) Get(_ context.Context, id string) (Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	page, ok := s.pages[strings.TrimSpace(id)]
	if !ok {
		return Page{}, ErrPageNotFound
	}
	page.Metadata = cloneMetadata(page.Metadata)
	return page, nil
}

// Delete removes the page or returns ErrPageNotFound.
func (s *InMemoryPageStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id = strings.TrimSpace(id)
	if _, ok := s.pages[id]; !ok {
		return ErrPageNotFound
	}
	delete(s.pages, id)
	return nil
}

// List returns every page ordered by id.
func (s *InMemoryPageStore) List(_ context.Context) ([]Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Page, 0, len(s.pages))
	for _, page := range s.pages {
		page.Metadata = cloneMetadata(page.Metadata)
		out = append(out, page)
	}
	slices.SortFunc(out, func(a, b Page) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

func cloneMetadata(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
