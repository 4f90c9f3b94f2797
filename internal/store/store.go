package store

import (
	"context"
	"sync"

	"pubdeck/internal/model"
)

// Gateway is the remote boundary the store drives. Satisfied by *api.Client;
// tests substitute a fake.
type Gateway interface {
	ListPosts(ctx context.Context) ([]model.Post, error)
	CreatePost(ctx context.Context, d model.Draft) (model.Post, error)
	UpdatePost(ctx context.Context, id int, d model.Draft) (model.Post, error)
	DeletePost(ctx context.Context, id int) error
}

// Store owns the authoritative in-memory list of posts plus the request
// lifecycle flags the views render from. It is the only component that
// mutates the list, and every mutation happens on the settle side of exactly
// one gateway call (Select excepted, which is local).
//
// The mutex guards only the in-memory state and is never held across a
// network wait, so overlapping fetches keep last-write-wins semantics while
// each operation's own before/after transition stays consistent when ops run
// on Bubble Tea command goroutines.
type Store struct {
	gw Gateway

	mu       sync.Mutex
	posts    []model.Post
	loading  bool
	lastErr  string
	selected *model.Post
}

func New(gw Gateway) *Store {
	return &Store{gw: gw}
}

// FetchAll replaces the collection wholesale from the remote service.
// On failure the stale list is kept (stale-but-present beats empty) and the
// error message is recorded for the views; the error is also returned.
func (s *Store) FetchAll(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	posts, err := s.gw.ListPosts(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = err.Error()
		return err
	}
	s.posts = posts
	return nil
}

// Create submits a new post and, on success, prepends it to the collection.
// No loading-flag transition: creates are background mutations relative to
// list loading. Failures leave the collection and lastErr untouched.
func (s *Store) Create(ctx context.Context, d model.Draft) (model.Post, error) {
	p, err := s.gw.CreatePost(ctx, d)
	if err != nil {
		return model.Post{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = append([]model.Post{p}, s.posts...)
	return p, nil
}

// Update submits changed fields for the record at id and, on success,
// replaces the matching record in place, preserving its position. If no
// record matches (deleted concurrently, unknown id) the result is silently
// dropped; locating-and-replacing is all the store promises.
func (s *Store) Update(ctx context.Context, id int, d model.Draft) (model.Post, error) {
	p, err := s.gw.UpdatePost(ctx, id, d)
	if err != nil {
		return model.Post{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == p.ID {
			s.posts[i] = p
			break
		}
	}
	return p, nil
}

// Delete removes the record at id on gateway success; absent ids are a
// no-op. On failure nothing is mutated and the error is returned.
func (s *Store) Delete(ctx context.Context, id int) error {
	if err := s.gw.DeletePost(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			break
		}
	}
	return nil
}

// Select stores a copy of p to seed the edit form; nil means create mode.
// Local only, no network call.
func (s *Store) Select(p *model.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p == nil {
		s.selected = nil
		return
	}
	cp := *p
	s.selected = &cp
}

// Selected returns a copy of the selected post, if any.
func (s *Store) Selected() (model.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return model.Post{}, false
	}
	return *s.selected, true
}

// Posts returns a snapshot of the collection in display order.
func (s *Store) Posts() []model.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Post, len(s.posts))
	copy(out, s.posts)
	return out
}

// Find returns a copy of the post with the given id.
func (s *Store) Find(id int) (model.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.posts {
		if p.ID == id {
			return p, true
		}
	}
	return model.Post{}, false
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.posts)
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LastError is the message of the most recent failed fetch, or "" if the
// last fetch succeeded. Create/update/delete failures are reported to their
// callers and do not land here.
func (s *Store) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""
}
