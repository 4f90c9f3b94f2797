package store

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"pubdeck/internal/api"
	"pubdeck/internal/model"
)

// fakeGateway scripts gateway behavior per operation.
type fakeGateway struct {
	listPosts []model.Post
	listErr   error

	createErr error
	nextID    int

	updateErr error
	deleteErr error

	deleteCalls int
}

func (g *fakeGateway) ListPosts(ctx context.Context) ([]model.Post, error) {
	if g.listErr != nil {
		return nil, g.listErr
	}
	out := make([]model.Post, len(g.listPosts))
	copy(out, g.listPosts)
	return out, nil
}

func (g *fakeGateway) CreatePost(ctx context.Context, d model.Draft) (model.Post, error) {
	if g.createErr != nil {
		return model.Post{}, g.createErr
	}
	g.nextID++
	return model.Post{ID: g.nextID + 1000, Title: d.Title, Body: d.Body, UserID: 1}, nil
}

func (g *fakeGateway) UpdatePost(ctx context.Context, id int, d model.Draft) (model.Post, error) {
	if g.updateErr != nil {
		return model.Post{}, g.updateErr
	}
	return model.Post{ID: id, Title: d.Title, Body: d.Body, UserID: 1}, nil
}

func (g *fakeGateway) DeletePost(ctx context.Context, id int) error {
	g.deleteCalls++
	return g.deleteErr
}

func TestFetchAllSuccessReplacesItems(t *testing.T) {
	gw := &fakeGateway{listPosts: []model.Post{
		{ID: 1, Title: "A", Body: "aaaaaaaaaa", UserID: 1},
		{ID: 2, Title: "B", Body: "bbbbbbbbbb", UserID: 1},
	}}
	st := New(gw)

	if err := st.FetchAll(context.Background()); err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if st.Loading() {
		t.Fatal("loading should be false after settle")
	}
	if st.LastError() != "" {
		t.Fatalf("lastError should be cleared, got %q", st.LastError())
	}
	if st.Len() != 2 {
		t.Fatalf("expected 2 posts, got %d", st.Len())
	}

	// A later fetch replaces wholesale, not merges.
	gw.listPosts = []model.Post{{ID: 9, Title: "Z", Body: "zzzzzzzzzz", UserID: 1}}
	if err := st.FetchAll(context.Background()); err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	posts := st.Posts()
	if len(posts) != 1 || posts[0].ID != 9 {
		t.Fatalf("expected wholesale replacement, got %+v", posts)
	}
}

func TestFetchAllFailureKeepsStaleItems(t *testing.T) {
	gw := &fakeGateway{listPosts: []model.Post{{ID: 1, Title: "A", Body: "aaaaaaaaaa", UserID: 1}}}
	st := New(gw)
	if err := st.FetchAll(context.Background()); err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	before := st.Posts()

	gw.listErr = &api.NetworkError{Status: 500, Message: "boom"}
	err := st.FetchAll(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if st.Loading() {
		t.Fatal("loading should settle to false on failure")
	}
	if st.LastError() == "" {
		t.Fatal("expected lastError to be recorded")
	}
	if got := st.Posts(); !reflect.DeepEqual(got, before) {
		t.Fatalf("items must be untouched on fetch failure:\n got %+v\nwant %+v", got, before)
	}

	// A following success clears the error.
	gw.listErr = nil
	if err := st.FetchAll(context.Background()); err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if st.LastError() != "" {
		t.Fatalf("lastError should clear on success, got %q", st.LastError())
	}
}

func TestCreatePrependsWithUniqueIDs(t *testing.T) {
	gw := &fakeGateway{listPosts: []model.Post{{ID: 1, Title: "A", Body: "aaaaaaaaaa", UserID: 1}}}
	st := New(gw)
	if err := st.FetchAll(context.Background()); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		before := st.Len()
		p, err := st.Create(context.Background(), model.Draft{Title: "New", Body: "new body xx"})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if st.Len() != before+1 {
			t.Fatalf("expected length to grow by exactly 1, got %d -> %d", before, st.Len())
		}
		posts := st.Posts()
		if posts[0].ID != p.ID {
			t.Fatalf("expected the new record first, got %+v", posts[0])
		}
		seen := map[int]bool{}
		for _, q := range posts {
			if seen[q.ID] {
				t.Fatalf("duplicate id %d in %+v", q.ID, posts)
			}
			seen[q.ID] = true
		}
	}
}

func TestCreateFailureLeavesStateAlone(t *testing.T) {
	gw := &fakeGateway{listPosts: []model.Post{{ID: 1, Title: "A", Body: "aaaaaaaaaa", UserID: 1}}}
	st := New(gw)
	if err := st.FetchAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	before := st.Posts()

	gw.createErr = &api.NetworkError{Status: 500, Message: "boom"}
	if _, err := st.Create(context.Background(), model.Draft{Title: "New", Body: "new body xx"}); err == nil {
		t.Fatal("expected error")
	}
	if got := st.Posts(); !reflect.DeepEqual(got, before) {
		t.Fatalf("items must be untouched on create failure")
	}
	// Create failures are caller-local; they never persist into lastError.
	if st.LastError() != "" {
		t.Fatalf("create failure must not set lastError, got %q", st.LastError())
	}
}

func TestUpdateReplacesInPlace(t *testing.T) {
	gw := &fakeGateway{listPosts: []model.Post{
		{ID: 1, Title: "A", Body: "aaaaaaaaaa", UserID: 1},
		{ID: 2, Title: "B", Body: "bbbbbbbbbb", UserID: 1},
		{ID: 3, Title: "C", Body: "cccccccccc", UserID: 1},
	}}
	st := New(gw)
	if err := st.FetchAll(context.Background()); err != nil {
		t.Fatal(err)
	}

	if _, err := st.Update(context.Background(), 2, model.Draft{Title: "B2", Body: "updated body"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	posts := st.Posts()
	if posts[1].ID != 2 || posts[1].Title != "B2" || posts[1].Body != "updated body" {
		t.Fatalf("expected in-place replacement at index 1, got %+v", posts[1])
	}
	if posts[0].Title != "A" || posts[2].Title != "C" {
		t.Fatalf("neighbors must be untouched, got %+v", posts)
	}
}

func TestUpdateAbsentIDIsSilentNoop(t *testing.T) {
	gw := &fakeGateway{listPosts: []model.Post{{ID: 1, Title: "A", Body: "aaaaaaaaaa", UserID: 1}}}
	st := New(gw)
	if err := st.FetchAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	before := st.Posts()

	// Gateway reports success; the store's job is only locate-and-replace.
	if _, err := st.Update(context.Background(), 42, model.Draft{Title: "X", Body: "xxxxxxxxxx"}); err != nil {
		t.Fatalf("Update on absent id must not be a store error, got %v", err)
	}
	if got := st.Posts(); !reflect.DeepEqual(got, before) {
		t.Fatalf("items must be unchanged for an absent id:\n got %+v\nwant %+v", got, before)
	}
}

func TestUpdateFailureLeavesStateAlone(t *testing.T) {
	gw := &fakeGateway{listPosts: []model.Post{{ID: 1, Title: "A", Body: "aaaaaaaaaa", UserID: 1}}}
	st := New(gw)
	if err := st.FetchAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	before := st.Posts()

	gw.updateErr = &api.NetworkError{Status: 500, Message: "boom"}
	if _, err := st.Update(context.Background(), 1, model.Draft{Title: "X", Body: "xxxxxxxxxx"}); err == nil {
		t.Fatal("expected error")
	}
	if got := st.Posts(); !reflect.DeepEqual(got, before) {
		t.Fatal("items must be untouched on update failure")
	}
}

func TestDeleteRemovesAtMostOne(t *testing.T) {
	gw := &fakeGateway{listPosts: []model.Post{
		{ID: 1, Title: "A", Body: "aaaaaaaaaa", UserID: 1},
		{ID: 2, Title: "B", Body: "bbbbbbbbbb", UserID: 1},
	}}
	st := New(gw)
	if err := st.FetchAll(context.Background()); err != nil {
		t.Fatal(err)
	}

	if err := st.Delete(context.Background(), 1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if st.Len() != 1 {
		t.Fatalf("expected 1 post left, got %d", st.Len())
	}

	// Second delete of the same id: idempotent gateway, no store error.
	if err := st.Delete(context.Background(), 1); err != nil {
		t.Fatalf("second Delete must be a no-op, got %v", err)
	}
	if st.Len() != 1 {
		t.Fatalf("second delete must not remove anything, got len %d", st.Len())
	}
	if gw.deleteCalls != 2 {
		t.Fatalf("both deletes must reach the gateway, got %d calls", gw.deleteCalls)
	}

	// Non-idempotent gateway: the error propagates and nothing is mutated.
	gw.deleteErr = &api.NetworkError{Status: 404, Message: "gone"}
	if err := st.Delete(context.Background(), 2); err == nil {
		t.Fatal("expected error")
	}
	if st.Len() != 1 {
		t.Fatalf("failed delete must not mutate, got len %d", st.Len())
	}
}

func TestSelectStoresACopy(t *testing.T) {
	st := New(&fakeGateway{})

	p := model.Post{ID: 1, Title: "A", Body: "aaaaaaaaaa", UserID: 1}
	st.Select(&p)
	p.Title = "mutated after select"

	got, ok := st.Selected()
	if !ok {
		t.Fatal("expected a selection")
	}
	if got.Title != "A" {
		t.Fatalf("selection must be a copy, got %q", got.Title)
	}

	st.Select(nil)
	if _, ok := st.Selected(); ok {
		t.Fatal("nil must clear the selection (create mode)")
	}
}

func TestPostsReturnsSnapshot(t *testing.T) {
	gw := &fakeGateway{listPosts: []model.Post{{ID: 1, Title: "A", Body: "aaaaaaaaaa", UserID: 1}}}
	st := New(gw)
	if err := st.FetchAll(context.Background()); err != nil {
		t.Fatal(err)
	}

	snap := st.Posts()
	snap[0].Title = "mutated"
	if got, _ := st.Find(1); got.Title != "A" {
		t.Fatalf("mutating the snapshot must not affect the store, got %q", got.Title)
	}
}

func TestEndToEndScenario(t *testing.T) {
	gw := &fakeGateway{listPosts: []model.Post{{ID: 1, Title: "A", Body: "aaaaaaaaaa", UserID: 1}}}
	st := New(gw)

	if err := st.FetchAll(context.Background()); err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if st.Len() != 1 || st.Loading() {
		t.Fatalf("after fetch: len=%d loading=%v", st.Len(), st.Loading())
	}

	created, err := st.Create(context.Background(), model.Draft{Title: "B", Body: "bbbbbbbbbb"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	posts := st.Posts()
	if len(posts) != 2 || posts[0].ID != created.ID {
		t.Fatalf("after create: %+v", posts)
	}

	if _, err := st.Update(context.Background(), 1, model.Draft{Title: "A2", Body: "aaaaaaaaaa2"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	posts = st.Posts()
	if posts[1].ID != 1 || posts[1].Title != "A2" {
		t.Fatalf("after update, id 1 must show the new title at its original position: %+v", posts)
	}

	if err := st.Delete(context.Background(), 1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	posts = st.Posts()
	if len(posts) != 1 || posts[0].ID != created.ID {
		t.Fatalf("after delete: %+v", posts)
	}

	var nerr *api.NetworkError
	gw.listErr = &api.NetworkError{Status: 503, Message: "down"}
	if err := st.FetchAll(context.Background()); !errors.As(err, &nerr) {
		t.Fatalf("expected *api.NetworkError, got %T", err)
	}
	if st.Len() != 1 {
		t.Fatal("stale list must survive a failed refresh")
	}
}
