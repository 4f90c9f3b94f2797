package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pubdeck/internal/model"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, srv.Client())
}

func TestListPosts(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/posts" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]model.Post{
			{ID: 1, Title: "A", Body: "aaaaaaaaaa", UserID: 1},
			{ID: 2, Title: "B", Body: "bbbbbbbbbb", UserID: 1},
		})
	})

	posts, err := c.ListPosts(context.Background())
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	if posts[0].ID != 1 || posts[0].Title != "A" {
		t.Fatalf("unexpected first post: %+v", posts[0])
	}
}

func TestCreatePostMintsLocalID(t *testing.T) {
	var gotPayload map[string]any
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/posts" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotPayload)
		w.WriteHeader(http.StatusCreated)
		// The demo backend always echoes the same id for creates.
		_ = json.NewEncoder(w).Encode(model.Post{ID: 101, Title: "New", Body: "new body x", UserID: 1})
	})

	fixed := time.UnixMilli(1700000000000)
	c.now = func() time.Time { return fixed }

	p, err := c.CreatePost(context.Background(), model.Draft{Title: "New", Body: "new body x"})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if p.ID != 1700000000000 {
		t.Fatalf("expected the client-minted id, got %d", p.ID)
	}
	if p.Title != "New" {
		t.Fatalf("unexpected title %q", p.Title)
	}
	if gotPayload["userId"] != float64(1) {
		t.Fatalf("expected userId 1 in payload, got %v", gotPayload["userId"])
	}
}

func TestWithUserStampsPayload(t *testing.T) {
	var gotPayload map[string]any
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotPayload)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(model.Post{ID: 101, Title: "New", Body: "new body x", UserID: 7})
	})
	c = c.WithUser(7)

	if _, err := c.CreatePost(context.Background(), model.Draft{Title: "New", Body: "new body x"}); err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if gotPayload["userId"] != float64(7) {
		t.Fatalf("expected userId 7 in payload, got %v", gotPayload["userId"])
	}

	// Non-positive ids are ignored.
	c = c.WithUser(0)
	if _, err := c.CreatePost(context.Background(), model.Draft{Title: "New", Body: "new body x"}); err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if gotPayload["userId"] != float64(7) {
		t.Fatalf("expected userId to stay 7, got %v", gotPayload["userId"])
	}
}

func TestUpdatePostForcesInputID(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/posts/7" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(model.Post{ID: 999, Title: "T2", Body: "updated body", UserID: 1})
	})

	p, err := c.UpdatePost(context.Background(), 7, model.Draft{Title: "T2", Body: "updated body"})
	if err != nil {
		t.Fatalf("UpdatePost: %v", err)
	}
	if p.ID != 7 {
		t.Fatalf("expected id forced back to 7, got %d", p.ID)
	}
}

func TestDeletePost(t *testing.T) {
	var called bool
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		if r.Method != http.MethodDelete || r.URL.Path != "/posts/3" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	})

	if err := c.DeletePost(context.Background(), 3); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}
	if !called {
		t.Fatal("expected the server to be called")
	}
}

func TestHTTPErrorBecomesNetworkError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := c.ListPosts(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	var nerr *NetworkError
	if !errors.As(err, &nerr) {
		t.Fatalf("expected *NetworkError, got %T: %v", err, err)
	}
	if nerr.Status != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", nerr.Status)
	}
	if nerr.Message != "boom" {
		t.Fatalf("expected the response body as message, got %q", nerr.Message)
	}
}

func TestTransportErrorBecomesNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close() // Refused connections are transport errors, not HTTP ones.

	c := NewClient(url, &http.Client{Timeout: time.Second})
	_, err := c.ListPosts(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	var nerr *NetworkError
	if !errors.As(err, &nerr) {
		t.Fatalf("expected *NetworkError, got %T: %v", err, err)
	}
	if nerr.Status != 0 {
		t.Fatalf("expected status 0 for transport failure, got %d", nerr.Status)
	}
}

func TestContextCancellation(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.ListPosts(ctx)
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
}
