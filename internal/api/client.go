package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"pubdeck/internal/model"
)

// DefaultBaseURL is the public demo backend the app was written against.
const DefaultBaseURL = "https://jsonplaceholder.typicode.com"

const maxErrorBodyBytes = 4096

// NetworkError is any non-success HTTP response or transport failure from
// the remote service. Status is 0 for transport-level failures.
type NetworkError struct {
	Status  int
	Message string
}

func (e *NetworkError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("network error: %s", e.Message)
	}
	return fmt.Sprintf("network error: status %d: %s", e.Status, e.Message)
}

// Client is the gateway to the remote posts service. It is stateless: each
// call is a single round trip, no retries, no batching.
type Client struct {
	baseURL string
	hc      *http.Client
	userID  int

	// now mints client-side ids on create; injectable for tests.
	now func() time.Time
}

func NewClient(baseURL string, hc *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{
		baseURL: baseURL,
		hc:      hc,
		userID:  1,
		now:     time.Now,
	}
}

// WithUser sets the author id stamped on create and update payloads.
// Non-positive ids are ignored and the default of 1 stands.
func (c *Client) WithUser(id int) *Client {
	if id > 0 {
		c.userID = id
	}
	return c
}

// ListPosts fetches all posts.
func (c *Client) ListPosts(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	if err := c.do(ctx, http.MethodGet, "/posts", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// CreatePost submits the draft. The demo backend does not persist creates
// and echoes a reused id, so the server-assigned id is discarded and
// replaced with a client-minted, time-derived one. Without this, two
// consecutive creates would collide in the local collection.
func (c *Client) CreatePost(ctx context.Context, d model.Draft) (model.Post, error) {
	payload := postPayload{Title: d.Title, Body: d.Body, UserID: c.userID}
	var out model.Post
	if err := c.do(ctx, http.MethodPost, "/posts", payload, &out); err != nil {
		return model.Post{}, err
	}
	out.ID = int(c.now().UnixMilli())
	return out, nil
}

// UpdatePost submits the draft to the record at id. The response id is
// forced back to the input id (same demo-backend workaround as CreatePost).
func (c *Client) UpdatePost(ctx context.Context, id int, d model.Draft) (model.Post, error) {
	payload := postPayload{Title: d.Title, Body: d.Body, UserID: c.userID}
	var out model.Post
	if err := c.do(ctx, http.MethodPut, "/posts/"+strconv.Itoa(id), payload, &out); err != nil {
		return model.Post{}, err
	}
	out.ID = id
	return out, nil
}

// DeletePost requests deletion of the record at id. No payload is returned.
func (c *Client) DeletePost(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/posts/"+strconv.Itoa(id), nil, nil)
}

type postPayload struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	UserID int    `json:"userId"`
}

func (c *Client) do(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &NetworkError{Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return &NetworkError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := http.StatusText(resp.StatusCode)
		if b, rerr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes)); rerr == nil && len(bytes.TrimSpace(b)) > 0 {
			msg = string(bytes.TrimSpace(b))
		}
		return &NetworkError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &NetworkError{Status: resp.StatusCode, Message: "decode response: " + err.Error()}
	}
	return nil
}
