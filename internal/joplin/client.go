// Package joplin is a client for the Joplin Data API
// (https://joplinapp.org/help/api/references/rest_api).
package joplin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/starford/randomnote/internal/apperr"
	"github.com/starford/randomnote/internal/models"
	"github.com/starford/randomnote/internal/paginate"
)

// DefaultBaseURL is where the Joplin desktop app serves the Data API.
const DefaultBaseURL = "http://localhost:41184"

// Client talks to the Joplin Data API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a Client. timeout bounds every single request.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

// note is the wire form of a note. Joplin encodes is_todo as 0/1 and
// todo_completed as the completion time in milliseconds, 0 when open.
type note struct {
	ID            string `json:"id"`
	IsTodo        int    `json:"is_todo"`
	TodoCompleted int64  `json:"todo_completed"`
}

// List fetches one page of notes at path, e.g. ["notes"] or
// ["folders", id, "notes"].
func (c *Client) List(ctx context.Context, path []string, q models.Query) (models.Page[models.Note], error) {
	var page models.Page[note]
	if err := c.get(ctx, path, q, &page); err != nil {
		return models.Page[models.Note]{}, err
	}
	out := models.Page[models.Note]{
		Items:   make([]models.Note, len(page.Items)),
		HasMore: page.HasMore,
	}
	for i, n := range page.Items {
		out.Items[i] = models.Note{
			ID:            n.ID,
			IsTodo:        n.IsTodo != 0,
			TodoCompleted: n.TodoCompleted != 0,
		}
	}
	return out, nil
}

// Notebooks returns every notebook.
func (c *Client) Notebooks(ctx context.Context) ([]models.Notebook, error) {
	return paginate.Collect(ctx, []string{"id", "title", "parent_id"}, func(ctx context.Context, q models.Query) (models.Page[models.Notebook], error) {
		var page models.Page[models.Notebook]
		err := c.get(ctx, []string{"folders"}, q, &page)
		return page, err
	})
}

// Ping checks that the Data API is reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ping", nil)
	if err != nil {
		return fmt.Errorf("joplin: build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("joplin: ping: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("joplin: ping: status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path []string, q models.Query, dst any) error {
	endpoint := c.endpoint(path, q)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("joplin: build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("joplin: GET /%s: %w", strings.Join(path, "/"), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		err := fmt.Errorf("joplin: GET /%s: status %d: %s", strings.Join(path, "/"), resp.StatusCode, strings.TrimSpace(string(body)))
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %w", err, apperr.ErrNotFound)
		}
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("joplin: decode /%s: %w", strings.Join(path, "/"), err)
	}
	return nil
}

func (c *Client) endpoint(path []string, q models.Query) string {
	segs := make([]string, len(path))
	for i, p := range path {
		segs[i] = url.PathEscape(p)
	}
	v := url.Values{}
	v.Set("token", c.token)
	if len(q.Fields) > 0 {
		v.Set("fields", strings.Join(q.Fields, ","))
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return c.baseURL + "/" + strings.Join(segs, "/") + "?" + v.Encode()
}
