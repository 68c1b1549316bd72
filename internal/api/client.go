package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"vimeo-albums/internal/model"
)

// DefaultBaseURL is the public API root.
const DefaultBaseURL = "https://api.vimeo.com"

const acceptHeader = "application/vnd.vimeo.*+json;version=3.4"

// Client wraps calls to the albums endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// New creates an API client. An empty baseURL selects DefaultBaseURL; an
// empty token sends unauthenticated requests.
func New(httpClient *http.Client, baseURL, token string) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
	}
}

type pageResp[T any] struct {
	Total int `json:"total"`
	Data  []T `json:"data"`
}

// GetAlbum returns the album at uri, e.g. "/users/7/albums/42".
func (c *Client) GetAlbum(ctx context.Context, uri string) (model.Album, error) {
	var out model.Album
	if err := c.getJSON(ctx, c.resolve(uri), &out); err != nil {
		return model.Album{}, err
	}
	return out, nil
}

// GetUserAlbums returns the first page of albums owned by the user at
// userURI, e.g. "/me" or "/users/7".
func (c *Client) GetUserAlbums(ctx context.Context, userURI string) ([]model.Album, error) {
	url := c.resolve(strings.TrimRight(userURI, "/") + "/albums")
	var out pageResp[model.Album]
	if err := c.getJSON(ctx, url, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) resolve(uri string) string {
	if strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://") {
		return uri
	}
	if !strings.HasPrefix(uri, "/") {
		uri = "/" + uri
	}
	return c.baseURL + uri
}

func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newError(url, resp.StatusCode, resp.Body)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}

	return nil
}

// Error is returned for responses outside the 2xx range.
type Error struct {
	URL              string
	StatusCode       int
	Message          string `json:"error"`
	DeveloperMessage string `json:"developer_message"`
	Code             int    `json:"error_code"`
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("request %s: unexpected status %d", e.URL, e.StatusCode)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Code != 0 {
		msg += fmt.Sprintf(" (code %d)", e.Code)
	}
	return msg
}

func newError(url string, status int, body io.Reader) *Error {
	e := &Error{}
	// Error bodies are best effort; plenty of proxies answer with HTML.
	b, _ := io.ReadAll(io.LimitReader(body, 64*1024))
	_ = json.Unmarshal(b, e)
	e.URL = url
	e.StatusCode = status
	return e
}
