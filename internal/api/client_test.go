package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestClient(token string, handler roundTripFunc) *Client {
	httpClient := &http.Client{Transport: handler}
	return New(httpClient, "", token)
}

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func TestGetAlbumSuccess(t *testing.T) {
	client := newTestClient("secret", func(req *http.Request) (*http.Response, error) {
		if req.URL.Host != "api.vimeo.com" || req.URL.Path != "/users/7/albums/42" {
			t.Fatalf("unexpected url: %s", req.URL)
		}
		if req.Header.Get("Accept") != acceptHeader {
			t.Fatalf("missing accept header")
		}
		if req.Header.Get("Authorization") != "Bearer secret" {
			t.Fatalf("missing bearer token")
		}
		return response(200, `{"uri":"/users/7/albums/42","name":"Trips","metadata":{"interactions":{"follow":{"added":true}}}}`), nil
	})

	album, err := client.GetAlbum(context.Background(), "/users/7/albums/42")
	if err != nil {
		t.Fatalf("GetAlbum failed: %v", err)
	}
	if album.Name == nil || *album.Name != "Trips" || !album.IsFollowing() {
		t.Fatalf("unexpected album payload: %+v", album)
	}
}

func TestGetAlbumWithoutToken(t *testing.T) {
	client := newTestClient("", func(req *http.Request) (*http.Response, error) {
		if req.Header.Get("Authorization") != "" {
			t.Fatalf("unexpected authorization header")
		}
		return response(200, `{"name":"Open"}`), nil
	})

	if _, err := client.GetAlbum(context.Background(), "albums/1"); err != nil {
		t.Fatalf("GetAlbum failed: %v", err)
	}
}

func TestGetUserAlbumsSuccess(t *testing.T) {
	client := newTestClient("", func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/me/albums" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		return response(200, `{"total":2,"data":[{"uri":"/albums/1","name":"One"},{"uri":"/albums/2","privacy":"broken"}]}`), nil
	})

	albums, err := client.GetUserAlbums(context.Background(), "/me/")
	if err != nil {
		t.Fatalf("GetUserAlbums failed: %v", err)
	}
	if len(albums) != 2 || *albums[0].Name != "One" {
		t.Fatalf("unexpected albums payload: %+v", albums)
	}
	if albums[1].Privacy != nil || albums[1].Name != nil {
		t.Fatalf("malformed or missing members should be absent: %+v", albums[1])
	}
}

func TestGetJSONStatusError(t *testing.T) {
	client := newTestClient("", func(req *http.Request) (*http.Response, error) {
		return response(404, `{"error":"The requested album couldn't be found.","developer_message":"no album","error_code":5000}`), nil
	})

	_, err := client.GetAlbum(context.Background(), "/albums/404")
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.StatusCode != 404 || apiErr.Code != 5000 || apiErr.DeveloperMessage != "no album" {
		t.Fatalf("unexpected api error: %+v", apiErr)
	}
	if !strings.Contains(err.Error(), "unexpected status") {
		t.Fatalf("unexpected error text: %v", err)
	}
}

func TestGetJSONStatusErrorWithoutBody(t *testing.T) {
	client := newTestClient("", func(req *http.Request) (*http.Response, error) {
		return response(502, `<html>bad gateway</html>`), nil
	})

	_, err := client.GetUserAlbums(context.Background(), "/me")
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 502 || apiErr.Message != "" {
		t.Fatalf("expected bare status error, got %v", err)
	}
}

func TestGetJSONDecodeError(t *testing.T) {
	client := newTestClient("", func(req *http.Request) (*http.Response, error) {
		return response(200, `{invalid json`), nil
	})

	_, err := client.GetUserAlbums(context.Background(), "/me")
	if err == nil || !strings.Contains(err.Error(), "decode") {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestGetAlbumRejectsNonObject(t *testing.T) {
	client := newTestClient("", func(req *http.Request) (*http.Response, error) {
		return response(200, `"just a string"`), nil
	})

	if _, err := client.GetAlbum(context.Background(), "/albums/1"); err == nil {
		t.Fatalf("expected decode error for non-object album")
	}
}

func TestResolveAbsoluteURI(t *testing.T) {
	c := New(http.DefaultClient, "https://example.test/", "")
	if got := c.resolve("https://other.test/albums/1"); got != "https://other.test/albums/1" {
		t.Fatalf("absolute uri should pass through, got %s", got)
	}
	if got := c.resolve("/albums/1"); got != "https://example.test/albums/1" {
		t.Fatalf("unexpected resolved uri: %s", got)
	}
}
