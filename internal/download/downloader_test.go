package download

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vimeo-albums/internal/model"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newDownloader(handler roundTripFunc) *Downloader {
	return New(&http.Client{Transport: handler})
}

func response(status int, contentType, body string) *http.Response {
	h := make(http.Header)
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	return &http.Response{
		StatusCode:    status,
		Body:          io.NopCloser(strings.NewReader(body)),
		Header:        h,
		ContentLength: int64(len(body)),
	}
}

func TestDownloadToFileSuccess(t *testing.T) {
	d := newDownloader(func(req *http.Request) (*http.Response, error) {
		return response(200, "image/jpeg", "abc123"), nil
	})

	outPath := filepath.Join(t.TempDir(), "nested", "cover.jpg")
	result, err := d.DownloadToFile(context.Background(), "https://example.test/cover", outPath, nil)
	if err != nil {
		t.Fatalf("DownloadToFile failed: %v", err)
	}
	if !strings.Contains(result.ContentType, "image/jpeg") {
		t.Fatalf("unexpected content type: %q", result.ContentType)
	}

	b, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("output file was not created: %v", err)
	}
	if string(b) != "abc123" {
		t.Fatalf("unexpected file contents: %q", string(b))
	}
}

func TestDownloadToFileStatusError(t *testing.T) {
	d := newDownloader(func(req *http.Request) (*http.Response, error) {
		return response(http.StatusBadGateway, "", ""), nil
	})

	dst := filepath.Join(t.TempDir(), "x.jpg")
	_, err := d.DownloadToFile(context.Background(), "https://example.test/bad", dst, nil)
	if err == nil || !strings.Contains(err.Error(), "unexpected status") {
		t.Fatalf("expected status error, got %v", err)
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Fatalf("failed download should not leave a file, got err=%v", err)
	}
}

func TestDownloadToFileWithProgress(t *testing.T) {
	body := strings.Repeat("x", 128)
	d := newDownloader(func(req *http.Request) (*http.Response, error) {
		return response(200, "image/png", body), nil
	})

	var updates []ProgressUpdate
	_, err := d.DownloadToFile(
		context.Background(),
		"https://example.test/cover.png",
		filepath.Join(t.TempDir(), "cover.png"),
		func(update ProgressUpdate) {
			updates = append(updates, update)
		},
	)
	if err != nil {
		t.Fatalf("DownloadToFile failed: %v", err)
	}
	if len(updates) == 0 {
		t.Fatalf("expected progress updates, got none")
	}

	last := updates[len(updates)-1]
	if last.BytesWritten != int64(len(body)) || last.TotalBytes != int64(len(body)) {
		t.Fatalf("unexpected final progress: %+v", last)
	}
}

func TestDownloadAlbumPicture(t *testing.T) {
	d := newDownloader(func(req *http.Request) (*http.Response, error) {
		if req.URL.String() != "https://i.example.test/640.png?r=1" {
			t.Fatalf("expected largest picture, got %s", req.URL)
		}
		return response(200, "image/png", "png-bytes"), nil
	})

	name := "Road: Trips"
	album := model.Album{
		Name: &name,
		PictureCollection: &model.PictureCollection{Sizes: []model.Picture{
			{Width: 100, Link: "https://i.example.test/100.png"},
			{Width: 640, Link: "https://i.example.test/640.png?r=1"},
		}},
	}

	dir := t.TempDir()
	result, err := d.DownloadAlbumPicture(context.Background(), dir, album, nil)
	if err != nil {
		t.Fatalf("DownloadAlbumPicture failed: %v", err)
	}
	if result.Path != filepath.Join(dir, "Road__Trips.png") {
		t.Fatalf("unexpected output path: %s", result.Path)
	}
	if result.Picture.Width != 640 || result.BytesWritten != int64(len("png-bytes")) {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestDownloadAlbumPictureFallsBackToURI(t *testing.T) {
	d := newDownloader(func(req *http.Request) (*http.Response, error) {
		return response(200, "image/jpeg", "jpg"), nil
	})

	uri := "/users/7/albums/42"
	album := model.Album{
		URI:               &uri,
		PictureCollection: &model.PictureCollection{Sizes: []model.Picture{{Width: 10, Link: "https://i.example.test/p"}}},
	}

	dir := t.TempDir()
	result, err := d.DownloadAlbumPicture(context.Background(), dir, album, nil)
	if err != nil {
		t.Fatalf("DownloadAlbumPicture failed: %v", err)
	}
	if result.Path != filepath.Join(dir, "42.jpg") {
		t.Fatalf("unexpected output path: %s", result.Path)
	}
}

func TestDownloadAlbumPictureWithoutPictures(t *testing.T) {
	d := newDownloader(func(req *http.Request) (*http.Response, error) {
		t.Fatalf("no request expected")
		return nil, nil
	})

	_, err := d.DownloadAlbumPicture(context.Background(), t.TempDir(), model.Album{}, nil)
	if !errors.Is(err, ErrNoPicture) {
		t.Fatalf("expected ErrNoPicture, got %v", err)
	}
}
