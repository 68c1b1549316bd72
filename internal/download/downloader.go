package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"vimeo-albums/internal/model"
)

// ProgressUpdate carries per-file download progress information.
type ProgressUpdate struct {
	BytesWritten int64
	TotalBytes   int64
}

// ProgressFunc receives throttled progress updates while a file is downloading.
type ProgressFunc func(ProgressUpdate)

// FileDownloadResult describes a completed file download.
type FileDownloadResult struct {
	ContentType  string
	BytesWritten int64
	Duration     time.Duration
}

// PictureResult describes a downloaded album picture.
type PictureResult struct {
	Path    string
	Picture model.Picture
	FileDownloadResult
}

// ErrNoPicture is returned when an album has no downloadable picture.
var ErrNoPicture = errors.New("album has no picture")

const progressInterval = 700 * time.Millisecond

// Downloader streams files from HTTP endpoints.
type Downloader struct {
	httpClient *http.Client
}

// New creates a Downloader.
func New(httpClient *http.Client) *Downloader {
	return &Downloader{httpClient: httpClient}
}

// DownloadAlbumPicture stores the largest picture of album in dir, named
// after the album.
func (d *Downloader) DownloadAlbumPicture(ctx context.Context, dir string, album model.Album, progress ProgressFunc) (PictureResult, error) {
	picture, ok := album.PictureCollection.Largest()
	if !ok {
		return PictureResult{}, ErrNoPicture
	}

	name := strings.TrimSpace(model.Or(album.Name, ""))
	if name == "" {
		name = path.Base(model.Or(album.URI, "album"))
	}
	dstPath := filepath.Join(dir, MakeValid(name)+pictureExt(picture.Link))

	dl, err := d.DownloadToFile(ctx, picture.Link, dstPath, progress)
	if err != nil {
		return PictureResult{}, err
	}
	return PictureResult{Path: dstPath, Picture: picture, FileDownloadResult: dl}, nil
}

// DownloadToFile downloads link to dstPath. The file only appears once the
// body has been fully written.
func (d *Downloader) DownloadToFile(ctx context.Context, link, dstPath string, progress ProgressFunc) (FileDownloadResult, error) {
	started := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return FileDownloadResult{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return FileDownloadResult{}, fmt.Errorf("download %s: %w", link, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return FileDownloadResult{}, fmt.Errorf("download %s: unexpected status %d", link, resp.StatusCode)
	}

	dir := filepath.Dir(dstPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return FileDownloadResult{}, fmt.Errorf("create parent dirs: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(dstPath)+".part.*")
	if err != nil {
		return FileDownloadResult{}, fmt.Errorf("create temporary file: %w", err)
	}
	tmpPath := tmp.Name()

	totalBytes := resp.ContentLength
	if totalBytes <= 0 {
		totalBytes = -1
	}
	pw := &progressWriter{w: tmp, total: totalBytes, fn: progress}

	if _, err := io.Copy(pw, resp.Body); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return FileDownloadResult{}, fmt.Errorf("write file %s: %w", dstPath, err)
	}
	pw.flush()

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return FileDownloadResult{}, fmt.Errorf("close file %s: %w", dstPath, err)
	}
	if err := os.Rename(tmpPath, dstPath); err != nil {
		_ = os.Remove(tmpPath)
		return FileDownloadResult{}, fmt.Errorf("move file into place %s: %w", dstPath, err)
	}

	return FileDownloadResult{
		ContentType:  resp.Header.Get("Content-Type"),
		BytesWritten: pw.written,
		Duration:     time.Since(started),
	}, nil
}

func pictureExt(link string) string {
	if u, err := url.Parse(link); err == nil {
		switch ext := strings.ToLower(path.Ext(u.Path)); ext {
		case ".jpg", ".jpeg", ".png", ".webp", ".gif":
			return ext
		}
	}
	return ".jpg"
}

type progressWriter struct {
	w       io.Writer
	total   int64
	written int64
	fn      ProgressFunc
	last    time.Time
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	n, err := pw.w.Write(p)
	pw.written += int64(n)
	if pw.fn != nil && n > 0 {
		now := time.Now()
		if pw.last.IsZero() || now.Sub(pw.last) >= progressInterval {
			pw.fn(ProgressUpdate{BytesWritten: pw.written, TotalBytes: pw.total})
			pw.last = now
		}
	}
	return n, err
}

func (pw *progressWriter) flush() {
	if pw.fn != nil {
		pw.fn(ProgressUpdate{BytesWritten: pw.written, TotalBytes: pw.total})
	}
}
