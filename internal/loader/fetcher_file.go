package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// FileFetcher serves file:// data bases, used when the bundle is opened from
// disk by the desktop shell instead of a web server.
type FileFetcher struct{}

func filePath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	return filepath.FromSlash(u.Path), nil
}

func (FileFetcher) Fetch(ctx context.Context, rawURL string) (*FetchedDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := filePath(rawURL)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &StatusError{URL: rawURL, StatusCode: http.StatusNotFound}
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	return &FetchedDocument{
		URL:         rawURL,
		StatusCode:  http.StatusOK,
		ContentType: "application/json",
		Body:        f,
		FetchedAt:   time.Now(),
	}, nil
}

func (FileFetcher) Head(ctx context.Context, rawURL string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	path, err := filePath(rawURL)
	if err != nil {
		return 0, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return http.StatusNotFound, nil
		}
		return 0, err
	}
	if info.IsDir() {
		return http.StatusNotFound, nil
	}
	return http.StatusOK, nil
}
