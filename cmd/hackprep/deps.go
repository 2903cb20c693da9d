package main

import (
	"io"
	"net/http"
	"os"
	"time"

	"github.com/pkg/browser"
)

// Dependencies holds injectable dependencies for testability.
type Dependencies struct {
	Now         func() time.Time
	Stdin       io.Reader
	Stdout      io.Writer
	Stderr      io.Writer
	HTTPClient  *http.Client
	OpenBrowser func(url string) error
}

// DefaultDeps returns production dependencies.
func DefaultDeps() *Dependencies {
	return &Dependencies{
		Now:         time.Now,
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		HTTPClient:  &http.Client{Timeout: 120 * time.Second},
		OpenBrowser: browser.OpenURL,
	}
}
