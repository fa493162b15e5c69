package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/pfrederiksen/dirtrace-ics/internal/race"
	"golang.org/x/net/html/charset"
)

const (
	DefaultURL     = "http://www.keiba.go.jp/dirtrace/schedule.html"
	UserAgent      = "dirtrace-ics/1.0 (github.com/pfrederiksen/dirtrace-ics)"
	DefaultTimeout = 30 * time.Second
)

// Scraper fetches the schedule page and extracts races from it
type Scraper struct {
	client *http.Client
	source string
}

// New creates a Scraper for source, which is either an http(s) URL or a path
// to a saved copy of the page. A non-positive timeout uses DefaultTimeout.
func New(source string, timeout time.Duration) *Scraper {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Scraper{
		client: &http.Client{
			Timeout: timeout,
		},
		source: source,
	}
}

// Source returns the URL or path the scraper reads from.
func (s *Scraper) Source() string {
	return s.source
}

// Fetch opens the schedule page and returns its content decoded to UTF-8.
// The caller must close the returned reader.
func (s *Scraper) Fetch(ctx context.Context) (io.ReadCloser, error) {
	if !isRemote(s.source) {
		return openFile(s.source)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.source, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	r, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		resp.Body.Close()
		return nil, fmt.Errorf("detecting encoding: %w", err)
	}

	return readCloser{Reader: r, Closer: resp.Body}, nil
}

// FetchRaces fetches the schedule page and extracts its races.
func (s *Scraper) FetchRaces(ctx context.Context, year YearStrategy) ([]race.Race, error) {
	body, err := s.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return ExtractHTML(body, year)
}

func isRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// openFile reads a saved page. Without a header the encoding is sniffed from
// a BOM or meta charset tag.
func openFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening page: %w", err)
	}

	r, err := charset.NewReader(f, "")
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("detecting encoding: %w", err)
	}

	return readCloser{Reader: r, Closer: f}, nil
}

type readCloser struct {
	io.Reader
	io.Closer
}
