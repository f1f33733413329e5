// Package htmltable extracts rows from the first HTML table of a page.
package htmltable

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"pricetrack-api/pkg/extractor"
	"pricetrack-api/pkg/quote"
)

const (
	defaultHTTPTimeout = 15 * time.Second
	defaultUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	maxBodyBytes       = 8 << 20
)

// ErrTableNotFound is returned when the page has no matching table.
var ErrTableNotFound = errors.New("htmltable: table not found")

// HTTPClient is the subset of *http.Client used by the extractor.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Extractor fetches a page and flattens each table row into text fields.
type Extractor struct {
	url            string
	userAgent      string
	containerClass string
	rowLimit       int
	httpClient     HTTPClient
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithHTTPClient injects a custom HTTP client.
func WithHTTPClient(hc HTTPClient) Option {
	return func(e *Extractor) {
		if hc != nil {
			e.httpClient = hc
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(e *Extractor) {
		if ua != "" {
			e.userAgent = ua
		}
	}
}

// WithContainerClass restricts the search to the first element whose class
// attribute contains the given substring.
func WithContainerClass(class string) Option {
	return func(e *Extractor) {
		e.containerClass = class
	}
}

// WithRowLimit keeps at most n rows; zero keeps all.
func WithRowLimit(n int) Option {
	return func(e *Extractor) {
		if n >= 0 {
			e.rowLimit = n
		}
	}
}

// New constructs an extractor for url.
func New(url string, opts ...Option) (*Extractor, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("htmltable: url is required")
	}
	e := &Extractor{
		url:        url,
		userAgent:  defaultUserAgent,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func init() {
	extractor.Register("htmltable", func(cfg *extractor.Config) (quote.Extractor, error) {
		opts := []Option{
			WithUserAgent(cfg.UserAgent),
			WithContainerClass(cfg.ContainerClass),
			WithRowLimit(cfg.RowLimit),
		}
		if cfg.Timeout > 0 {
			opts = append(opts, WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
		}
		return New(cfg.URL, opts...)
	})
}

// Extract implements quote.Extractor.
func (e *Extractor) Extract(ctx context.Context) ([]quote.RawRow, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.url, nil)
	if err != nil {
		return nil, fmt.Errorf("htmltable: build request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("htmltable: get %s: %w", e.url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("htmltable: get %s: status %d", e.url, resp.StatusCode)
	}
	return Parse(io.LimitReader(resp.Body, maxBodyBytes), e.containerClass, e.rowLimit)
}

// Parse reads an HTML document and returns the rows of its first table.
func Parse(r io.Reader, containerClass string, rowLimit int) ([]quote.RawRow, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("htmltable: parse: %w", err)
	}
	root := doc
	if containerClass != "" {
		root = findFirst(doc, func(n *html.Node) bool {
			return n.Type == html.ElementNode && strings.Contains(attr(n, "class"), containerClass)
		})
		if root == nil {
			return nil, fmt.Errorf("%w: no element with class %q", ErrTableNotFound, containerClass)
		}
	}
	table := findFirst(root, isElement(atom.Table))
	if table == nil {
		return nil, ErrTableNotFound
	}
	body := findFirst(table, isElement(atom.Tbody))
	if body == nil {
		body = table
	}

	var rows []quote.RawRow
	for tr := body.FirstChild; tr != nil; tr = tr.NextSibling {
		if tr.Type != html.ElementNode || tr.DataAtom != atom.Tr {
			continue
		}
		if rowLimit > 0 && len(rows) >= rowLimit {
			break
		}
		rows = append(rows, rowFields(tr))
	}
	return rows, nil
}

// rowFields flattens every non-empty text node of each cell, in order.
func rowFields(tr *html.Node) quote.RawRow {
	var fields quote.RawRow
	for td := tr.FirstChild; td != nil; td = td.NextSibling {
		if td.Type != html.ElementNode || (td.DataAtom != atom.Td && td.DataAtom != atom.Th) {
			continue
		}
		walk(td, func(n *html.Node) {
			if n.Type != html.TextNode {
				return
			}
			if text := strings.TrimSpace(n.Data); text != "" {
				fields = append(fields, text)
			}
		})
	}
	return fields
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.DataAtom == atom.Script || c.DataAtom == atom.Style) {
			continue
		}
		walk(c, fn)
	}
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

func isElement(a atom.Atom) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == a
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
