// Package static is a driver for server rendered pages. It fetches the page over http
// and parses it with goquery, no javascript will be executed.
package static

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/go-rod/pageobject"
)

// ErrNoPage is returned when the driver hasn't navigated to any page yet
var ErrNoPage = errors.New("no page loaded")

// StatusError is returned when the server responds a non-2xx status code
type StatusError struct {
	URL  string
	Code int
}

// Error ...
func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d from %s", e.Code, e.URL)
}

// Driver implements pageobject.Driver
type Driver struct {
	client *http.Client
	base   *url.URL

	current *url.URL
	doc     *goquery.Document
}

var _ pageobject.Driver = &Driver{}

// New driver, relative urls will be resolved against base.
// If client is nil http.DefaultClient will be used.
func New(client *http.Client, base string) (*Driver, error) {
	if client == nil {
		client = http.DefaultClient
	}

	d := &Driver{client: client}

	if base != "" {
		u, err := url.Parse(base)
		if err != nil {
			return nil, err
		}
		d.base = u
	}

	return d, nil
}

// URL of the current page, empty if no page is loaded
func (d *Driver) URL() string {
	if d.current == nil {
		return ""
	}
	return d.current.String()
}

// Document of the current page
func (d *Driver) Document() *goquery.Document {
	return d.doc
}

func (d *Driver) resolve(ref string) (*url.URL, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return nil, err
	}

	// the same way as a browser, relative to the current page first
	if d.current != nil {
		return d.current.ResolveReference(u), nil
	}
	if d.base != nil {
		return d.base.ResolveReference(u), nil
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("relative url %q without a base url", ref)
	}
	return u, nil
}

// Navigate to the url
func (d *Driver) Navigate(ctx context.Context, ref string) error {
	u, err := d.resolve(ref)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/html")

	res, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return &StatusError{URL: u.String(), Code: res.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return err
	}

	// redirects change the location of the page
	d.current = res.Request.URL
	d.doc = doc
	return nil
}

// Title of the current page, whitespace is collapsed like document.title does
func (d *Driver) Title(context.Context) (string, error) {
	if d.doc == nil {
		return "", ErrNoPage
	}

	title := d.doc.Find("title").First().Text()
	return strings.Join(strings.Fields(title), " "), nil
}

// Element returns the first *goquery.Selection that matches the selector
func (d *Driver) Element(_ context.Context, selector string) (pageobject.Element, error) {
	if d.doc == nil {
		return nil, ErrNoPage
	}

	m, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", selector, err)
	}

	sel := d.doc.FindMatcher(m).First()
	if sel.Length() == 0 {
		return nil, nil
	}
	return sel, nil
}
