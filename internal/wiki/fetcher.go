package wiki

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultURL is the edit form of the "Python 3 already in Fedora" section.
const DefaultURL = "https://fedoraproject.org/w/index.php?title=Python3&action=edit&section=2"

// DefaultTextarea is the name MediaWiki gives its main edit box.
const DefaultTextarea = "wpTextbox1"

const userAgent = "py3wiki"

// Fetcher retrieves the wiki markup of a page section from its edit form.
type Fetcher struct {
	url      string
	textarea string
	client   *resty.Client
}

// NewFetcher creates a fetcher for url. textarea names the preferred edit box;
// when no box has that name the first one is used.
func NewFetcher(url, textarea string, timeout time.Duration, retries int) *Fetcher {
	client := resty.New()
	client.SetHeader("User-Agent", userAgent)
	client.SetTimeout(timeout)
	client.SetRetryCount(retries)

	return &Fetcher{
		url:      url,
		textarea: textarea,
		client:   client,
	}
}

// URL returns the page being fetched.
func (f *Fetcher) URL() string {
	return f.url
}

// Fetch downloads the edit page and returns the content of its edit box.
func (f *Fetcher) Fetch(ctx context.Context) (string, error) {
	resp, err := f.client.R().SetContext(ctx).Get(f.url)
	if err != nil {
		return "", &FetchError{URL: f.url, Err: err}
	}
	if !resp.IsSuccess() {
		return "", &FetchError{URL: f.url, StatusCode: resp.StatusCode(), Err: fmt.Errorf("unexpected status %s", resp.Status())}
	}

	text, err := ExtractTextarea(string(resp.Body()), f.textarea)
	if err != nil {
		return "", &FetchError{URL: f.url, Err: err}
	}
	return text, nil
}

// ExtractTextarea returns the text of the textarea called name, or of the first
// textarea when none matches. Entities are decoded.
func ExtractTextarea(page, name string) (string, error) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("parsing edit page: %w", err)
	}

	var first, named *html.Node
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if named != nil {
			return
		}
		if n.Type == html.ElementNode && n.DataAtom == atom.Textarea {
			if first == nil {
				first = n
			}
			if name != "" && attr(n, "name") == name {
				named = n
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)

	node := named
	if node == nil {
		node = first
	}
	if node == nil {
		return "", ErrNoTextarea
	}

	var b strings.Builder
	for c := node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String(), nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
