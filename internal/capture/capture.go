// Package capture extracts the login form and its context from a rendered
// HTML document.
//
// Form markup is serialised by golang.org/x/net/html, not by a browser. It
// differs from outerHTML in spelling only: void elements close as <input/>
// rather than <input>, and attribute values are re-escaped. The peer receives
// this markup as the form's only description, so it must parse HTML rather
// than compare strings.
package capture

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"proxylens/internal/domain"
)

var (
	ErrContainerNotFound = errors.New("container element not found")
	ErrNoForm            = errors.New("no form element found")
)

// Page is a document as seen by the browser.
type Page struct {
	Document    io.Reader
	URL         string // address the document was loaded from
	ContainerID string // element holding the login form; empty means the whole document
	Cookies     string // document.cookie
}

// Extract finds the login form nearest the container element and returns its
// markup, resolved action and the page context.
//
// The nearest form is the container itself when it is a <form>, otherwise its
// first <form> descendant. A form without an action posts to the document URL.
func Extract(p Page) (domain.Capture, error) {
	base, err := url.Parse(p.URL)
	if err != nil {
		return domain.Capture{}, fmt.Errorf("capture: document url: %w", err)
	}
	doc, err := html.Parse(p.Document)
	if err != nil {
		return domain.Capture{}, fmt.Errorf("capture: parse: %w", err)
	}

	root := doc
	if p.ContainerID != "" {
		root = find(doc, func(n *html.Node) bool { return attr(n, "id") == p.ContainerID })
		if root == nil {
			return domain.Capture{}, fmt.Errorf("capture: %w: #%s", ErrContainerNotFound, p.ContainerID)
		}
	}
	form := find(root, func(n *html.Node) bool { return n.DataAtom == atom.Form })
	if form == nil {
		return domain.Capture{}, fmt.Errorf("capture: %w", ErrNoForm)
	}

	var sb strings.Builder
	if err := html.Render(&sb, form); err != nil {
		return domain.Capture{}, fmt.Errorf("capture: render form: %w", err)
	}

	return domain.Capture{
		FormMarkup:  sb.String(),
		FormAction:  formAction(form, base),
		DocumentURL: p.URL,
		Cookies:     p.Cookies,
	}, nil
}

func formAction(form *html.Node, base *url.URL) string {
	action := strings.TrimSpace(attr(form, "action"))
	if action == "" {
		return base.String()
	}
	ref, err := url.Parse(action)
	if err != nil {
		return base.String()
	}
	return base.ResolveReference(ref).String()
}

// find returns the first element, in document order, for which match is true,
// starting with n itself.
func find(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, match); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}
