// Package scroll implements in-page smooth scrolling for local anchors. The
// page gets one delegated click handler bound at the document; Resolve runs
// the same dispatch against a node tree.
package scroll

import (
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/TicketsBot/supporters-page/internal/markup"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

//go:embed smooth_scroll.js
var handler string

var ErrNotLocalAnchor = errors.New("not inside a local anchor")

type MissingTargetError struct {
	Fragment string
}

func (e *MissingTargetError) Error() string {
	return fmt.Sprintf("no element with id %q", e.Fragment)
}

// Script returns a fresh <script> element carrying the delegated handler.
func Script() *html.Node {
	return markup.Element(atom.Script, nil, markup.Text(handler))
}

// Resolve finds the element a click on origin should scroll to: the closest
// a[href^="#"] at or above origin, then the element under root whose id is
// the decoded fragment.
func Resolve(root, origin *html.Node) (*html.Node, error) {
	anchor := closestLocalAnchor(origin)
	if anchor == nil {
		return nil, ErrNotLocalAnchor
	}

	href, _ := markup.GetAttr(anchor, "href")
	return target(root, href)
}

type Link struct {
	Anchor   *html.Node
	Fragment string
	Target   *html.Node
}

func (l Link) Dangling() bool {
	return l.Target == nil
}

// Audit lists every local anchor under root, in document order, along with
// the element it resolves to. A bare "#" is not a link to anything and is
// skipped.
func Audit(root *html.Node) []Link {
	var links []Link
	markup.Walk(root, func(n *html.Node) bool {
		if !isLocalAnchor(n) {
			return true
		}

		href, _ := markup.GetAttr(n, "href")
		fragment := strings.TrimPrefix(href, "#")
		if fragment == "" {
			return true
		}
		if decoded, ok := decodeFragment(href); ok {
			fragment = decoded
		}

		resolved, _ := target(root, href)
		links = append(links, Link{
			Anchor:   n,
			Fragment: fragment,
			Target:   resolved,
		})
		return true
	})
	return links
}

func target(root *html.Node, href string) (*html.Node, error) {
	id, ok := decodeFragment(href)
	if !ok {
		return nil, &MissingTargetError{Fragment: strings.TrimPrefix(href, "#")}
	}
	if id == "" {
		return nil, &MissingTargetError{Fragment: id}
	}

	found := markup.ElementByID(root, id)
	if found == nil {
		return nil, &MissingTargetError{Fragment: id}
	}

	return found, nil
}

// decodeFragment mirrors decodeURIComponent in the client handler: a
// malformed escape means there is no target.
func decodeFragment(href string) (string, bool) {
	decoded, err := url.PathUnescape(strings.TrimPrefix(href, "#"))
	if err != nil {
		return "", false
	}
	return decoded, true
}

func closestLocalAnchor(n *html.Node) *html.Node {
	for ; n != nil; n = n.Parent {
		if isLocalAnchor(n) {
			return n
		}
	}
	return nil
}

func isLocalAnchor(n *html.Node) bool {
	if n.Type != html.ElementNode || n.DataAtom != atom.A {
		return false
	}

	href, ok := markup.GetAttr(n, "href")
	return ok && strings.HasPrefix(href, "#")
}
