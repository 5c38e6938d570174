// Package markup builds HTML as a tree of golang.org/x/net/html nodes rather
// than by string concatenation. Every piece of text is a text node, so it is
// escaped when the tree is rendered.
package markup

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element returns a new element node with the given attributes and children.
// Children must not already have a parent.
func Element(a atom.Atom, attrs []html.Attribute, children ...*html.Node) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
	Append(n, children...)
	return n
}

func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func Attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func Attrs(attrs ...html.Attribute) []html.Attribute {
	return attrs
}

func Class(name string) []html.Attribute {
	return []html.Attribute{Attr("class", name)}
}

func ID(id string) []html.Attribute {
	return []html.Attribute{Attr("id", id)}
}

// Append adds children to parent, skipping nils so optional parts of a tree
// can be written inline.
func Append(parent *html.Node, children ...*html.Node) {
	for _, child := range children {
		if child == nil {
			continue
		}
		parent.AppendChild(child)
	}
}

func GetAttr(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// Walk calls fn for n and every descendant in document order, stopping early
// when fn returns false.
func Walk(n *html.Node, fn func(*html.Node) bool) bool {
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !Walk(c, fn) {
			return false
		}
	}
	return true
}

// ElementByID returns the first element under root whose id attribute equals
// id, or nil.
func ElementByID(root *html.Node, id string) *html.Node {
	if root == nil || id == "" {
		return nil
	}

	var found *html.Node
	Walk(root, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		if val, ok := GetAttr(n, "id"); ok && val == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// Children returns the element children of n.
func Children(n *html.Node) []*html.Node {
	var res []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			res = append(res, c)
		}
	}
	return res
}

// TextContent concatenates the text of n and its descendants.
func TextContent(n *html.Node) string {
	var sb strings.Builder
	Walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
		return true
	})
	return sb.String()
}

// Render materialises the nodes in order.
func Render(w io.Writer, nodes ...*html.Node) error {
	for _, n := range nodes {
		if err := html.Render(w, n); err != nil {
			return err
		}
	}
	return nil
}

// RenderString is Render into a string, for logging and tests.
func RenderString(nodes ...*html.Node) (string, error) {
	var sb strings.Builder
	if err := Render(&sb, nodes...); err != nil {
		return "", err
	}
	return sb.String(), nil
}
