package notion

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Markup fragments are *html.Node trees. They are built bottom-up during
// traversal, composed by appending children, and serialised exactly once
// at the document root.

// el creates an element node with optional children.
// Nil children are skipped so callers can pass optional fragments through.
func el(tag string, children ...*html.Node) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for _, c := range children {
		if c != nil {
			n.AppendChild(c)
		}
	}
	return n
}

// elAttr creates an element node with attributes and optional children.
func elAttr(tag string, attrs []html.Attribute, children ...*html.Node) *html.Node {
	n := el(tag, children...)
	n.Attr = attrs
	return n
}

// text creates a text node. Escaping happens at render time.
func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// attr builds a single attribute.
func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

// appendChildren appends non-nil fragments to a parent in order.
func appendChildren(parent *html.Node, children ...*html.Node) {
	for _, c := range children {
		if c != nil {
			parent.AppendChild(c)
		}
	}
}

// renderHTML serialises a fragment to a string.
func renderHTML(n *html.Node) (string, error) {
	var sb strings.Builder
	if err := html.Render(&sb, n); err != nil {
		return "", err
	}
	return sb.String(), nil
}
