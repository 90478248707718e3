// Package render applies a resolved theme to a rendering surface: a live
// root node on the client, or an HTML text buffer on the server. Both
// paths emit the same observable artifacts (one mode class, one scheme
// class, a concrete data-theme attribute) and both are idempotent.
package render

import "strings"

// Root is the mutation surface Apply works against. The browser DOM, a
// template engine's element handle, or the in-memory Node below can all
// stand behind it.
type Root interface {
	// Classes returns the current class list in order.
	Classes() []string
	AddClass(name string)
	RemoveClass(name string)
	// Attr returns the value of the named attribute, or "" when unset.
	Attr(name string) string
	SetAttr(name, value string)
}

// Node is an in-memory Root: an ordered class list plus attributes. It is
// the client-side stand-in used by tests and by bindings that sync to a
// real DOM asynchronously.
type Node struct {
	classes []string
	attrs   map[string]string
}

// NewNode returns an empty node.
func NewNode() *Node {
	return &Node{attrs: make(map[string]string)}
}

// ParseNode builds a node from a space-separated class string, as found in
// a class attribute.
func ParseNode(classAttr string) *Node {
	n := NewNode()
	for _, c := range strings.Fields(classAttr) {
		n.AddClass(c)
	}
	return n
}

func (n *Node) Classes() []string {
	out := make([]string, len(n.classes))
	copy(out, n.classes)
	return out
}

// AddClass appends name unless it is already present.
func (n *Node) AddClass(name string) {
	for _, c := range n.classes {
		if c == name {
			return
		}
	}
	n.classes = append(n.classes, name)
}

func (n *Node) RemoveClass(name string) {
	for i, c := range n.classes {
		if c == name {
			n.classes = append(n.classes[:i], n.classes[i+1:]...)
			return
		}
	}
}

func (n *Node) Attr(name string) string { return n.attrs[name] }

func (n *Node) SetAttr(name, value string) { n.attrs[name] = value }

// ClassAttr renders the class list back to attribute form.
func (n *Node) ClassAttr() string { return strings.Join(n.classes, " ") }
