package surface

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Tree is an in-memory [Document]. Its elements are [*Node] values.
type Tree struct {
	ctm  Matrix
	face font.Face
}

// TreeOption configures a Tree.
type TreeOption func(*Tree)

// WithScreenCTM sets the device transform reported for every element.
func WithScreenCTM(m Matrix) TreeOption { return func(t *Tree) { t.ctm = m } }

// WithFontFace sets the face used by TextWidth.
func WithFontFace(f font.Face) TreeOption { return func(t *Tree) { t.face = f } }

// NewTree returns an empty tree measuring text with the 7x13 fixed font.
func NewTree(opts ...TreeOption) *Tree {
	t := &Tree{ctm: Identity, face: basicfont.Face7x13}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// CreateElement returns a new detached *Node.
func (t *Tree) CreateElement(namespace, tag string) Element {
	return &Node{ns: namespace, tag: tag}
}

// ScreenCTM returns the tree-wide device transform.
func (t *Tree) ScreenCTM(Element) Matrix { return t.ctm }

// SetScreenCTM changes the device transform, e.g. after the host scrolls.
func (t *Tree) SetScreenCTM(m Matrix) { t.ctm = m }

// TextWidth measures el's text with the tree's font face.
func (t *Tree) TextWidth(el Element) float64 {
	return MeasureText(t.face, el.Text())
}

// Dispatch delivers ev to the listeners its target registered for ev.Type.
// It is a no-op for targets that are not *Node.
func (t *Tree) Dispatch(ev Event) {
	n, ok := ev.Target.(*Node)
	if !ok {
		return
	}
	// Copy so a handler that subscribes more listeners does not see them.
	hs := append([]Handler(nil), n.listeners[ev.Type]...)
	for _, h := range hs {
		h(ev)
	}
}

// Node is an [Element] of a [Tree].
type Node struct {
	ns        string
	tag       string
	attrs     []Attr
	text      string
	parent    *Node
	children  []*Node
	listeners map[EventType][]Handler
}

func (n *Node) Namespace() string { return n.ns }
func (n *Node) Tag() string       { return n.tag }
func (n *Node) Text() string      { return n.text }
func (n *Node) SetText(s string)  { n.text = s }

func (n *Node) SetAttribute(name, value string) {
	for i := range n.attrs {
		if n.attrs[i].Name == name {
			n.attrs[i].Value = value
			return
		}
	}
	n.attrs = append(n.attrs, Attr{Name: name, Value: value})
}

func (n *Node) Attribute(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

func (n *Node) Attributes() []Attr { return append([]Attr(nil), n.attrs...) }

// AppendChild panics if child was not created by a Tree.
func (n *Node) AppendChild(child Element) {
	c := child.(*Node)
	if c.parent != nil {
		c.parent.RemoveChild(c)
	}
	c.parent = n
	n.children = append(n.children, c)
}

func (n *Node) RemoveChild(child Element) bool {
	c, ok := child.(*Node)
	if !ok {
		return false
	}
	for i, x := range n.children {
		if x == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			c.parent = nil
			return true
		}
	}
	return false
}

func (n *Node) Parent() Element {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *Node) Children() []Element {
	out := make([]Element, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

func (n *Node) AddEventListener(t EventType, h Handler) {
	if n.listeners == nil {
		n.listeners = make(map[EventType][]Handler)
	}
	n.listeners[t] = append(n.listeners[t], h)
}

// ListenerCount returns the number of listeners registered for t.
func (n *Node) ListenerCount(t EventType) int { return len(n.listeners[t]) }

// Ensure the in-memory types implement the contract.
var (
	_ Document = (*Tree)(nil)
	_ Element  = (*Node)(nil)
)
