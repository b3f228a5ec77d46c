package surface

// SVGNamespace is the XML namespace of SVG elements.
const SVGNamespace = "http://www.w3.org/2000/svg"

// EventType names a pointer event.
type EventType string

// Pointer events a view subscribes to. The names match the DOM events a
// browser host would deliver.
const (
	PointerMove  EventType = "mousemove"
	PointerLeave EventType = "mouseout"
	PointerDown  EventType = "mousedown"
)

// Event is a pointer event delivered to an element's listeners.
type Event struct {
	Type    EventType
	Target  Element
	ClientX float64 // device x coordinate
	ClientY float64 // device y coordinate
}

// Handler receives events. It must return before the host dispatches the
// next event.
type Handler func(Event)

// Element is a node of the drawing surface.
type Element interface {
	// Namespace returns the namespace URI the element was created in.
	Namespace() string
	// Tag returns the element's local name.
	Tag() string
	// SetAttribute sets or replaces an attribute.
	SetAttribute(name, value string)
	// Attribute returns an attribute's value.
	Attribute(name string) (string, bool)
	// Attributes returns all attributes in the order they were first set.
	Attributes() []Attr
	// AppendChild attaches child as the last child, detaching it from any
	// previous parent first.
	AppendChild(child Element)
	// RemoveChild detaches child. It reports whether child was attached here.
	RemoveChild(child Element) bool
	// Parent returns the parent element, or nil when detached.
	Parent() Element
	// Children returns the attached children in order.
	Children() []Element
	// SetText replaces the element's character data.
	SetText(s string)
	// Text returns the element's character data.
	Text() string
	// AddEventListener subscribes h to events of type t targeted at this element.
	AddEventListener(t EventType, h Handler)
}

// Attr is a single element attribute.
type Attr struct {
	Name, Value string
}

// Matrix is a 2D affine transform in SVG matrix(a b c d e f) order.
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity is the identity transform.
var Identity = Matrix{A: 1, D: 1}

// Document creates elements and answers host queries about them.
type Document interface {
	// CreateElement returns a new detached element.
	CreateElement(namespace, tag string) Element
	// ScreenCTM returns the transform from el's local coordinates to device
	// coordinates.
	ScreenCTM(el Element) Matrix
	// TextWidth returns the rendered advance width of el's text, in pixels.
	TextWidth(el Element) float64
}
