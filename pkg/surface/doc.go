// Package surface defines the drawing-surface contract a karyotype view
// renders into, and ships a retained in-memory SVG tree that implements it.
//
// # Contract
//
// A host provides four capabilities:
//
//   - element creation by namespace and tag ([Document.CreateElement]),
//     attribute and child manipulation ([Element])
//   - a screen transform query for mapping pointer coordinates into
//     surface-local coordinates ([Document.ScreenCTM])
//   - text measurement of a rendered text node ([Document.TextWidth])
//   - pointer event subscription on elements ([Element.AddEventListener])
//
// A browser binding would implement these over the DOM. [Tree] implements
// them in memory; it is what the CLI, the HTTP server and the tests use.
//
// # In-memory tree
//
//	doc := surface.NewTree()
//	container := doc.CreateElement("", "div")
//	svg := doc.CreateElement(surface.SVGNamespace, "svg")
//	container.AppendChild(svg)
//	doc.Dispatch(surface.Event{Type: surface.PointerMove, Target: rect, ClientX: 40, ClientY: 60})
//
// Events do not bubble; listeners run synchronously on the dispatching
// goroutine. A Tree is not safe for concurrent use.
//
// # Serialization
//
// [Marshal] and [WriteXML] write an element subtree as XML with attributes in
// insertion order, so output is byte-for-byte reproducible.
package surface
