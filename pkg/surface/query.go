package surface

// Walk visits el and its descendants depth-first in document order. Returning
// false from fn skips the children of the visited element.
func Walk(el Element, fn func(Element) bool) {
	if !fn(el) {
		return
	}
	for _, c := range el.Children() {
		Walk(c, fn)
	}
}

// FindAll returns every element under root (inclusive) with the given tag.
func FindAll(root Element, tag string) []Element {
	var out []Element
	Walk(root, func(el Element) bool {
		if el.Tag() == tag {
			out = append(out, el)
		}
		return true
	})
	return out
}

// FindByAttribute returns the elements under root that carry attribute name.
func FindByAttribute(root Element, name string) []Element {
	var out []Element
	Walk(root, func(el Element) bool {
		if _, ok := el.Attribute(name); ok {
			out = append(out, el)
		}
		return true
	})
	return out
}

// Count returns the number of elements in the subtree rooted at el.
func Count(el Element) int {
	n := 0
	Walk(el, func(Element) bool { n++; return true })
	return n
}
