package surface

import (
	"bytes"
	"encoding/xml"
	"io"
)

// Marshal serializes the subtree rooted at el.
func Marshal(el Element) []byte {
	var buf bytes.Buffer
	writeElement(&buf, el, "", "")
	return buf.Bytes()
}

// WriteXML writes the subtree rooted at el to w.
func WriteXML(w io.Writer, el Element) error {
	_, err := w.Write(Marshal(el))
	return err
}

// EscapeXML escapes s for use in XML character data and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func writeElement(buf *bytes.Buffer, el Element, parentNS, indent string) {
	buf.WriteString(indent)
	buf.WriteByte('<')
	buf.WriteString(el.Tag())
	if ns := el.Namespace(); ns != "" && ns != parentNS {
		if _, ok := el.Attribute("xmlns"); !ok {
			buf.WriteString(` xmlns="`)
			buf.WriteString(EscapeXML(ns))
			buf.WriteByte('"')
		}
	}
	writeAttrs(buf, el)

	children := el.Children()
	text := el.Text()
	if len(children) == 0 && text == "" {
		buf.WriteString("/>\n")
		return
	}
	buf.WriteByte('>')
	if text != "" {
		buf.WriteString(EscapeXML(text))
	}
	if len(children) > 0 {
		buf.WriteByte('\n')
		for _, c := range children {
			writeElement(buf, c, el.Namespace(), indent+"  ")
		}
		buf.WriteString(indent)
	}
	buf.WriteString("</")
	buf.WriteString(el.Tag())
	buf.WriteString(">\n")
}

func writeAttrs(buf *bytes.Buffer, el Element) {
	for _, a := range el.Attributes() {
		buf.WriteByte(' ')
		buf.WriteString(a.Name)
		buf.WriteString(`="`)
		buf.WriteString(EscapeXML(a.Value))
		buf.WriteByte('"')
	}
}
