package watch

import (
	"encoding/xml"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// Element is a node in a parsed XML document. It supports the two lookups
// the ingestion pipelines need: all descendants matching a set of tag
// names, and the first such descendant in document order.
type Element struct {
	Name     string
	Attrs    []xml.Attr
	Children []*Element

	// content preserves the document order of character data and child
	// elements, so Text reads like the DOM's textContent.
	content []segment
}

type segment struct {
	text  string
	child *Element
}

// ParseXML decodes a document into a navigable element tree. Tag names are
// matched on their local part; charset declarations in the XML prolog are
// honored. A structural error aborts the parse.
func ParseXML(raw string) (*Element, error) {
	dec := xml.NewDecoder(strings.NewReader(raw))
	dec.CharsetReader = charset.NewReaderLabel
	root := &Element{}
	stack := []*Element{root}
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: t.Name.Local, Attrs: t.Attr}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, el)
			parent.content = append(parent.content, segment{child: el})
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			cur := stack[len(stack)-1]
			cur.content = append(cur.content, segment{text: string(t)})
		}
	}
	return root, nil
}

// FindAll returns every descendant whose tag matches one of names, in
// document order. A matched element's own subtree is still searched, so
// nested matches are all returned.
func (e *Element) FindAll(names ...string) []*Element {
	var out []*Element
	e.walk(func(el *Element) bool {
		if nameIn(el.Name, names) {
			out = append(out, el)
		}
		return true
	})
	return out
}

// First returns the first descendant in document order whose tag matches
// any of names, or nil.
func (e *Element) First(names ...string) *Element {
	var found *Element
	e.walk(func(el *Element) bool {
		if nameIn(el.Name, names) {
			found = el
			return false
		}
		return true
	})
	return found
}

// Attr returns the value of the named attribute, or "".
func (e *Element) Attr(name string) string {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// Text returns the element's text content including nested elements,
// trimmed of surrounding whitespace.
func (e *Element) Text() string {
	var b strings.Builder
	e.appendText(&b)
	return strings.TrimSpace(b.String())
}

func (e *Element) appendText(b *strings.Builder) {
	for _, s := range e.content {
		if s.child != nil {
			s.child.appendText(b)
			continue
		}
		b.WriteString(s.text)
	}
}

// walk visits descendants depth-first in document order; fn returning
// false stops the traversal.
func (e *Element) walk(fn func(*Element) bool) bool {
	for _, c := range e.Children {
		if !fn(c) {
			return false
		}
		if !c.walk(fn) {
			return false
		}
	}
	return true
}

func nameIn(name string, names []string) bool {
	for _, n := range names {
		if name == n {
			return true
		}
	}
	return false
}
