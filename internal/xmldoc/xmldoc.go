// Package xmldoc reads XML component-definition documents into a positioned
// element tree. It is the low-level document reader the parser packages
// operate on: every element carries the namespace URI it was declared in and
// an hcl.Range pointing back at the source text, so diagnostics produced
// further up the pipeline can cite real file locations.
package xmldoc

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
)

// Attr is a single attribute of an element. Space is the resolved namespace
// URI, empty for plain (unprefixed) attributes.
type Attr struct {
	Space string
	Local string
	Value string
	Range hcl.Range
}

// Element is one node of the parsed document tree.
type Element struct {
	// Space is the resolved namespace URI of the element, empty when the
	// document does not use namespaces.
	Space string
	Local string

	Attrs    []Attr
	Children []*Element

	// Text is the concatenated character data directly inside this element,
	// excluding text nested in child elements.
	Text string

	// DefRange covers the start tag of the element.
	DefRange hcl.Range
}

// Attr returns the value of the named unprefixed attribute and whether it was
// present.
func (e *Element) Attr(local string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Space == "" && a.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// AttrValue returns the value of the named unprefixed attribute, or the empty
// string when absent.
func (e *Element) AttrValue(local string) string {
	v, _ := e.Attr(local)
	return v
}

// HasAttr reports whether the named unprefixed attribute is present.
func (e *Element) HasAttr(local string) bool {
	_, ok := e.Attr(local)
	return ok
}

// ChildrenNamed returns the direct child elements with the given local name,
// regardless of namespace, in document order.
func (e *Element) ChildrenNamed(local string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Local == local {
			out = append(out, c)
		}
	}
	return out
}

// FirstChildNamed returns the first direct child element with the given local
// name, or nil.
func (e *Element) FirstChildNamed(local string) *Element {
	for _, c := range e.Children {
		if c.Local == local {
			return c
		}
	}
	return nil
}

// ChildTextNamed returns the trimmed text content of the first direct child
// with the given local name, or the empty string when no such child exists.
func (e *Element) ChildTextNamed(local string) string {
	if c := e.FirstChildNamed(local); c != nil {
		return strings.TrimSpace(c.Text)
	}
	return ""
}

// lineIndex maps byte offsets in the source buffer to line/column positions.
type lineIndex struct {
	filename   string
	lineStarts []int
}

func newLineIndex(filename string, src []byte) *lineIndex {
	idx := &lineIndex{filename: filename, lineStarts: []int{0}}
	for i, b := range src {
		if b == '\n' {
			idx.lineStarts = append(idx.lineStarts, i+1)
		}
	}
	return idx
}

func (idx *lineIndex) pos(offset int) hcl.Pos {
	line := sort.Search(len(idx.lineStarts), func(i int) bool {
		return idx.lineStarts[i] > offset
	})
	return hcl.Pos{
		Line:   line,
		Column: offset - idx.lineStarts[line-1] + 1,
		Byte:   offset,
	}
}

func (idx *lineIndex) rangeBetween(start, end int) hcl.Range {
	return hcl.Range{
		Filename: idx.filename,
		Start:    idx.pos(start),
		End:      idx.pos(end),
	}
}

// LoadFile reads and parses the document at the given path.
func LoadFile(path string) (*Element, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", path, err)
	}
	return Parse(path, src)
}

// Parse decodes the given source buffer into an element tree. The filename is
// only used for source ranges. A document without a single root element is an
// error; well-formedness errors from the XML decoder are returned as-is.
func Parse(filename string, src []byte) (*Element, error) {
	idx := newLineIndex(filename, src)
	dec := xml.NewDecoder(bytes.NewReader(src))

	var root *Element
	var stack []*Element

	tokenStart := int(dec.InputOffset())
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed document %s: %w", filename, err)
		}
		tokenEnd := int(dec.InputOffset())

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{
				Space:    t.Name.Space,
				Local:    t.Name.Local,
				DefRange: idx.rangeBetween(tokenStart, tokenEnd),
			}
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
					continue
				}
				el.Attrs = append(el.Attrs, Attr{
					Space: a.Name.Space,
					Local: a.Name.Local,
					Value: a.Value,
					Range: el.DefRange,
				})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("document %s has more than one root element", filename)
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)

		case xml.EndElement:
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}

		tokenStart = tokenEnd
	}

	if root == nil {
		return nil, fmt.Errorf("document %s has no root element", filename)
	}
	return root, nil
}
