package xmlutil

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"
)

// Parse parses XML text into a document. A document with no root element
// is treated as a parse failure; callers never receive a partially valid
// tree.
func Parse(text string) (*etree.Document, error) {
	return ParseBytes([]byte(text))
}

// ParseBytes parses raw XML bytes into a document.
func ParseBytes(data []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}
	if doc.Root() == nil {
		return nil, errors.New("failed to parse XML: no root element")
	}
	return doc, nil
}

// ParseFile reads and parses the XML file at path.
func ParseFile(path string) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("failed to parse XML file %q: %w", path, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("failed to parse XML file %q: no root element", path)
	}
	return doc, nil
}

// Pretty returns the document serialized with two-space indentation.
// The input document is not modified. If serialization fails the compact
// form is returned instead.
func Pretty(doc *etree.Document) string {
	if doc == nil {
		return ""
	}
	c := doc.Copy()
	c.Indent(2)
	result, err := c.WriteToString()
	if err != nil {
		raw, _ := doc.WriteToString()
		return raw
	}
	return result
}
