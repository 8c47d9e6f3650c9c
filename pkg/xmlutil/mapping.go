package xmlutil

import (
	"strings"

	"github.com/beevik/etree"
)

// ToMap recursively flattens the element's children into a nested map.
// Keys are local tag names. A child with non-whitespace text maps to that
// text; otherwise it maps to its own (possibly empty) nested map. When a
// key repeats among siblings, the values collapse into an ordered []any
// in document order.
//
// The collapsing is positional, not schema-driven: a tag appearing twice
// always becomes a list while a tag appearing once never does. Downstream
// assertions depend on exactly this shape.
func ToMap(el *etree.Element) map[string]any {
	result := make(map[string]any)
	if el == nil {
		return result
	}

	for _, child := range el.ChildElements() {
		key := child.Tag

		var value any
		if text := child.Text(); strings.TrimSpace(text) != "" {
			value = text
		} else {
			value = ToMap(child)
		}

		if existing, ok := result[key]; ok {
			if list, ok := existing.([]any); ok {
				result[key] = append(list, value)
			} else {
				result[key] = []any{existing, value}
			}
		} else {
			result[key] = value
		}
	}
	return result
}

// DocToMap converts the document's root element via ToMap. A document
// without a root yields an empty map.
func DocToMap(doc *etree.Document) map[string]any {
	if doc == nil {
		return map[string]any{}
	}
	return ToMap(doc.Root())
}
