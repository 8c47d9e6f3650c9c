package xmlutil

import (
	"github.com/beevik/etree"
)

// FindByLocalName returns every element in the document whose local name
// equals the given tag, in document order, regardless of namespace prefix
// or URI. When more than one name is given, each subsequent name matches
// descendants of the previous matches, so a path like ("Body", "OrderId")
// finds OrderId elements anywhere below a Body element.
//
// Matching is a predicate over a depth-first traversal rather than a
// compiled path expression, so tag names containing quote or bracket
// characters cannot break the search.
func FindByLocalName(doc *etree.Document, names ...string) []*etree.Element {
	if doc == nil || len(names) == 0 {
		return nil
	}
	root := doc.Root()
	if root == nil {
		return nil
	}

	matches := collectByLocalName(root, names[0], true)
	for _, name := range names[1:] {
		var next []*etree.Element
		seen := make(map[*etree.Element]bool)
		for _, m := range matches {
			for _, el := range collectByLocalName(m, name, false) {
				if !seen[el] {
					seen[el] = true
					next = append(next, el)
				}
			}
		}
		matches = next
	}
	return matches
}

// collectByLocalName walks the subtree rooted at el depth-first and
// returns elements whose local name equals name. includeSelf controls
// whether el itself may match.
func collectByLocalName(el *etree.Element, name string, includeSelf bool) []*etree.Element {
	var out []*etree.Element
	if includeSelf && el.Tag == name {
		out = append(out, el)
	}
	for _, child := range el.ChildElements() {
		out = append(out, collectByLocalName(child, name, true)...)
	}
	return out
}
