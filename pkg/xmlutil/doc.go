// Package xmlutil provides the XML plumbing behind the soapkit keywords:
// namespace-agnostic element lookup, template editing, tree-to-map
// conversion, and file persistence.
//
// SOAP responses qualify almost every element with a namespace, and the
// prefixes vary between servers. All lookup in this package therefore
// matches elements by local name only, as a predicate over a depth-first
// traversal of the parsed tree. A tag path of several names matches
// elements reachable by chaining through each name in document order.
//
// # Lookup
//
//	doc, _ := xmlutil.Parse(responseText)
//	nav := xmlutil.NewNavigator(logger)
//	value, err := nav.Text(doc, "OrderId", 1)
//
// # Template editing
//
//	editor := xmlutil.NewEditor(logger)
//	out, err := editor.EditFile("request.xml", map[string]string{
//	    "CustomerId": "42",
//	}, "request_edited", xmlutil.OccurrenceAll)
//
// # Mapping conversion
//
// ToMap flattens a tree into nested maps. Repeated sibling tags collapse
// into an ordered []any; a single occurrence stays scalar:
//
//	<a><b>1</b><b>2</b><c>3</c></a>  →  map[b:[1 2] c:3]
package xmlutil
