// Package wsdl parses WSDL 1.1 service descriptions into the view a SOAP
// client needs: the declared operations, each operation's SOAPAction, the
// binding address advertised by the service ports, and enough of the XSD
// schema to construct a typed request body from positional argument
// values.
//
// Parsing is namespace-prefix-agnostic: elements are matched by local
// name, so documents using wsdl:, xsd:, or no prefix at all are all
// accepted. WSDL 2.0 documents are rejected.
package wsdl
