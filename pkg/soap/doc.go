// Package soap models the SOAP envelope surface soapkit needs on the
// client side: envelope construction around a body fragment, version
// detection from the envelope namespace, and fault extraction from
// response documents.
//
// SOAP 1.1 and 1.2 are both recognized; responses are inspected by local
// name so namespace prefixes chosen by the server do not matter.
package soap
