package soap

import (
	"bytes"
	"strings"

	"github.com/beevik/etree"

	"github.com/getsoapkit/soapkit/pkg/xmlutil"
)

// Envelope wraps a body XML fragment in a SOAP envelope for the given
// version. The fragment is inserted verbatim.
func Envelope(body string, version Version) string {
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString(`<soap:Envelope xmlns:soap="` + version.Namespace() + `">`)
	buf.WriteString(`<soap:Body>`)
	buf.WriteString(body)
	buf.WriteString(`</soap:Body>`)
	buf.WriteString(`</soap:Envelope>`)
	return buf.String()
}

// IsEnvelope reports whether the document's root element is a SOAP
// envelope, regardless of namespace prefix.
func IsEnvelope(doc *etree.Document) bool {
	if doc == nil {
		return false
	}
	root := doc.Root()
	return root != nil && root.Tag == "Envelope"
}

// DetectVersion detects the SOAP version from the envelope namespace
// attributes. Defaults to SOAP 1.1.
func DetectVersion(doc *etree.Document) Version {
	if doc == nil {
		return SOAP11
	}
	root := doc.Root()
	if root == nil {
		return SOAP11
	}
	for _, attr := range root.Attr {
		if strings.HasPrefix(attr.Key, "xmlns") && attr.Value == SOAP12Namespace {
			return SOAP12
		}
	}
	return SOAP11
}

// BodyElement returns the first element inside the envelope's Body, or
// nil if the document has no Body or the Body is empty.
func BodyElement(doc *etree.Document) *etree.Element {
	bodies := xmlutil.FindByLocalName(doc, "Body")
	if len(bodies) == 0 {
		return nil
	}
	children := bodies[0].ChildElements()
	if len(children) == 0 {
		return nil
	}
	return children[0]
}

// ParseFault extracts a SOAP fault from a response document. It returns
// nil when the document carries no Fault element. Both the 1.1 shape
// (faultcode/faultstring/detail) and the 1.2 shape (Code/Reason/Detail)
// are recognized.
func ParseFault(doc *etree.Document) *Fault {
	faults := xmlutil.FindByLocalName(doc, "Fault")
	if len(faults) == 0 {
		return nil
	}
	el := faults[0]

	fault := &Fault{}
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "faultcode":
			fault.Code = strings.TrimSpace(child.Text())
		case "faultstring":
			fault.Message = strings.TrimSpace(child.Text())
		case "detail", "Detail":
			fault.Detail = strings.TrimSpace(child.Text())
		case "Code":
			if v := firstDescendantText(child, "Value"); v != "" {
				fault.Code = v
			}
		case "Reason":
			if v := firstDescendantText(child, "Text"); v != "" {
				fault.Message = v
			}
		}
	}
	return fault
}

func firstDescendantText(el *etree.Element, localName string) string {
	for _, child := range el.ChildElements() {
		if child.Tag == localName {
			return strings.TrimSpace(child.Text())
		}
		if v := firstDescendantText(child, localName); v != "" {
			return v
		}
	}
	return ""
}
