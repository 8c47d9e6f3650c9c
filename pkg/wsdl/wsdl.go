package wsdl

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/beevik/etree"
)

// ParseError describes a failure to parse a WSDL document.
type ParseError struct {
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Cause != nil {
		return "wsdl: " + e.Message + ": " + e.Cause.Error()
	}
	return "wsdl: " + e.Message
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Description is a parsed WSDL 1.1 service description.
type Description struct {
	Name            string
	TargetNamespace string
	Services        []Service
	PortTypes       []PortType
	Bindings        []Binding
	Messages        []Message
	Types           []SchemaElement
}

// Service is a WSDL service with its ports.
type Service struct {
	Name  string
	Ports []Port
}

// Port binds a service to an address.
type Port struct {
	Name     string
	Binding  string // QName reference to binding
	Location string // soap:address location
}

// PortType groups the abstract operations of a service.
type PortType struct {
	Name       string
	Operations []Operation
}

// Operation is an abstract operation with its input and output messages.
type Operation struct {
	Name   string
	Input  string // message name
	Output string // message name
}

// Binding maps a portType onto the SOAP transport.
type Binding struct {
	Name       string
	Type       string // QName reference to portType
	Style      string // document/rpc
	Transport  string
	Operations []BindingOperation
}

// BindingOperation carries per-operation binding metadata.
type BindingOperation struct {
	Name       string
	SOAPAction string
}

// Message is a WSDL message with its parts.
type Message struct {
	Name  string
	Parts []Part
}

// Part references the schema element or type carried by a message.
type Part struct {
	Name    string
	Element string // QName reference to XSD element
	Type    string // QName reference to XSD type
}

// SchemaElement is a top-level XSD element or complex type from the
// <types> section.
type SchemaElement struct {
	Name   string
	Fields []SchemaField
}

// SchemaField is one element of a complexType sequence.
type SchemaField struct {
	Name     string
	Type     string // XSD type (xsd:string, xsd:int, etc.)
	Optional bool   // minOccurs="0" or nillable="true"
	Repeated bool   // maxOccurs="unbounded"
}

// Parse parses a WSDL 1.1 document.
func Parse(data []byte) (*Description, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, &ParseError{Message: "failed to parse XML", Cause: err}
	}

	root := doc.Root()
	if root == nil {
		return nil, &ParseError{Message: "empty WSDL document"}
	}

	// Root must be definitions (WSDL 1.1) or description (WSDL 2.0).
	switch root.Tag {
	case "definitions":
	case "description":
		return nil, &ParseError{Message: "WSDL 2.0 is not supported; please use a WSDL 1.1 document"}
	default:
		return nil, &ParseError{Message: fmt.Sprintf("expected root element <definitions>, got <%s>", root.Tag)}
	}

	desc := parseDefinitions(root)
	if len(desc.Services) == 0 {
		return nil, &ParseError{Message: "no services found in WSDL document"}
	}
	return desc, nil
}

func parseDefinitions(root *etree.Element) *Description {
	desc := &Description{
		Name:            root.SelectAttrValue("name", ""),
		TargetNamespace: root.SelectAttrValue("targetNamespace", ""),
	}

	for _, msgEl := range findElements(root, "message") {
		msg := Message{Name: msgEl.SelectAttrValue("name", "")}
		for _, partEl := range findElements(msgEl, "part") {
			msg.Parts = append(msg.Parts, Part{
				Name:    partEl.SelectAttrValue("name", ""),
				Element: stripPrefix(partEl.SelectAttrValue("element", "")),
				Type:    stripPrefix(partEl.SelectAttrValue("type", "")),
			})
		}
		desc.Messages = append(desc.Messages, msg)
	}

	for _, ptEl := range findElements(root, "portType") {
		pt := PortType{Name: ptEl.SelectAttrValue("name", "")}
		for _, opEl := range findElements(ptEl, "operation") {
			op := Operation{Name: opEl.SelectAttrValue("name", "")}
			if inp := findElement(opEl, "input"); inp != nil {
				op.Input = stripPrefix(inp.SelectAttrValue("message", ""))
			}
			if out := findElement(opEl, "output"); out != nil {
				op.Output = stripPrefix(out.SelectAttrValue("message", ""))
			}
			pt.Operations = append(pt.Operations, op)
		}
		desc.PortTypes = append(desc.PortTypes, pt)
	}

	for _, bindEl := range findElements(root, "binding") {
		b := Binding{
			Name: bindEl.SelectAttrValue("name", ""),
			Type: stripPrefix(bindEl.SelectAttrValue("type", "")),
		}
		if soapBind := findElementNS(bindEl, "binding"); soapBind != nil {
			b.Style = soapBind.SelectAttrValue("style", "document")
			b.Transport = soapBind.SelectAttrValue("transport", "")
		}
		for _, opEl := range findElements(bindEl, "operation") {
			bop := BindingOperation{Name: opEl.SelectAttrValue("name", "")}
			if soapOp := findElementNS(opEl, "operation"); soapOp != nil {
				bop.SOAPAction = soapOp.SelectAttrValue("soapAction", "")
			}
			b.Operations = append(b.Operations, bop)
		}
		desc.Bindings = append(desc.Bindings, b)
	}

	for _, svcEl := range findElements(root, "service") {
		svc := Service{Name: svcEl.SelectAttrValue("name", "")}
		for _, portEl := range findElements(svcEl, "port") {
			p := Port{
				Name:    portEl.SelectAttrValue("name", ""),
				Binding: stripPrefix(portEl.SelectAttrValue("binding", "")),
			}
			if addr := findElementNS(portEl, "address"); addr != nil {
				p.Location = addr.SelectAttrValue("location", "")
			}
			svc.Ports = append(svc.Ports, p)
		}
		desc.Services = append(desc.Services, svc)
	}

	for _, typesEl := range findElements(root, "types") {
		for _, schemaEl := range findElements(typesEl, "schema") {
			desc.Types = append(desc.Types, parseSchema(schemaEl)...)
		}
	}

	return desc
}

// parseSchema extracts top-level elements and complex types from an XSD schema.
func parseSchema(schema *etree.Element) []SchemaElement {
	var elements []SchemaElement

	for _, elem := range findElements(schema, "element") {
		name := elem.SelectAttrValue("name", "")
		if name == "" {
			continue
		}
		el := SchemaElement{Name: name}
		if ct := findElement(elem, "complexType"); ct != nil {
			el.Fields = parseComplexTypeFields(ct)
		}
		elements = append(elements, el)
	}

	for _, ct := range findElements(schema, "complexType") {
		name := ct.SelectAttrValue("name", "")
		if name == "" {
			continue
		}
		elements = append(elements, SchemaElement{
			Name:   name,
			Fields: parseComplexTypeFields(ct),
		})
	}

	return elements
}

// parseComplexTypeFields extracts fields from a complexType's sequence.
func parseComplexTypeFields(ct *etree.Element) []SchemaField {
	var fields []SchemaField

	seq := findElement(ct, "sequence")
	if seq == nil {
		// <all> as alternative to <sequence>
		seq = findElement(ct, "all")
	}
	if seq == nil {
		return fields
	}

	for _, elem := range findElements(seq, "element") {
		field := SchemaField{
			Name:     elem.SelectAttrValue("name", ""),
			Type:     stripPrefix(elem.SelectAttrValue("type", "")),
			Optional: elem.SelectAttrValue("minOccurs", "1") == "0",
			Repeated: elem.SelectAttrValue("maxOccurs", "1") == "unbounded",
		}
		if elem.SelectAttrValue("nillable", "") == "true" {
			field.Optional = true
		}
		fields = append(fields, field)
	}

	return fields
}

// OperationNames returns the names of every operation declared by the
// description's portTypes, sorted and deduplicated.
func (d *Description) OperationNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, pt := range d.PortTypes {
		for _, op := range pt.Operations {
			if !seen[op.Name] {
				seen[op.Name] = true
				names = append(names, op.Name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// Operation returns the named operation, or nil if the description does
// not declare it.
func (d *Description) Operation(name string) *Operation {
	for _, pt := range d.PortTypes {
		for i := range pt.Operations {
			if pt.Operations[i].Name == name {
				return &pt.Operations[i]
			}
		}
	}
	return nil
}

// SOAPAction returns the SOAPAction declared by any binding for the named
// operation, or the empty string.
func (d *Description) SOAPAction(name string) string {
	for _, b := range d.Bindings {
		for _, op := range b.Operations {
			if op.Name == name && op.SOAPAction != "" {
				return op.SOAPAction
			}
		}
	}
	return ""
}

// BindingAddress returns the address advertised by the first service port
// that carries a soap:address location.
func (d *Description) BindingAddress() (string, error) {
	for _, svc := range d.Services {
		for _, port := range svc.Ports {
			if port.Location != "" {
				return port.Location, nil
			}
		}
	}
	return "", errors.New("wsdl: no soap:address location declared by any service port")
}

func (d *Description) message(name string) *Message {
	for i := range d.Messages {
		if d.Messages[i].Name == name {
			return &d.Messages[i]
		}
	}
	return nil
}

func (d *Description) schemaElement(name string) *SchemaElement {
	for i := range d.Types {
		if d.Types[i].Name == name {
			return &d.Types[i]
		}
	}
	return nil
}

// --- etree helpers ---

// findElements returns all direct child elements matching the local name
// (ignoring namespace prefix).
func findElements(parent *etree.Element, localName string) []*etree.Element {
	var results []*etree.Element
	for _, child := range parent.ChildElements() {
		if child.Tag == localName {
			results = append(results, child)
		}
	}
	return results
}

// findElement returns the first direct child element matching the local name.
func findElement(parent *etree.Element, localName string) *etree.Element {
	elems := findElements(parent, localName)
	if len(elems) > 0 {
		return elems[0]
	}
	return nil
}

// findElementNS finds a child element by local name in any SOAP binding
// namespace. etree stores the namespace prefix in Space and the local
// name in Tag.
func findElementNS(parent *etree.Element, localName string) *etree.Element {
	for _, child := range parent.ChildElements() {
		if child.Tag == localName && isSOAPNamespace(child.Space) {
			return child
		}
	}
	return nil
}

// isSOAPNamespace returns true for the SOAP binding namespace prefixes
// and URIs seen in the wild.
func isSOAPNamespace(ns string) bool {
	switch ns {
	case "soap", "soap12", "wsoap":
		return true
	case "http://schemas.xmlsoap.org/wsdl/soap/",
		"http://schemas.xmlsoap.org/wsdl/soap12/",
		"http://www.w3.org/ns/wsdl/soap":
		return true
	default:
		return false
	}
}

// stripPrefix removes a namespace prefix from a QName (e.g., "tns:Foo" → "Foo").
func stripPrefix(qname string) string {
	if idx := strings.IndexByte(qname, ':'); idx >= 0 {
		return qname[idx+1:]
	}
	return qname
}
