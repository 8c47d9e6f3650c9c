package wsdl

import (
	"fmt"
	"strings"
)

// RequestBody builds the XML body fragment for calling the named
// operation with positional argument values. The element name and field
// order come from the operation's input message and its schema element;
// provided arguments fill the fields in declaration order and remaining
// fields are emitted empty. When the schema does not describe the input,
// a generic wrapper with arg0..argN children is generated.
func (d *Description) RequestBody(name string, args ...string) (string, error) {
	op := d.Operation(name)
	if op == nil {
		return "", fmt.Errorf("wsdl: operation %q not declared by service description", name)
	}

	elementName := name
	var fields []SchemaField
	if msg := d.message(op.Input); msg != nil {
		for _, part := range msg.Parts {
			if part.Element == "" {
				continue
			}
			elementName = part.Element
			if el := d.schemaElement(part.Element); el != nil {
				fields = el.Fields
			}
			break
		}
	}

	if len(fields) == 0 {
		return genericBody(elementName, d.TargetNamespace, args), nil
	}
	if len(args) > len(fields) {
		return "", fmt.Errorf("wsdl: operation %q takes at most %d argument(s), got %d", name, len(fields), len(args))
	}

	var b strings.Builder
	writeOpen(&b, elementName, d.TargetNamespace)
	for i, f := range fields {
		value := ""
		if i < len(args) {
			value = args[i]
		}
		b.WriteString("<" + f.Name + ">")
		b.WriteString(escapeXML(value))
		b.WriteString("</" + f.Name + ">")
	}
	b.WriteString("</" + elementName + ">")
	return b.String(), nil
}

func genericBody(elementName, namespace string, args []string) string {
	var b strings.Builder
	writeOpen(&b, elementName, namespace)
	for i, arg := range args {
		tag := fmt.Sprintf("arg%d", i)
		b.WriteString("<" + tag + ">")
		b.WriteString(escapeXML(arg))
		b.WriteString("</" + tag + ">")
	}
	b.WriteString("</" + elementName + ">")
	return b.String()
}

func writeOpen(b *strings.Builder, elementName, namespace string) {
	b.WriteString("<" + elementName)
	if namespace != "" {
		b.WriteString(` xmlns="` + namespace + `"`)
	}
	b.WriteString(">")
}

// escapeXML escapes special XML characters.
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
