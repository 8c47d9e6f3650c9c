package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/beevik/etree"

	"github.com/getsoapkit/soapkit/pkg/soap"
	"github.com/getsoapkit/soapkit/pkg/xmlutil"
)

// Call invokes the named operation declared by the service description
// with positional arguments, constructing the envelope from the WSDL
// schema. The SOAPAction declared by the binding is sent when present.
//
// The result is the text of the response's single leaf value when there
// is one, otherwise the serialized response element. A SOAP fault or a
// non-200 status is an error. Call does not overwrite the last-response
// slot; that belongs to the XML sends.
func (c *Client) Call(ctx context.Context, name string, args ...string) (string, error) {
	body, err := c.desc.RequestBody(name, args...)
	if err != nil {
		return "", err
	}

	headers := DefaultHeaders()
	if action := c.desc.SOAPAction(name); action != "" {
		headers["SOAPAction"] = `"` + action + `"`
	}

	resp, err := c.post(ctx, soap.Envelope(body, soap.SOAP11), headers, false)
	if err != nil {
		return "", err
	}

	doc, err := xmlutil.Parse(resp.Body)
	if err != nil {
		return "", fmt.Errorf("invalid response body: %w", err)
	}
	if fault := soap.ParseFault(doc); fault != nil {
		return "", fault
	}
	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{Code: resp.StatusCode, Reason: resp.Reason()}
	}

	result := soap.BodyElement(doc)
	if result == nil {
		return "", nil
	}
	if leaves := leafElements(result); len(leaves) == 1 {
		return strings.TrimSpace(leaves[0].Text()), nil
	}

	out := etree.NewDocument()
	out.SetRoot(result.Copy())
	serialized, err := out.WriteToString()
	if err != nil {
		return "", fmt.Errorf("failed to serialize response element: %w", err)
	}
	return serialized, nil
}

// leafElements returns the elements in the subtree that have no child
// elements, in document order. The subtree root counts when it is itself
// a leaf.
func leafElements(el *etree.Element) []*etree.Element {
	children := el.ChildElements()
	if len(children) == 0 {
		return []*etree.Element{el}
	}
	var leaves []*etree.Element
	for _, child := range children {
		leaves = append(leaves, leafElements(child)...)
	}
	return leaves
}
