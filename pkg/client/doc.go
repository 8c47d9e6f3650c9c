// Package client implements the SOAP client behind the soapkit keywords:
// it builds an HTTP session from TLS and authentication options, binds it
// to a WSDL service description, dispatches raw or typed requests, and
// captures the last raw transport response for inspection.
//
//	c, err := client.New(ctx, "https://host/service?wsdl", client.Options{
//	    Auth:   &client.BasicAuth{Username: "user", Password: "pass"},
//	    Logger: logger,
//	})
//	doc, err := c.SendFile(ctx, "request.xml", nil, false)
//	raw := c.LastResponse()
//
// A Client serves a single test scope: one active description, one
// last-response slot, no concurrent use. Independent scopes get
// independent Clients.
package client
