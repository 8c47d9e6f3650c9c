// Package keywords is the test-facing surface of soapkit. A Library
// bundles the SOAP client, XML navigation and editing helpers behind
// named keywords so a keyword-driven runner can dispatch calls by name,
// while Go tests can use the typed methods directly.
package keywords
