// Package cli provides the command-line interface for soapkit.
//
// Commands:
//   - describe: Show the services and operations behind a WSDL
//   - call: Call a SOAP operation with positional arguments
//   - send: Post a raw XML request file or string
//   - get: Extract a field from an XML file by tag name
//   - edit: Rewrite tag values of an XML template file
//   - convert: Flatten an XML file into a nested mapping
//   - decode: Decode a base64 string
//   - version: Show version information
//
// Connection settings come from flags or a soapkit.yaml suite file;
// flags take precedence.
package cli
