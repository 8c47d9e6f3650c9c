package keywords

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/getsoapkit/soapkit/pkg/client"
)

// Keyword is one dispatchable entry of the library. Run receives the
// caller's loosely typed arguments and returns the keyword's value, if
// it produces one.
type Keyword struct {
	Name string
	Doc  string
	Run  func(ctx context.Context, args ...any) (any, error)
}

// Keywords returns the library's entries in their published order.
// A keyword-driven runner can dispatch on Name; lookup through Lookup
// ignores case and spacing.
func (l *Library) Keywords() []Keyword {
	return []Keyword{
		{
			Name: "Create SOAP Client",
			Doc:  "Loads the WSDL at the given location and makes it the active client.",
			Run:  l.runCreateClient,
		},
		{
			Name: "Call SOAP Method With XML",
			Doc:  "Sends the XML file at the given path as a request.",
			Run:  l.runCallWithXML,
		},
		{
			Name: "Call SOAP Method With String XML",
			Doc:  "Sends a string representation of XML as a request.",
			Run:  l.runCallWithStringXML,
		},
		{
			Name: "Call SOAP Method",
			Doc:  "Invokes the named operation with positional arguments.",
			Run:  l.runCallMethod,
		},
		{
			Name: "Get Last Response Object",
			Doc:  "Returns the raw response of the most recent XML send.",
			Run:  l.runLastResponse,
		},
		{
			Name: "Get Data From XML By Tag",
			Doc:  "Returns the text of a tag in the document, ignoring namespaces.",
			Run:  l.runGetData,
		},
		{
			Name: "Edit XML Request",
			Doc:  "Rewrites tags of an XML template file and saves a copy.",
			Run:  l.runEditRequest,
		},
		{
			Name: "Save XML To File",
			Doc:  "Writes a document to a file in the given folder.",
			Run:  l.runSaveToFile,
		},
		{
			Name: "Convert XML Response To Dictionary",
			Doc:  "Flattens a document into a nested mapping.",
			Run:  l.runConvertToDict,
		},
		{
			Name: "Decode Base64",
			Doc:  "Decodes base64-encoded text.",
			Run:  l.runDecodeBase64,
		},
	}
}

// Lookup finds a keyword by name, ignoring case, spaces and
// underscores, so "call_soap_method" and "Call SOAP Method" both match.
func (l *Library) Lookup(name string) (Keyword, bool) {
	want := normalizeName(name)
	for _, kw := range l.Keywords() {
		if normalizeName(kw.Name) == want {
			return kw, true
		}
	}
	return Keyword{}, false
}

func normalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "")
	return strings.ReplaceAll(name, "_", "")
}

func (l *Library) runCreateClient(ctx context.Context, args ...any) (any, error) {
	positional, named := splitNamed(args, "ssl_verify", "client_cert", "auth", "use_binding_address", "timeout")
	url, err := stringArg(positional, 0, "url")
	if err != nil {
		return nil, err
	}
	var opts client.Options
	opts.Insecure, opts.CAFile = sslVerifyArg(named["ssl_verify"])
	opts.ClientCert = named["client_cert"]
	if opts.Auth, err = authArg(named["auth"], "auth"); err != nil {
		return nil, err
	}
	if opts.UseBindingAddress, err = boolArg(named["use_binding_address"], "use_binding_address", false); err != nil {
		return nil, err
	}
	if raw := named["timeout"]; raw != "" {
		if opts.Timeout, err = time.ParseDuration(raw); err != nil {
			return nil, fmt.Errorf("argument %q must be a duration, got %q", "timeout", raw)
		}
	}
	if len(positional) > 1 {
		if opts.Auth, err = authArg(positional[1], "auth"); err != nil {
			return nil, err
		}
	}
	return nil, l.CreateSOAPClient(ctx, url, opts)
}

func (l *Library) runCallWithXML(ctx context.Context, args ...any) (any, error) {
	positional, named := splitNamed(args, "headers", "status")
	path, err := stringArg(positional, 0, "requests_file")
	if err != nil {
		return nil, err
	}
	var headerArg any = named["headers"]
	if len(positional) > 1 {
		headerArg = positional[1]
	}
	headers, err := headersArg(headerArg, "headers")
	if err != nil {
		return nil, err
	}
	return l.CallSOAPMethodWithXML(ctx, path, headers, named["status"])
}

func (l *Library) runCallWithStringXML(ctx context.Context, args ...any) (any, error) {
	positional, named := splitNamed(args, "headers", "status")
	xmlText, err := stringArg(positional, 0, "string_xml")
	if err != nil {
		return nil, err
	}
	var headerArg any = named["headers"]
	if len(positional) > 1 {
		headerArg = positional[1]
	}
	headers, err := headersArg(headerArg, "headers")
	if err != nil {
		return nil, err
	}
	return l.CallSOAPMethodWithStringXML(ctx, xmlText, headers, named["status"])
}

func (l *Library) runCallMethod(ctx context.Context, args ...any) (any, error) {
	positional, named := splitNamed(args, "status")
	name, err := stringArg(positional, 0, "name")
	if err != nil {
		return nil, err
	}
	callArgs := make([]string, 0, len(positional)-1)
	for i := 1; i < len(positional); i++ {
		s, err := stringArg(positional, i, fmt.Sprintf("argument %d", i))
		if err != nil {
			return nil, err
		}
		callArgs = append(callArgs, s)
	}
	return l.CallSOAPMethod(ctx, name, callArgs, named["status"])
}

func (l *Library) runLastResponse(context.Context, ...any) (any, error) {
	return l.GetLastResponseObject(), nil
}

func (l *Library) runGetData(_ context.Context, args ...any) (any, error) {
	positional, named := splitNamed(args, "index")
	doc, err := docArg(positional, 0, "xml")
	if err != nil {
		return nil, err
	}
	index, err := intArg(named["index"], "index", 1)
	if err != nil {
		return nil, err
	}
	// Every positional argument past the document is a step of the tag
	// path; a single step is the plain by-tag lookup.
	path := make([]string, 0, len(positional)-1)
	for i := 1; i < len(positional); i++ {
		tag, err := stringArg(positional, i, "tag")
		if err != nil {
			return nil, err
		}
		path = append(path, tag)
	}
	if len(path) == 0 {
		return nil, fmt.Errorf("missing required argument %q", "tag")
	}
	return l.GetDataFromXMLByTagPath(doc, path, index)
}

func (l *Library) runEditRequest(_ context.Context, args ...any) (any, error) {
	positional, named := splitNamed(args, "repeated_tags")
	path, err := stringArg(positional, 0, "xml_file_path")
	if err != nil {
		return nil, err
	}
	if len(positional) < 2 {
		return nil, fmt.Errorf("missing required argument %q", "new_values_dict")
	}
	values, err := valuesArg(positional[1], "new_values_dict")
	if err != nil {
		return nil, err
	}
	outputName, err := stringArg(positional, 2, "request_name")
	if err != nil {
		return nil, err
	}
	occurrence, err := optionalStringArg(positional, 3, "repeated_tags", named["repeated_tags"])
	if err != nil {
		return nil, err
	}
	return l.EditXMLRequest(path, values, outputName, occurrence)
}

func (l *Library) runSaveToFile(_ context.Context, args ...any) (any, error) {
	doc, err := docArg(args, 0, "xml")
	if err != nil {
		return nil, err
	}
	folder, err := stringArg(args, 1, "save_folder")
	if err != nil {
		return nil, err
	}
	name, err := stringArg(args, 2, "file_name")
	if err != nil {
		return nil, err
	}
	return l.SaveXMLToFile(doc, folder, name)
}

func (l *Library) runConvertToDict(_ context.Context, args ...any) (any, error) {
	doc, err := docArg(args, 0, "xml")
	if err != nil {
		return nil, err
	}
	return l.ConvertXMLResponseToDictionary(doc), nil
}

func (l *Library) runDecodeBase64(_ context.Context, args ...any) (any, error) {
	encoded, err := stringArg(args, 0, "response")
	if err != nil {
		return nil, err
	}
	return l.DecodeBase64(encoded)
}
