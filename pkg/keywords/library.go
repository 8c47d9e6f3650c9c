package keywords

import (
	"context"
	"errors"
	"log/slog"

	"github.com/beevik/etree"

	"github.com/getsoapkit/soapkit/pkg/client"
	"github.com/getsoapkit/soapkit/pkg/logging"
	"github.com/getsoapkit/soapkit/pkg/util"
	"github.com/getsoapkit/soapkit/pkg/xmlutil"
)

// ErrNoClient is returned by keywords that need an active client before
// Create SOAP Client has run in this scope.
var ErrNoClient = errors.New("no active SOAP client: run Create SOAP Client first")

// Library is the keyword surface for one test scope. It owns at most one
// active client at a time; creating a new client replaces the previous
// one, and with it the last-response slot.
type Library struct {
	log    *slog.Logger
	client *client.Client
	nav    *xmlutil.Navigator
	editor *xmlutil.Editor
}

// New creates a Library. A nil logger disables logging.
func New(log *slog.Logger) *Library {
	log = logging.Or(log)
	return &Library{
		log:    log,
		nav:    xmlutil.NewNavigator(log),
		editor: xmlutil.NewEditor(log),
	}
}

// CreateSOAPClient loads the WSDL at url and makes the resulting client
// the scope's active client, replacing any previous one.
func (l *Library) CreateSOAPClient(ctx context.Context, url string, opts client.Options) error {
	if opts.Logger == nil {
		opts.Logger = l.log
	}
	c, err := client.New(ctx, url, opts)
	if err != nil {
		return err
	}
	l.client = c
	return nil
}

// Client returns the active client, or nil before Create SOAP Client.
func (l *Library) Client() *client.Client {
	return l.client
}

func (l *Library) activeClient() (*client.Client, error) {
	if l.client == nil {
		return nil, ErrNoClient
	}
	return l.client, nil
}

// CallSOAPMethodWithXML sends the XML file at path as a request. The
// SOAP method is inside the file. A non-empty status disables the
// 200-status check.
func (l *Library) CallSOAPMethodWithXML(ctx context.Context, path string, headers map[string]string, status string) (*etree.Document, error) {
	c, err := l.activeClient()
	if err != nil {
		return nil, err
	}
	return c.SendFile(ctx, path, headers, status != "")
}

// CallSOAPMethodWithStringXML sends a string representation of XML as a
// request. A non-empty status disables the 200-status check.
func (l *Library) CallSOAPMethodWithStringXML(ctx context.Context, xmlText string, headers map[string]string, status string) (*etree.Document, error) {
	c, err := l.activeClient()
	if err != nil {
		return nil, err
	}
	return c.SendString(ctx, xmlText, headers, status != "")
}

// CallSOAPMethod invokes the named operation with positional arguments,
// letting the client construct the envelope from the service
// description. With a non-empty status, a call failure is returned as
// its message string instead of an error.
func (l *Library) CallSOAPMethod(ctx context.Context, name string, args []string, status string) (string, error) {
	c, err := l.activeClient()
	if err != nil {
		return "", err
	}
	result, err := c.Call(ctx, name, args...)
	if err != nil {
		if status != "" {
			return err.Error(), nil
		}
		return "", err
	}
	return result, nil
}

// GetLastResponseObject returns the raw response of the most recent XML
// send, or nil if none has occurred in this scope.
func (l *Library) GetLastResponseObject() *client.Response {
	if l.client == nil {
		return nil
	}
	return l.client.LastResponse()
}

// GetDataFromXMLByTag returns the text of the index-th (1-based) element
// whose local name equals tag.
func (l *Library) GetDataFromXMLByTag(doc *etree.Document, tag string, index int) (string, error) {
	return l.nav.Text(doc, tag, index)
}

// GetDataFromXMLByTagPath is GetDataFromXMLByTag for a multi-step tag
// path.
func (l *Library) GetDataFromXMLByTagPath(doc *etree.Document, path []string, index int) (string, error) {
	return l.nav.TextPath(doc, path, index)
}

// EditXMLRequest rewrites tags of the XML template at path per values
// and writes the result to <outputName>.xml next to the input, returning
// the new file's path. occurrence selects which occurrence of a repeated
// tag to rewrite (xmlutil.OccurrenceAll or a 0-based position).
func (l *Library) EditXMLRequest(path string, values map[string]string, outputName, occurrence string) (string, error) {
	return l.editor.EditFile(path, values, outputName, occurrence)
}

// SaveXMLToFile writes the document to <name>.xml inside folder and
// returns the new file's path.
func (l *Library) SaveXMLToFile(doc *etree.Document, folder, name string) (string, error) {
	return xmlutil.SaveToFile(doc, folder, name)
}

// ConvertXMLResponseToDictionary flattens the document into a nested
// mapping; repeated sibling tags collapse into ordered lists.
func (l *Library) ConvertXMLResponseToDictionary(doc *etree.Document) map[string]any {
	return xmlutil.DocToMap(doc)
}

// DecodeBase64 decodes base64-encoded text.
func (l *Library) DecodeBase64(encoded string) (string, error) {
	return util.DecodeBase64(encoded)
}
