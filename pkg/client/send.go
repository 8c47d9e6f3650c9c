package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/beevik/etree"
	"github.com/google/uuid"

	"github.com/getsoapkit/soapkit/pkg/logging"
	"github.com/getsoapkit/soapkit/pkg/util"
	"github.com/getsoapkit/soapkit/pkg/xmlutil"
)

// reportHeader is the HTML-flagged line written before each response body
// so test-report renderers can set it off from the surrounding log.
const reportHeader = `<font size="3"><b>Response from webservice:</b></font>`

// SendFile reads the XML envelope from the file at path and sends it to
// the client's target URL. See SendString.
func (c *Client) SendFile(ctx context.Context, path string, headers map[string]string, allowAnyStatus bool) (*etree.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read request file %q: %w", path, err)
	}
	return c.SendString(ctx, string(data), headers, allowAnyStatus)
}

// SendString POSTs the given XML envelope to the client's target URL and
// returns the parsed response document. The raw response is captured and
// readable via LastResponse regardless of status. If headers is nil the
// default Content-Type header is applied.
//
// Unless allowAnyStatus is set, a status code other than 200 fails with a
// StatusError carrying the code and reason phrase. With allowAnyStatus
// the parsed response is returned whatever the status. A request or
// response body that does not parse as XML is always an error.
func (c *Client) SendString(ctx context.Context, xmlText string, headers map[string]string, allowAnyStatus bool) (*etree.Document, error) {
	if _, err := xmlutil.Parse(xmlText); err != nil {
		return nil, fmt.Errorf("invalid request envelope: %w", err)
	}
	if headers == nil {
		headers = DefaultHeaders()
	}

	resp, err := c.post(ctx, xmlText, headers, true)
	if err != nil {
		return nil, err
	}

	doc, err := xmlutil.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("invalid response body: %w", err)
	}

	logging.InfoHTML(c.log, reportHeader)
	c.log.Info("response from webservice", "body", util.TruncateBody(xmlutil.Pretty(doc), 0))

	if !allowAnyStatus && resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, Reason: resp.Reason()}
	}
	return doc, nil
}

// post sends the body and captures the raw response. record controls
// whether the last-response slot is overwritten; direct operation calls
// leave it untouched.
func (c *Client) post(ctx context.Context, body string, headers map[string]string, record bool) (*Response, error) {
	reqID := uuid.NewString()
	c.log.Debug("sending request", "id", reqID, "url", c.url, "body", util.TruncateBody(body, 0))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	c.setAuth(req)

	httpResp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %q failed: %w", c.url, err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %q: %w", c.url, err)
	}

	resp := newResponse(httpResp, respBody)
	if record {
		c.last = resp
	}
	c.log.Info("status code", "id", reqID, "status", resp.StatusCode)
	return resp, nil
}
