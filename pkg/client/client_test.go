package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getsoapkit/soapkit/pkg/xmlutil"
)

const calculatorWSDL = `<?xml version="1.0" encoding="UTF-8"?>
<wsdl:definitions name="CalculatorService"
    targetNamespace="http://example.com/calculator"
    xmlns:wsdl="http://schemas.xmlsoap.org/wsdl/"
    xmlns:soap="http://schemas.xmlsoap.org/wsdl/soap/"
    xmlns:tns="http://example.com/calculator"
    xmlns:xsd="http://www.w3.org/2001/XMLSchema">
  <wsdl:types>
    <xsd:schema targetNamespace="http://example.com/calculator">
      <xsd:element name="Add">
        <xsd:complexType>
          <xsd:sequence>
            <xsd:element name="a" type="xsd:int"/>
            <xsd:element name="b" type="xsd:int"/>
          </xsd:sequence>
        </xsd:complexType>
      </xsd:element>
    </xsd:schema>
  </wsdl:types>
  <wsdl:message name="AddRequest">
    <wsdl:part name="parameters" element="tns:Add"/>
  </wsdl:message>
  <wsdl:portType name="CalculatorPortType">
    <wsdl:operation name="Add">
      <wsdl:input message="tns:AddRequest"/>
    </wsdl:operation>
  </wsdl:portType>
  <wsdl:binding name="CalculatorBinding" type="tns:CalculatorPortType">
    <soap:binding style="document" transport="http://schemas.xmlsoap.org/soap/http"/>
    <wsdl:operation name="Add">
      <soap:operation soapAction="http://example.com/calculator/Add"/>
    </wsdl:operation>
  </wsdl:binding>
  <wsdl:service name="CalculatorService">
    <wsdl:port name="CalculatorPort" binding="tns:CalculatorBinding">
      <soap:address location="%s"/>
    </wsdl:port>
  </wsdl:service>
</wsdl:definitions>`

const okEnvelope = `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body><AddResponse><result>3</result></AddResponse></soap:Body>
</soap:Envelope>`

const faultEnvelope = `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body>
    <soap:Fault>
      <faultcode>soap:Server</faultcode>
      <faultstring>boom</faultstring>
    </soap:Fault>
  </soap:Body>
</soap:Envelope>`

const requestEnvelope = `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body><Add xmlns="http://example.com/calculator"><a>1</a><b>2</b></Add></soap:Body>
</soap:Envelope>`

// testService records the last POST it received and serves a calculator
// WSDL at ?wsdl.
type testService struct {
	server *httptest.Server

	status      int
	response    string
	lastBody    string
	lastHeader  http.Header
	lastHasAuth bool
	lastUser    string
	postCount   int
}

func newTestService(t *testing.T) *testService {
	t.Helper()
	ts := &testService{status: http.StatusOK, response: okEnvelope}
	ts.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.RawQuery == "wsdl" {
			w.Header().Set("Content-Type", "text/xml; charset=utf-8")
			fmt.Fprintf(w, calculatorWSDL, ts.server.URL+"/soap/calculator")
			return
		}
		body, _ := io.ReadAll(r.Body)
		ts.lastBody = string(body)
		ts.lastHeader = r.Header.Clone()
		ts.lastUser, _, ts.lastHasAuth = r.BasicAuth()
		ts.postCount++
		w.Header().Set("Content-Type", "text/xml; charset=utf-8")
		w.WriteHeader(ts.status)
		_, _ = io.WriteString(w, ts.response)
	}))
	t.Cleanup(ts.server.Close)
	return ts
}

func (ts *testService) wsdlURL() string {
	return ts.server.URL + "/soap/calculator?wsdl"
}

func mustNewClient(t *testing.T, ts *testService, opts Options) *Client {
	t.Helper()
	c, err := New(context.Background(), ts.wsdlURL(), opts)
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	ts := newTestService(t)
	c := mustNewClient(t, ts, Options{})

	assert.Equal(t, ts.wsdlURL(), c.URL())
	require.NotNil(t, c.Description())
	assert.Equal(t, "CalculatorService", c.Description().Name)
	assert.Equal(t, []string{"Add"}, c.Description().OperationNames())
}

func TestNew_UseBindingAddress(t *testing.T) {
	ts := newTestService(t)
	c := mustNewClient(t, ts, Options{UseBindingAddress: true})

	assert.Equal(t, ts.server.URL+"/soap/calculator", c.URL())
}

func TestNew_InvalidWSDL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "<html>not a wsdl</html>")
	}))
	defer server.Close()

	_, err := New(context.Background(), server.URL+"?wsdl", Options{})
	require.Error(t, err)
}

func TestNew_UnreachableWSDL(t *testing.T) {
	_, err := New(context.Background(), "http://127.0.0.1:1/absent?wsdl", Options{})
	require.Error(t, err)
}

func TestNew_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.wsdl")
	require.NoError(t, os.WriteFile(path, fmt.Appendf(nil, calculatorWSDL, "http://localhost/soap"), 0o644))

	c, err := New(context.Background(), path, Options{})
	require.NoError(t, err)
	assert.Equal(t, "CalculatorService", c.Description().Name)
}

func TestSendString(t *testing.T) {
	ts := newTestService(t)
	c := mustNewClient(t, ts, Options{})

	doc, err := c.SendString(context.Background(), requestEnvelope, nil, false)
	require.NoError(t, err)
	require.NotNil(t, doc)

	nav := xmlutil.NewNavigator(nil)
	value, err := nav.Text(doc, "result", 1)
	require.NoError(t, err)
	assert.Equal(t, "3", value)

	// Default Content-Type applied.
	assert.Equal(t, "text/xml; charset=utf-8", ts.lastHeader.Get("Content-Type"))

	last := c.LastResponse()
	require.NotNil(t, last)
	assert.Equal(t, http.StatusOK, last.StatusCode)
	assert.Contains(t, last.Body, "AddResponse")
	assert.NotEmpty(t, last.URL)
}

func TestSendString_ErrorStatus(t *testing.T) {
	ts := newTestService(t)
	ts.status = http.StatusInternalServerError
	ts.response = faultEnvelope
	c := mustNewClient(t, ts, Options{})

	_, err := c.SendString(context.Background(), requestEnvelope, nil, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
	assert.Equal(t, "Internal Server Error", statusErr.Reason)

	// The raw response is captured even when the status check fails.
	last := c.LastResponse()
	require.NotNil(t, last)
	assert.Equal(t, http.StatusInternalServerError, last.StatusCode)
}

func TestSendString_AllowAnyStatus(t *testing.T) {
	ts := newTestService(t)
	ts.status = http.StatusInternalServerError
	ts.response = faultEnvelope
	c := mustNewClient(t, ts, Options{})

	doc, err := c.SendString(context.Background(), requestEnvelope, nil, true)
	require.NoError(t, err)
	require.NotNil(t, doc)

	nav := xmlutil.NewNavigator(nil)
	msg, err := nav.Text(doc, "faultstring", 1)
	require.NoError(t, err)
	assert.Equal(t, "boom", msg)
}

func TestSendString_InvalidRequestXML(t *testing.T) {
	ts := newTestService(t)
	c := mustNewClient(t, ts, Options{})

	_, err := c.SendString(context.Background(), "<broken", nil, false)
	require.Error(t, err)
	assert.Zero(t, ts.postCount, "nothing should be sent for an unparsable envelope")
}

func TestSendString_CustomHeaders(t *testing.T) {
	ts := newTestService(t)
	c := mustNewClient(t, ts, Options{})

	headers := map[string]string{
		"Content-Type": "application/soap+xml; charset=utf-8",
		"X-Trace":      "abc",
	}
	_, err := c.SendString(context.Background(), requestEnvelope, headers, false)
	require.NoError(t, err)
	assert.Equal(t, "application/soap+xml; charset=utf-8", ts.lastHeader.Get("Content-Type"))
	assert.Equal(t, "abc", ts.lastHeader.Get("X-Trace"))
}

func TestSendFile(t *testing.T) {
	ts := newTestService(t)
	c := mustNewClient(t, ts, Options{})

	path := filepath.Join(t.TempDir(), "request.xml")
	require.NoError(t, os.WriteFile(path, []byte(requestEnvelope), 0o644))

	doc, err := c.SendFile(context.Background(), path, nil, false)
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Contains(t, ts.lastBody, "<a>1</a>")
}

func TestSendFile_MissingFile(t *testing.T) {
	ts := newTestService(t)
	c := mustNewClient(t, ts, Options{})

	_, err := c.SendFile(context.Background(), filepath.Join(t.TempDir(), "absent.xml"), nil, false)
	require.Error(t, err)
}

func TestBasicAuth(t *testing.T) {
	ts := newTestService(t)
	c := mustNewClient(t, ts, Options{Auth: &BasicAuth{Username: "user", Password: "secret"}})

	_, err := c.SendString(context.Background(), requestEnvelope, nil, false)
	require.NoError(t, err)
	assert.True(t, ts.lastHasAuth)
	assert.Equal(t, "user", ts.lastUser)
}

func TestLastResponse_NilBeforeSend(t *testing.T) {
	ts := newTestService(t)
	c := mustNewClient(t, ts, Options{})

	assert.Nil(t, c.LastResponse())
}

func TestCall(t *testing.T) {
	ts := newTestService(t)
	c := mustNewClient(t, ts, Options{})

	result, err := c.Call(context.Background(), "Add", "1", "2")
	require.NoError(t, err)
	assert.Equal(t, "3", result)

	// Envelope constructed from the WSDL schema, with SOAPAction quoted.
	assert.Contains(t, ts.lastBody, "<a>1</a>")
	assert.Contains(t, ts.lastBody, "<b>2</b>")
	assert.True(t, strings.Contains(ts.lastBody, "Envelope"))
	assert.Equal(t, `"http://example.com/calculator/Add"`, ts.lastHeader.Get("SOAPAction"))
}

func TestCall_DoesNotRecordLastResponse(t *testing.T) {
	ts := newTestService(t)
	c := mustNewClient(t, ts, Options{})

	_, err := c.Call(context.Background(), "Add", "1", "2")
	require.NoError(t, err)
	assert.Nil(t, c.LastResponse())
}

func TestCall_Fault(t *testing.T) {
	ts := newTestService(t)
	ts.status = http.StatusInternalServerError
	ts.response = faultEnvelope
	c := mustNewClient(t, ts, Options{})

	_, err := c.Call(context.Background(), "Add", "1", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestCall_UnknownOperation(t *testing.T) {
	ts := newTestService(t)
	c := mustNewClient(t, ts, Options{})

	_, err := c.Call(context.Background(), "Multiply", "1", "2")
	require.Error(t, err)
	assert.Zero(t, ts.postCount)
}

func TestNew_BadCAFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ca.pem")
	require.NoError(t, os.WriteFile(path, []byte("not a pem"), 0o644))

	_, err := New(context.Background(), "http://localhost/?wsdl", Options{CAFile: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CA bundle")
}

func TestStatusError_Message(t *testing.T) {
	err := &StatusError{Code: 503, Reason: "Service Unavailable"}
	assert.Equal(t, "request failed with status 503: Service Unavailable", err.Error())
	assert.True(t, errors.As(error(err), new(*StatusError)))
}
