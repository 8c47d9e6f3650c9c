package client

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/getsoapkit/soapkit/pkg/logging"
	"github.com/getsoapkit/soapkit/pkg/wsdl"
)

// DefaultTimeout bounds every HTTP request made by a Client unless
// overridden in Options.
const DefaultTimeout = 30 * time.Second

// BasicAuth is an HTTP Basic Authentication credential pair.
type BasicAuth struct {
	Username string
	Password string
}

// Options configures a Client.
type Options struct {
	// Insecure disables server certificate verification. Not recommended.
	Insecure bool

	// CAFile is the path of a PEM bundle used as the trust anchors
	// instead of the system pool. If root and intermediate certificates
	// are both needed they must be concatenated into one file.
	CAFile string

	// ClientCert is the path of a PEM file holding the client
	// certificate and key for mutual TLS.
	ClientCert string

	// Auth, when set, attaches HTTP Basic Authentication to every
	// request, including the WSDL fetch.
	Auth *BasicAuth

	// UseBindingAddress replaces the target URL with the address
	// advertised inside the service description's binding metadata.
	UseBindingAddress bool

	// Timeout for HTTP requests. Zero means DefaultTimeout.
	Timeout time.Duration

	// Logger receives request/response diagnostics. Nil disables logging.
	Logger *slog.Logger
}

// Client is a SOAP client bound to a WSDL service description. It owns
// the single last-response slot read by LastResponse; one Client serves
// one test scope and is not safe for concurrent use.
type Client struct {
	url  string
	desc *wsdl.Description
	http *http.Client
	auth *BasicAuth
	log  *slog.Logger
	last *Response
}

// DefaultHeaders returns the headers applied to XML sends when the
// caller supplies none.
func DefaultHeaders() map[string]string {
	return map[string]string{"Content-Type": "text/xml; charset=utf-8"}
}

// New fetches and parses the service description at wsdlURL and returns
// a Client targeting it. The location may be an http(s) URL or a local
// file path. The resolved endpoint and the available operation names are
// logged at info level.
func New(ctx context.Context, wsdlURL string, opts Options) (*Client, error) {
	httpClient, err := newHTTPClient(opts)
	if err != nil {
		return nil, err
	}

	c := &Client{
		url:  wsdlURL,
		http: httpClient,
		auth: opts.Auth,
		log:  logging.Or(opts.Logger),
	}

	data, err := c.fetchWSDL(ctx, wsdlURL)
	if err != nil {
		return nil, err
	}
	desc, err := wsdl.Parse(data)
	if err != nil {
		return nil, err
	}
	c.desc = desc

	if opts.UseBindingAddress {
		addr, err := desc.BindingAddress()
		if err != nil {
			return nil, err
		}
		c.url = addr
	}

	c.log.Info("connected to service description", "location", wsdlURL, "service", desc.Name, "endpoint", c.url)
	c.log.Info("available operations", "operations", desc.OperationNames())
	return c, nil
}

func newHTTPClient(opts Options) (*http.Client, error) {
	tlsCfg := &tls.Config{}

	if opts.Insecure {
		tlsCfg.InsecureSkipVerify = true
	}
	if opts.CAFile != "" {
		pem, err := os.ReadFile(opts.CAFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA bundle %q: %w", opts.CAFile, err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no certificates found in CA bundle %q", opts.CAFile)
		}
		tlsCfg.RootCAs = pool
	}
	if opts.ClientCert != "" {
		cert, err := tls.LoadX509KeyPair(opts.ClientCert, opts.ClientCert)
		if err != nil {
			return nil, fmt.Errorf("failed to load client certificate %q: %w", opts.ClientCert, err)
		}
		tlsCfg.Certificates = []tls.Certificate{cert}
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &http.Client{
		Transport: &http.Transport{
			Proxy:           http.ProxyFromEnvironment,
			TLSClientConfig: tlsCfg,
		},
		Timeout: timeout,
	}, nil
}

func (c *Client) fetchWSDL(ctx context.Context, location string) ([]byte, error) {
	if !strings.HasPrefix(location, "http://") && !strings.HasPrefix(location, "https://") {
		data, err := os.ReadFile(location)
		if err != nil {
			return nil, fmt.Errorf("failed to read WSDL file %q: %w", location, err)
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build WSDL request: %w", err)
	}
	c.setAuth(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch WSDL %q: %w", location, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch WSDL %q: status %d", location, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read WSDL %q: %w", location, err)
	}
	return data, nil
}

func (c *Client) setAuth(req *http.Request) {
	if c.auth != nil {
		req.SetBasicAuth(c.auth.Username, c.auth.Password)
	}
}

// URL returns the effective target endpoint.
func (c *Client) URL() string {
	return c.url
}

// Description returns the parsed service description.
func (c *Client) Description() *wsdl.Description {
	return c.desc
}

// LastResponse returns the raw response of the most recent XML send, or
// nil if no send has occurred yet. Operation calls made with Call do not
// populate this slot.
func (c *Client) LastResponse() *Response {
	return c.last
}
