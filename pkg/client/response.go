package client

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Response is the raw transport response captured by an XML send.
type Response struct {
	StatusCode int
	Status     string // e.g. "500 Internal Server Error"
	Headers    http.Header
	Body       string
	URL        string
	Cookies    []*http.Cookie
}

func newResponse(resp *http.Response, body []byte) *Response {
	r := &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Headers:    resp.Header,
		Body:       string(body),
		Cookies:    resp.Cookies(),
	}
	if resp.Request != nil && resp.Request.URL != nil {
		r.URL = resp.Request.URL.String()
	}
	return r
}

// Reason returns the reason phrase of the status line.
func (r *Response) Reason() string {
	return strings.TrimSpace(strings.TrimPrefix(r.Status, strconv.Itoa(r.StatusCode)))
}

// StatusError is returned when a send yields a non-200 status and the
// caller did not opt out of the status check.
type StatusError struct {
	Code   int
	Reason string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.Code, e.Reason)
}
