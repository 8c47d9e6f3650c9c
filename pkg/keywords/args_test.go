package keywords

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getsoapkit/soapkit/pkg/client"
)

func TestSplitNamed(t *testing.T) {
	positional, named := splitNamed(
		[]any{"Add", "1", "status=500", "a=b"},
		"status",
	)
	assert.Equal(t, []any{"Add", "1", "a=b"}, positional)
	assert.Equal(t, map[string]string{"status": "500"}, named)
}

func TestHeadersArg(t *testing.T) {
	headers, err := headersArg("Content-Type: application/soap+xml, X-Trace:1", "headers")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"Content-Type": "application/soap+xml",
		"X-Trace":      "1",
	}, headers)

	headers, err = headersArg(map[string]string{"A": "b"}, "headers")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A": "b"}, headers)

	headers, err = headersArg(nil, "headers")
	require.NoError(t, err)
	assert.Nil(t, headers)

	_, err = headersArg("no-colon-here", "headers")
	assert.Error(t, err)
}

func TestAuthArg(t *testing.T) {
	auth, err := authArg("alice:s3cret", "auth")
	require.NoError(t, err)
	assert.Equal(t, &client.BasicAuth{Username: "alice", Password: "s3cret"}, auth)

	auth, err = authArg([]string{"bob", "hunter2"}, "auth")
	require.NoError(t, err)
	assert.Equal(t, "bob", auth.Username)

	auth, err = authArg("", "auth")
	require.NoError(t, err)
	assert.Nil(t, auth)

	_, err = authArg([]string{"only-user"}, "auth")
	assert.Error(t, err)
}

func TestSSLVerifyArg(t *testing.T) {
	insecure, caFile := sslVerifyArg("true")
	assert.False(t, insecure)
	assert.Empty(t, caFile)

	insecure, caFile = sslVerifyArg("False")
	assert.True(t, insecure)
	assert.Empty(t, caFile)

	insecure, caFile = sslVerifyArg("/etc/ssl/ca.pem")
	assert.False(t, insecure)
	assert.Equal(t, "/etc/ssl/ca.pem", caFile)
}
