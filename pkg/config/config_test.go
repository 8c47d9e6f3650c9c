package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getsoapkit/soapkit/pkg/logging"
)

const sampleSuite = `
service:
  wsdl: http://example.com/calculator?wsdl
  sslVerify: "false"
  useBindingAddress: true
  timeout: 10s
  headers:
    X-Env: staging
  auth:
    username: alice
    password: s3cret
logging:
  level: debug
  format: json
`

func TestLoadBytes(t *testing.T) {
	suite, err := LoadBytes([]byte(sampleSuite))
	require.NoError(t, err)

	assert.Equal(t, "http://example.com/calculator?wsdl", suite.Service.WSDL)
	assert.Equal(t, "false", suite.Service.SSLVerify)
	assert.True(t, suite.Service.UseBindingAddress)
	assert.Equal(t, map[string]string{"X-Env": "staging"}, suite.Service.Headers)
	require.NotNil(t, suite.Service.Auth)
	assert.Equal(t, "alice", suite.Service.Auth.Username)

	opts := suite.Service.ClientOptions()
	assert.True(t, opts.Insecure)
	assert.Empty(t, opts.CAFile)
	assert.True(t, opts.UseBindingAddress)
	assert.Equal(t, 10*time.Second, opts.Timeout)
	require.NotNil(t, opts.Auth)
	assert.Equal(t, "s3cret", opts.Auth.Password)

	cfg := suite.Logging.LoggerConfig()
	assert.Equal(t, logging.LevelDebug, cfg.Level)
	assert.Equal(t, logging.FormatJSON, cfg.Format)
}

func TestLoadBytes_Defaults(t *testing.T) {
	suite, err := LoadBytes([]byte("service:\n  wsdl: file.wsdl\n"))
	require.NoError(t, err)

	opts := suite.Service.ClientOptions()
	assert.False(t, opts.Insecure)
	assert.Nil(t, opts.Auth)
	assert.Zero(t, opts.Timeout)

	cfg := suite.Logging.LoggerConfig()
	assert.Equal(t, logging.LevelInfo, cfg.Level)
	assert.Equal(t, logging.FormatText, cfg.Format)
}

func TestLoadBytes_Invalid(t *testing.T) {
	_, err := LoadBytes([]byte("service: [not a mapping"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")

	_, err = LoadBytes([]byte("logging:\n  level: debug\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service.wsdl is required")

	_, err = LoadBytes([]byte("service:\n  wsdl: x\n  timeout: soon\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service.timeout")

	_, err = LoadBytes([]byte("service:\n  wsdl: x\n  sslVerify: /no/such/ca.pem\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CA bundle")
}

func TestLoadBytes_CAFile(t *testing.T) {
	caPath := filepath.Join(t.TempDir(), "ca.pem")
	require.NoError(t, os.WriteFile(caPath, []byte("dummy"), 0o644))

	suite, err := LoadBytes([]byte("service:\n  wsdl: x\n  sslVerify: " + caPath + "\n"))
	require.NoError(t, err)

	opts := suite.Service.ClientOptions()
	assert.False(t, opts.Insecure)
	assert.Equal(t, caPath, opts.CAFile)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleSuite), 0o644))

	suite, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/calculator?wsdl", suite.Service.WSDL)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_EnvSubstitution(t *testing.T) {
	t.Setenv("SOAPKIT_TEST_USER", "bob")

	suite, err := LoadBytes([]byte(`
service:
  wsdl: ${SOAPKIT_TEST_WSDL:-http://fallback/wsdl}
  auth:
    username: ${SOAPKIT_TEST_USER}
    password: ${SOAPKIT_TEST_PASS:-}
`))
	require.NoError(t, err)
	assert.Equal(t, "http://fallback/wsdl", suite.Service.WSDL)
	assert.Equal(t, "bob", suite.Service.Auth.Username)
	assert.Empty(t, suite.Service.Auth.Password)
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "suite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleSuite), 0o644))

	t.Setenv("SOAPKIT_CONFIG", path)
	found, err := Discover()
	require.NoError(t, err)
	assert.Equal(t, path, found)

	t.Setenv("SOAPKIT_CONFIG", filepath.Join(dir, "nope.yaml"))
	_, err = Discover()
	assert.Error(t, err)
}
