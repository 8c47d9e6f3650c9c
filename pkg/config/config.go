package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/getsoapkit/soapkit/pkg/client"
	"github.com/getsoapkit/soapkit/pkg/logging"
)

// DiscoveryOrder lists the file names Discover tries in the current
// directory, in order.
var DiscoveryOrder = []string{"soapkit.yaml", "soapkit.yml"}

// Suite is a soapkit suite configuration file. It names the service
// under test plus client and logging settings, so a run needs only the
// file path.
type Suite struct {
	Service ServiceConfig `yaml:"service"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServiceConfig describes one SOAP service and how to connect to it.
type ServiceConfig struct {
	// WSDL is a URL or a local file path of the service description.
	WSDL string `yaml:"wsdl"`

	// SSLVerify is "true" (default), "false", or a CA bundle path.
	SSLVerify string `yaml:"sslVerify"`

	// ClientCert is a PEM file holding both certificate and key for
	// mutual TLS.
	ClientCert string `yaml:"clientCert"`

	Auth *AuthConfig `yaml:"auth"`

	// UseBindingAddress sends requests to the service's binding
	// address instead of the WSDL location.
	UseBindingAddress bool `yaml:"useBindingAddress"`

	// Headers are added to every request.
	Headers map[string]string `yaml:"headers"`

	// Timeout bounds each HTTP request, e.g. "30s".
	Timeout string `yaml:"timeout"`
}

// AuthConfig holds HTTP basic auth credentials.
type AuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// LoggingConfig selects log verbosity and output format.
type LoggingConfig struct {
	// Level is "debug", "info", "warn" or "error". Defaults to info.
	Level string `yaml:"level"`

	// Format is "text" or "json". Defaults to text.
	Format string `yaml:"format"`
}

// LoggerConfig converts the logging settings into a logging.Config.
func (c LoggingConfig) LoggerConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.ParseLevel(c.Level)
	cfg.Format = logging.ParseFormat(c.Format)
	return cfg
}

// Load reads a Suite from a YAML file, applying environment variable
// substitution. An empty path triggers discovery.
func Load(path string) (*Suite, error) {
	if path == "" {
		discovered, err := Discover()
		if err != nil {
			return nil, err
		}
		path = discovered
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadBytes(data)
}

// LoadBytes parses a Suite from raw YAML, applying environment variable
// substitution.
func LoadBytes(data []byte) (*Suite, error) {
	expanded := ExpandEnvVars(string(data))

	var suite Suite
	if err := yaml.Unmarshal([]byte(expanded), &suite); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := suite.Validate(); err != nil {
		return nil, err
	}
	return &suite, nil
}

// Discover finds a config file via the SOAPKIT_CONFIG environment
// variable or well-known names in the current directory.
func Discover() (string, error) {
	if envPath := os.Getenv("SOAPKIT_CONFIG"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		return "", fmt.Errorf("SOAPKIT_CONFIG points to non-existent file: %s", envPath)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	for _, name := range DiscoveryOrder {
		path := filepath.Join(cwd, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no config found; create soapkit.yaml or specify --config")
}

// Validate checks the suite for settings that cannot work.
func (s *Suite) Validate() error {
	if s.Service.WSDL == "" {
		return fmt.Errorf("service.wsdl is required")
	}
	if s.Service.Timeout != "" {
		if _, err := time.ParseDuration(s.Service.Timeout); err != nil {
			return fmt.Errorf("service.timeout: %w", err)
		}
	}
	switch s.Service.SSLVerify {
	case "", "true", "false":
	default:
		if _, err := os.Stat(s.Service.SSLVerify); err != nil {
			return fmt.Errorf("service.sslVerify: CA bundle %s: %w", s.Service.SSLVerify, err)
		}
	}
	return nil
}

// ClientOptions converts the service settings into client options.
// Validate must have passed; an unparsable timeout falls back to the
// client default.
func (s *ServiceConfig) ClientOptions() client.Options {
	var opts client.Options
	switch s.SSLVerify {
	case "", "true":
	case "false":
		opts.Insecure = true
	default:
		opts.CAFile = s.SSLVerify
	}
	opts.ClientCert = s.ClientCert
	if s.Auth != nil {
		opts.Auth = &client.BasicAuth{
			Username: s.Auth.Username,
			Password: s.Auth.Password,
		}
	}
	opts.UseBindingAddress = s.UseBindingAddress
	if s.Timeout != "" {
		if d, err := time.ParseDuration(s.Timeout); err == nil {
			opts.Timeout = d
		}
	}
	return opts
}

// envVarPattern matches ${VAR_NAME} or ${VAR_NAME:-default}
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`)

// ExpandEnvVars expands ${VAR} and ${VAR:-default} references in the
// input string.
func ExpandEnvVars(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		submatch := envVarPattern.FindStringSubmatch(match)
		if len(submatch) < 2 {
			return match
		}
		if val := os.Getenv(submatch[1]); val != "" {
			return val
		}
		if len(submatch) >= 3 {
			return submatch[2]
		}
		return ""
	})
}
