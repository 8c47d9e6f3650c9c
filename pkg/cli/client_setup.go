package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/getsoapkit/soapkit/pkg/client"
	"github.com/getsoapkit/soapkit/pkg/config"
	"github.com/getsoapkit/soapkit/pkg/logging"
)

// Connection flags shared by the commands that talk to a service.
var (
	wsdlFlag       string
	sslVerifyFlag  string
	clientCertFlag string
	authFlag       string
	useBindingFlag bool
	timeoutFlag    time.Duration
)

func addConnectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&wsdlFlag, "wsdl", "", "WSDL URL or file path")
	cmd.Flags().StringVar(&sslVerifyFlag, "ssl-verify", "", "true, false, or a CA bundle path")
	cmd.Flags().StringVar(&clientCertFlag, "client-cert", "", "PEM file with client certificate and key")
	cmd.Flags().StringVar(&authFlag, "auth", "", "Basic auth credentials (user:password)")
	cmd.Flags().BoolVar(&useBindingFlag, "use-binding-address", false, "Send requests to the WSDL's binding address")
	cmd.Flags().DurationVar(&timeoutFlag, "timeout", 0, "HTTP request timeout (e.g. 30s)")
}

// newLogger builds the command logger from the suite config and flags;
// flags win.
func newLogger(suite *config.Suite) *slog.Logger {
	var lc config.LoggingConfig
	if suite != nil {
		lc = suite.Logging
	}
	if logLevel != "" {
		lc.Level = logLevel
	}
	if logFormat != "" {
		lc.Format = logFormat
	}
	return logging.New(lc.LoggerConfig())
}

// loadSuite reads the suite config named by --config. Without the flag
// it tries discovery but treats absence as no config at all.
func loadSuite() (*config.Suite, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	path, err := config.Discover()
	if err != nil {
		return nil, nil
	}
	return config.Load(path)
}

// connect builds a client from the suite config overlaid with the
// connection flags. It also returns the suite's default headers.
func connect(ctx context.Context, cmd *cobra.Command) (*client.Client, map[string]string, error) {
	suite, err := loadSuite()
	if err != nil {
		return nil, nil, err
	}

	wsdl := wsdlFlag
	var opts client.Options
	var headers map[string]string
	if suite != nil {
		if wsdl == "" {
			wsdl = suite.Service.WSDL
		}
		opts = suite.Service.ClientOptions()
		headers = suite.Service.Headers
	}
	if wsdl == "" {
		return nil, nil, fmt.Errorf("no WSDL given: use --wsdl or a suite config")
	}

	if cmd.Flags().Changed("ssl-verify") {
		opts.Insecure = false
		opts.CAFile = ""
		switch strings.ToLower(sslVerifyFlag) {
		case "true":
		case "false":
			opts.Insecure = true
		default:
			opts.CAFile = sslVerifyFlag
		}
	}
	if cmd.Flags().Changed("client-cert") {
		opts.ClientCert = clientCertFlag
	}
	if cmd.Flags().Changed("auth") {
		user, pass, found := strings.Cut(authFlag, ":")
		if !found {
			return nil, nil, fmt.Errorf("--auth must be user:password")
		}
		opts.Auth = &client.BasicAuth{Username: user, Password: pass}
	}
	if cmd.Flags().Changed("use-binding-address") {
		opts.UseBindingAddress = useBindingFlag
	}
	if cmd.Flags().Changed("timeout") {
		opts.Timeout = timeoutFlag
	}
	opts.Logger = newLogger(suite)

	c, err := client.New(ctx, wsdl, opts)
	if err != nil {
		return nil, nil, err
	}
	return c, headers, nil
}
