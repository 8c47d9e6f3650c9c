// soapkit CLI - Command-line interface for testing SOAP webservices
package main

import "github.com/getsoapkit/soapkit/pkg/cli"

// Build-time variables set via ldflags
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.BuildDate = buildDate
	cli.Execute()
}
