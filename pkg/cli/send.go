package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/spf13/cobra"

	"github.com/getsoapkit/soapkit/pkg/xmlutil"
)

var (
	sendData    string
	sendHeaders string
	sendStatus  string
	sendPretty  bool
)

var sendCmd = &cobra.Command{
	Use:   "send [xml-file]",
	Short: "Send a raw XML request to the service",
	Long: `Send posts an XML request as-is; the SOAP operation is whatever the
envelope in the file says. Give the request as a file argument or
inline with --data.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSend,
}

func init() {
	addConnectionFlags(sendCmd)
	sendCmd.Flags().StringVar(&sendData, "data", "", "Inline XML request body")
	sendCmd.Flags().StringVarP(&sendHeaders, "header", "H", "", "Additional headers (key:value,key2:value2)")
	sendCmd.Flags().StringVar(&sendStatus, "status", "", "Accept any HTTP status instead of requiring 200")
	sendCmd.Flags().BoolVar(&sendPretty, "pretty", true, "Pretty print output")
	rootCmd.AddCommand(sendCmd)
}

func runSend(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && sendData == "" {
		return errors.New("give an XML file or --data")
	}

	c, headers, err := connect(cmd.Context(), cmd)
	if err != nil {
		return err
	}

	if sendHeaders != "" {
		if headers == nil {
			headers = make(map[string]string)
		}
		for _, header := range strings.Split(sendHeaders, ",") {
			key, value, found := strings.Cut(header, ":")
			if !found {
				return fmt.Errorf("header %q must be key:value", header)
			}
			headers[strings.TrimSpace(key)] = strings.TrimSpace(value)
		}
	}

	allowAny := sendStatus != ""
	var doc *etree.Document
	if len(args) > 0 {
		doc, err = c.SendFile(cmd.Context(), args[0], headers, allowAny)
	} else {
		doc, err = c.SendString(cmd.Context(), sendData, headers, allowAny)
	}
	if err != nil {
		return err
	}

	var text string
	if sendPretty {
		text = xmlutil.Pretty(doc)
	} else {
		text, err = doc.WriteToString()
		if err != nil {
			return fmt.Errorf("serializing response: %w", err)
		}
	}

	resp := c.LastResponse()
	printResult(map[string]any{
		"status": resp.StatusCode,
		"root":   doc.Root().Tag,
		"body":   text,
	}, func() {
		fmt.Println(text)
	})
	return nil
}
