package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getsoapkit/soapkit/pkg/cli/internal/output"
	"github.com/getsoapkit/soapkit/pkg/util"
	"github.com/getsoapkit/soapkit/pkg/xmlutil"
)

var convertCmd = &cobra.Command{
	Use:   "convert <xml-file>",
	Short: "Convert an XML file into a nested mapping",
	Long: `Convert flattens an XML document into a nested mapping, dropping
namespaces. Repeated sibling tags become lists. The mapping is printed
as YAML, or JSON with --json.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

var decodeCmd = &cobra.Command{
	Use:   "decode <base64>",
	Short: "Decode a base64 string",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		decoded, err := util.DecodeBase64(args[0])
		if err != nil {
			return err
		}
		printResult(map[string]any{"decoded": decoded}, func() {
			fmt.Println(decoded)
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(decodeCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	doc, err := xmlutil.ParseFile(args[0])
	if err != nil {
		return err
	}

	m := xmlutil.DocToMap(doc)
	printResult(m, func() {
		_ = output.YAML(m)
	})
	return nil
}
