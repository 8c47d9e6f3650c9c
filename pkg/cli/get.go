package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getsoapkit/soapkit/pkg/xmlutil"
)

var getIndex int

var getCmd = &cobra.Command{
	Use:   "get <xml-file> <tag>...",
	Short: "Extract a field from an XML file by tag name",
	Long: `Get finds elements by local tag name, ignoring namespaces. Several
tags form a path: each one narrows the search to descendants of the
previous matches. --index selects between repeated matches, counting
from 1.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runGet,
}

func init() {
	getCmd.Flags().IntVar(&getIndex, "index", 1, "Which occurrence to return, counting from 1")
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	doc, err := xmlutil.ParseFile(args[0])
	if err != nil {
		return err
	}

	nav := xmlutil.NewNavigator(newLogger(nil))
	value, err := nav.TextPath(doc, args[1:], getIndex)
	if err != nil {
		return err
	}

	printResult(map[string]any{
		"tag":   args[len(args)-1],
		"index": getIndex,
		"value": value,
	}, func() {
		fmt.Println(value)
	})
	return nil
}
