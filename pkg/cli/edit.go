package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getsoapkit/soapkit/pkg/xmlutil"
)

var (
	editSets       []string
	editName       string
	editOccurrence string
)

var editCmd = &cobra.Command{
	Use:   "edit <xml-file>",
	Short: "Rewrite tag values of an XML template file",
	Long: `Edit reads an XML template, replaces the text of the tags given with
--set, and writes the result as a new file next to the input. Tags not
present in the template are skipped with a warning.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringArrayVar(&editSets, "set", nil, "Tag value to rewrite (tag=value, repeatable)")
	editCmd.Flags().StringVar(&editName, "name", "edited", "Base name of the output file")
	editCmd.Flags().StringVar(&editOccurrence, "occurrence", xmlutil.OccurrenceAll, "Which occurrence of a repeated tag to rewrite (All or a position counted from 0)")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	if len(editSets) == 0 {
		return fmt.Errorf("no --set given")
	}

	values := make(map[string]string, len(editSets))
	for _, set := range editSets {
		tag, value, found := strings.Cut(set, "=")
		if !found {
			return fmt.Errorf("--set %q must be tag=value", set)
		}
		values[tag] = value
	}

	editor := xmlutil.NewEditor(newLogger(nil))
	path, err := editor.EditFile(args[0], values, editName, editOccurrence)
	if err != nil {
		return err
	}

	printResult(map[string]any{
		"input":  args[0],
		"output": path,
	}, func() {
		fmt.Println(path)
	})
	return nil
}
