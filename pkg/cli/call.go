package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var callStatus string

var callCmd = &cobra.Command{
	Use:   "call <operation> [argument...]",
	Short: "Call a SOAP operation with positional arguments",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCall,
}

func init() {
	addConnectionFlags(callCmd)
	callCmd.Flags().StringVar(&callStatus, "status", "", "Accept any HTTP status instead of requiring 200")
	rootCmd.AddCommand(callCmd)
}

func runCall(cmd *cobra.Command, args []string) error {
	c, _, err := connect(cmd.Context(), cmd)
	if err != nil {
		return err
	}

	result, err := c.Call(cmd.Context(), args[0], args[1:]...)
	if err != nil {
		if callStatus != "" {
			result = err.Error()
		} else {
			return err
		}
	}

	printResult(map[string]any{
		"operation": args[0],
		"result":    result,
	}, func() {
		fmt.Println(result)
	})
	return nil
}
