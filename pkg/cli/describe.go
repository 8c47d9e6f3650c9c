package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getsoapkit/soapkit/pkg/cli/internal/output"
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Show the service description behind a WSDL",
	RunE:  runDescribe,
}

func init() {
	addConnectionFlags(describeCmd)
	rootCmd.AddCommand(describeCmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	c, _, err := connect(cmd.Context(), cmd)
	if err != nil {
		return err
	}

	desc := c.Description()
	type describedOp struct {
		Name       string `json:"name"`
		SOAPAction string `json:"soapAction,omitempty"`
	}

	ops := make([]describedOp, 0)
	for _, name := range desc.OperationNames() {
		ops = append(ops, describedOp{Name: name, SOAPAction: desc.SOAPAction(name)})
	}

	services := make([]string, 0, len(desc.Services))
	for _, svc := range desc.Services {
		services = append(services, svc.Name)
	}
	bindingAddress, _ := desc.BindingAddress()

	printResult(map[string]any{
		"url":            c.URL(),
		"services":       services,
		"bindingAddress": bindingAddress,
		"operations":     ops,
	}, func() {
		fmt.Printf("Endpoint: %s\n", c.URL())
		for _, svc := range services {
			fmt.Printf("Service: %s\n", svc)
		}
		if bindingAddress != "" {
			fmt.Printf("Binding address: %s\n", bindingAddress)
		}
		if len(ops) == 0 {
			fmt.Println("No operations found")
			return
		}
		fmt.Println("\nOperations:")
		w := output.Table()
		for _, op := range ops {
			fmt.Fprintf(w, "  %s\t%s\n", op.Name, op.SOAPAction)
		}
		_ = w.Flush()
	})
	return nil
}
