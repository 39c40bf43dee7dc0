package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFmtCmd(o *options) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "fmt [file...]",
		Short: "Print documents in canonical form",
		Long: `Parse each JSON or YAML document and print it as canonical compact JSON
(one document per line) or as YAML. Reads stdin when no file is given.`,
		RunE: func(_ *cobra.Command, args []string) error {
			for _, file := range argsOrStdin(args) {
				v, err := o.readDocument(file)
				if err != nil {
					return fmt.Errorf("%s: %w", file, err)
				}
				if err := o.writeValue(v, format); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "output format: json or yaml")
	return cmd
}
