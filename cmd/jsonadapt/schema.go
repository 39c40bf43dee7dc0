package main

import (
	"fmt"

	"github.com/spf13/cobra"

	js "github.com/reoring/jsonadapt/jsonschema"
)

func newSchemaCmd(o *options) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "schema [file]",
		Short: "Normalize a schema document",
		Long: `Read a schema (JSON or YAML), check it against the schema wire shape and
print it back in normalized key order. Unknown keywords are dropped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			file := argsOrStdin(args)[0]
			s, err := o.loadSchema(file)
			if err != nil {
				return err
			}
			return o.writeValue(s.ToValue(), format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "output format: json or yaml")
	return cmd
}

func (o *options) loadSchema(file string) (js.Schema, error) {
	v, err := o.readDocument(file)
	if err != nil {
		return js.Schema{}, fmt.Errorf("%s: %w", file, err)
	}
	s, err := js.FromValue(v)
	if err != nil {
		return js.Schema{}, fmt.Errorf("%s: %w", file, err)
	}
	return s, nil
}
