package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newContractCmd(a *app) *cobra.Command {
	var (
		location string
		dump     bool
	)
	cmd := &cobra.Command{
		Use:   "contract",
		Short: "Check the attribute schema against the prediction contract",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			doc, err := a.contract(ctx, location)
			if err != nil {
				return err
			}
			if dump {
				_, err := cmd.OutOrStdout().Write(doc.Raw())
				return err
			}

			s, err := a.schema(ctx)
			if err != nil {
				return err
			}
			if err := doc.Check(s); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s matches schema %q (%d fields)\n", doc.Method(), doc.Path(), s.Name(), s.Len())
			fmt.Fprintf(out, "categories: %s\n", strings.Join(doc.Categories(), ", "))
			return nil
		},
	}
	cmd.Flags().StringVar(&location, "source", "", "OpenAPI document path or URL (embedded document if empty)")
	cmd.Flags().BoolVar(&dump, "print", false, "Print the contract document and exit")
	return cmd
}
