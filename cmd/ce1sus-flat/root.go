package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ce1sus-flat",
		Short:         "Flatten a saved ce1sus observable response into the flat table",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newTableCmd())
	cmd.AddCommand(newXLSXCmd())
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		code := exitCode(err)
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(code)
	}
}
