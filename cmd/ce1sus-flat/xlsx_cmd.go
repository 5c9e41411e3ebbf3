package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ce1sus/ce1sus-console/modules/events/services"
)

func newXLSXCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "xlsx <file|->",
		Short: "Write the flat observable table as an xlsx workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := readRows(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			content, err := services.WriteFlatXLSX(rows)
			if err != nil {
				return withCode(exitIO, err)
			}
			if err := os.WriteFile(output, content, 0o644); err != nil {
				return withCode(exitIO, fmt.Errorf("write %s: %w", output, err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d rows to %s\n", len(rows), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&output, "output", "", "Workbook path (required)")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
