package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nethesap/nethesap/internal/exam"
	"github.com/nethesap/nethesap/internal/report"
)

func newExamsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "exams",
		Short: "List exam variants with their subjects and tracks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			return report.WriteExams(cmd.OutOrStdout(), f, exam.All())
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, markdown, json, yaml")
	return cmd
}
