package cli

import (
	"pubdeck/internal/fileval"
	"pubdeck/internal/format"

	"github.com/spf13/cobra"
)

func newFilesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "files",
		Short: "Attachment file commands",
	}

	cmd.AddCommand(newFilesCheckCmd(app))

	return cmd
}

func newFilesCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check <path>...",
		Short: "Check files against the attachment rules (PDF or JPG, max 5MB)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reports := make([]format.FileReport, 0, len(args))
			for _, path := range args {
				a, res, err := fileval.Inspect(path)
				if err != nil {
					return writeErr(cmd, err)
				}
				reports = append(reports, format.ReportFor(a, res))
			}
			return writeOut(cmd, app, reports)
		},
	}
}
