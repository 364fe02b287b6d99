package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"whirl/internal/history"
	"whirl/internal/printer"
	"whirl/internal/table"
)

func newHistoryCommand(opts *options) *cobra.Command {
	var limit int

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List recent runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := openHistory(opts)
			if err != nil {
				return err
			}

			list, err := records.List()
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
				return nil
			}
			if limit > 0 && len(list) > limit {
				list = list[:limit]
			}

			return renderRecords(list).Print(cmd.OutOrStdout(), "")
		},
	}
	historyCmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of runs to show (0 for all)")

	historyCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := openHistory(opts)
			if err != nil {
				return err
			}

			deleted, err := records.Clear()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d runs.\n", deleted)
			return nil
		},
	})

	historyCmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show one recorded run",
		Long:  "Show one recorded run. The ID may be shortened to any unique prefix, such as the one in the history listing.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := openHistory(opts)
			if err != nil {
				return err
			}

			id, err := resolveID(records, args[0])
			if err != nil {
				return err
			}
			rec, err := records.Load(id)
			if err != nil {
				return err
			}

			printRecord(cmd.OutOrStdout(), rec)
			return nil
		},
	})

	return historyCmd
}

// resolveID expands a unique ID prefix to the full record ID.
func resolveID(records *history.Manager, arg string) (string, error) {
	if uuid.Validate(arg) == nil {
		return arg, nil
	}
	if arg == "" {
		return "", errors.New("run ID is required")
	}

	list, err := records.List()
	if err != nil {
		return "", err
	}

	var match string
	for _, rec := range list {
		if rec.ID == "" || !strings.HasPrefix(rec.ID, arg) {
			continue
		}
		if match != "" {
			return "", fmt.Errorf("run ID %q is ambiguous", arg)
		}
		match = rec.ID
	}
	if match == "" {
		return "", fmt.Errorf("no run matches %q", arg)
	}
	return match, nil
}

func printRecord(w io.Writer, rec *history.Record) {
	fmt.Fprintf(w, "ID:       %s\n", rec.ID)
	fmt.Fprintf(w, "Command:  %s\n", rec.CommandLine())
	fmt.Fprintf(w, "Started:  %s\n", rec.StartedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Duration: %s\n", printer.FormatDuration(rec.Duration))
	fmt.Fprintf(w, "Exit:     %d\n", rec.ExitCode)
	if rec.Error != "" {
		fmt.Fprintf(w, "Error:    %s\n", rec.Error)
	}
}

func openHistory(opts *options) (*history.Manager, error) {
	return history.NewManager(opts.cfg.History.Dir)
}

// renderRecords builds the history listing table.
func renderRecords(records []*history.Record) *table.Table {
	tbl := table.New(
		table.Column{Header: "ID", MaxWidth: 8},
		table.Column{Header: "STARTED"},
		table.Column{Header: "DURATION", Align: table.AlignRight},
		table.Column{Header: "EXIT", Align: table.AlignRight},
		table.Column{Header: "COMMAND", MaxWidth: 60},
	)

	for _, rec := range records {
		exit := fmt.Sprintf("%d", rec.ExitCode)
		if rec.Error != "" {
			exit += "*"
		}
		tbl.AddRow(
			rec.ID[:min(8, len(rec.ID))],
			rec.StartedAt.Local().Format("2006-01-02 15:04:05"),
			printer.FormatDuration(rec.Duration),
			exit,
			rec.CommandLine(),
		)
	}
	return tbl
}
