/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/valpere/waitlist/internal"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the local submission journal",
	Long:  `List, inspect, and clear the SQLite journal of submission attempts.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded submission attempts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		entries, err := db.ListAttempts(cmd.Context(), historyLimit)
		if err != nil {
			return fmt.Errorf("failed to list attempts: %w", err)
		}

		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No submissions recorded.")
			return nil
		}
		return printAttempts(cmd.OutOrStdout(), entries)
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <email>",
	Short: "List the attempts recorded for one address",
	Long: `List the attempts recorded for one address. Matching ignores case,
surrounding whitespace and Unicode composition.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		entries, err := db.AttemptsForEmail(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to list attempts: %w", err)
		}

		if len(entries) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No submissions recorded for %s.\n", args[0])
			return nil
		}
		return printAttempts(cmd.OutOrStdout(), entries)
	},
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show submission journal statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		stats, err := db.Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get stats: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Total attempts:   %d\n", stats.TotalAttempts)
		fmt.Fprintf(out, "Joined:           %d\n", stats.Joined)
		fmt.Fprintf(out, "Invalid:          %d\n", stats.Invalid)
		fmt.Fprintf(out, "Rejected:         %d\n", stats.Rejected)
		fmt.Fprintf(out, "Unreachable:      %d\n", stats.Unreachable)
		fmt.Fprintf(out, "Distinct emails:  %d\n", stats.DistinctEmails)
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a journal entry by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.DeleteAttempt(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to delete entry: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry: %s\n", args[0])
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all entries from the journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		n, err := db.ClearAttempts(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to clear journal: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d entries from the journal.\n", n)
		return nil
	},
}

func printAttempts(w io.Writer, entries []internal.Attempt) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tWHEN\tEMAIL\tOUTCOME\tSTATUS\tLATENCY\tDETAIL")
	for _, e := range entries {
		detail := e.Detail
		if r := []rune(detail); len(r) > 40 {
			detail = string(r[:37]) + "..."
		}
		status := "-"
		if e.StatusCode != 0 {
			status = fmt.Sprintf("%d", e.StatusCode)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.Timestamp.Format("2006-01-02 15:04"), e.Email, e.Outcome,
			status, e.Latency, detail)
	}
	return tw.Flush()
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum entries to show (0 = all)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyStatsCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyClearCmd)
}
