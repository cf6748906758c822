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
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/valpere/waitlist/internal/batch"
	"github.com/valpere/waitlist/internal/config"
	"github.com/valpere/waitlist/internal/form"
	"github.com/valpere/waitlist/internal/messages"
	"github.com/valpere/waitlist/internal/submitter"
)

var (
	importInputFile  string
	importOutputFile string
	importColumn     int
	importHeader     bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Submit every address in a column of a CSV file",
	Long: `Submit the email addresses found in one column of a CSV file.

Each address is submitted independently, exactly as "waitlist join" would do
it. Duplicate addresses are sent once per row unless --single-flight is set,
in which case concurrent submissions of the same address share one request.

Example:
  waitlist import -i signups.csv --header -l 2
  waitlist import -i signups.csv -o results.csv --concurrency 8`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if importInputFile == importOutputFile {
			return fmt.Errorf("input file and output file cannot be the same")
		}

		emails, err := readEmailColumn(importInputFile, importColumn, importHeader)
		if err != nil {
			return err
		}
		if len(emails) == 0 {
			return fmt.Errorf("no email addresses found in %s", importInputFile)
		}

		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		var extra []submitter.Option
		if cfg.SingleFlight {
			extra = append(extra, submitter.WithSingleFlight(&singleflight.Group{}))
		}

		runner := batch.New(func(f form.Form) batch.Submitter {
			return sess.submitter(f, extra...)
		}, batch.Config{Concurrency: cfg.Concurrency, Logger: logger})

		logger.Debug("Starting import",
			zap.String("file", importInputFile),
			zap.Int("addresses", len(emails)),
			zap.Int("concurrency", cfg.Concurrency))

		report := runner.Run(cmd.Context(), emails)

		if err := printReport(cmd.OutOrStdout(), report); err != nil {
			return err
		}

		if importOutputFile != "" {
			if err := writeReport(importOutputFile, report); err != nil {
				return err
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), sess.msgs.Sprintf(messages.BatchSummary,
			len(report.Results), report.Joined, report.Invalid, report.Rejected, report.Unreachable, report.Skipped))
		return nil
	},
}

// readEmailColumn returns the trimmed values of column col, skipping the first
// row when header is set. Rows too short to hold the column yield "".
func readEmailColumn(path string, col int, header bool) ([]string, error) {
	if col < 0 {
		return nil, fmt.Errorf("column index must not be negative: %d", col)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input CSV: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	if header && len(records) > 0 {
		records = records[1:]
	}

	emails := make([]string, 0, len(records))
	for _, row := range records {
		value := ""
		if col < len(row) {
			value = strings.TrimSpace(row[col])
		}
		emails = append(emails, value)
	}
	return emails, nil
}

func printReport(w io.Writer, report *batch.Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ROW\tEMAIL\tOUTCOME\tNOTE")
	for _, res := range report.Results {
		note := res.Alert
		if note == "" {
			note = res.Message
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", res.Index+1, res.Email, res.Outcome, note)
	}
	return tw.Flush()
}

func writeReport(path string, report *batch.Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write([]string{"row", "email", "outcome", "alert", "message"}); err != nil {
		return fmt.Errorf("failed to write output CSV: %w", err)
	}
	for _, res := range report.Results {
		record := []string{strconv.Itoa(res.Index + 1), res.Email, string(res.Outcome), res.Alert, res.Message}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write output CSV: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVarP(&importInputFile, "input", "i", "", "Input CSV file (required)")
	importCmd.Flags().StringVarP(&importOutputFile, "output", "o", "", "Write per-row results to this CSV file")
	importCmd.Flags().IntVarP(&importColumn, "column", "l", 0, "Column holding the email address (0-indexed)")
	importCmd.Flags().BoolVar(&importHeader, "header", false, "Skip the first row")
	importCmd.Flags().Int("concurrency", config.DefaultConcurrency, "Maximum submissions in flight")
	importCmd.Flags().Bool("single-flight", false, "Share one request among concurrent submissions of the same address")

	importCmd.MarkFlagRequired("input")
}
