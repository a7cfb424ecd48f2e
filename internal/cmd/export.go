package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/lccn-predictor/lazyrating/internal/predictor"
	"github.com/lccn-predictor/lazyrating/internal/reshape"
	"github.com/lccn-predictor/lazyrating/internal/ui/views"
)

const (
	exportPageSize  = 100
	recordsSheet    = "Records"
	questionsSheet  = "Questions"
	defaultSheet    = "Sheet1"
	recordsColWidth = 16
)

var recordsHeader = []any{
	"Rank", "Username", "Region", "Country", "Score", "Finish Time",
	"Old Rating", "Delta", "New Rating", "Attended Contests",
}

func newExportCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:     "export <contest>",
		Short:   "Write a contest's predicted records and question chart data to a spreadsheet.",
		Example: "  lazyrating export weekly-contest-400 -o weekly-400.xlsx",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contest := strings.TrimSpace(args[0])
			path := output
			if path == "" {
				path = contest + ".xlsx"
			}
			return withSession(cmd, func(s *session) error {
				if err := runExport(cmd.Context(), s.client, contest, path, s.logger); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", filepath.Clean(path))
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, defaults to <contest>.xlsx")
	return cmd
}

// runExport writes every predicted record of contest on one sheet and the
// question finished counts in long format on another.
func runExport(ctx context.Context, api predictor.API, contest, path string, logger *slog.Logger) error {
	records, err := allRecords(ctx, api, contest)
	if err != nil {
		return err
	}
	questions, err := api.Questions(ctx, contest)
	if err != nil {
		return err
	}
	dataset := reshape.Reshape(reshape.QuestionFinished, views.QuestionEntities(questions))
	logger.Info("export", "contest", contest, "records", len(records), "rows", len(dataset.Rows))

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn("close workbook", "error", err)
		}
	}()

	if err := f.SetSheetName(defaultSheet, recordsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeRecords(f, records); err != nil {
		return err
	}
	if _, err := f.NewSheet(questionsSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if err := writeDataset(f, questionsSheet, dataset); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func allRecords(ctx context.Context, api predictor.API, contest string) ([]predictor.Record, error) {
	total, err := api.RecordsCount(ctx, contest)
	if err != nil {
		return nil, err
	}
	records := make([]predictor.Record, 0, total)
	for skip := 0; skip < total; skip += exportPageSize {
		page, err := api.Records(ctx, contest, skip, exportPageSize)
		if err != nil {
			return nil, err
		}
		records = append(records, page...)
		if len(page) < exportPageSize {
			break
		}
	}
	return records, nil
}

func writeRecords(f *excelize.File, records []predictor.Record) error {
	if err := setRow(f, recordsSheet, 1, recordsHeader); err != nil {
		return err
	}
	for i, r := range records {
		row := []any{
			r.Rank,
			r.Username,
			r.DataRegion,
			r.CountryName,
			r.Score,
			timeCell(r.FinishTime),
			floatCell(r.OldRating),
			floatCell(r.DeltaRating),
			floatCell(r.NewRating),
			intCell(r.AttendedContestsCount),
		}
		if err := setRow(f, recordsSheet, i+2, row); err != nil {
			return err
		}
	}
	lastCol, err := excelize.ColumnNumberToName(len(recordsHeader))
	if err != nil {
		return fmt.Errorf("column name: %w", err)
	}
	if err := f.SetColWidth(recordsSheet, "A", lastCol, recordsColWidth); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	return nil
}

func writeDataset(f *excelize.File, sheet string, dataset reshape.Dataset) error {
	header := dataset.Header()
	if err := setRow(f, sheet, 1, []any{header[0], header[1], header[2]}); err != nil {
		return err
	}
	for i, row := range dataset.Rows {
		if err := setRow(f, sheet, i+2, []any{row.Minute, row.Label, row.Value}); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func floatCell(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func intCell(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func timeCell(t predictor.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format("2006-01-02 15:04:05")
}
