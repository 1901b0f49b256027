package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newMeasureCmd(app *App) *cobra.Command {
	measureCmd := &cobra.Command{
		Use:   "measure",
		Short: "Record and inspect blood sugar measurements",
	}

	var (
		addPatient string
		addValue   string
		addNotes   string
	)
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Record a blood sugar measurement",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			patient, err := resolvePatient(ctx, app, addPatient)
			if err != nil {
				return err
			}

			result, err := app.Measurements.RecordMeasurement(ctx, patient.ID, addValue, addNotes)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Measurement %d recorded (%s mg/dL)\n", result.MeasurementID, addValue)
			fmt.Fprintf(out, "Period: %s\n", result.Period)
			if !result.IsValid {
				fmt.Fprintln(out, "Warning: measurement taken outside standard windows")
			}
			for _, alert := range result.AlertsRaised {
				fmt.Fprintf(out, "Alert [%s]: %s\n", alert.Kind, alert.Message)
			}
			if rec := result.Recommendation; rec != nil {
				fmt.Fprintf(out, "Suggested insulin: %s, base %.1f units, %.2f units/g carbs\n",
					rec.InsulinType, rec.BaseUnits, rec.UnitPerCarb)
				if rec.Notes != "" {
					fmt.Fprintf(out, "Note: %s\n", rec.Notes)
				}
				fmt.Fprintf(out, "Use 'diamon insulin quote' to compute the total and 'diamon insulin confirm' to save a dose.\n")
			}
			return nil
		},
	}
	addCmd.Flags().StringVar(&addPatient, "patient", "", "Patient national id")
	addCmd.Flags().StringVar(&addValue, "value", "", "Sugar level in mg/dL")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "Optional notes")
	_ = addCmd.MarkFlagRequired("patient")
	_ = addCmd.MarkFlagRequired("value")

	var (
		listPatient string
		listDate    string
	)
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List measurements for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			patient, err := resolvePatient(ctx, app, listPatient)
			if err != nil {
				return err
			}

			day := time.Now()
			if listDate != "" {
				day, err = time.ParseInLocation("2006-01-02", listDate, time.Local)
				if err != nil {
					return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", listDate)
				}
			}

			measurements, err := app.Measurements.MeasurementsForDay(ctx, patient.ID, day)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "ID\tTIME\tLEVEL\tNOTES")
			for _, m := range measurements {
				fmt.Fprintf(out, "%d\t%s\t%.1f\t%s\n",
					m.ID, m.MeasuredAt.Format("15:04"), m.SugarLevel, m.Notes)
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&listPatient, "patient", "", "Patient national id")
	listCmd.Flags().StringVar(&listDate, "date", "", "Day to list (YYYY-MM-DD, default today)")
	_ = listCmd.MarkFlagRequired("patient")

	var (
		statsPatient string
		statsDays    int
	)
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show measurement statistics over recent days",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			patient, err := resolvePatient(ctx, app, statsPatient)
			if err != nil {
				return err
			}

			end := time.Now()
			start := end.AddDate(0, 0, -statsDays)
			stats, err := app.Measurements.Statistics(ctx, patient.ID, start, end)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Last %d days:\n", statsDays)
			fmt.Fprintf(out, "  Measurements: %d\n", stats.Total)
			fmt.Fprintf(out, "  Average: %.1f mg/dL\n", stats.Average)
			fmt.Fprintf(out, "  Min/Max: %.1f / %.1f mg/dL\n", stats.MinLevel, stats.MaxLevel)
			fmt.Fprintf(out, "  Low (<70): %d, High (>200): %d\n", stats.LowCount, stats.HighCount)
			return nil
		},
	}
	statsCmd.Flags().StringVar(&statsPatient, "patient", "", "Patient national id")
	statsCmd.Flags().IntVar(&statsDays, "days", 7, "Number of days to aggregate")
	_ = statsCmd.MarkFlagRequired("patient")

	measureCmd.AddCommand(addCmd, listCmd, statsCmd)
	return measureCmd
}
