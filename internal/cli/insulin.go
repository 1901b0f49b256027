package cli

import (
	"fmt"
	"time"

	"github.com/medtrack/diabetes-monitor/internal/domain"
	"github.com/spf13/cobra"
)

func parseMealContext(s string) (domain.MealContext, error) {
	switch s {
	case "fasting":
		return domain.MealContextFasting, nil
	case "post_meal", "post-meal":
		return domain.MealContextPostMeal, nil
	default:
		return "", fmt.Errorf("invalid meal context %q, expected fasting or post_meal", s)
	}
}

func newInsulinCmd(app *App) *cobra.Command {
	insulinCmd := &cobra.Command{
		Use:   "insulin",
		Short: "Insulin dosing quotes, confirmations and history",
	}

	var (
		quoteLevel float64
		quoteMeal  string
		quoteCarbs float64
	)
	quoteCmd := &cobra.Command{
		Use:   "quote",
		Short: "Compute a dosing quote without saving anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			meal, err := parseMealContext(quoteMeal)
			if err != nil {
				return err
			}

			rec, err := app.Insulin.Recommend(cmd.Context(), quoteLevel, meal)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if rec == nil {
				fmt.Fprintf(out, "No dosing rule covers %.1f mg/dL (%s)\n", quoteLevel, meal)
				return nil
			}

			fmt.Fprintf(out, "Insulin type: %s\n", rec.InsulinType)
			fmt.Fprintf(out, "Base units: %.1f\n", rec.BaseUnits)
			fmt.Fprintf(out, "Units per carb gram: %.2f\n", rec.UnitPerCarb)
			if rec.Notes != "" {
				fmt.Fprintf(out, "Note: %s\n", rec.Notes)
			}

			if cmd.Flags().Changed("carbs") {
				total, err := app.Insulin.ComputeTotal(rec.BaseUnits, rec.UnitPerCarb, quoteCarbs)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Total for %.0f g carbs: %.1f units\n", quoteCarbs, total)
			}
			return nil
		},
	}
	quoteCmd.Flags().Float64Var(&quoteLevel, "level", 0, "Sugar level in mg/dL")
	quoteCmd.Flags().StringVar(&quoteMeal, "meal", "fasting", "Meal context: fasting or post_meal")
	quoteCmd.Flags().Float64Var(&quoteCarbs, "carbs", 0, "Carbohydrates to be eaten, in grams")
	_ = quoteCmd.MarkFlagRequired("level")

	var (
		confirmPatient     string
		confirmMeasurement uint
		confirmType        string
		confirmUnits       float64
		confirmNotes       string
	)
	confirmCmd := &cobra.Command{
		Use:   "confirm",
		Short: "Save a dose the patient actually took",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			patient, err := resolvePatient(ctx, app, confirmPatient)
			if err != nil {
				return err
			}

			id, err := app.Insulin.Confirm(ctx, patient.ID, confirmMeasurement, confirmType, confirmUnits, confirmNotes)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Insulin record %d saved\n", id)
			return nil
		},
	}
	confirmCmd.Flags().StringVar(&confirmPatient, "patient", "", "Patient national id")
	confirmCmd.Flags().UintVar(&confirmMeasurement, "measurement", 0, "Measurement id the dose responds to")
	confirmCmd.Flags().StringVar(&confirmType, "type", "", "Insulin type")
	confirmCmd.Flags().Float64Var(&confirmUnits, "units", 0, "Total units taken")
	confirmCmd.Flags().StringVar(&confirmNotes, "notes", "", "Optional notes")
	_ = confirmCmd.MarkFlagRequired("patient")
	_ = confirmCmd.MarkFlagRequired("measurement")
	_ = confirmCmd.MarkFlagRequired("type")
	_ = confirmCmd.MarkFlagRequired("units")

	var (
		historyPatient string
		historyDays    int
	)
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List confirmed doses",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			patient, err := resolvePatient(ctx, app, historyPatient)
			if err != nil {
				return err
			}

			since := time.Now().AddDate(0, 0, -historyDays)
			records, err := app.Insulin.History(ctx, patient.ID, since)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "ID\tGIVEN\tTYPE\tUNITS\tMEASUREMENT\tNOTES")
			for _, r := range records {
				fmt.Fprintf(out, "%d\t%s\t%s\t%.1f\t%d\t%s\n",
					r.ID, r.GivenAt.Format("2006-01-02 15:04"), r.InsulinType, r.TotalUnits, r.MeasurementID, r.Notes)
			}
			return nil
		},
	}
	historyCmd.Flags().StringVar(&historyPatient, "patient", "", "Patient national id")
	historyCmd.Flags().IntVar(&historyDays, "days", 7, "Number of days to list")
	_ = historyCmd.MarkFlagRequired("patient")

	insulinCmd.AddCommand(quoteCmd, confirmCmd, historyCmd)
	return insulinCmd
}
