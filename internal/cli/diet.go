package cli

import (
	"fmt"
	"time"

	"github.com/medtrack/diabetes-monitor/internal/domain"
	"github.com/spf13/cobra"
)

func newDietCmd(app *App) *cobra.Command {
	dietCmd := &cobra.Command{
		Use:   "diet",
		Short: "Track daily diet adherence",
	}

	var (
		logPatient string
		logType    string
		logNotes   string
	)
	logCmd := &cobra.Command{
		Use:   "log",
		Short: "Log today's diet (overwrites an earlier entry for today)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			patient, err := resolvePatient(ctx, app, logPatient)
			if err != nil {
				return err
			}

			id, err := app.Tracking.LogDiet(ctx, patient.ID, logType, logNotes)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Diet entry %d saved\n", id)
			return nil
		},
	}
	logCmd.Flags().StringVar(&logPatient, "patient", "", "Patient national id")
	logCmd.Flags().StringVar(&logType, "type", "", "Diet type name")
	logCmd.Flags().StringVar(&logNotes, "notes", "", "Optional notes")
	_ = logCmd.MarkFlagRequired("patient")
	_ = logCmd.MarkFlagRequired("type")

	typesCmd := &cobra.Command{
		Use:   "types",
		Short: "List available diet types",
		RunE: func(cmd *cobra.Command, args []string) error {
			types, err := app.Tracking.DietTypes(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "NAME\tDESCRIPTION")
			for _, t := range types {
				fmt.Fprintf(out, "%s\t%s\n", t.Name, t.Description)
			}
			return nil
		},
	}

	var todayPatient string
	todayCmd := &cobra.Command{
		Use:   "today",
		Short: "Show today's diet entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			patient, err := resolvePatient(ctx, app, todayPatient)
			if err != nil {
				return err
			}

			entries, err := app.Tracking.DailyEntries(ctx, patient.ID, domain.CategoryDiet, time.Now())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No diet entry for today")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(out, "Entry %d: type %d, status %s, notes %q\n", e.ID, e.TypeID, e.Status, e.Notes)
			}
			return nil
		},
	}
	todayCmd.Flags().StringVar(&todayPatient, "patient", "", "Patient national id")
	_ = todayCmd.MarkFlagRequired("patient")

	dietCmd.AddCommand(logCmd, typesCmd, todayCmd)
	return dietCmd
}
