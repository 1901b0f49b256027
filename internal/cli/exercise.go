package cli

import (
	"fmt"
	"time"

	"github.com/medtrack/diabetes-monitor/internal/domain"
	"github.com/spf13/cobra"
)

func newExerciseCmd(app *App) *cobra.Command {
	exerciseCmd := &cobra.Command{
		Use:   "exercise",
		Short: "Track daily exercise adherence",
	}

	var (
		logPatient  string
		logType     string
		logDuration int
		logNotes    string
	)
	logCmd := &cobra.Command{
		Use:   "log",
		Short: "Log today's exercise (overwrites an earlier entry for today)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			patient, err := resolvePatient(ctx, app, logPatient)
			if err != nil {
				return err
			}

			id, err := app.Tracking.LogExercise(ctx, patient.ID, logType, logDuration, logNotes)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exercise entry %d saved (%d minutes)\n", id, logDuration)
			return nil
		},
	}
	logCmd.Flags().StringVar(&logPatient, "patient", "", "Patient national id")
	logCmd.Flags().StringVar(&logType, "type", "", "Exercise type name")
	logCmd.Flags().IntVar(&logDuration, "duration", 0, "Duration in minutes")
	logCmd.Flags().StringVar(&logNotes, "notes", "", "Optional notes")
	_ = logCmd.MarkFlagRequired("patient")
	_ = logCmd.MarkFlagRequired("type")
	_ = logCmd.MarkFlagRequired("duration")

	typesCmd := &cobra.Command{
		Use:   "types",
		Short: "List available exercise types",
		RunE: func(cmd *cobra.Command, args []string) error {
			types, err := app.Tracking.ExerciseTypes(cmd.Context())
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
		Short: "Show today's exercise entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			patient, err := resolvePatient(ctx, app, todayPatient)
			if err != nil {
				return err
			}

			entries, err := app.Tracking.DailyEntries(ctx, patient.ID, domain.CategoryExercise, time.Now())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No exercise entry for today")
				return nil
			}
			for _, e := range entries {
				duration := 0
				if e.Duration != nil {
					duration = *e.Duration
				}
				fmt.Fprintf(out, "Entry %d: type %d, %d minutes, status %s, notes %q\n",
					e.ID, e.TypeID, duration, e.Status, e.Notes)
			}
			return nil
		},
	}
	todayCmd.Flags().StringVar(&todayPatient, "patient", "", "Patient national id")
	_ = todayCmd.MarkFlagRequired("patient")

	exerciseCmd.AddCommand(logCmd, typesCmd, todayCmd)
	return exerciseCmd
}
