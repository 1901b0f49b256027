package cli

import (
	"context"

	"github.com/medtrack/diabetes-monitor/internal/domain"
	"github.com/medtrack/diabetes-monitor/internal/services"
	"github.com/spf13/cobra"
)

// App bundles the services the commands operate on. The composition root
// constructs it once and passes it in; commands hold no state of their own.
type App struct {
	Patients     *services.PatientService
	Measurements *services.MeasurementService
	Insulin      *services.InsulinService
	Alerts       *services.AlertService
	Tracking     *services.TrackingService
}

func newRootCmd(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "diamon",
		Short:         "diamon tracks glucose measurements, insulin and daily habits",
		Long:          "diamon is a self-monitoring assistant for diabetic patients: it records glucose measurements, raises clinical alerts, recommends insulin dosing and tracks daily diet and exercise adherence.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newMeasureCmd(app),
		newInsulinCmd(app),
		newAlertsCmd(app),
		newDietCmd(app),
		newExerciseCmd(app),
	)
	return rootCmd
}

// Execute runs one CLI invocation against the assembled services.
func Execute(ctx context.Context, app *App) error {
	return newRootCmd(app).ExecuteContext(ctx)
}

// resolvePatient turns the user-facing national id into a patient row.
func resolvePatient(ctx context.Context, app *App, nationalID string) (*domain.Patient, error) {
	return app.Patients.GetByNationalID(ctx, nationalID)
}
