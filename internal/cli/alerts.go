package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newAlertsCmd(app *App) *cobra.Command {
	alertsCmd := &cobra.Command{
		Use:   "alerts",
		Short: "List and acknowledge clinical alerts",
	}

	var (
		listPatient string
		listUnread  bool
	)
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List alerts for a patient",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			patient, err := resolvePatient(ctx, app, listPatient)
			if err != nil {
				return err
			}

			alerts, err := app.Alerts.ListAlerts(ctx, patient.ID, listUnread)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "ID\tTIME\tKIND\tPRIORITY\tREAD\tMESSAGE")
			for _, a := range alerts {
				read := "no"
				if a.IsRead {
					read = "yes"
				}
				fmt.Fprintf(out, "%d\t%s\t%s\t%s\t%s\t%s\n",
					a.ID, a.AlertTime.Format("2006-01-02 15:04"), a.Kind, a.Priority, read, a.Message)
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&listPatient, "patient", "", "Patient national id")
	listCmd.Flags().BoolVar(&listUnread, "unread", false, "Only unread alerts")
	_ = listCmd.MarkFlagRequired("patient")

	readCmd := &cobra.Command{
		Use:   "read <alert-id>",
		Short: "Mark an alert as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid alert id %q", args[0])
			}
			if err := app.Alerts.MarkAlertRead(cmd.Context(), uint(id)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Alert %d marked as read\n", id)
			return nil
		},
	}

	alertsCmd.AddCommand(listCmd, readCmd)
	return alertsCmd
}
