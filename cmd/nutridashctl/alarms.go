package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	alarmsCmd := &cobra.Command{Use: "alarms", Short: "Reminder operations"}

	listCmd := &cobra.Command{
		Use:   "list USER_ID",
		Short: "List a patient's alarms",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet("/api/patients/" + args[0] + "/alarms")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	alarmsCmd.AddCommand(listCmd)

	var text, timeOfDay string
	var interval int
	createCmd := &cobra.Command{
		Use:   "create USER_ID",
		Short: "Create an alarm for a patient (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{"text": text}
			if timeOfDay != "" {
				payload["timeOfDay"] = timeOfDay
			}
			if interval > 0 {
				payload["intervalMinutes"] = interval
			}
			data, err := doPostJSON("/api/patients/"+args[0]+"/alarms", payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	createCmd.Flags().StringVarP(&text, "text", "x", "", "Reminder text (required)")
	createCmd.Flags().StringVar(&timeOfDay, "time", "", "Time of day, e.g. 08:30")
	createCmd.Flags().IntVar(&interval, "interval", 0, "Repeat interval in minutes")
	_ = createCmd.MarkFlagRequired("text")
	alarmsCmd.AddCommand(createCmd)

	sendCmd := &cobra.Command{
		Use:   "send ALARM_ID",
		Short: "Deliver an alarm immediately through the gateway (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doPostJSON("/api/alarms/"+args[0]+"/send", nil)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	alarmsCmd.AddCommand(sendCmd)

	var active bool
	toggleCmd := &cobra.Command{
		Use:   "toggle ALARM_ID",
		Short: "Activate or deactivate an alarm (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doPatchJSON("/api/alarms/"+args[0], map[string]interface{}{"active": active})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	toggleCmd.Flags().BoolVar(&active, "active", true, "Target state")
	alarmsCmd.AddCommand(toggleCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete ALARM_ID",
		Short: "Delete an alarm (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doDelete("/api/alarms/" + args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	alarmsCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(alarmsCmd)
}
