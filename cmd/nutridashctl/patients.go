package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	patientsCmd := &cobra.Command{Use: "patients", Short: "Patient operations"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all patients (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet("/api/patients")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	patientsCmd.AddCommand(listCmd)

	getCmd := &cobra.Command{
		Use:   "get USER_ID",
		Short: "Get patient by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet("/api/patients/" + args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	patientsCmd.AddCommand(getCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete USER_ID",
		Short: "Delete patient by ID (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doDelete("/api/patients/" + args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	patientsCmd.AddCommand(deleteCmd)

	mealsCmd := &cobra.Command{
		Use:   "meals USER_ID",
		Short: "List a patient's meals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			days, _ := cmd.Flags().GetInt("days")
			path := "/api/patients/" + args[0] + "/meals"
			if days > 0 {
				path = fmt.Sprintf("%s?days=%d", path, days)
			}
			data, err := doGet(path)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	mealsCmd.Flags().IntP("days", "d", 0, "Trailing window in days (0 = full history)")
	patientsCmd.AddCommand(mealsCmd)

	rootCmd.AddCommand(patientsCmd)
}
