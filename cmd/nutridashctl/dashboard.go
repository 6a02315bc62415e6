package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	dashboardCmd := &cobra.Command{Use: "dashboard", Short: "Dashboard views"}

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Today's totals and goal status for every patient (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet("/api/dashboard")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	dashboardCmd.AddCommand(summaryCmd)

	detailCmd := &cobra.Command{
		Use:   "detail USER_ID",
		Short: "Drill-down view for one patient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet("/api/dashboard/patients/" + args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	dashboardCmd.AddCommand(detailCmd)

	seriesCmd := &cobra.Command{
		Use:   "series USER_ID",
		Short: "Trailing day series for one patient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			days, _ := cmd.Flags().GetInt("days")
			path := "/api/dashboard/patients/" + args[0] + "/series"
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
	seriesCmd.Flags().IntP("days", "d", 0, "Window length in days (default 30)")
	dashboardCmd.AddCommand(seriesCmd)

	breakdownCmd := &cobra.Command{
		Use:   "breakdown",
		Short: "Calories by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, _ := cmd.Flags().GetString("owner")
			path := "/api/dashboard/categories"
			if owner != "" {
				path += "?ownerId=" + owner
			}
			data, err := doGet(path)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	breakdownCmd.Flags().StringP("owner", "o", "", "Limit to one patient's meals")
	dashboardCmd.AddCommand(breakdownCmd)

	rootCmd.AddCommand(dashboardCmd)
}
