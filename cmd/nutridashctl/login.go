package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	var name, email, password string

	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print a session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{}
			switch {
			case name != "":
				payload["type"] = "patient"
				payload["name"] = name
			case email != "":
				payload["type"] = "admin"
				payload["email"] = email
				payload["password"] = password
			default:
				return fmt.Errorf("--name (patient) or --email/--password (admin) required")
			}
			data, err := doPostJSON("/api/auth/login", payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	loginCmd.Flags().StringVarP(&name, "name", "n", "", "Patient name")
	loginCmd.Flags().StringVarP(&email, "email", "e", "", "Admin email")
	loginCmd.Flags().StringVarP(&password, "password", "p", "", "Admin password")
	rootCmd.AddCommand(loginCmd)
}
