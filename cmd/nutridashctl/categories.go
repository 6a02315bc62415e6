package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	categoriesCmd := &cobra.Command{Use: "categories", Short: "Category operations"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List categories with usage counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet("/api/categories")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	categoriesCmd.AddCommand(listCmd)

	var description string
	createCmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create an explicit category (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doPostJSON("/api/categories", map[string]string{
				"name":        args[0],
				"description": description,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	createCmd.Flags().StringVarP(&description, "description", "d", "", "Category description")
	categoriesCmd.AddCommand(createCmd)

	renameCmd := &cobra.Command{
		Use:   "rename CATEGORY_ID NEW_NAME",
		Short: "Rename an explicit category (admin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doPatchJSON("/api/categories/"+args[0], map[string]string{"name": args[1]})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	categoriesCmd.AddCommand(renameCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete CATEGORY_ID",
		Short: "Delete an explicit category (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doDelete("/api/categories/" + args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	categoriesCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(categoriesCmd)
}
