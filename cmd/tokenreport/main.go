package main

import (
	"os"

	"github.com/h2hsecure/tokenreport/cmd/tokenreport/apps"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:               "tokenreport",
	Short:             "Print the current user's access token and Open ID",
	Long:              apps.AppDescription,
	PersistentPreRunE: apps.Setup,
}

func main() {
	apps.BindFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(apps.ReportCmd)
	rootCmd.AddCommand(apps.SnapshotCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(2)
	}
}
