// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "swimfed-admin",
	Short: "swimfed-admin is the backend of the regional swim federation website",
	Long: `swimfed-admin serves the regional swim federation website backend:
the member back office for news, meets, records, seminars and live streams,
the public read endpoints, and the edge cache publisher.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
