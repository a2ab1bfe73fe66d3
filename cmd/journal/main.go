// Command journal builds a photo journal timeline from a JSON file of photo
// records without a database. It prints the same segment shape that the API
// serves at GET /timeline.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the top-level Cobra command.
var rootCmd = &cobra.Command{
	Use:           "journal",
	Short:         "Offline tools for the photo journal",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.AddCommand(newBuildCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
