package commands

import (
	"fmt"

	devenv "scraperindex/dev/env"
	"scraperindex/lib/output"
	"scraperindex/lib/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate [output dir]",
	Short: "Checks that a previous analysis wrote well formed output.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := cfg.OutputDir
		if len(args) > 0 {
			dir = args[0]
		}
		dir, err := devenv.ResolvePath(dir)
		if err != nil {
			serviceutil.Fatal("failed to resolve output dir", err)
		}

		err = output.Validate(dir)
		if err != nil {
			serviceutil.Fatal("output is invalid", err)
		}
		fmt.Println("output is valid:", dir)
	},
}
