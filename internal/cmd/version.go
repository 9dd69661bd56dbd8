package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/proc-cli/proc/internal/style"
)

// Version is the proc release version.
const Version = "0.4.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s %s\n", style.Bold.Render("proc"), Version)
		fmt.Println(style.Dim.Render("https://github.com/proc-cli/proc"))
		fmt.Println(style.Dim.Render("License: MIT"))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
