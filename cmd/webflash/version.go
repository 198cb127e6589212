package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/webflash/webflash"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the webflash version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("webflash %s\n", webflash.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
