package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List all tags in use",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc, _, err := openService()
		if err != nil {
			fatal("Failed to open collection", err)
		}

		tags, err := svc.ListTags(context.Background())
		if err != nil {
			fatal("Failed to list tags", err)
		}
		for _, tag := range tags {
			fmt.Println(tag)
		}
	},
}

func init() {
	rootCmd.AddCommand(tagsCmd)
}
