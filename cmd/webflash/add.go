package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/webflash/webflash/pkg/core"
)

var (
	addFront       string
	addBack        string
	addTags        []string
	addSourceTitle string
	addSourceURL   string
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a flashcard by hand",
	Run: func(cmd *cobra.Command, args []string) {
		svc, _, err := openService()
		if err != nil {
			fatal("Failed to open collection", err)
		}

		var source *core.Source
		if addSourceTitle != "" || addSourceURL != "" {
			source = &core.Source{Title: addSourceTitle, URL: addSourceURL}
		}

		card, err := svc.Create(context.Background(), addFront, addBack, source, addTags)
		if err != nil {
			fatal("Failed to create flashcard", err)
		}
		fmt.Printf("Flashcard created: %s\n", card.ID)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVar(&addFront, "front", "", "Front (question) text")
	addCmd.Flags().StringVar(&addBack, "back", "", "Back (answer) text")
	addCmd.Flags().StringSliceVar(&addTags, "tags", nil, "Comma separated tags")
	addCmd.Flags().StringVar(&addSourceTitle, "source-title", "", "Source page title")
	addCmd.Flags().StringVar(&addSourceURL, "source-url", "", "Source page URL")
	addCmd.MarkFlagRequired("front")
	addCmd.MarkFlagRequired("back")
}
