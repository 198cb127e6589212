package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a flashcard from the collection",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]

		svc, _, err := openService()
		if err != nil {
			fatal("Failed to open collection", err)
		}

		removed, err := svc.Delete(context.Background(), id)
		if err != nil {
			fatal("Failed to delete flashcard", err)
		}
		if removed {
			fmt.Printf("Flashcard deleted: %s\n", id)
		} else {
			fmt.Printf("No flashcard with id %s\n", id)
		}
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
