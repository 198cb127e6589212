package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/webflash/webflash/pkg/core"
)

var (
	listJSON       bool
	listSearch     string
	listTags       []string
	listTagPattern string
	listUntagged   bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List flashcards in the collection",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc, _, err := openService()
		if err != nil {
			fatal("Failed to open collection", err)
		}

		cards, err := svc.List(context.Background(), core.Filter{
			Search:     listSearch,
			Tags:       listTags,
			TagPattern: listTagPattern,
			Untagged:   listUntagged,
		})
		if err != nil {
			fatal("Failed to list flashcards", err)
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(cards); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		for _, card := range cards {
			line := fmt.Sprintf("%s  %s", card.ID, card.Front)
			if len(card.Tags) > 0 {
				line += fmt.Sprintf("  [%s]", strings.Join(card.Tags, ", "))
			}
			fmt.Println(line)
		}
		fmt.Printf("%d card(s)\n", len(cards))
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&listSearch, "search", "", "Case-insensitive search over front/back")
	listCmd.Flags().StringSliceVar(&listTags, "tag", nil, "Filter by tag (any of, repeatable)")
	listCmd.Flags().StringVar(&listTagPattern, "tag-pattern", "", "Filter by tag glob (e.g. 'biology/**')")
	listCmd.Flags().BoolVar(&listUntagged, "untagged", false, "Only cards without tags")
}
