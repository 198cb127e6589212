package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/webflash/webflash/pkg/core"
	"github.com/webflash/webflash/pkg/study"
)

var (
	studySearch     string
	studyTags       []string
	studyTagPattern string
	studyUntagged   bool
)

var studyCmd = &cobra.Command{
	Use:   "study",
	Short: "Review flashcards one at a time",
	Long: `Study steps through the matching cards front first. Press enter to
reveal the back, enter again to advance, or q to quit.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc, _, err := openService()
		if err != nil {
			fatal("Failed to open collection", err)
		}

		ctx := context.Background()
		deck, err := svc.List(ctx, core.Filter{
			Search:     studySearch,
			Tags:       studyTags,
			TagPattern: studyTagPattern,
			Untagged:   studyUntagged,
		})
		if err != nil {
			fatal("Failed to load collection", err)
		}

		session := study.NewSession(svc)
		session.Start(deck)
		if !session.Active() {
			fmt.Println("No flashcards to study.")
			return
		}

		reader := bufio.NewReader(os.Stdin)
		for session.Active() {
			card, _ := session.Current()
			pos, total := session.Progress()
			fmt.Printf("\n[%d/%d] %s\n", pos, total, card.Front)
			if len(card.Tags) > 0 {
				fmt.Printf("tags: %s\n", strings.Join(card.Tags, ", "))
			}

			if quitRequested(reader, "(enter to reveal, q to quit) ") {
				session.Exit()
				break
			}
			session.Reveal()
			fmt.Printf("\n%s\n", card.Back)

			if quitRequested(reader, "(enter for next, q to quit) ") {
				session.Exit()
				break
			}
			if err := session.Advance(ctx); err != nil {
				fatal("Failed to record review", err)
			}
		}
		fmt.Println("\nSession finished.")
	},
}

func quitRequested(reader *bufio.Reader, prompt string) bool {
	fmt.Print(prompt)
	line, err := reader.ReadString('\n')
	if err != nil {
		return true
	}
	return strings.TrimSpace(line) == "q"
}

func init() {
	rootCmd.AddCommand(studyCmd)
	studyCmd.Flags().StringVar(&studySearch, "search", "", "Only cards whose text contains this term")
	studyCmd.Flags().StringSliceVar(&studyTags, "tag", nil, "Only cards carrying one of these tags")
	studyCmd.Flags().StringVar(&studyTagPattern, "tag-pattern", "", "Only cards with a tag matching this glob")
	studyCmd.Flags().BoolVar(&studyUntagged, "untagged", false, "Only cards without tags")
}
