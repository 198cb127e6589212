package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/webflash/webflash/pkg/core"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the full collection as JSON or CSV",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc, _, err := openService()
		if err != nil {
			fatal("Failed to open collection", err)
		}

		cards, err := svc.List(context.Background(), core.Filter{})
		if err != nil {
			fatal("Failed to load collection", err)
		}

		var data []byte
		switch exportFormat {
		case "json":
			data, err = core.ExportJSON(cards)
		case "csv":
			data, err = core.ExportCSV(cards)
		default:
			fatal("Unknown export format", fmt.Errorf("%q (want json or csv)", exportFormat))
		}
		if err != nil {
			fatal("Failed to serialize collection", err)
		}

		out := exportOut
		if out == "" {
			out = core.ExportFilename(exportFormat, time.Now())
		}
		if out == "-" {
			_, _ = os.Stdout.Write(data)
			return
		}
		if err := os.WriteFile(out, data, 0644); err != nil {
			fatal("Failed to write export", err)
		}
		fmt.Printf("Exported %d card(s) to %s\n", len(cards), out)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Export format: json or csv")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file ('-' for stdout; default webflash-export-<date>.<format>)")
}
