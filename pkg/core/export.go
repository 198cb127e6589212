package core

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// csvHeader is the fixed export column order. Existing spreadsheets
// depend on it, so it must not change.
var csvHeader = []string{"id", "front", "back", "created", "lastReviewed", "tags", "sourceTitle", "sourceUrl"}

// ExportJSON serializes a collection snapshot as indented JSON.
func ExportJSON(cards []Flashcard) ([]byte, error) {
	if cards == nil {
		cards = []Flashcard{}
	}
	return json.MarshalIndent(cards, "", "  ")
}

// ExportCSV serializes a collection snapshot as CSV. Free-text fields
// are quoted with embedded quotes doubled (standard CSV escaping, as
// produced by encoding/csv), tags are comma-joined inside their field.
func ExportCSV(cards []Flashcard) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, card := range cards {
		lastReviewed := ""
		if card.LastReviewed != nil {
			lastReviewed = card.LastReviewed.Format(time.RFC3339)
		}
		sourceTitle, sourceURL := "", ""
		if card.Source != nil {
			sourceTitle = card.Source.Title
			sourceURL = card.Source.URL
		}
		row := []string{
			card.ID,
			card.Front,
			card.Back,
			card.Created.Format(time.RFC3339),
			lastReviewed,
			strings.Join(card.Tags, ","),
			sourceTitle,
			sourceURL,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportFilename returns the conventional export file name for the
// given format ("json" or "csv"), stamped with today's date.
func ExportFilename(format string, now time.Time) string {
	return fmt.Sprintf("webflash-export-%s.%s", now.Format("2006-01-02"), format)
}
