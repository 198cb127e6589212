package core

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestExportJSON(t *testing.T) {
	cards := []Flashcard{
		{ID: "1", Front: "f", Back: "b", Created: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
	data, err := ExportJSON(cards)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	var got []Flashcard
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("export not re-parseable: %v", err)
	}
	if len(got) != 1 || got[0].ID != "1" {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestExportJSON_EmptyCollection(t *testing.T) {
	data, err := ExportJSON(nil)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("empty collection must export as [], got %s", data)
	}
}

func TestExportCSV_HeaderAndOrder(t *testing.T) {
	data, err := ExportCSV(nil)
	if err != nil {
		t.Fatalf("ExportCSV failed: %v", err)
	}
	want := "id,front,back,created,lastReviewed,tags,sourceTitle,sourceUrl"
	first := strings.SplitN(string(data), "\n", 2)[0]
	if strings.TrimRight(first, "\r") != want {
		t.Errorf("header = %q, want %q", first, want)
	}
}

func TestExportCSV_QuoteEscaping(t *testing.T) {
	reviewed := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)
	cards := []Flashcard{
		{
			ID:           "x1",
			Front:        `He said "hello" to me`,
			Back:         "plain back",
			Tags:         []string{"a", "b"},
			Source:       &Source{Title: "A Page", URL: "http://example.com"},
			Created:      time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			LastReviewed: &reviewed,
		},
	}

	data, err := ExportCSV(cards)
	if err != nil {
		t.Fatalf("ExportCSV failed: %v", err)
	}

	// Embedded quotes are doubled inside a quoted field.
	if !bytes.Contains(data, []byte(`"He said ""hello"" to me"`)) {
		t.Errorf("quote escaping wrong:\n%s", data)
	}

	// And the output re-parses back to the original text.
	r := csv.NewReader(bytes.NewReader(data))
	rows, err := r.ReadAll()
	if err != nil {
		t.Fatalf("export not re-parseable: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d rows", len(rows))
	}
	row := rows[1]
	if row[1] != `He said "hello" to me` {
		t.Errorf("front = %q", row[1])
	}
	if row[5] != "a,b" {
		t.Errorf("tags field = %q, want comma-joined", row[5])
	}
	if row[6] != "A Page" || row[7] != "http://example.com" {
		t.Errorf("source fields = %q, %q", row[6], row[7])
	}
}

func TestExportCSV_NilOptionalFields(t *testing.T) {
	cards := []Flashcard{{ID: "1", Front: "f", Back: "b", Created: time.Now()}}
	data, err := ExportCSV(cards)
	if err != nil {
		t.Fatalf("ExportCSV failed: %v", err)
	}
	r := csv.NewReader(bytes.NewReader(data))
	rows, _ := r.ReadAll()
	row := rows[1]
	if row[4] != "" || row[6] != "" || row[7] != "" {
		t.Errorf("nil lastReviewed/source must export as empty fields: %v", row)
	}
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2025, 3, 1, 15, 4, 5, 0, time.UTC)
	if got := ExportFilename("csv", now); got != "webflash-export-2025-03-01.csv" {
		t.Errorf("ExportFilename = %q", got)
	}
}
