package core

import "testing"

func card(front, back string, tags ...string) Flashcard {
	return Flashcard{ID: NewID(), Front: front, Back: back, Tags: tags}
}

func TestFilter_Zero(t *testing.T) {
	f := Filter{}
	if !f.IsZero() {
		t.Error("zero filter must report IsZero")
	}
	if !f.Matches(card("anything", "at all")) {
		t.Error("zero filter must match everything")
	}
}

func TestFilter_Search(t *testing.T) {
	tests := []struct {
		name   string
		search string
		card   Flashcard
		want   bool
	}{
		{"front match", "mitochondria", card("The Mitochondria", "powerhouse"), true},
		{"back match", "powerhouse", card("organelle", "The POWERHOUSE of the cell"), true},
		{"case-insensitive", "MITO", card("mitochondria", "x"), true},
		{"substring", "chond", card("mitochondria", "x"), true},
		{"no match", "ribosome", card("mitochondria", "powerhouse"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter{Search: tt.search}.Matches(tt.card)
			if got != tt.want {
				t.Errorf("Matches = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_Tags(t *testing.T) {
	tagged := card("f", "b", "bio", "chem")
	bare := card("f", "b")

	anyOf := Filter{Tags: []string{"chem", "physics"}}
	if !anyOf.Matches(tagged) {
		t.Error("any-of tag filter must match a card carrying one of the tags")
	}
	if anyOf.Matches(bare) {
		t.Error("any-of tag filter must reject an untagged card")
	}

	untagged := Filter{Untagged: true}
	if untagged.Matches(tagged) {
		t.Error("untagged filter must reject tagged cards")
	}
	if !untagged.Matches(bare) {
		t.Error("untagged filter must match untagged cards")
	}
}

func TestFilter_TagPattern(t *testing.T) {
	c := card("f", "b", "biology/cells", "misc")

	if !(Filter{TagPattern: "biology/**"}).Matches(c) {
		t.Error("glob pattern must match hierarchical tag")
	}
	if (Filter{TagPattern: "chemistry/**"}).Matches(c) {
		t.Error("glob pattern must not match unrelated tags")
	}
}

func TestFilter_Compose(t *testing.T) {
	c := card("mitochondria", "powerhouse", "bio")

	both := Filter{Search: "mito", Tags: []string{"bio"}}
	if !both.Matches(c) {
		t.Error("search AND tag filter must match")
	}

	wrongTag := Filter{Search: "mito", Tags: []string{"chem"}}
	if wrongTag.Matches(c) {
		t.Error("filters compose with AND")
	}
}
