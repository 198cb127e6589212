// Package study implements the sequential review pass over a filtered
// flashcard deck.
package study

import (
	"context"

	"github.com/webflash/webflash/pkg/core"
)

// Reviewer records review timestamps back into the store.
// *core.Service satisfies it.
type Reviewer interface {
	MarkReviewed(ctx context.Context, id string) (core.Flashcard, error)
}

// Session sequences through an ordered deck, tracking reveal and
// advance state. A session on an empty deck never activates.
type Session struct {
	reviewer Reviewer

	deck     []core.Flashcard
	index    int
	revealed bool
	active   bool
}

// NewSession creates an inactive session; call Start to begin.
func NewSession(reviewer Reviewer) *Session {
	return &Session{reviewer: reviewer}
}

// Start begins a review pass over the given deck. Starting on an empty
// deck is a no-op: the session stays inactive.
func (s *Session) Start(deck []core.Flashcard) {
	if len(deck) == 0 {
		return
	}
	s.deck = deck
	s.index = 0
	s.revealed = false
	s.active = true
}

// Active reports whether a review pass is in progress.
func (s *Session) Active() bool { return s.active }

// Current returns the card under review.
func (s *Session) Current() (core.Flashcard, bool) {
	if !s.active {
		return core.Flashcard{}, false
	}
	return s.deck[s.index], true
}

// Revealed reports whether the current card's back is showing.
func (s *Session) Revealed() bool { return s.revealed }

// Progress returns the 1-based position and deck size.
func (s *Session) Progress() (pos, total int) {
	if !s.active {
		return 0, 0
	}
	return s.index + 1, len(s.deck)
}

// Reveal shows the current card's back. Idempotent.
func (s *Session) Reveal() {
	if s.active {
		s.revealed = true
	}
}

// Advance records the review of the current card and moves to the next,
// ending the session when the deck is exhausted. The caller must reveal
// first; an unrevealed advance is a no-op.
func (s *Session) Advance(ctx context.Context) error {
	if !s.active || !s.revealed {
		return nil
	}

	// The deck was listed from the store moments ago, so the id is
	// known to it; MarkReviewed treats a vanished id as a no-op anyway.
	if _, err := s.reviewer.MarkReviewed(ctx, s.deck[s.index].ID); err != nil {
		return err
	}

	if s.index+1 >= len(s.deck) {
		s.Exit()
		return nil
	}
	s.index++
	s.revealed = false
	return nil
}

// Exit terminates the session unconditionally, discarding position.
func (s *Session) Exit() {
	s.active = false
	s.deck = nil
	s.index = 0
	s.revealed = false
}
