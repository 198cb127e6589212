package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"
)

// Service handles the business logic for the flashcard collection.
//
// Every mutation is a read-modify-write cycle against a single persisted
// slot, so overlapping writers can silently drop each other's changes.
// The service closes that race by serializing all writes behind one
// in-process mutex; concurrent creates therefore never lose a record.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time

	mu sync.Mutex // serializes read-modify-write cycles
}

// NewService creates a new Service around the given repository.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Create validates and persists a single new flashcard.
// Front and back must be non-empty after trimming; otherwise the
// collection is left untouched and ErrValidation is returned.
func (s *Service) Create(ctx context.Context, front, back string, source *Source, tags []string) (Flashcard, error) {
	card, err := s.newCard(front, back, source, tags)
	if err != nil {
		return Flashcard{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if rec, ok := s.repo.(Recorder); ok {
		if err := rec.Put(ctx, card); err != nil {
			return Flashcard{}, fmt.Errorf("failed to persist flashcard: %w", err)
		}
		return card, nil
	}

	cards, err := s.repo.Load(ctx)
	if err != nil {
		return Flashcard{}, fmt.Errorf("failed to load collection: %w", err)
	}
	cards = append(cards, card)
	if err := s.repo.Replace(ctx, cards); err != nil {
		return Flashcard{}, fmt.Errorf("failed to persist flashcard: %w", err)
	}
	return card, nil
}

// BulkCreate persists a batch of drafts as one combined write. Drafts
// that fail validation abort the whole batch before anything is written.
func (s *Service) BulkCreate(ctx context.Context, drafts []Draft, source *Source) ([]Flashcard, error) {
	if len(drafts) == 0 {
		return nil, nil
	}

	batch := make([]Flashcard, 0, len(drafts))
	for _, d := range drafts {
		card, err := s.newCard(d.Front, d.Back, source, d.Tags)
		if err != nil {
			return nil, err
		}
		batch = append(batch, card)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if rec, ok := s.repo.(Recorder); ok {
		for _, card := range batch {
			if err := rec.Put(ctx, card); err != nil {
				return nil, fmt.Errorf("failed to persist batch: %w", err)
			}
		}
		return batch, nil
	}

	cards, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load collection: %w", err)
	}
	cards = append(cards, batch...)
	if err := s.repo.Replace(ctx, cards); err != nil {
		return nil, fmt.Errorf("failed to persist batch: %w", err)
	}
	s.logger.Info("flashcards saved", "count", len(batch))
	return batch, nil
}

// Delete removes the record matching id and reports whether one was
// removed. A not-found id is never an error.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards, err := s.repo.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to load collection: %w", err)
	}

	kept := cards[:0:0]
	removed := false
	for _, card := range cards {
		if !removed && SameID(card.ID, id) {
			removed = true
			continue
		}
		kept = append(kept, card)
	}
	if !removed {
		return false, nil
	}

	if rec, ok := s.repo.(Recorder); ok {
		// The stored key may differ textually from the query id, so
		// remove by the matched record's own id.
		for _, card := range cards {
			if SameID(card.ID, id) {
				if err := rec.Remove(ctx, card.ID); err != nil {
					return false, fmt.Errorf("failed to delete flashcard: %w", err)
				}
				return true, nil
			}
		}
	}

	if err := s.repo.Replace(ctx, kept); err != nil {
		return false, fmt.Errorf("failed to delete flashcard: %w", err)
	}
	return true, nil
}

// Get retrieves a single flashcard by id.
func (s *Service) Get(ctx context.Context, id string) (Flashcard, bool, error) {
	cards, err := s.repo.Load(ctx)
	if err != nil {
		return Flashcard{}, false, fmt.Errorf("failed to load collection: %w", err)
	}
	for _, card := range cards {
		if SameID(card.ID, id) {
			return card, true, nil
		}
	}
	return Flashcard{}, false, nil
}

// List returns the cards passing the filter, in stored order.
func (s *Service) List(ctx context.Context, f Filter) ([]Flashcard, error) {
	cards, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load collection: %w", err)
	}
	if f.IsZero() {
		return cards, nil
	}
	var out []Flashcard
	for _, card := range cards {
		if f.Matches(card) {
			out = append(out, card)
		}
	}
	return out, nil
}

// MarkReviewed stamps the card's lastReviewed with the current time and
// persists. An unknown id is a silent no-op: the study session only
// advances through cards it just listed.
func (s *Service) MarkReviewed(ctx context.Context, id string) (Flashcard, error) {
	now := s.now().UTC()
	return s.update(ctx, id, func(card *Flashcard) {
		card.LastReviewed = &now
	})
}

// UpdateTags replaces the card's tag set. No current UI path mutates
// tags after creation, but the operation is part of the store contract.
func (s *Service) UpdateTags(ctx context.Context, id string, tags []string) (Flashcard, error) {
	return s.update(ctx, id, func(card *Flashcard) {
		card.Tags = NormalizeTags(tags)
	})
}

func (s *Service) update(ctx context.Context, id string, mutate func(*Flashcard)) (Flashcard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards, err := s.repo.Load(ctx)
	if err != nil {
		return Flashcard{}, fmt.Errorf("failed to load collection: %w", err)
	}
	for i := range cards {
		if !SameID(cards[i].ID, id) {
			continue
		}
		mutate(&cards[i])
		if rec, ok := s.repo.(Recorder); ok {
			if err := rec.Put(ctx, cards[i]); err != nil {
				return Flashcard{}, fmt.Errorf("failed to persist flashcard: %w", err)
			}
			return cards[i], nil
		}
		if err := s.repo.Replace(ctx, cards); err != nil {
			return Flashcard{}, fmt.Errorf("failed to persist flashcard: %w", err)
		}
		return cards[i], nil
	}
	return Flashcard{}, nil
}

// ListTags returns the sorted union of all tags across the collection.
func (s *Service) ListTags(ctx context.Context) ([]string, error) {
	cards, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load collection: %w", err)
	}
	seen := make(map[string]struct{})
	var tags []string
	for _, card := range cards {
		for _, t := range card.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	sort.Strings(tags)
	return tags, nil
}

// Watch observes changes in the repository if supported.
func (s *Service) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, errors.New("repository does not support watching")
	}
	return w.Watch(ctx)
}

func (s *Service) newCard(front, back string, source *Source, tags []string) (Flashcard, error) {
	front = strings.TrimSpace(front)
	back = strings.TrimSpace(back)
	if front == "" {
		return Flashcard{}, fmt.Errorf("%w: front must not be empty", ErrValidation)
	}
	if back == "" {
		return Flashcard{}, fmt.Errorf("%w: back must not be empty", ErrValidation)
	}
	return Flashcard{
		ID:      NewID(),
		Front:   front,
		Back:    back,
		Source:  source,
		Tags:    NormalizeTags(tags),
		Created: s.now().UTC(),
	}, nil
}
