// Package webflash is the composition root for the webflash toolkit.
//
// It connects the core flashcard domain (pkg/core) with the storage
// adapters (pkg/adapters) and the page-capture machinery (pkg/pipeline),
// keeping the domain independent of persistence details.
//
// Features:
//
//   - Flashcard store: create, bulk-create, delete, filter, tag, and
//     review-stamp cards over a pluggable repository.
//   - Storage adapters: a JSON slot file mirroring extension storage
//     semantics (default), and a per-record BoltDB store.
//   - Generation pipeline: page text extraction, Q/A draft generation
//     via a completion service, and cosine-similarity image matching.
//   - Study sessions: sequential reveal/advance review passes that
//     stamp lastReviewed back into the store.
//   - Export: full-collection JSON and CSV snapshots.
//
// Usage:
//
//	svc, err := webflash.New("~/.webflash")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	card, err := svc.Create(ctx, "Front text", "Back text", nil, []string{"tag"})
package webflash
