// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - VocabStore: Known-word table persistence (manual and synced)
//   - BookStore: Segmented book persistence
//   - WordListStore: Generated word-list persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - FlashcardSource: Reads the Anki collection. Without it, sync is disabled.
//   - Segmenter: External word segmentation. Without it, only already
//     segmented books can be analysed.
//   - EbookParser: Ebook text extraction. Without it, books cannot be imported.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
