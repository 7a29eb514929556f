// Package domain defines the core entities of the vocabulary engine.
//
// This package is part of the hexagonal architecture's innermost layer.
// It defines the fundamental types:
//
//   - KnownSnapshot: A point-in-time view of the user's vocabulary
//   - Book: A segmented book of positioned chapter tokens
//   - OccurrenceTables: Word and unknown-character counts for one run
//   - WordList: A filtered, chapter-partitioned study list
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. All other packages depend on
// domain, never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library, grapheme segmentation (rivo/uniseg)
//   - Cannot Import: Any other internal/ package
package domain
