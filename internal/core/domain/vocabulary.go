package domain

import (
	"sort"
	"unicode"

	"github.com/rivo/uniseg"
)

// WordStatus records a synced word's flashcard state.
// Values match the words_anki.status column.
type WordStatus int

const (
	// StatusActive marks a word on an active flashcard.
	StatusActive WordStatus = 0

	// StatusSuspended marks a word on a suspended flashcard.
	StatusSuspended WordStatus = 1

	// StatusUnknown marks a word that disappeared from the flashcard
	// source. Missing words are marked, never deleted, so a word once
	// known stays known.
	StatusUnknown WordStatus = 2
)

func (s WordStatus) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusSuspended:
		return "suspended"
	case StatusUnknown:
		return "unknown-status"
	default:
		return "invalid"
	}
}

// KnownSource identifies which vocabulary table a word came from.
type KnownSource string

const (
	// SourceManual is a word added by hand.
	SourceManual KnownSource = "manual"
	// SourceSynced is a word imported from the flashcard collection.
	SourceSynced KnownSource = "flashcard-sync"
)

// KnownWordEntry is one word of the user's vocabulary.
type KnownWordEntry struct {
	// Word is the vocabulary unit. Identity is exact text equality.
	Word string

	// Source records which table the word belongs to.
	Source KnownSource

	// Status is the flashcard state. Manual words are always active.
	Status WordStatus
}

// KnownSnapshot is a point-in-time view of the whole vocabulary, taken
// once per analysis run so concurrent store mutation cannot split a run's
// view. Membership alone makes a word known; Status only records why.
type KnownSnapshot struct {
	entries map[string]KnownWordEntry
}

// NewKnownSnapshot merges the manual and synced word tables.
// A word present in both tables reports the manual source.
func NewKnownSnapshot(manual []string, synced []KnownWordEntry) *KnownSnapshot {
	entries := make(map[string]KnownWordEntry, len(manual)+len(synced))
	for _, e := range synced {
		e.Source = SourceSynced
		entries[e.Word] = e
	}
	for _, w := range manual {
		entries[w] = KnownWordEntry{Word: w, Source: SourceManual, Status: StatusActive}
	}
	return &KnownSnapshot{entries: entries}
}

// Known reports whether word is part of the vocabulary, regardless of
// its flashcard status.
func (s *KnownSnapshot) Known(word string) bool {
	_, ok := s.entries[word]
	return ok
}

// Lookup returns the vocabulary entry for word.
func (s *KnownSnapshot) Lookup(word string) (KnownWordEntry, bool) {
	e, ok := s.entries[word]
	return e, ok
}

// Len returns the number of known words.
func (s *KnownSnapshot) Len() int {
	return len(s.entries)
}

// Words returns all known words in lexicographic order.
func (s *KnownSnapshot) Words() []string {
	words := make([]string, 0, len(s.entries))
	for w := range s.entries {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// CharIndex is the set of characters appearing in at least one known
// word. Characters are grapheme clusters, not bytes or runes.
type CharIndex map[string]struct{}

// NewCharIndex decomposes every word of the snapshot into characters and
// unions them.
func NewCharIndex(snapshot *KnownSnapshot) CharIndex {
	idx := make(CharIndex)
	for word := range snapshot.entries {
		for _, c := range Graphemes(word) {
			idx[c] = struct{}{}
		}
	}
	return idx
}

// Known reports whether the character appears in any known word.
func (idx CharIndex) Known(char string) bool {
	_, ok := idx[char]
	return ok
}

// Chars returns the indexed characters in lexicographic order.
func (idx CharIndex) Chars() []string {
	chars := make([]string, 0, len(idx))
	for c := range idx {
		chars = append(chars, c)
	}
	sort.Strings(chars)
	return chars
}

// Graphemes splits a word into its user-perceived characters.
func Graphemes(word string) []string {
	chars := make([]string, 0, len(word)/3)
	g := uniseg.NewGraphemes(word)
	for g.Next() {
		chars = append(chars, g.Str())
	}
	return chars
}

// IsHan reports whether the rune is a Han character.
func IsHan(r rune) bool {
	return unicode.Is(unicode.Han, r)
}

// ContainsHan reports whether s contains at least one Han character.
// Tokens without one are punctuation or foreign text and take no part in
// vocabulary analysis.
func ContainsHan(s string) bool {
	for _, r := range s {
		if IsHan(r) {
			return true
		}
	}
	return false
}

// VocabularyStats summarises the vocabulary by source and status.
// Character figures count distinct Han characters only.
type VocabularyStats struct {
	TotalWords         int
	ManualWords        int
	ActiveWords        int
	SuspendedWords     int
	UnknownStatusWords int

	// KnownChars counts characters appearing in any known word.
	KnownChars int

	// ActiveChars counts characters appearing in a manual or active word.
	ActiveChars int
}

// Classify returns the classifier's verdict for each word in order.
func (s *KnownSnapshot) Classify(words []string) []Classification {
	out := make([]Classification, len(words))
	for i, w := range words {
		c := Classification{Word: w}
		if e, ok := s.entries[w]; ok {
			c.Known = true
			c.Source = e.Source
			c.Status = e.Status
		}
		out[i] = c
	}
	return out
}

// Classification is the classifier's verdict for one word.
type Classification struct {
	Word  string
	Known bool

	// Source and Status are meaningful only when Known is true.
	Source KnownSource
	Status WordStatus
}

// AddReport summarises a manual vocabulary addition.
type AddReport struct {
	// Submitted is the number of distinct words in the request.
	Submitted int

	// AlreadyKnown is how many of them were already in the vocabulary.
	AlreadyKnown int

	// Added is how many new words were inserted.
	Added int
}

// Stats computes vocabulary statistics over the snapshot.
func (s *KnownSnapshot) Stats() VocabularyStats {
	stats := VocabularyStats{TotalWords: len(s.entries)}
	knownChars := make(map[string]struct{})
	activeChars := make(map[string]struct{})
	for word, e := range s.entries {
		switch {
		case e.Source == SourceManual:
			stats.ManualWords++
		case e.Status == StatusActive:
			stats.ActiveWords++
		case e.Status == StatusSuspended:
			stats.SuspendedWords++
		default:
			stats.UnknownStatusWords++
		}
		active := e.Source == SourceManual || e.Status == StatusActive
		for _, c := range Graphemes(word) {
			if !ContainsHan(c) {
				continue
			}
			knownChars[c] = struct{}{}
			if active {
				activeChars[c] = struct{}{}
			}
		}
	}
	stats.KnownChars = len(knownChars)
	stats.ActiveChars = len(activeChars)
	return stats
}
