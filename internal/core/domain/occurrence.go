package domain

import "fmt"

// ChapterCount records one word's occurrences within a single chapter.
// FirstPosition is the position of the earliest token, which orders
// word-list entries the way they appear in the text.
type ChapterCount struct {
	Count         int
	FirstPosition int
}

// WordOccurrence holds the aggregated counts for one word. Chapters is
// indexed by chapter index and spans every declared chapter, including
// empty ones, so the per-chapter counts always sum to Total.
type WordOccurrence struct {
	Word     string
	Total    int
	Chapters []ChapterCount
}

// ChapterIndices returns the chapters the word occurs in, in reading
// order.
func (o *WordOccurrence) ChapterIndices() []int {
	var indices []int
	for i, c := range o.Chapters {
		if c.Count > 0 {
			indices = append(indices, i)
		}
	}
	return indices
}

// FirstChapter returns the first chapter the word occurs in, or -1 for a
// word that never occurs.
func (o *WordOccurrence) FirstChapter() int {
	for i, c := range o.Chapters {
		if c.Count > 0 {
			return i
		}
	}
	return -1
}

// CharOccurrence holds the aggregated counts for one unknown character.
// Counts is indexed by chapter index, like WordOccurrence.Chapters.
type CharOccurrence struct {
	Char   string
	Total  int
	Counts []int
}

// OccurrenceTables is the output of one aggregation pass over a token
// stream. Words covers every word of the stream; UnknownChars covers
// only characters of unknown words that are outside the character index.
type OccurrenceTables struct {
	ChapterTotal int
	Words        map[string]*WordOccurrence
	UnknownChars map[string]*CharOccurrence
}

// Aggregate consumes the token stream in a single pass. Every word is
// counted, known or not, since summary statistics need both. For unknown
// words each character instance outside the index is counted as well.
//
// chapters declares how many chapters the stream may reference; declared
// chapters without tokens stay as valid empty partitions. The stream
// must be ordered: chapter indices never decrease and positions strictly
// increase within a chapter. A malformed stream returns ErrInvalidInput.
func Aggregate(tokens []BookToken, chapters int, snapshot *KnownSnapshot, chars CharIndex) (*OccurrenceTables, error) {
	if chapters < 0 {
		return nil, fmt.Errorf("%w: negative chapter count %d", ErrInvalidInput, chapters)
	}

	tables := &OccurrenceTables{
		ChapterTotal: chapters,
		Words:        make(map[string]*WordOccurrence),
		UnknownChars: make(map[string]*CharOccurrence),
	}

	currentChapter := 0
	lastPosition := -1
	for i, tok := range tokens {
		switch {
		case tok.ChapterIndex < currentChapter:
			return nil, fmt.Errorf("%w: token %d regresses to chapter %d after chapter %d",
				ErrInvalidInput, i, tok.ChapterIndex, currentChapter)
		case tok.ChapterIndex >= chapters:
			return nil, fmt.Errorf("%w: token %d references chapter %d of %d",
				ErrInvalidInput, i, tok.ChapterIndex, chapters)
		case tok.ChapterIndex > currentChapter:
			currentChapter = tok.ChapterIndex
			lastPosition = -1
		}
		if tok.Position <= lastPosition {
			return nil, fmt.Errorf("%w: token %d position %d does not advance past %d",
				ErrInvalidInput, i, tok.Position, lastPosition)
		}
		lastPosition = tok.Position

		occ := tables.Words[tok.Word]
		if occ == nil {
			occ = &WordOccurrence{Word: tok.Word, Chapters: make([]ChapterCount, chapters)}
			tables.Words[tok.Word] = occ
		}
		occ.Total++
		ch := &occ.Chapters[tok.ChapterIndex]
		if ch.Count == 0 {
			ch.FirstPosition = tok.Position
		}
		ch.Count++

		if snapshot.Known(tok.Word) {
			continue
		}
		for _, c := range Graphemes(tok.Word) {
			if chars.Known(c) {
				continue
			}
			co := tables.UnknownChars[c]
			if co == nil {
				co = &CharOccurrence{Char: c, Counts: make([]int, chapters)}
				tables.UnknownChars[c] = co
			}
			co.Total++
			co.Counts[tok.ChapterIndex]++
		}
	}

	return tables, nil
}
