package domain

import "fmt"

// RawChapter is one chapter of an ebook before segmentation.
type RawChapter struct {
	Title string
	Text  string
}

// RawBook is the parsed but unsegmented content of an ebook.
type RawBook struct {
	Title    string
	Author   string
	Chapters []RawChapter
}

// Chapter is one segmented chapter: its title and the token words in
// reading order.
type Chapter struct {
	Title string
	Words []string
}

// Book is a fully segmented book, the unit stored in the library and fed
// to analysis. Segmenting is expensive, so a stored Book is reused by
// every later analysis run.
type Book struct {
	Title    string
	Author   string
	Chapters []Chapter
}

// Ref returns the book's identity in the library.
func (b *Book) Ref() BookRef {
	return BookRef{Title: b.Title, Author: b.Author}
}

// WordCount returns the total number of tokens across all chapters.
func (b *Book) WordCount() int {
	n := 0
	for _, ch := range b.Chapters {
		n += len(ch.Words)
	}
	return n
}

// BookRef identifies a stored book. Title and author together form the
// library key.
type BookRef struct {
	Title  string
	Author string
}

// String returns "title (author)", or just the title when the author is
// unknown.
func (r BookRef) String() string {
	if r.Author == "" {
		return r.Title
	}
	return fmt.Sprintf("%s (%s)", r.Title, r.Author)
}

// BookToken is one positioned word of a segmented book.
// Tokens for a chapter are contiguous and position-ordered.
type BookToken struct {
	Word         string
	ChapterIndex int
	Position     int
}

// Tokens flattens the chapters into the ordered token stream.
func (b *Book) Tokens() []BookToken {
	var tokens []BookToken
	for ci, ch := range b.Chapters {
		for pos, w := range ch.Words {
			tokens = append(tokens, BookToken{Word: w, ChapterIndex: ci, Position: pos})
		}
	}
	return tokens
}

// HanTokens returns only the tokens containing Han characters, keeping
// their original positions. Position gaps are fine: only relative order
// matters downstream.
func (b *Book) HanTokens() []BookToken {
	var tokens []BookToken
	for ci, ch := range b.Chapters {
		for pos, w := range ch.Words {
			if !ContainsHan(w) {
				continue
			}
			tokens = append(tokens, BookToken{Word: w, ChapterIndex: ci, Position: pos})
		}
	}
	return tokens
}

// NumberedChapterTitle formats the chapter identifier used in exports.
// The zero-padded index keeps lexicographic order equal to reading
// order; an untitled chapter degrades to the bare index prefix.
func (b *Book) NumberedChapterTitle(i int) string {
	title := ""
	if i >= 0 && i < len(b.Chapters) {
		title = b.Chapters[i].Title
	}
	return fmt.Sprintf("%04d-%s", i, title)
}
