package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// WordListEntry is one selected word with its book-wide count and the
// chapters it occurs in.
type WordListEntry struct {
	Word            string
	TotalOccurrence int
	Chapters        []int
}

// ChapterWords groups the entries occurring in one chapter, ordered by
// first appearance in the chapter's text.
type ChapterWords struct {
	ChapterIndex int

	// Title is the numbered chapter identifier used as export key.
	Title string

	Entries []WordListEntry
}

// WordList is the chapter-partitioned result of one analysis run.
// Entries is the whole-book view, each word once in reading order of its
// first occurrence; Chapters is the per-chapter view, where a word
// appears once per chapter it occurs in. Both views derive from the same
// aggregation, never from recomputation.
type WordList struct {
	BookName   string
	AuthorName string

	// CreateTime is the analysis run's timestamp, not the moment the
	// list is persisted.
	CreateTime time.Time

	Criteria FilterCriteria
	Entries  []WordListEntry
	Chapters []ChapterWords
}

// exportEntry is the wire form of one entry in word_list_json.
type exportEntry struct {
	Word            string `json:"word"`
	TotalOccurrence int    `json:"total_occurrence"`
}

// BuildWordList partitions the selected words by the chapters they occur
// in. Chapters without selected words are omitted. An empty selection
// still yields a usable list alongside ErrEmptySelection, so the caller
// decides whether to keep or discard it.
func BuildWordList(selected map[string]struct{}, tables *OccurrenceTables, book *Book, criteria FilterCriteria, createTime time.Time) (*WordList, error) {
	list := &WordList{
		BookName:   book.Title,
		AuthorName: book.Author,
		CreateTime: createTime,
		Criteria:   criteria,
	}

	entries := make(map[string]WordListEntry, len(selected))
	for w := range selected {
		occ := tables.Words[w]
		if occ == nil {
			return nil, fmt.Errorf("%w: selected word %q missing from occurrence table", ErrInvalidInput, w)
		}
		entries[w] = WordListEntry{Word: w, TotalOccurrence: occ.Total, Chapters: occ.ChapterIndices()}
	}

	for ci := 0; ci < tables.ChapterTotal; ci++ {
		var chapterEntries []WordListEntry
		for w := range selected {
			if tables.Words[w].Chapters[ci].Count > 0 {
				chapterEntries = append(chapterEntries, entries[w])
			}
		}
		if len(chapterEntries) == 0 {
			continue
		}
		sort.Slice(chapterEntries, func(a, b int) bool {
			return tables.Words[chapterEntries[a].Word].Chapters[ci].FirstPosition <
				tables.Words[chapterEntries[b].Word].Chapters[ci].FirstPosition
		})
		list.Chapters = append(list.Chapters, ChapterWords{
			ChapterIndex: ci,
			Title:        book.NumberedChapterTitle(ci),
			Entries:      chapterEntries,
		})
	}

	list.Entries = make([]WordListEntry, 0, len(entries))
	for _, e := range entries {
		list.Entries = append(list.Entries, e)
	}
	sort.Slice(list.Entries, func(a, b int) bool {
		oa := tables.Words[list.Entries[a].Word]
		ob := tables.Words[list.Entries[b].Word]
		ca, cb := oa.FirstChapter(), ob.FirstChapter()
		if ca != cb {
			return ca < cb
		}
		pa, pb := oa.Chapters[ca].FirstPosition, ob.Chapters[cb].FirstPosition
		if pa != pb {
			return pa < pb
		}
		return list.Entries[a].Word < list.Entries[b].Word
	})

	if len(selected) == 0 {
		return list, ErrEmptySelection
	}
	return list, nil
}

// ExportJSON serialises the per-chapter view as a JSON object keyed by
// numbered chapter identifier. Identical lists yield byte-identical
// output: object keys marshal in sorted order, and the zero-padded
// identifiers sort in chapter order.
func (l *WordList) ExportJSON() ([]byte, error) {
	out := make(map[string][]exportEntry, len(l.Chapters))
	for _, ch := range l.Chapters {
		entries := make([]exportEntry, 0, len(ch.Entries))
		for _, e := range ch.Entries {
			entries = append(entries, exportEntry{Word: e.Word, TotalOccurrence: e.TotalOccurrence})
		}
		out[ch.Title] = entries
	}
	return json.Marshal(out)
}

// WordListFilter narrows word-list history queries. Zero-valued fields
// do not restrict.
type WordListFilter struct {
	// BookName keeps only lists for this book title.
	BookName string

	// AuthorName keeps only lists for this author.
	AuthorName string

	// Since keeps only lists created at or after this time.
	Since time.Time

	// Limit caps the number of results. Zero means no cap.
	Limit int
}

// WordListRecord is the persisted form of a word list.
type WordListRecord struct {
	ID         int64
	BookName   string
	AuthorName string
	CreateTime time.Time
	Criteria   FilterCriteria
	ListJSON   string
}

// Record converts the list to its persisted form. ID stays zero until
// the store assigns one.
func (l *WordList) Record() (*WordListRecord, error) {
	raw, err := l.ExportJSON()
	if err != nil {
		return nil, fmt.Errorf("serialising word list: %w", err)
	}
	return &WordListRecord{
		BookName:   l.BookName,
		AuthorName: l.AuthorName,
		CreateTime: l.CreateTime,
		Criteria:   l.Criteria,
		ListJSON:   string(raw),
	}, nil
}

// ChapterWords decodes the persisted per-chapter view, ordered by
// chapter. The numbered identifiers carry the chapter index, so order
// survives the round trip through JSON object keys.
func (r *WordListRecord) ChapterWords() ([]ChapterWords, error) {
	var decoded map[string][]exportEntry
	if err := json.Unmarshal([]byte(r.ListJSON), &decoded); err != nil {
		return nil, fmt.Errorf("decoding word list %d: %w", r.ID, err)
	}

	titles := make([]string, 0, len(decoded))
	for title := range decoded {
		titles = append(titles, title)
	}
	sort.Strings(titles)

	chapters := make([]ChapterWords, 0, len(titles))
	for _, title := range titles {
		index := -1
		if _, err := fmt.Sscanf(title, "%d-", &index); err != nil {
			return nil, fmt.Errorf("%w: malformed chapter identifier %q in word list %d", ErrInvalidInput, title, r.ID)
		}
		entries := make([]WordListEntry, 0, len(decoded[title]))
		for _, e := range decoded[title] {
			entries = append(entries, WordListEntry{Word: e.Word, TotalOccurrence: e.TotalOccurrence})
		}
		chapters = append(chapters, ChapterWords{ChapterIndex: index, Title: title, Entries: entries})
	}
	return chapters, nil
}
