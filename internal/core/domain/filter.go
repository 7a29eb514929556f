package domain

import "fmt"

// FilterCriteria are the thresholds a word must meet to be selected for
// study. MinOccurrenceChars is optional: nil disables the character
// criterion entirely, while a pointer to zero enables an
// always-satisfied one.
type FilterCriteria struct {
	MinOccurrenceWords int
	MinOccurrenceChars *int
}

// AllWords is the unfiltered reference criteria, matching every word
// that occurs at all.
func AllWords() FilterCriteria {
	return FilterCriteria{MinOccurrenceWords: 1}
}

// WithCharThreshold returns a copy of the criteria with the character
// criterion enabled at n.
func (c FilterCriteria) WithCharThreshold(n int) FilterCriteria {
	c.MinOccurrenceChars = &n
	return c
}

// CharsThreshold returns the character threshold and whether it is set.
func (c FilterCriteria) CharsThreshold() (int, bool) {
	if c.MinOccurrenceChars == nil {
		return 0, false
	}
	return *c.MinOccurrenceChars, true
}

func (c FilterCriteria) String() string {
	if t, ok := c.CharsThreshold(); ok {
		return fmt.Sprintf("min words %d, min chars %d", c.MinOccurrenceWords, t)
	}
	return fmt.Sprintf("min words %d", c.MinOccurrenceWords)
}

// matches reports whether a word's occurrence satisfies the criteria.
// The two criteria combine as a logical OR: frequent enough on its own,
// or containing an unknown character that is frequent book-wide.
func (c FilterCriteria) matches(occ *WordOccurrence, unknownChars map[string]*CharOccurrence) bool {
	if occ.Total >= c.MinOccurrenceWords {
		return true
	}
	threshold, enabled := c.CharsThreshold()
	if !enabled {
		return false
	}
	for _, char := range Graphemes(occ.Word) {
		if co := unknownChars[char]; co != nil && co.Total >= threshold {
			return true
		}
	}
	return false
}

// Select applies the criteria to the aggregation tables and returns the
// set of unknown words to study. Known words are never selected. With
// MinOccurrenceWords zero and no character threshold, every unknown
// word is selected. An empty result is valid here; only the word-list
// builder treats it as reportable.
func Select(tables *OccurrenceTables, snapshot *KnownSnapshot, criteria FilterCriteria) map[string]struct{} {
	selected := make(map[string]struct{})
	for word, occ := range tables.Words {
		if snapshot.Known(word) {
			continue
		}
		if criteria.matches(occ, tables.UnknownChars) {
			selected[word] = struct{}{}
		}
	}
	return selected
}
