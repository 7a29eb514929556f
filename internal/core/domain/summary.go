package domain

// AnalysisInfo aggregates word and character figures for one filtered
// view of a book. The Unknown figures restrict to unknown words and
// unknown characters within that view.
type AnalysisInfo struct {
	TotalWords  int
	UniqueWords int
	TotalChars  int
	UniqueChars int

	UnknownTotalWords  int
	UnknownUniqueWords int
	UnknownTotalChars  int
	UnknownUniqueChars int
}

// Summarize computes the analysis figures for the words passing the
// criteria. Character totals count per instance: a character repeated
// within a word counts once per repeat per occurrence. The reference
// "all" view uses AllWords().
func Summarize(tables *OccurrenceTables, snapshot *KnownSnapshot, chars CharIndex, criteria FilterCriteria) AnalysisInfo {
	var info AnalysisInfo
	uniqueChars := make(map[string]struct{})
	unknownUniqueChars := make(map[string]struct{})

	for word, occ := range tables.Words {
		if !criteria.matches(occ, tables.UnknownChars) {
			continue
		}

		wordChars := Graphemes(word)
		info.TotalWords += occ.Total
		info.UniqueWords++
		info.TotalChars += occ.Total * len(wordChars)
		for _, c := range wordChars {
			uniqueChars[c] = struct{}{}
		}

		if snapshot.Known(word) {
			continue
		}
		info.UnknownTotalWords += occ.Total
		info.UnknownUniqueWords++
		for _, c := range wordChars {
			if chars.Known(c) {
				continue
			}
			info.UnknownTotalChars += occ.Total
			unknownUniqueChars[c] = struct{}{}
		}
	}

	info.UniqueChars = len(uniqueChars)
	info.UnknownUniqueChars = len(unknownUniqueChars)
	return info
}

// RatioRow is one line of the known-before/after comparison: the share
// of a figure already known now, and the share known once the filtered
// words are learned.
type RatioRow struct {
	Label  string
	Before float64
	After  float64
}

// KnownRatios relates the unfiltered view to a filtered one. Learning
// the filtered words converts their unknown figures to known, which is
// what the After column shows. An empty view counts as fully known.
func KnownRatios(all, filtered AnalysisInfo) []RatioRow {
	return []RatioRow{
		{
			Label:  "total words",
			Before: knownShare(all.UnknownTotalWords, all.TotalWords),
			After:  knownShare(all.UnknownTotalWords-filtered.UnknownTotalWords, all.TotalWords),
		},
		{
			Label:  "unique words",
			Before: knownShare(all.UnknownUniqueWords, all.UniqueWords),
			After:  knownShare(all.UnknownUniqueWords-filtered.UnknownUniqueWords, all.UniqueWords),
		},
		{
			Label:  "total chars",
			Before: knownShare(all.UnknownTotalChars, all.TotalChars),
			After:  knownShare(all.UnknownTotalChars-filtered.UnknownTotalChars, all.TotalChars),
		},
		{
			Label:  "unique chars",
			Before: knownShare(all.UnknownUniqueChars, all.UniqueChars),
			After:  knownShare(all.UnknownUniqueChars-filtered.UnknownUniqueChars, all.UniqueChars),
		},
	}
}

func knownShare(unknown, total int) float64 {
	if total == 0 {
		return 1
	}
	return 1 - float64(unknown)/float64(total)
}
