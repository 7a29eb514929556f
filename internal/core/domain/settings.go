package domain

import (
	"fmt"
	"strings"
)

const unknownDescription = "Unknown"

// SegmentationMode defines how the external segmenter cuts chapter text.
type SegmentationMode string

// Available segmentation modes.
const (
	// SegmentationDefault uses the segmenter's standard model, which may
	// emit words outside its dictionary.
	SegmentationDefault SegmentationMode = "default"

	// SegmentationDictOnly restricts cuts to dictionary entries.
	SegmentationDictOnly SegmentationMode = "dict-only"
)

// IsValid returns true if the segmentation mode is recognised.
func (m SegmentationMode) IsValid() bool {
	switch m {
	case SegmentationDefault, SegmentationDictOnly:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m SegmentationMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m SegmentationMode) Description() string {
	switch m {
	case SegmentationDefault:
		return "Default (standard segmentation model)"
	case SegmentationDictOnly:
		return "Dictionary Only (no out-of-dictionary cuts)"
	default:
		return unknownDescription
	}
}

// AllSegmentationModes returns all available segmentation modes.
func AllSegmentationModes() []SegmentationMode {
	return []SegmentationMode{
		SegmentationDefault,
		SegmentationDictOnly,
	}
}

// NoteField names one flashcard field to harvest vocabulary from,
// identified by its note type and field name.
type NoteField struct {
	// Notetype is the flashcard note type name.
	Notetype string

	// Field is the field name within that note type.
	Field string
}

// ParseNoteField parses a "NOTETYPE/FIELD" pair.
func ParseNoteField(s string) (NoteField, error) {
	notetype, field, ok := strings.Cut(s, "/")
	if !ok || notetype == "" || field == "" {
		return NoteField{}, fmt.Errorf("%w: note field %q is not of the form NOTETYPE/FIELD", ErrInvalidInput, s)
	}
	return NoteField{Notetype: notetype, Field: field}, nil
}

// String returns the "NOTETYPE/FIELD" form.
func (f NoteField) String() string {
	return f.Notetype + "/" + f.Field
}

// AnkiSettings holds flashcard collection configuration.
type AnkiSettings struct {
	// CollectionPath is the path to the collection.anki2 file.
	// Empty means no collection is configured and sync is unavailable.
	CollectionPath string

	// NoteFields lists the note fields whose content is harvested.
	NoteFields []NoteField

	// SuspendedKnownFlag is the card flag marking a suspended card
	// whose words still count as known.
	SuspendedKnownFlag int

	// SuspendedUnknownFlag is the card flag marking a suspended card
	// whose words do not count as known.
	SuspendedUnknownFlag int
}

// IsConfigured returns true if a collection path is set.
func (a AnkiSettings) IsConfigured() bool {
	return a.CollectionPath != ""
}

// SegmenterSettings holds external segmenter configuration.
type SegmenterSettings struct {
	// Command is the segmenter executable to invoke.
	Command string

	// Args are extra arguments passed before the generated ones.
	Args []string
}

// AnalysisSettings holds analysis defaults.
type AnalysisSettings struct {
	// MinOccurrenceWords is the default word-count threshold.
	MinOccurrenceWords int
}

// AppSettings holds all application settings.
type AppSettings struct {
	// DataDir is the directory holding the database. Empty means the
	// per-user default location.
	DataDir string

	// Anki holds flashcard collection settings.
	Anki AnkiSettings

	// Segmenter holds external segmenter settings.
	Segmenter SegmenterSettings

	// Analysis holds analysis defaults.
	Analysis AnalysisSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// The Anki collection path is left unconfigured; users must point it at
// their own collection before syncing.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Anki: AnkiSettings{
			NoteFields: []NoteField{
				{Notetype: "中文-英文", Field: "中文"},
			},
			SuspendedKnownFlag:   3,
			SuspendedUnknownFlag: 0,
		},
		Segmenter: SegmenterSettings{
			Command: "han-segmenter",
		},
		Analysis: AnalysisSettings{
			MinOccurrenceWords: 3,
		},
	}
}
