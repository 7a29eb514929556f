package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hanci-tools/hanci-cli/internal/core/domain"
	"github.com/hanci-tools/hanci-cli/internal/core/ports/driven"
	"github.com/hanci-tools/hanci-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyDataDir              = "data_dir"
	keyAnkiCollection       = "anki.collection_path"
	keyAnkiNoteFields       = "anki.note_fields"
	keyAnkiSuspendedKnown   = "anki.suspended_known_flag"
	keyAnkiSuspendedUnknown = "anki.suspended_unknown_flag"
	keySegmenterCommand     = "segmenter.command"
	keySegmenterArgs        = "segmenter.args"
	keyMinOccurrenceWords   = "analysis.min_occurrence_words"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings with defaults applied.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		DataDir: s.configStore.GetString(keyDataDir), // No default - empty means per-user location
		Anki: domain.AnkiSettings{
			CollectionPath:       s.configStore.GetString(keyAnkiCollection), // No default - empty disables sync
			NoteFields:           s.getNoteFields(defaults.Anki.NoteFields),
			SuspendedKnownFlag:   s.getInt(keyAnkiSuspendedKnown, defaults.Anki.SuspendedKnownFlag),
			SuspendedUnknownFlag: s.getInt(keyAnkiSuspendedUnknown, defaults.Anki.SuspendedUnknownFlag),
		},
		Segmenter: domain.SegmenterSettings{
			Command: s.getString(keySegmenterCommand, defaults.Segmenter.Command),
			Args:    s.configStore.GetStringSlice(keySegmenterArgs),
		},
		Analysis: domain.AnalysisSettings{
			MinOccurrenceWords: s.getInt(keyMinOccurrenceWords, defaults.Analysis.MinOccurrenceWords),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings.DataDir != "" {
		if err := s.configStore.Set(keyDataDir, settings.DataDir); err != nil {
			return fmt.Errorf("save data dir: %w", err)
		}
	}

	// Save anki settings
	if err := s.configStore.Set(keyAnkiCollection, settings.Anki.CollectionPath); err != nil {
		return fmt.Errorf("save collection path: %w", err)
	}
	pairs := make([]string, 0, len(settings.Anki.NoteFields))
	for _, f := range settings.Anki.NoteFields {
		pairs = append(pairs, f.String())
	}
	if err := s.configStore.Set(keyAnkiNoteFields, pairs); err != nil {
		return fmt.Errorf("save note fields: %w", err)
	}
	if err := s.configStore.Set(keyAnkiSuspendedKnown, settings.Anki.SuspendedKnownFlag); err != nil {
		return fmt.Errorf("save suspended known flag: %w", err)
	}
	if err := s.configStore.Set(keyAnkiSuspendedUnknown, settings.Anki.SuspendedUnknownFlag); err != nil {
		return fmt.Errorf("save suspended unknown flag: %w", err)
	}

	// Save segmenter settings
	if err := s.configStore.Set(keySegmenterCommand, settings.Segmenter.Command); err != nil {
		return fmt.Errorf("save segmenter command: %w", err)
	}
	if err := s.configStore.Set(keySegmenterArgs, settings.Segmenter.Args); err != nil {
		return fmt.Errorf("save segmenter args: %w", err)
	}

	// Save analysis settings
	if err := s.configStore.Set(keyMinOccurrenceWords, settings.Analysis.MinOccurrenceWords); err != nil {
		return fmt.Errorf("save min occurrence words: %w", err)
	}

	return nil
}

// SetKey stores one raw configuration key, coercing string values to the
// key's expected type.
func (s *SettingsService) SetKey(key string, value any) error {
	if !s.recognised(key) {
		return fmt.Errorf("%w: unknown configuration key %q", domain.ErrInvalidInput, key)
	}

	switch key {
	case keyAnkiSuspendedKnown, keyAnkiSuspendedUnknown, keyMinOccurrenceWords:
		if str, ok := value.(string); ok {
			n, err := strconv.Atoi(str)
			if err != nil {
				return fmt.Errorf("%w: %s expects an integer, got %q", domain.ErrInvalidInput, key, str)
			}
			value = n
		}
	case keyAnkiNoteFields, keySegmenterArgs:
		if str, ok := value.(string); ok {
			value = splitCommaList(str)
		}
	}

	if key == keyAnkiNoteFields {
		pairs, ok := value.([]string)
		if !ok {
			return fmt.Errorf("%w: %s expects NOTETYPE/FIELD pairs", domain.ErrInvalidInput, key)
		}
		for _, pair := range pairs {
			if _, err := domain.ParseNoteField(pair); err != nil {
				return err
			}
		}
	}

	return s.configStore.Set(key, value)
}

// GetKey retrieves one raw configuration key.
func (s *SettingsService) GetKey(key string) (any, bool) {
	return s.configStore.Get(key)
}

// Keys returns the recognised configuration keys in declaration order.
func (s *SettingsService) Keys() []string {
	return []string{
		keyDataDir,
		keyAnkiCollection,
		keyAnkiNoteFields,
		keyAnkiSuspendedKnown,
		keyAnkiSuspendedUnknown,
		keySegmenterCommand,
		keySegmenterArgs,
		keyMinOccurrenceWords,
	}
}

// Path returns the configuration file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// DataDir resolves the directory holding the database: the configured
// one, or <home>/.hanci/data when unset.
func (s *SettingsService) DataDir() (string, error) {
	if dir := s.configStore.GetString(keyDataDir); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".hanci", "data"), nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) recognised(key string) bool {
	for _, k := range s.Keys() {
		if k == key {
			return true
		}
	}
	return false
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getNoteFields(defaultVal []domain.NoteField) []domain.NoteField {
	raw := s.configStore.GetStringSlice(keyAnkiNoteFields)
	if len(raw) == 0 {
		return defaultVal
	}
	fields := make([]domain.NoteField, 0, len(raw))
	for _, pair := range raw {
		f, err := domain.ParseNoteField(pair)
		if err != nil {
			// Malformed pairs are skipped rather than failing every read
			continue
		}
		fields = append(fields, f)
	}
	if len(fields) == 0 {
		return defaultVal
	}
	return fields
}

func splitCommaList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
