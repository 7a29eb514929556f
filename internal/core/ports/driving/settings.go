package driving

import "github.com/hanci-tools/hanci-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings with defaults applied.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetKey stores one raw configuration key.
	SetKey(key string, value any) error

	// GetKey retrieves one raw configuration key.
	GetKey(key string) (any, bool)

	// Keys returns the recognised configuration keys.
	Keys() []string

	// Path returns the configuration file path.
	Path() string

	// DataDir resolves the directory holding the database.
	DataDir() (string, error)

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
