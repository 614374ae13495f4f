package repositories

import "errors"

// ErrSettingsNotFound is returned when no document exists under the
// requested key. Callers treat an absent document as "use defaults",
// not as a read failure.
var ErrSettingsNotFound = errors.New("settings document not found")

// SettingsRepository defines the interface for settings document access.
// Documents are keyed raw JSON payloads; decoding is the caller's
// concern so a corrupt document surfaces as a decode error rather than
// a read failure.
type SettingsRepository interface {
	Fetch(key string) (string, error)
	Save(key string, payload string) error
}
