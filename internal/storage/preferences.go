package storage

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vovakirdan/deadpixel/internal/model"
)

// ErrUnknownPreference is returned for a preference key that does not exist.
var ErrUnknownPreference = errors.New("storage: unknown preference")

// preferenceFields binds each stored key to its field.
var preferenceFields = map[string]func(*model.UserPreferences) *bool{
	"high_contrast_mode": func(p *model.UserPreferences) *bool { return &p.HighContrastMode },
	"reduced_motion":     func(p *model.UserPreferences) *bool { return &p.ReducedMotion },
	"haptic_feedback":    func(p *model.UserPreferences) *bool { return &p.HapticFeedback },
	"sound_effects":      func(p *model.UserPreferences) *bool { return &p.SoundEffects },
	"show_hints":         func(p *model.UserPreferences) *bool { return &p.ShowHints },
}

// PreferenceKeys returns the stored preference keys in sorted order.
func PreferenceKeys() []string {
	keys := make([]string, 0, len(preferenceFields))
	for k := range preferenceFields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// PreferenceValue reads one preference by key.
func PreferenceValue(p model.UserPreferences, key string) (bool, error) {
	field, ok := preferenceFields[key]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownPreference, key)
	}
	return *field(&p), nil
}

// LoadPreferences returns the stored preferences. Keys never written take
// their defaults. On a read failure the defaults are returned together
// with the error so the caller can keep playing.
func (s *Store) LoadPreferences() (model.UserPreferences, error) {
	prefs := model.DefaultUserPreferences()

	var rows []struct {
		Key   string `db:"key"`
		Value bool   `db:"value"`
	}
	if err := s.db.Select(&rows, "SELECT key, value FROM preferences"); err != nil {
		return model.DefaultUserPreferences(), fmt.Errorf("storage: cannot load preferences: %w", err)
	}

	for _, r := range rows {
		if field, ok := preferenceFields[r.Key]; ok {
			*field(&prefs) = r.Value
		}
	}
	return prefs, nil
}

// SavePreferences stores every preference.
func (s *Store) SavePreferences(p model.UserPreferences) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, key := range PreferenceKeys() {
		if _, err := tx.Exec(
			`INSERT INTO preferences (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			key, *preferenceFields[key](&p),
		); err != nil {
			return fmt.Errorf("storage: cannot save preference %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit preferences: %w", err)
	}
	return nil
}

// SetPreference stores a single preference.
func (s *Store) SetPreference(key string, value bool) error {
	if _, ok := preferenceFields[key]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPreference, key)
	}
	_, err := s.db.Exec(
		`INSERT INTO preferences (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save preference %s: %w", key, err)
	}
	return nil
}

// SeedPreferences stores p for every key that has never been written.
// Existing choices are kept.
func (s *Store) SeedPreferences(p model.UserPreferences) error {
	for _, key := range PreferenceKeys() {
		if _, err := s.db.Exec(
			"INSERT OR IGNORE INTO preferences (key, value) VALUES (?, ?)",
			key, *preferenceFields[key](&p),
		); err != nil {
			return fmt.Errorf("storage: cannot seed preference %s: %w", key, err)
		}
	}
	return nil
}
