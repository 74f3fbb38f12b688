package storage

import (
	"encoding/json"
	"fmt"

	"smartnote/internal/auth"
	"smartnote/internal/logs"
	"smartnote/internal/notes"
)

const (
	KeyNotes = "smartnote_notes"
	KeyUser  = "smartnote_user"
	KeyTheme = "smartnote_theme"
)

// Theme is the persisted color scheme preference
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle returns the other theme
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ParseTheme maps anything other than "dark" to light
func ParseTheme(s string) Theme {
	if Theme(s) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// Repository reads and writes the three application records. Read failures
// degrade to the same default as an absent record and are only logged.
type Repository struct {
	kv KV
}

func NewRepository(kv KV) *Repository {
	return &Repository{kv: kv}
}

// Close releases the underlying store
func (r *Repository) Close() error {
	return r.kv.Close()
}

// LoadNotes returns the whole collection, or an empty one on any failure
func (r *Repository) LoadNotes() []notes.Note {
	raw, ok, err := r.kv.Get(KeyNotes)
	if err != nil {
		logs.Logger.Error().Err(err).Str("key", KeyNotes).Msg("failed to load notes")
		return []notes.Note{}
	}
	if !ok || raw == "" {
		return []notes.Note{}
	}

	var list []notes.Note
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		logs.Logger.Error().Err(err).Str("key", KeyNotes).Msg("failed to decode notes")
		return []notes.Note{}
	}
	for i := range list {
		if list[i].Tags == nil {
			list[i].Tags = []string{}
		}
	}
	return list
}

// SaveNotes replaces the stored collection
func (r *Repository) SaveNotes(list []notes.Note) error {
	if list == nil {
		list = []notes.Note{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode notes: %w", err)
	}
	if err := r.kv.Set(KeyNotes, string(data)); err != nil {
		logs.Logger.Error().Err(err).Str("key", KeyNotes).Int("count", len(list)).Msg("failed to save notes")
		return err
	}
	return nil
}

// LoadUser returns the signed-in user or nil
func (r *Repository) LoadUser() *auth.User {
	raw, ok, err := r.kv.Get(KeyUser)
	if err != nil {
		logs.Logger.Error().Err(err).Str("key", KeyUser).Msg("failed to load user")
		return nil
	}
	if !ok || raw == "" {
		return nil
	}

	var u auth.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		logs.Logger.Error().Err(err).Str("key", KeyUser).Msg("failed to decode user")
		return nil
	}
	return &u
}

// SaveUser stores u, or removes the record when u is nil
func (r *Repository) SaveUser(u *auth.User) error {
	if u == nil {
		return r.ClearUser()
	}
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := r.kv.Set(KeyUser, string(data)); err != nil {
		logs.Logger.Error().Err(err).Str("key", KeyUser).Msg("failed to save user")
		return err
	}
	return nil
}

// ClearUser removes the stored user
func (r *Repository) ClearUser() error {
	if err := r.kv.Delete(KeyUser); err != nil {
		logs.Logger.Error().Err(err).Str("key", KeyUser).Msg("failed to clear user")
		return err
	}
	return nil
}

// LoadTheme returns the stored theme, light when absent or unreadable
func (r *Repository) LoadTheme() Theme {
	raw, ok, err := r.kv.Get(KeyTheme)
	if err != nil {
		logs.Logger.Error().Err(err).Str("key", KeyTheme).Msg("failed to load theme")
		return ThemeLight
	}
	if !ok {
		return ThemeLight
	}
	return ParseTheme(raw)
}

// SaveTheme stores the theme as a bare string
func (r *Repository) SaveTheme(t Theme) error {
	if err := r.kv.Set(KeyTheme, string(ParseTheme(string(t)))); err != nil {
		logs.Logger.Error().Err(err).Str("key", KeyTheme).Msg("failed to save theme")
		return err
	}
	return nil
}
