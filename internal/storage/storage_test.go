package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartnote/internal/auth"
	"smartnote/internal/notes"
)

func backends(t *testing.T) map[string]KV {
	t.Helper()

	fileKV, err := NewFileKV(filepath.Join(t.TempDir(), "store"))
	require.NoError(t, err)

	sqliteKV, err := NewSQLiteKV(filepath.Join(t.TempDir(), "smartnote.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqliteKV.Close() })

	return map[string]KV{BackendFile: fileKV, BackendSQLite: sqliteKV}
}

func TestKV_GetSetDelete(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := kv.Get("missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, kv.Set("k", "v1"))
			require.NoError(t, kv.Set("k", "v2"))

			v, ok, err := kv.Get("k")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "v2", v)

			require.NoError(t, kv.Delete("k"))
			require.NoError(t, kv.Delete("k"))
			_, ok, err = kv.Get("k")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestFileKV_RejectsPathKeys(t *testing.T) {
	kv, err := NewFileKV(t.TempDir())
	require.NoError(t, err)
	assert.Error(t, kv.Set("../escape", "x"))
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open("redis", t.TempDir())
	assert.Error(t, err)
}

func TestRepository_NotesRoundTrip(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			repo := NewRepository(kv)
			assert.Empty(t, repo.LoadNotes())

			in := []notes.Note{
				{ID: "1", Title: "a", Tags: []string{"x"}, CreatedAt: 1, UpdatedAt: 2,
					Attachments: []notes.Attachment{{ID: "at", Type: notes.AttachmentImage, URL: "data:image/png;base64,AA==", Name: "p.png"}}},
				{ID: "2", Title: "b", IsDeleted: true, CreatedAt: 1, UpdatedAt: 1},
			}
			require.NoError(t, repo.SaveNotes(in))

			out := repo.LoadNotes()
			require.Len(t, out, 2)
			assert.Equal(t, in[0], out[0])
			assert.True(t, out[1].IsDeleted)
			assert.NotNil(t, out[1].Tags)
		})
	}
}

func TestRepository_WireFormat(t *testing.T) {
	kv, err := NewFileKV(t.TempDir())
	require.NoError(t, err)
	repo := NewRepository(kv)

	require.NoError(t, repo.SaveNotes([]notes.Note{{ID: "1", Tags: []string{}, IsFavorite: true, CreatedAt: 5, UpdatedAt: 6}}))
	raw, _, err := kv.Get(KeyNotes)
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"id":"1","title":"","content":"","tags":[],"isFavorite":true,"isDeleted":false,"createdAt":5,"updatedAt":6}]`,
		raw)
}

func TestRepository_CorruptNotesDegradeToEmpty(t *testing.T) {
	dir := t.TempDir()
	kv, err := NewFileKV(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, KeyNotes+".json"), []byte("{not json"), 0644))

	assert.Empty(t, NewRepository(kv).LoadNotes())
}

func TestRepository_User(t *testing.T) {
	kv, err := NewFileKV(t.TempDir())
	require.NoError(t, err)
	repo := NewRepository(kv)

	assert.Nil(t, repo.LoadUser())

	u := &auth.User{ID: "u1", Username: "ann", Email: "ann@example.com"}
	require.NoError(t, repo.SaveUser(u))
	got := repo.LoadUser()
	require.NotNil(t, got)
	assert.Equal(t, *u, *got)

	require.NoError(t, repo.SaveUser(nil))
	assert.Nil(t, repo.LoadUser())
}

func TestRepository_Theme(t *testing.T) {
	kv, err := NewFileKV(t.TempDir())
	require.NoError(t, err)
	repo := NewRepository(kv)

	assert.Equal(t, ThemeLight, repo.LoadTheme())

	require.NoError(t, repo.SaveTheme(ThemeDark))
	assert.Equal(t, ThemeDark, repo.LoadTheme())
	raw, _, _ := kv.Get(KeyTheme)
	assert.Equal(t, "dark", raw)

	require.NoError(t, kv.Set(KeyTheme, "solarized"))
	assert.Equal(t, ThemeLight, repo.LoadTheme())

	assert.Equal(t, ThemeDark, ThemeLight.Toggle())
	assert.Equal(t, ThemeLight, ThemeDark.Toggle())
}
