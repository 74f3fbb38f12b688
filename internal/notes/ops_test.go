package notes

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestPatchApply_RefreshesUpdatedAtOnContentChange(t *testing.T) {
	n := New("1", time.UnixMilli(1000))
	changed := Patch{Title: strPtr("Hello")}.Apply(&n, time.UnixMilli(2000))

	assert.True(t, changed)
	assert.Equal(t, "Hello", n.Title)
	assert.Equal(t, int64(2000), n.UpdatedAt)
	assert.Equal(t, int64(1000), n.CreatedAt)
}

func TestPatchApply_FavoriteDoesNotTouchUpdatedAt(t *testing.T) {
	n := New("1", time.UnixMilli(1000))
	changed := Patch{IsFavorite: boolPtr(true)}.Apply(&n, time.UnixMilli(5000))

	assert.True(t, changed)
	assert.True(t, n.IsFavorite)
	assert.Equal(t, int64(1000), n.UpdatedAt)
}

func TestPatchApply_UnchangedValuesAreNoop(t *testing.T) {
	n := New("1", time.UnixMilli(1000))
	n.Title = "same"
	tags := []string{}
	changed := Patch{Title: strPtr("same"), Tags: &tags}.Apply(&n, time.UnixMilli(5000))

	assert.False(t, changed)
	assert.Equal(t, int64(1000), n.UpdatedAt)
}

func TestPatchApply_UpdatedAtNeverMovesBackwards(t *testing.T) {
	n := New("1", time.UnixMilli(5000))
	Patch{Content: strPtr("x")}.Apply(&n, time.UnixMilli(1000))

	assert.Equal(t, int64(5000), n.UpdatedAt)
	assert.GreaterOrEqual(t, n.UpdatedAt, n.CreatedAt)
}

func TestUpdateNote_NotFound(t *testing.T) {
	_, err := UpdateNote(nil, "missing", Patch{Title: strPtr("x")}, time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteLifecycle(t *testing.T) {
	now := time.UnixMilli(1000)
	list := Prepend(nil, New("a", now))
	list = Prepend(list, New("b", now))
	require.Equal(t, "b", list[0].ID)

	_, err := PermanentDelete(list, "a")
	assert.ErrorIs(t, err, ErrNotInTrash)
	assert.Len(t, list, 2)

	n, err := SoftDelete(list, "a", time.UnixMilli(2000))
	require.NoError(t, err)
	assert.True(t, n.IsDeleted)
	assert.Equal(t, int64(2000), n.UpdatedAt)
	assert.Len(t, list, 2)

	restored, err := Restore(list, "a")
	require.NoError(t, err)
	assert.False(t, restored.IsDeleted)
	assert.Equal(t, int64(2000), restored.UpdatedAt)

	_, err = SoftDelete(list, "a", time.UnixMilli(3000))
	require.NoError(t, err)
	list, err = PermanentDelete(list, "a")
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, -1, Index(list, "a"))
}

func TestPurgeDeleted(t *testing.T) {
	list := []Note{{ID: "1", IsDeleted: true}, {ID: "2"}, {ID: "3", IsDeleted: true}}
	list, n := PurgeDeleted(list)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"2"}, ids(list))
}

func TestMergeAndRemoveTags(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, MergeTags([]string{"a", "b"}, []string{"b", "c", ""}))
	assert.Equal(t, []string{"a", "c"}, RemoveTag([]string{"a", "b", "c"}, "b"))
}

func TestPreviewAndDisplayTitle(t *testing.T) {
	n := Note{Content: "short"}
	assert.Equal(t, "short", n.Preview())
	assert.Equal(t, "Untitled Note", n.DisplayTitle())

	long := Note{Title: "t", Content: strings.Repeat("é", 120)}
	p := long.Preview()
	assert.Equal(t, strings.Repeat("é", 100)+"...", p)
	assert.Equal(t, "t", long.DisplayTitle())
}
