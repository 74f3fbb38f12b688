package notes

import (
	"slices"
	"time"
)

// Patch carries a partial update. Nil fields are left untouched.
type Patch struct {
	Title       *string
	Content     *string
	Tags        *[]string
	IsFavorite  *bool
	Attachments *[]Attachment
}

// IsEmpty reports whether the patch would change nothing
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.Tags == nil && p.IsFavorite == nil && p.Attachments == nil
}

// Apply merges the patch into n. UpdatedAt is refreshed only when a
// content-bearing field (title, content, tags, attachments) actually changes.
// It returns true if anything changed.
func (p Patch) Apply(n *Note, now time.Time) bool {
	contentChanged := false
	changed := false

	if p.Title != nil && *p.Title != n.Title {
		n.Title = *p.Title
		contentChanged = true
	}
	if p.Content != nil && *p.Content != n.Content {
		n.Content = *p.Content
		contentChanged = true
	}
	if p.Tags != nil && !slices.Equal(*p.Tags, n.Tags) {
		n.Tags = append([]string{}, *p.Tags...)
		contentChanged = true
	}
	if p.Attachments != nil && !slices.Equal(*p.Attachments, n.Attachments) {
		n.Attachments = append([]Attachment{}, *p.Attachments...)
		contentChanged = true
	}
	if p.IsFavorite != nil && *p.IsFavorite != n.IsFavorite {
		n.IsFavorite = *p.IsFavorite
		changed = true
	}

	if contentChanged {
		n.touch(now)
	}
	return changed || contentChanged
}

// Index returns the position of the note with id, or -1
func Index(list []Note, id string) int {
	for i, n := range list {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// Find returns a copy of the note with id
func Find(list []Note, id string) (Note, bool) {
	if i := Index(list, id); i >= 0 {
		return list[i].Clone(), true
	}
	return Note{}, false
}

// Prepend returns a new slice with n first (most-recent-first ordering)
func Prepend(list []Note, n Note) []Note {
	out := make([]Note, 0, len(list)+1)
	out = append(out, n)
	return append(out, list...)
}

// UpdateNote applies patch to the note with id in place
func UpdateNote(list []Note, id string, patch Patch, now time.Time) (Note, error) {
	i := Index(list, id)
	if i < 0 {
		return Note{}, ErrNotFound
	}
	patch.Apply(&list[i], now)
	return list[i].Clone(), nil
}

// SoftDelete marks the note as deleted and refreshes UpdatedAt. Already
// deleted notes are left as they are.
func SoftDelete(list []Note, id string, now time.Time) (Note, error) {
	i := Index(list, id)
	if i < 0 {
		return Note{}, ErrNotFound
	}
	if !list[i].IsDeleted {
		list[i].IsDeleted = true
		list[i].touch(now)
	}
	return list[i].Clone(), nil
}

// PermanentDelete removes a note that is already in the trash and returns the
// shortened slice.
func PermanentDelete(list []Note, id string) ([]Note, error) {
	i := Index(list, id)
	if i < 0 {
		return list, ErrNotFound
	}
	if !list[i].IsDeleted {
		return list, ErrNotInTrash
	}
	return slices.Delete(list, i, i+1), nil
}

// Restore clears the deleted flag; no other field changes
func Restore(list []Note, id string) (Note, error) {
	i := Index(list, id)
	if i < 0 {
		return Note{}, ErrNotFound
	}
	list[i].IsDeleted = false
	return list[i].Clone(), nil
}

// PurgeDeleted drops every soft-deleted note and returns how many were removed
func PurgeDeleted(list []Note) ([]Note, int) {
	before := len(list)
	list = slices.DeleteFunc(list, func(n Note) bool { return n.IsDeleted })
	return list, before - len(list)
}

// MergeTags appends the tags not already present, preserving order
func MergeTags(existing, incoming []string) []string {
	out := append([]string{}, existing...)
	for _, t := range incoming {
		if t != "" && !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}

// RemoveTag returns tags without tag
func RemoveTag(tags []string, tag string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t != tag {
			out = append(out, t)
		}
	}
	return out
}
