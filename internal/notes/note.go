package notes

import (
	"errors"
	"slices"
	"time"
)

var (
	ErrNotFound   = errors.New("note not found")
	ErrNotInTrash = errors.New("note is not in the trash")
)

// AttachmentType distinguishes inline images from other files
type AttachmentType string

const (
	AttachmentImage AttachmentType = "image"
	AttachmentFile  AttachmentType = "file"
)

// Attachment is owned by exactly one note
type Attachment struct {
	ID   string         `json:"id"`
	Type AttachmentType `json:"type"`
	URL  string         `json:"url"` // data URL (base64) or external URL
	Name string         `json:"name"`
}

// Note represents a single note in the collection
type Note struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Content     string       `json:"content"`
	Tags        []string     `json:"tags"`
	IsFavorite  bool         `json:"isFavorite"`
	IsDeleted   bool         `json:"isDeleted"`
	CreatedAt   int64        `json:"createdAt"` // ms since epoch
	UpdatedAt   int64        `json:"updatedAt"` // ms since epoch
	Attachments []Attachment `json:"attachments,omitempty"`
}

// New returns an empty note stamped with now
func New(id string, now time.Time) Note {
	ms := now.UnixMilli()
	return Note{
		ID:        id,
		Tags:      []string{},
		CreatedAt: ms,
		UpdatedAt: ms,
	}
}

// HasTag reports whether the note carries tag (exact match)
func (n Note) HasTag(tag string) bool {
	return slices.Contains(n.Tags, tag)
}

// Updated returns UpdatedAt as a time.Time
func (n Note) Updated() time.Time {
	return time.UnixMilli(n.UpdatedAt)
}

// Created returns CreatedAt as a time.Time
func (n Note) Created() time.Time {
	return time.UnixMilli(n.CreatedAt)
}

// DisplayTitle returns the title, or a placeholder for untitled notes
func (n Note) DisplayTitle() string {
	if n.Title == "" {
		return "Untitled Note"
	}
	return n.Title
}

// PreviewLength is how many runes of content a list row shows
const PreviewLength = 100

// Preview returns the first PreviewLength runes of the content, with an
// ellipsis when truncated
func (n Note) Preview() string {
	r := []rune(n.Content)
	if len(r) <= PreviewLength {
		return n.Content
	}
	return string(r[:PreviewLength]) + "..."
}

// Clone returns a deep copy so callers can't alias the collection's slices
func (n Note) Clone() Note {
	c := n
	if n.Tags != nil {
		c.Tags = append([]string{}, n.Tags...)
	}
	if n.Attachments != nil {
		c.Attachments = append([]Attachment{}, n.Attachments...)
	}
	return c
}

// touch refreshes UpdatedAt without ever moving it backwards or below CreatedAt.
func (n *Note) touch(now time.Time) {
	ms := now.UnixMilli()
	if ms < n.UpdatedAt {
		ms = n.UpdatedAt
	}
	if ms < n.CreatedAt {
		ms = n.CreatedAt
	}
	n.UpdatedAt = ms
}
