package cli

import (
	"fmt"
	"io"
	"strings"

	"smartnote/internal/notes"
	"smartnote/internal/notes/service"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func printNote(w io.Writer, n notes.Note) {
	star := " "
	if n.IsFavorite {
		star = "*"
	}

	fmt.Fprintf(w, "[%s] %s %s\n", shortID(n.ID), star, n.DisplayTitle())

	var meta []string
	meta = append(meta, n.Updated().Format(dateLayout))
	if len(n.Tags) > 0 {
		meta = append(meta, formatTags(n.Tags))
	}
	if len(n.Attachments) > 0 {
		meta = append(meta, fmt.Sprintf("%d attachment(s)", len(n.Attachments)))
	}
	fmt.Fprintf(w, "           %s\n", strings.Join(meta, "  "))
}

func formatTags(tags []string) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = "#" + t
	}
	return strings.Join(parts, " ")
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// findNoteByPartialID resolves a full id or a prefix of at least 4 characters
func findNoteByPartialID(svc service.NoteService, partialID string) (notes.Note, error) {
	var matches []notes.Note
	for _, n := range svc.List() {
		if n.ID == partialID {
			return n, nil
		}
		if len(partialID) >= 4 && strings.HasPrefix(n.ID, partialID) {
			matches = append(matches, n)
		}
	}

	if len(matches) == 0 {
		return notes.Note{}, fmt.Errorf("no note found with ID: %s", partialID)
	}
	if len(matches) > 1 {
		return notes.Note{}, fmt.Errorf("multiple notes match ID '%s', please be more specific", partialID)
	}
	return matches[0], nil
}
