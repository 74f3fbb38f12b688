// Package mdfile moves notes in and out of plain markdown files with YAML
// frontmatter.
package mdfile

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode"

	"gopkg.in/yaml.v3"

	"smartnote/internal/logs"
	"smartnote/internal/notes"
)

var (
	datePattern     = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	multiHyphen     = regexp.MustCompile(`-+`)
	timestampLayout = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04", "2006-01-02"}
)

type frontmatter struct {
	ID       string   `yaml:"id,omitempty"`
	Title    string   `yaml:"title,omitempty"`
	Tags     []string `yaml:"tags,omitempty"`
	Favorite bool     `yaml:"favorite,omitempty"`
	Deleted  bool     `yaml:"deleted,omitempty"`
	Created  string   `yaml:"created,omitempty"`
	Updated  string   `yaml:"updated,omitempty"`
	// Date is accepted on import for hand-written daily notes
	Date string `yaml:"date,omitempty"`
}

// Filename is the export name of a note: <slug>-<first 8 of id>.md
func Filename(n notes.Note) string {
	id := n.ID
	if len(id) > 8 {
		id = id[:8]
	}
	if id == "" {
		return Slug(n.Title) + ".md"
	}
	return Slug(n.Title) + "-" + id + ".md"
}

// Slug lowercases title into a hyphenated filename stem
// "My Note Title!" -> "my-note-title"
func Slug(title string) string {
	s := strings.ToLower(title)
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "_", "-")

	var result strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			result.WriteRune(r)
		}
	}
	s = multiHyphen.ReplaceAllString(result.String(), "-")
	s = strings.Trim(s, "-")

	if s == "" {
		s = "note"
	}
	return s
}

// Marshal renders a note as markdown with frontmatter
func Marshal(n notes.Note) ([]byte, error) {
	var buf bytes.Buffer

	fm := frontmatter{
		ID:       n.ID,
		Title:    n.Title,
		Tags:     n.Tags,
		Favorite: n.IsFavorite,
		Deleted:  n.IsDeleted,
		Created:  n.Created().UTC().Format(time.RFC3339Nano),
		Updated:  n.Updated().UTC().Format(time.RFC3339Nano),
	}
	yamlBytes, err := yaml.Marshal(fm)
	if err != nil {
		return nil, err
	}

	buf.WriteString("---\n")
	buf.Write(yamlBytes)
	buf.WriteString("---\n\n")
	buf.WriteString(n.Content)
	return buf.Bytes(), nil
}

// Export writes every note to dir, creating it if needed. Soft-deleted notes
// are skipped unless includeTrash is set.
func Export(dir string, list []notes.Note, includeTrash bool) (int, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create export directory: %w", err)
	}

	written := 0
	for _, n := range list {
		if n.IsDeleted && !includeTrash {
			continue
		}
		data, err := Marshal(n)
		if err != nil {
			return written, fmt.Errorf("failed to encode note %s: %w", n.ID, err)
		}
		path := filepath.Join(dir, Filename(n))
		if err := os.WriteFile(path, data, 0644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written++
	}
	return written, nil
}

// Parse builds a note from file contents. modTime fills in missing
// timestamps. Notes without frontmatter take their whole body as content.
func Parse(filename string, content []byte, modTime time.Time) notes.Note {
	fm, body := splitFrontmatter(content)

	n := notes.Note{
		ID:         fm.ID,
		Title:      fm.Title,
		Content:    body,
		Tags:       cleanTags(fm.Tags),
		IsFavorite: fm.Favorite,
		IsDeleted:  fm.Deleted,
	}

	if n.Title == "" {
		n.Title = titleFromFilename(filename)
	}

	created, ok := parseTimestamp(fm.Created)
	if !ok {
		created, ok = parseTimestamp(fm.Date)
	}
	if !ok {
		if match := datePattern.FindString(filename); match != "" {
			created, ok = parseTimestamp(match)
		}
	}
	if !ok {
		created = modTime
	}

	updated, ok := parseTimestamp(fm.Updated)
	if !ok {
		updated = modTime
	}
	if updated.Before(created) {
		updated = created
	}

	n.CreatedAt = created.UnixMilli()
	n.UpdatedAt = updated.UnixMilli()
	return n
}

// ParseFile reads and parses a single markdown file
func ParseFile(path string) (notes.Note, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return notes.Note{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return notes.Note{}, err
	}
	return Parse(filepath.Base(path), content, info.ModTime()), nil
}

// Import parses every .md file under dir, most recently updated first.
// Unreadable files are logged and skipped.
func Import(dir string) ([]notes.Note, error) {
	var list []notes.Note

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}

		n, err := ParseFile(path)
		if err != nil {
			logs.Logger.Warn().Err(err).Str("path", path).Msg("skipping unreadable note file")
			return nil
		}
		list = append(list, n)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].UpdatedAt > list[j].UpdatedAt
	})
	return list, nil
}

func splitFrontmatter(content []byte) (frontmatter, string) {
	lines := bytes.Split(content, []byte("\n"))

	if len(lines) == 0 || !bytes.Equal(bytes.TrimSpace(lines[0]), []byte("---")) {
		return frontmatter{}, string(content)
	}

	var fmEnd int
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			fmEnd = i
			break
		}
	}

	if fmEnd == 0 {
		return frontmatter{}, string(content)
	}

	fmBytes := bytes.Join(lines[1:fmEnd], []byte("\n"))
	var fm frontmatter
	if err := yaml.Unmarshal(fmBytes, &fm); err != nil {
		return frontmatter{}, string(content)
	}

	body := string(bytes.Join(lines[fmEnd+1:], []byte("\n")))
	return fm, strings.TrimPrefix(body, "\n")
}

func parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayout {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func cleanTags(tags []string) []string {
	trimmed := make([]string, 0, len(tags))
	for _, t := range tags {
		trimmed = append(trimmed, strings.TrimSpace(t))
	}
	return notes.MergeTags([]string{}, trimmed)
}

func titleFromFilename(filename string) string {
	name := strings.TrimSuffix(filename, filepath.Ext(filename))

	// "2026-02-14-standup" -> "standup"
	if loc := datePattern.FindStringIndex(name); loc != nil && loc[0] == 0 {
		after := strings.TrimPrefix(name[loc[1]:], "-")
		if after != "" {
			name = after
		}
	}

	name = strings.ReplaceAll(name, "-", " ")
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.TrimSpace(name)

	if name == "" {
		return "Note"
	}
	return name
}
