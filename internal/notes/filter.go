package notes

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ViewMode is the top-level lens applied to the collection
type ViewMode int

const (
	ViewAll ViewMode = iota
	ViewFavorites
	ViewTrash
	ViewTag
)

func (v ViewMode) String() string {
	switch v {
	case ViewFavorites:
		return "favorites"
	case ViewTrash:
		return "trash"
	case ViewTag:
		return "tag"
	default:
		return "all"
	}
}

// ParseViewMode parses the names produced by String
func ParseViewMode(s string) (ViewMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return ViewAll, nil
	case "favorites", "fav":
		return ViewFavorites, nil
	case "trash":
		return ViewTrash, nil
	case "tag":
		return ViewTag, nil
	}
	return ViewAll, fmt.Errorf("unknown view %q", s)
}

// SortOption orders the filtered list
type SortOption int

const (
	SortDateDesc SortOption = iota
	SortDateAsc
	SortTitleAsc
	SortTitleDesc
)

// SortOptions lists every option in cycle order
var SortOptions = []SortOption{SortDateDesc, SortDateAsc, SortTitleAsc, SortTitleDesc}

func (s SortOption) String() string {
	switch s {
	case SortDateAsc:
		return "date-asc"
	case SortTitleAsc:
		return "title-asc"
	case SortTitleDesc:
		return "title-desc"
	default:
		return "date-desc"
	}
}

// Label is the human readable name used by the views
func (s SortOption) Label() string {
	switch s {
	case SortDateAsc:
		return "Oldest first"
	case SortTitleAsc:
		return "Title A-Z"
	case SortTitleDesc:
		return "Title Z-A"
	default:
		return "Newest first"
	}
}

// Next returns the following option, wrapping around
func (s SortOption) Next() SortOption {
	return SortOptions[(int(s)+1)%len(SortOptions)]
}

// ParseSortOption parses the names produced by String
func ParseSortOption(s string) (SortOption, error) {
	for _, opt := range SortOptions {
		if opt.String() == strings.ToLower(strings.TrimSpace(s)) {
			return opt, nil
		}
	}
	if strings.TrimSpace(s) == "" {
		return SortDateDesc, nil
	}
	return SortDateDesc, fmt.Errorf("unknown sort option %q", s)
}

// Query holds every input of the filter/sort pipeline
type Query struct {
	View   ViewMode
	Tag    string // only meaningful when View == ViewTag
	Search string
	Sort   SortOption
}

// Filter returns the visible notes for q, in display order. The input slice
// is not modified and the result is never cached.
func Filter(list []Note, q Query) []Note {
	term := strings.ToLower(q.Search)

	out := make([]Note, 0, len(list))
	for _, n := range list {
		if !matchesView(n, q) {
			continue
		}
		if term != "" && !matchesSearch(n, term) {
			continue
		}
		out = append(out, n.Clone())
	}

	SortNotes(out, q.Sort)
	return out
}

func matchesView(n Note, q Query) bool {
	if q.View == ViewTrash {
		return n.IsDeleted
	}
	if n.IsDeleted {
		return false
	}
	switch q.View {
	case ViewFavorites:
		return n.IsFavorite
	case ViewTag:
		if q.Tag != "" {
			return n.HasTag(q.Tag)
		}
	}
	return true
}

// matchesSearch expects term to be lowercased already.
func matchesSearch(n Note, term string) bool {
	if strings.Contains(strings.ToLower(n.Title), term) {
		return true
	}
	if strings.Contains(strings.ToLower(n.Content), term) {
		return true
	}
	for _, t := range n.Tags {
		if strings.Contains(strings.ToLower(t), term) {
			return true
		}
	}
	return false
}

// SortNotes sorts in place. The sort is stable so equal keys keep their
// collection order.
func SortNotes(list []Note, opt SortOption) {
	switch opt {
	case SortDateAsc:
		sort.SliceStable(list, func(i, j int) bool { return list[i].UpdatedAt < list[j].UpdatedAt })
	case SortTitleAsc, SortTitleDesc:
		col := collate.New(language.English)
		desc := opt == SortTitleDesc
		sort.SliceStable(list, func(i, j int) bool {
			c := col.CompareString(list[i].Title, list[j].Title)
			if desc {
				return c > 0
			}
			return c < 0
		})
	default:
		sort.SliceStable(list, func(i, j int) bool { return list[i].UpdatedAt > list[j].UpdatedAt })
	}
}

// TagIndex returns the sorted, deduplicated tags of all non-deleted notes
func TagIndex(list []Note) []string {
	seen := make(map[string]struct{})
	for _, n := range list {
		if n.IsDeleted {
			continue
		}
		for _, t := range n.Tags {
			seen[t] = struct{}{}
		}
	}
	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// CountByView returns how many notes each sidebar entry would show
func CountByView(list []Note) map[ViewMode]int {
	counts := map[ViewMode]int{}
	for _, n := range list {
		if n.IsDeleted {
			counts[ViewTrash]++
			continue
		}
		counts[ViewAll]++
		if n.IsFavorite {
			counts[ViewFavorites]++
		}
	}
	return counts
}
