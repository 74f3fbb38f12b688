package markdown

// Syntax is a formatting helper offered by the editor toolbar
type Syntax int

const (
	Bold Syntax = iota
	Italic
	List
)

func (s Syntax) String() string {
	switch s {
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case List:
		return "list"
	}
	return "unknown"
}

// Insert wraps text[start:end] (rune offsets) in the markup for s and returns
// the new text and the cursor position just past the inserted markup.
// Out-of-range offsets are clamped.
func Insert(s Syntax, text string, start, end int) (string, int) {
	runes := []rune(text)
	start = clamp(start, 0, len(runes))
	end = clamp(end, start, len(runes))

	before := string(runes[:start])
	selection := string(runes[start:end])
	after := string(runes[end:])

	switch s {
	case Bold:
		return before + "**" + selection + "**" + after, end + 4
	case Italic:
		return before + "_" + selection + "_" + after, end + 2
	case List:
		return before + "\n- " + selection + after, end + 3
	}
	return text, end
}

// Snippet is the markup Insert produces for an empty selection
func Snippet(s Syntax) string {
	out, _ := Insert(s, "", 0, 0)
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
