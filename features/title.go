package features

import (
	"strings"
	"unicode/utf8"
)

// TitleShape holds the flags derived by inspecting the title string.
type TitleShape struct {
	HasSubtitle   bool // title contains ':'
	HasSeries     bool // title contains '('
	StartsWithThe bool
	Length        int // rune count
	WordCount     int
	HasNumbers    bool
}

// InspectTitle derives the title-shape features for one title.
func InspectTitle(title string) TitleShape {
	return TitleShape{
		HasSubtitle:   strings.Contains(title, ":"),
		HasSeries:     strings.Contains(title, "("),
		StartsWithThe: strings.HasPrefix(title, "The "),
		Length:        utf8.RuneCountInString(title),
		WordCount:     len(strings.Fields(title)),
		HasNumbers:    strings.ContainsAny(title, "0123456789"),
	}
}
