// Package textshape measures text in terminal cells. It is the shaping
// collaborator for the widget runtime: the Surface itself stays at one cell
// per Unicode scalar, and widgets that need correct wide/combining character
// handling go through this package instead.
package textshape

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// RuneWidth returns the display width of a single rune in cells.
// Zero-width runes report as 1 because the runtime's cell grid has no
// continuation cells for them.
func RuneWidth(r rune) int {
	w := runewidth.RuneWidth(r)
	if w == 0 {
		w = 1
	}
	return w
}

// Width returns the display width of a string in cells.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// Grapheme is one user-perceived character together with its cell width.
type Grapheme struct {
	Cluster string
	Width   int
}

// Graphemes splits a string into grapheme clusters with widths.
func Graphemes(s string) []Grapheme {
	var out []Grapheme
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cluster := g.Str()
		w := runewidth.StringWidth(cluster)
		if w == 0 {
			w = 1
		}
		out = append(out, Grapheme{Cluster: cluster, Width: w})
	}
	return out
}

// TruncateToCells cuts a string so it fits within maxCells display cells,
// appending tail (e.g. "…") when anything was cut. Tail width counts
// against the budget.
func TruncateToCells(s string, maxCells int, tail string) string {
	if maxCells <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxCells {
		return s
	}
	return runewidth.Truncate(s, maxCells, tail)
}

// PadRight pads a string with spaces to the given cell width.
func PadRight(s string, cells int) string {
	return runewidth.FillRight(s, cells)
}

// WrapToCells greedily wraps a string into lines no wider than cells.
// Breaks happen at word boundaries when possible, inside words otherwise.
// Newlines in the input force breaks.
func WrapToCells(s string, cells int) []string {
	if cells <= 0 {
		return nil
	}

	var lines []string
	for _, paragraph := range strings.Split(s, "\n") {
		if paragraph == "" {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, wrapParagraph(paragraph, cells)...)
	}
	return lines
}

func wrapParagraph(s string, cells int) []string {
	var lines []string
	var line strings.Builder
	lineWidth := 0

	flush := func() {
		lines = append(lines, strings.TrimRight(line.String(), " "))
		line.Reset()
		lineWidth = 0
	}

	for _, word := range strings.Split(s, " ") {
		w := runewidth.StringWidth(word)

		if lineWidth > 0 && lineWidth+1+w > cells {
			flush()
		}
		if lineWidth > 0 {
			line.WriteByte(' ')
			lineWidth++
		}

		// A word wider than the line breaks mid-word by grapheme.
		if w > cells {
			for _, g := range Graphemes(word) {
				if lineWidth+g.Width > cells && lineWidth > 0 {
					flush()
				}
				line.WriteString(g.Cluster)
				lineWidth += g.Width
			}
			continue
		}

		line.WriteString(word)
		lineWidth += w
	}

	if line.Len() > 0 || len(lines) == 0 {
		flush()
	}
	return lines
}
