package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// CategoryStyle defines the color and icon used when printing a category.
type CategoryStyle struct {
	Color *color.Color
	Icon  string
}

// categoryStyles maps categories to their terminal styling.
var categoryStyles = map[Category]CategoryStyle{
	CategoryAdded:      {Color: color.New(color.FgGreen), Icon: "✓"},
	CategoryChanged:    {Color: color.New(color.FgBlue), Icon: "~"},
	CategoryDeprecated: {Color: color.New(color.FgRed), Icon: "⚠"},
	CategoryRemoved:    {Color: color.New(color.FgRed), Icon: "✗"},
	CategoryFixed:      {Color: color.New(color.FgYellow), Icon: "⚡"},
	CategorySecurity:   {Color: color.New(color.FgMagenta), Icon: "🔒"},
}

// FormatOptions controls terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatUnreleased writes the pending entries of a document to w with
// terminal styling, grouped by category in first-occurrence order.
func FormatUnreleased(u *Unreleased, w io.Writer, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	for _, group := range u.Categories {
		if len(group.Entries) == 0 {
			continue
		}
		if err := formatCategory(group, w, opts, width); err != nil {
			return fmt.Errorf("formatting category %s: %w", group.Category, err)
		}
	}

	return nil
}

func formatCategory(group CategoryGroup, w io.Writer, opts FormatOptions, width int) error {
	header := string(group.Category)
	if !opts.Plain {
		if style, ok := categoryStyles[group.Category]; ok {
			header = style.Color.Sprintf("%s %s", style.Icon, group.Category)
		}
	}
	if _, err := fmt.Fprintf(w, "  %s\n", header); err != nil {
		return err
	}

	for _, entry := range group.Entries {
		for _, line := range wrapLine(entry, width-4) {
			if _, err := fmt.Fprintf(w, "    %s\n", line); err != nil {
				return err
			}
		}
	}

	return nil
}

// resolveWidth determines the output width, auto-detecting the terminal
// size when maxWidth is zero and defaulting to 80.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// wrapLine breaks a line at word boundaries to fit within width.
func wrapLine(line string, width int) []string {
	if width <= 0 || len(line) <= width {
		return []string{line}
	}

	var wrapped []string
	words := strings.Fields(line)
	current := ""

	for _, word := range words {
		switch {
		case current == "":
			current = word
		case len(current)+1+len(word) <= width:
			current += " " + word
		default:
			wrapped = append(wrapped, current)
			current = word
		}
	}
	if current != "" {
		wrapped = append(wrapped, current)
	}

	return wrapped
}
