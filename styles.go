package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/LFroesch/cpass/internal/config"
	"github.com/LFroesch/cpass/internal/logger"
)

// classic 16 color names, mapped to ANSI color numbers
var colorNames = map[string]string{
	"black":         "0",
	"dark red":      "1",
	"red":           "1",
	"dark green":    "2",
	"green":         "2",
	"brown":         "3",
	"yellow":        "11",
	"dark blue":     "4",
	"blue":          "4",
	"dark magenta":  "5",
	"magenta":       "5",
	"dark cyan":     "6",
	"cyan":          "6",
	"light gray":    "7",
	"light grey":    "7",
	"dark gray":     "8",
	"dark grey":     "8",
	"light red":     "9",
	"light green":   "10",
	"light blue":    "12",
	"light magenta": "13",
	"light cyan":    "14",
	"white":         "15",
}

type styles struct {
	normal   lipgloss.Style
	border   lipgloss.Style
	dir      lipgloss.Style
	alert    lipgloss.Style
	bright   lipgloss.Style
	focus    lipgloss.Style
	focusDir lipgloss.Style
}

func newStyles(palette map[string]config.Style) styles {
	return styles{
		normal:   buildStyle(palette[config.StyleNormal]),
		border:   buildStyle(palette[config.StyleBorder]),
		dir:      buildStyle(palette[config.StyleDir]),
		alert:    buildStyle(palette[config.StyleAlert]),
		bright:   buildStyle(palette[config.StyleBright]),
		focus:    buildStyle(palette[config.StyleFocus]),
		focusDir: buildStyle(palette[config.StyleFocusDir]),
	}
}

func buildStyle(s config.Style) lipgloss.Style {
	style := lipgloss.NewStyle()
	if c, ok := color(s.Fg); ok {
		style = style.Foreground(c)
	}
	if c, ok := color(s.Bg); ok {
		style = style.Background(c)
	}
	for _, attr := range s.Attrs {
		switch strings.ToLower(attr) {
		case "bold":
			style = style.Bold(true)
		case "italics", "italic":
			style = style.Italic(true)
		case "underline":
			style = style.Underline(true)
		case "standout", "reverse":
			style = style.Reverse(true)
		case "blink":
			style = style.Blink(true)
		case "faint", "dim":
			style = style.Faint(true)
		case "strikethrough":
			style = style.Strikethrough(true)
		default:
			logger.Warn("Unknown style attribute %q, ignored", attr)
		}
	}
	return style
}

// color resolves a palette color. "default" and "" keep the terminal's
// color.
func color(name string) (lipgloss.TerminalColor, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "default" {
		return nil, false
	}
	if ansi, ok := colorNames[name]; ok {
		return lipgloss.Color(ansi), true
	}
	return lipgloss.Color(name), true
}
