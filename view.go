package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/LFroesch/cpass/internal/tree"
)

func (m *model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	list := m.renderList()
	var body string
	switch {
	case m.sidePreview():
		w, h := m.previewSize()
		preview := lipgloss.NewStyle().Width(w).Height(h).MaxHeight(h).Render(m.preview.View())
		body = lipgloss.JoinHorizontal(lipgloss.Top, list, " ", preview)
	case m.bottomPreview():
		divider := m.styles.border.Render(strings.Repeat("-", m.width))
		body = lipgloss.JoinVertical(lipgloss.Left, list, divider, m.preview.View())
	default:
		body = list
	}
	body = lipgloss.NewStyle().Height(m.bodyHeight()).MaxHeight(m.bodyHeight()).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, m.renderFooter())
}

func (m *model) renderHeader() string {
	title := m.styles.border.Render(appName+": ") + m.styles.bright.Render("/"+m.nav.Path())
	if m.inGit && m.gitStatus.Branch != "" {
		title += m.styles.border.Render(" [" + m.gitStatus.String() + "]")
	}
	helpLine := m.help.ShortHelpView(m.keys.ShortHelp())
	return spread(title, helpLine, m.width)
}

func (m *model) renderFooter() string {
	if m.session.Active() {
		return ansi.Truncate(m.input.View(), m.width, "")
	}

	focus, total := m.counter()
	count := m.styles.border.Render(fmt.Sprintf("%d/%d", focus, total))

	style := m.styles.normal
	if m.statusAlert {
		style = m.styles.alert
	}
	return spread(style.Render(m.status), count, m.width)
}

// renderList draws the visible window of the current directory.
func (m *model) renderList() string {
	width := m.listWidth()
	nodes := m.nav.Nodes()
	view := m.nav.Viewport()
	start, end := view.Window(len(nodes), m.nav.Height())

	rows := make([]string, 0, m.nav.Height())
	for i := start; i < end; i++ {
		rows = append(rows, m.renderRow(nodes[i], i == view.Focus, width))
	}
	for len(rows) < m.nav.Height() {
		rows = append(rows, strings.Repeat(" ", width))
	}
	return strings.Join(rows, "\n")
}

func (m *model) renderRow(n tree.Node, focused bool, width int) string {
	var icon, count string
	style := m.styles.normal
	switch {
	case n.IsDir():
		icon = m.cfg.DirIcon
		count = strconv.Itoa(n.Count)
		style = m.styles.dir
		if focused {
			style = m.styles.focusDir
		}
	case n.IsLeaf():
		icon = m.cfg.FileIcon
		if focused {
			style = m.styles.focus
		}
	default:
		style = m.styles.bright
		if focused {
			style = m.styles.focus
		}
	}

	name := icon + n.Label()
	room := width
	if count != "" {
		room -= ansi.StringWidth(count) + 1
	}
	name = ansi.Truncate(name, max(room, 0), "")
	gap := width - ansi.StringWidth(name) - ansi.StringWidth(count)
	line := name + strings.Repeat(" ", max(gap, 0)) + count
	return style.Render(ansi.Truncate(line, width, ""))
}

// spread puts left and right on one line of the given width, clipping left
// when they do not fit.
func spread(left, right string, width int) string {
	rw := ansi.StringWidth(right)
	if rw >= width {
		return ansi.Truncate(right, width, "")
	}
	left = ansi.Truncate(left, width-rw-1, "")
	gap := width - ansi.StringWidth(left) - rw
	return left + strings.Repeat(" ", max(gap, 0)) + right
}
