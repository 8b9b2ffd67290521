package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LFroesch/cpass/internal/browser"
	"github.com/LFroesch/cpass/internal/config"
	"github.com/LFroesch/cpass/internal/git"
	"github.com/LFroesch/cpass/internal/logger"
	"github.com/LFroesch/cpass/internal/modal"
	"github.com/LFroesch/cpass/internal/store"
	"github.com/LFroesch/cpass/internal/tree"
)

const appName = "cPass"

// Terminal dimension constants
const (
	headerHeight = 1
	footerHeight = 1
	minWidth     = 20
	minHeight    = 4
)

// storeDoneMsg carries the result of a store call made with the terminal
// released.
type storeDoneMsg struct {
	req browser.Request
	res store.Result
}

// statusMsg reports a background helper's result on the status line.
type statusMsg struct {
	text  string
	alert bool
}

type model struct {
	cfg      *config.Config
	store    store.Store
	storeDir string
	cache    *tree.Cache
	nav      *browser.Navigator
	coord    *browser.Coordinator
	session  modal.Session

	keys    keyMap
	help    help.Model
	styles  styles
	input   textinput.Model
	preview viewport.Model

	width       int
	height      int
	showPreview bool
	previewKey  string // kind and path of what the preview shows

	status      string
	statusAlert bool

	gitStatus git.Status
	inGit     bool

	// exec runs a store call with the terminal released
	exec func(*storeCall) tea.Cmd
}

func newModel(cfg *config.Config, st store.Store, storeDir string, cache *tree.Cache) *model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.EchoCharacter = '*'

	h := help.New()
	h.ShortSeparator = " "

	m := &model{
		cfg:         cfg,
		store:       st,
		storeDir:    storeDir,
		cache:       cache,
		keys:        newKeyMap(cfg),
		help:        h,
		styles:      newStyles(cfg.Palette),
		input:       ti,
		preview:     viewport.New(0, 0),
		showPreview: true,
		exec:        execStoreCall,
	}
	m.nav = browser.NewNavigator(cache)
	m.coord = browser.NewCoordinator(st, m.nav, store.GenerateOptions{NoSymbols: cfg.NoSymbols})
	m.nav.OnChange(m.onChange)
	m.refreshGit()
	return m
}

func (m *model) onChange(c browser.Change) {
	m.refreshPreview(c == browser.ChangeContent)
}

// Layout helpers

func (m *model) sidePreview() bool {
	return m.showPreview && m.cfg.Layout == config.LayoutSide
}

func (m *model) bottomPreview() bool {
	return m.showPreview && m.cfg.Layout == config.LayoutBottom
}

func (m *model) bodyHeight() int {
	h := m.height - headerHeight - footerHeight
	if h < 1 {
		h = 1
	}
	return h
}

// listHeight is the number of list rows on screen.
func (m *model) listHeight() int {
	h := m.bodyHeight()
	if m.bottomPreview() {
		// list and preview share the body around a one line divider
		h /= 2
	}
	if h < 1 {
		h = 1
	}
	return h
}

func (m *model) listWidth() int {
	if m.sidePreview() {
		return (m.width - 1) / 2
	}
	return m.width
}

func (m *model) previewSize() (width, height int) {
	switch {
	case m.sidePreview():
		return m.width - m.listWidth() - 1, m.bodyHeight()
	case m.bottomPreview():
		return m.width, m.bodyHeight() - m.listHeight() - 1
	}
	return 0, 0
}

func (m *model) resize(width, height int) {
	m.width = max(width, minWidth)
	m.height = max(height, minHeight)
	m.nav.SetHeight(m.listHeight())

	w, h := m.previewSize()
	m.preview.Width = w
	m.preview.Height = max(h, 0)
	m.help.Width = m.width / 2
	m.input.Width = m.width - len(m.input.Prompt) - 1
}

func (m *model) togglePreview() {
	m.showPreview = !m.showPreview
	m.resize(m.width, m.height)
	m.previewKey = ""
	m.refreshPreview(false)
}

// refreshPreview shows the focused entry in the preview pane. The same
// entry is only fetched again when forced.
func (m *model) refreshPreview(force bool) {
	if !m.showPreview {
		return
	}
	focused := m.nav.Focused()
	path := m.nav.FocusedPath()
	key := focused.Kind.String() + ":" + path
	if !force && key == m.previewKey {
		return
	}
	m.previewKey = key

	var text string
	switch {
	case focused.IsDir():
		text = m.dirPreview(path)
	case focused.IsLeaf():
		res := m.store.Show(path)
		if res.Succeeded {
			text = res.Output
		} else {
			text = res.Error
		}
	}
	m.preview.SetContent(text)
	m.preview.GotoTop()
}

func (m *model) dirPreview(path string) string {
	var b strings.Builder
	for _, n := range m.cache.Nodes(path) {
		switch {
		case n.IsDir():
			b.WriteString(m.styles.dir.Render(m.cfg.DirIcon + n.Name))
		case n.IsLeaf():
			b.WriteString(m.cfg.FileIcon + n.Name)
		}
		b.WriteByte('\n')
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m *model) refreshGit() {
	m.gitStatus, m.inGit = git.Inspect(m.storeDir)
}

func (m *model) setStatus(text string, alert bool) {
	m.status = text
	m.statusAlert = alert
}

// counter is the footer's "focus/total", "0/0" for an empty directory.
func (m *model) counter() (focus, total int) {
	if m.nav.Focused().IsEmpty() {
		return 0, 0
	}
	return m.nav.Viewport().Focus + 1, len(m.nav.Nodes())
}

// syncInput makes the footer input match the session's current step.
func (m *model) syncInput() {
	if !m.session.Active() {
		m.input.Blur()
		m.input.Reset()
		m.input.Prompt = ""
		m.input.EchoMode = textinput.EchoNormal
		return
	}
	m.input.Reset()
	m.input.Prompt = m.session.Prompt()
	m.input.Width = m.width - len(m.input.Prompt) - 1
	if m.session.Masked() {
		m.input.EchoMode = textinput.EchoPassword
	} else {
		m.input.EchoMode = textinput.EchoNormal
	}
	m.input.Focus()
	logger.Debug("modal: %s", m.session.Mode())
}
