package main

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LFroesch/cpass/internal/browser"
	"github.com/LFroesch/cpass/internal/config"
	"github.com/LFroesch/cpass/internal/logger"
	"github.com/LFroesch/cpass/internal/modal"
)

const msgInvalidName = "Invalid name."

func (m *model) Init() tea.Cmd {
	return tea.SetWindowTitle(appName)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.refreshPreview(false)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case storeDoneMsg:
		out := m.coord.Apply(msg.req, msg.res)
		m.setStatus(out.Message, out.Alert)
		if out.Succeeded {
			m.refreshGit()
		}
		return m, nil

	case statusMsg:
		m.setStatus(msg.text, msg.alert)
		return m, nil
	}

	if m.session.Active() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit
	}

	action := m.keys.action(msg)
	logger.Debug("key: %q -> %q", msg.String(), action)

	switch {
	case action == config.ActionCancel:
		m.session.Cancel()
		m.syncInput()
		m.setStatus("", false)
		return nil

	case action == config.ActionQuit && !m.session.Active():
		return tea.Quit

	case m.session.ConsumesKey():
		answer := msg.String()
		if action == config.ActionConfirm {
			answer = "enter"
		}
		act := m.session.Answer(answer)
		m.syncInput()
		return m.finish(act)

	case action == config.ActionConfirm && m.session.Active():
		act := m.session.Confirm(m.input.Value())
		m.syncInput()
		return m.finish(act)

	case m.session.Active():
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}

	if shift, ok := m.listOffset(action); ok {
		m.nav.ListNavigate(shift)
		return nil
	}

	switch action {
	case config.ActionDirDown, config.ActionConfirm:
		m.nav.DirNavigate(browser.Descend)
	case config.ActionDirUp:
		m.nav.DirNavigate(browser.Ascend)
	default:
		return m.startAction(action)
	}
	return nil
}

// listOffset maps the list movement actions to a shift. Jumps to either
// end overshoot by the whole list and rely on clamping.
func (m *model) listOffset(action string) (int, bool) {
	h := m.nav.Height()
	n := len(m.nav.Nodes())
	switch action {
	case config.ActionDown:
		return 1, true
	case config.ActionUp:
		return -1, true
	case config.ActionEnd:
		return n, true
	case config.ActionHome:
		return -n, true
	case config.ActionDownScreen:
		return h, true
	case config.ActionUpScreen:
		return -h, true
	case config.ActionDownHalfScreen:
		return h / 2, true
	case config.ActionUpHalfScreen:
		return -((h + 1) / 2), true
	}
	return 0, false
}

// startAction begins the operation bound to action while no prompt is open.
func (m *model) startAction(action string) tea.Cmd {
	focused := m.nav.Focused()

	switch action {
	case config.ActionSearch:
		m.session.StartSearch()
	case config.ActionInsert:
		m.session.StartInsert()
	case config.ActionGenerate:
		m.session.StartGenerate()
	case config.ActionDelete:
		if focused.IsEmpty() {
			return nil
		}
		m.session.StartDelete(focused.Name, focused.IsDir())
	case config.ActionEdit:
		if req, ok := m.coord.Edit(); ok {
			return m.runStore(req)
		}
		return nil
	case config.ActionCopy:
		if focused.IsLeaf() {
			return m.copySecret(m.nav.FocusedPath())
		}
		return nil
	case config.ActionOpenURL:
		if focused.IsLeaf() {
			return m.openURL(m.nav.FocusedPath())
		}
		return nil
	case config.ActionTogglePreview:
		m.togglePreview()
		return nil
	default:
		return nil
	}

	m.setStatus("", false)
	m.syncInput()
	return textinput.Blink
}

// finish carries out what a completed prompt asked for.
func (m *model) finish(act modal.Action) tea.Cmd {
	switch act.Kind {
	case modal.Insert:
		if req, ok := m.coord.Insert(act.Name, act.Password); ok {
			return m.runStore(req)
		}
		m.setStatus(msgInvalidName, true)
	case modal.Generate:
		if req, ok := m.coord.Generate(act.Name); ok {
			return m.runStore(req)
		}
		m.setStatus(msgInvalidName, true)
	case modal.Delete:
		if req, ok := m.coord.Delete(); ok {
			return m.runStore(req)
		}
	case modal.Notify:
		m.setStatus(act.Message, act.Alert)
	}
	return nil
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	if m.session.Active() || msg.Action != tea.MouseActionPress {
		return
	}
	logger.Debug("mouse: %v at %d,%d", msg.Button, msg.X, msg.Y)

	switch msg.Button {
	case tea.MouseButtonLeft:
		row := msg.Y - headerHeight
		if row < 0 || row >= m.nav.Height() || msg.X >= m.listWidth() {
			return
		}
		m.nav.Click(row)
	case tea.MouseButtonRight:
		m.nav.DirNavigate(browser.Ascend)
	case tea.MouseButtonWheelUp:
		m.nav.ListNavigate(-1)
	case tea.MouseButtonWheelDown:
		m.nav.ListNavigate(1)
	}
}
