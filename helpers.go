package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/skratchdot/open-golang/open"

	"github.com/LFroesch/cpass/internal/browser"
	"github.com/LFroesch/cpass/internal/logger"
	"github.com/LFroesch/cpass/internal/store"
)

// storeCall runs one store request as a tea.ExecCommand, so the program
// gives up the terminal until the store returns.
type storeCall struct {
	store store.Store
	coord *browser.Coordinator
	req   browser.Request
	res   store.Result

	stdin  io.Reader
	stdout io.Writer
}

func (c *storeCall) SetStdin(r io.Reader)  { c.stdin = r }
func (c *storeCall) SetStdout(w io.Writer) { c.stdout = w }
func (c *storeCall) SetStderr(io.Writer)   {}

// Run never fails; store failures are carried in the result.
func (c *storeCall) Run() error {
	if t, ok := c.store.(store.Terminal); ok && (c.stdin != nil || c.stdout != nil) {
		t.Attach(c.stdin, c.stdout)
	}
	c.res = c.coord.Call(c.req)
	return nil
}

func (c *storeCall) done(error) tea.Msg {
	return storeDoneMsg{req: c.req, res: c.res}
}

func execStoreCall(c *storeCall) tea.Cmd {
	return tea.Exec(c, c.done)
}

// runStore hands req to the store with the terminal released.
func (m *model) runStore(req browser.Request) tea.Cmd {
	logger.Debug("store: %s /%s", req.Op, req.Path)
	return m.exec(&storeCall{store: m.store, coord: m.coord, req: req})
}

// Helper functions

// copySecret puts the first line of the secret at path on the clipboard.
func (m *model) copySecret(path string) tea.Cmd {
	st := m.store
	return func() tea.Msg {
		res := st.Show(path)
		if !res.Succeeded {
			return statusMsg{text: flatten(res.Error), alert: true}
		}
		secret, _, _ := strings.Cut(res.Output, "\n")
		if err := clipboard.WriteAll(secret); err != nil {
			logger.Warn("clipboard: %v", err)
			return statusMsg{text: fmt.Sprintf("Failed to copy: %v", err), alert: true}
		}
		return statusMsg{text: "Copied: /" + path}
	}
}

// openURL opens the url field of the secret at path.
func (m *model) openURL(path string) tea.Cmd {
	st := m.store
	return func() tea.Msg {
		res := st.Show(path)
		if !res.Succeeded {
			return statusMsg{text: flatten(res.Error), alert: true}
		}
		url := findURL(res.Output)
		if url == "" {
			return statusMsg{text: "No url in /" + path, alert: true}
		}
		if err := open.Start(url); err != nil {
			logger.Warn("open %s: %v", url, err)
			return statusMsg{text: fmt.Sprintf("Failed to open: %v", err), alert: true}
		}
		return statusMsg{text: "Opening " + url}
	}
}

// findURL returns the value of the first "url:" line after the secret.
func findURL(secret string) string {
	lines := strings.Split(secret, "\n")
	for _, line := range lines[min(1, len(lines)):] {
		name, value, ok := strings.Cut(line, ":")
		if ok && strings.EqualFold(strings.TrimSpace(name), "url") {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func flatten(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\n", " ")
}
