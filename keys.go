package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LFroesch/cpass/internal/config"
)

// keyMap holds one binding per action, built from the configured keys.
type keyMap struct {
	bindings map[string]key.Binding
}

var helpLabels = map[string]string{
	config.ActionGenerate:      "generate",
	config.ActionEdit:          "edit",
	config.ActionInsert:        "insert",
	config.ActionTogglePreview: "toggle",
	config.ActionDelete:        "delete",
	config.ActionCopy:          "copy",
	config.ActionOpenURL:       "open url",
	config.ActionSearch:        "search",
	config.ActionQuit:          "quit",
}

func newKeyMap(cfg *config.Config) keyMap {
	km := keyMap{bindings: make(map[string]key.Binding, len(config.Actions))}
	for _, action := range config.Actions {
		keys := cfg.Keys[action]
		opts := []key.BindingOpt{key.WithKeys(keys...)}
		if len(keys) > 0 {
			label := helpLabels[action]
			if label == "" {
				label = strings.ReplaceAll(action, "_", " ")
			}
			opts = append(opts, key.WithHelp(keys[0], label))
		} else {
			opts = append(opts, key.WithDisabled())
		}
		km.bindings[action] = key.NewBinding(opts...)
	}
	return km
}

// action returns the action msg is bound to, or "".
func (km keyMap) action(msg tea.KeyMsg) string {
	for _, action := range config.Actions {
		if key.Matches(msg, km.bindings[action]) {
			return action
		}
	}
	return ""
}

// ShortHelp is the line shown in the header.
func (km keyMap) ShortHelp() []key.Binding {
	return km.pick(config.ActionGenerate, config.ActionEdit, config.ActionInsert, config.ActionTogglePreview)
}

func (km keyMap) pick(actions ...string) []key.Binding {
	out := make([]key.Binding, 0, len(actions))
	for _, action := range actions {
		out = append(out, km.bindings[action])
	}
	return out
}
