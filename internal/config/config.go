package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
	"gopkg.in/yaml.v3"

	"github.com/LFroesch/cpass/internal/logger"
)

// Layout is where the preview pane goes.
type Layout string

const (
	LayoutSide   Layout = "side"
	LayoutBottom Layout = "bottom"
)

// Action names a bindable command.
const (
	ActionDirDown        = "dir_down"
	ActionDirUp          = "dir_up"
	ActionDown           = "down"
	ActionUp             = "up"
	ActionDownScreen     = "down_screen"
	ActionUpScreen       = "up_screen"
	ActionDownHalfScreen = "down_half_screen"
	ActionUpHalfScreen   = "up_half_screen"
	ActionEnd            = "end"
	ActionHome           = "home"
	ActionCancel         = "cancel"
	ActionConfirm        = "confirm"
	ActionSearch         = "search"
	ActionInsert         = "insert"
	ActionGenerate       = "generate"
	ActionEdit           = "edit"
	ActionDelete         = "delete"
	ActionCopy           = "copy"
	ActionOpenURL        = "open_url"
	ActionTogglePreview  = "toggle_preview"
	ActionQuit           = "quit"
)

// Actions lists every action in the order bindings are documented.
var Actions = []string{
	ActionDirDown, ActionDirUp, ActionDown, ActionUp,
	ActionDownScreen, ActionUpScreen, ActionDownHalfScreen, ActionUpHalfScreen,
	ActionEnd, ActionHome, ActionCancel, ActionConfirm,
	ActionSearch, ActionInsert, ActionGenerate, ActionEdit, ActionDelete,
	ActionCopy, ActionOpenURL, ActionTogglePreview, ActionQuit,
}

// Style names used by the interface.
const (
	StyleNormal   = "normal"
	StyleBorder   = "border"
	StyleDir      = "dir"
	StyleAlert    = "alert"
	StyleBright   = "bright"
	StyleFocus    = "focus"
	StyleFocusDir = "focusdir"
)

// Styles lists every style name.
var Styles = []string{
	StyleNormal, StyleBorder, StyleDir, StyleAlert, StyleBright, StyleFocus, StyleFocusDir,
}

// Style is one palette entry. Colors are either one of the classic 16
// color names ("light blue") or any value lipgloss understands.
type Style struct {
	Fg    string   `yaml:"fg"`
	Bg    string   `yaml:"bg"`
	Attrs []string `yaml:"attrs,omitempty"`
}

// Config is the resolved configuration handed to the interface.
type Config struct {
	Layout    Layout
	DirIcon   string
	FileIcon  string
	NoSymbols bool

	// Keys maps an action to its keys, in binding order. A key is bound to
	// at most one action.
	Keys    map[string][]string
	Palette map[string]Style
}

// FileConfig mirrors config.yaml.
type FileConfig struct {
	UI struct {
		PreviewLayout string `yaml:"preview_layout,omitempty"`
	} `yaml:"ui"`
	Icon struct {
		Dir  *string `yaml:"dir,omitempty"`
		File *string `yaml:"file,omitempty"`
	} `yaml:"icon"`
	Pass struct {
		NoSymbols *bool `yaml:"no_symbols,omitempty"`
	} `yaml:"pass"`
	Keys  map[string]KeyList `yaml:"keys,omitempty"`
	Color map[string]Style   `yaml:"color,omitempty"`
}

// KeyList accepts either a YAML sequence or a comma separated string.
type KeyList []string

func (k *KeyList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var out KeyList
		for _, key := range strings.Split(value.Value, ",") {
			if key = strings.TrimSpace(key); key != "" {
				out = append(out, key)
			}
		}
		*k = out
		return nil
	case yaml.SequenceNode:
		var keys []string
		if err := value.Decode(&keys); err != nil {
			return err
		}
		*k = keys
		return nil
	}
	return fmt.Errorf("line %d: keys must be a list or a string", value.Line)
}

// DefaultKeys returns the default bindings.
func DefaultKeys() map[string][]string {
	return map[string][]string{
		ActionDirDown:        {"l", "right"},
		ActionDirUp:          {"h", "left"},
		ActionDown:           {"j", "down", "ctrl+n"},
		ActionUp:             {"k", "up", "ctrl+p"},
		ActionDownScreen:     {"pgdown", "ctrl+f"},
		ActionUpScreen:       {"pgup", "ctrl+b"},
		ActionDownHalfScreen: {"ctrl+d"},
		ActionUpHalfScreen:   {"ctrl+u"},
		ActionEnd:            {"G", "end"},
		ActionHome:           {"g", "home"},
		ActionCancel:         {"esc"},
		ActionConfirm:        {"enter"},
		ActionSearch:         {"s"},
		ActionInsert:         {"i"},
		ActionGenerate:       {"a"},
		ActionEdit:           {"e"},
		ActionDelete:         {"d"},
		ActionCopy:           {"c"},
		ActionOpenURL:        {"o"},
		ActionTogglePreview:  {"z"},
		ActionQuit:           {"q"},
	}
}

// DefaultPalette returns the default styles.
func DefaultPalette() map[string]Style {
	return map[string]Style{
		StyleNormal:   {Fg: "default", Bg: "default"},
		StyleBorder:   {Fg: "light green", Bg: "default"},
		StyleDir:      {Fg: "light blue", Bg: "default"},
		StyleAlert:    {Fg: "light red", Bg: "default"},
		StyleBright:   {Fg: "white", Bg: "default"},
		StyleFocus:    {Fg: "black", Bg: "white"},
		StyleFocusDir: {Fg: "black", Bg: "light blue", Attrs: []string{"bold"}},
	}
}

// Default returns the configuration used when there is no file.
func Default() *Config {
	return &Config{
		Layout:   LayoutSide,
		DirIcon:  "/",
		FileIcon: " ",
		Keys:     DefaultKeys(),
		Palette:  DefaultPalette(),
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/cpass/config.yaml, falling back to
// ~/.config/cpass/config.yaml
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "cpass", "config.yaml"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "cpass", "config.yaml"), nil
}

// Load reads the config at path. A missing file is created with the
// defaults so they can be edited; an unreadable or malformed one is logged
// and the defaults are used.
func Load(path string) *Config {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg := Default()
		if err := Save(path, cfg); err != nil {
			logger.Warn("Failed to save default config: %v", err)
		}
		return cfg
	}
	if err != nil {
		logger.Warn("Failed to read config file %s: %v, using defaults", path, err)
		return Default()
	}

	cfg, err := Parse(data)
	if err != nil {
		logger.Warn("Failed to parse config file %s: %v, using defaults", path, err)
		return Default()
	}
	return cfg
}

// Parse resolves a config.yaml document against the defaults.
func Parse(data []byte) (*Config, error) {
	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("cannot parse config: %w", err)
	}
	return fc.Resolve(), nil
}

// Resolve applies the file's settings on top of the defaults, warning about
// anything it does not understand.
func (fc *FileConfig) Resolve() *Config {
	cfg := Default()

	switch layout := strings.ToLower(fc.UI.PreviewLayout); layout {
	case "", "side", "horizontal":
		cfg.Layout = LayoutSide
	case "bottom", "vertical":
		cfg.Layout = LayoutBottom
	default:
		logger.Warn("Unknown preview_layout %q, using side", fc.UI.PreviewLayout)
	}

	if fc.Icon.Dir != nil {
		cfg.DirIcon = *fc.Icon.Dir
	}
	if fc.Icon.File != nil {
		cfg.FileIcon = *fc.Icon.File
	}
	if fc.Pass.NoSymbols != nil {
		cfg.NoSymbols = *fc.Pass.NoSymbols
	}

	// sorted so that a key bound twice in the file always lands on the same
	// action
	actions := make([]string, 0, len(fc.Keys))
	for action := range fc.Keys {
		actions = append(actions, action)
	}
	sort.Strings(actions)
	for _, action := range actions {
		if _, ok := cfg.Keys[action]; !ok {
			warnUnknown("action", action, Actions)
			continue
		}
		for _, key := range fc.Keys[action] {
			cfg.Bind(action, key)
		}
	}

	for name, style := range fc.Color {
		def, ok := cfg.Palette[name]
		if !ok {
			warnUnknown("style", name, Styles)
			continue
		}
		if style.Fg != "" {
			def.Fg = style.Fg
		}
		if style.Bg != "" {
			def.Bg = style.Bg
		}
		if style.Attrs != nil {
			def.Attrs = style.Attrs
		}
		cfg.Palette[name] = def
	}

	return cfg
}

// Bind assigns key to action, taking it away from whichever action owned
// it before.
func (c *Config) Bind(action, key string) {
	for other, keys := range c.Keys {
		for i, k := range keys {
			if k == key {
				c.Keys[other] = append(keys[:i:i], keys[i+1:]...)
				break
			}
		}
	}
	c.Keys[action] = append(c.Keys[action], key)
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		logger.Error("Failed to create config directory %s: %v", filepath.Dir(path), err)
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	var fc FileConfig
	fc.UI.PreviewLayout = string(cfg.Layout)
	fc.Icon.Dir = &cfg.DirIcon
	fc.Icon.File = &cfg.FileIcon
	fc.Pass.NoSymbols = &cfg.NoSymbols
	fc.Keys = make(map[string]KeyList, len(cfg.Keys))
	for action, keys := range cfg.Keys {
		fc.Keys[action] = keys
	}
	fc.Color = cfg.Palette

	data, err := yaml.Marshal(&fc)
	if err != nil {
		logger.Error("Failed to marshal config: %v", err)
		return fmt.Errorf("cannot marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		logger.Error("Failed to write config file %s: %v", path, err)
		return fmt.Errorf("cannot write config file: %w", err)
	}
	return nil
}

func warnUnknown(what, name string, known []string) {
	if matches := fuzzy.Find(name, known); len(matches) > 0 {
		logger.Warn("Unknown %s %q in config, did you mean %q?", what, name, matches[0].Str)
		return
	}
	logger.Warn("Unknown %s %q in config, ignored", what, name)
}
