package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/LFroesch/cpass/internal/config"
	"github.com/LFroesch/cpass/internal/logger"
	"github.com/LFroesch/cpass/internal/store"
)

var version = "0.3.0"

type options struct {
	storeDir   string
	configPath string
	debug      bool
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:          "cpass",
		Short:        "Browse a pass password store in the terminal",
		Long:         "cpass shows a pass(1) password store as a navigable tree, previews entries and runs insert, generate, edit and delete through pass.",
		Version:      version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}
	cmd.Flags().StringVarP(&opts.storeDir, "store", "s", "", "password store directory (default $PASSWORD_STORE_DIR or ~/.password-store)")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/cpass/config.yaml)")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "write debug lines to the log file")
	return cmd
}

func run(opts options) error {
	if path, err := logger.DefaultPath(); err == nil {
		if err := logger.Init(path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not initialize logger: %v\n", err)
		}
	}
	defer logger.Close()
	if opts.debug {
		logger.SetDebug(true)
	}

	configPath := opts.configPath
	if configPath == "" {
		path, err := config.DefaultPath()
		if err != nil {
			return err
		}
		configPath = path
	}
	cfg := config.Load(configPath)

	storeDir := opts.storeDir
	if storeDir == "" {
		storeDir = store.DefaultDir()
	}
	pass := store.NewPass(storeDir)
	if err := pass.Available(); err != nil {
		return err
	}

	cache, err := store.Load(storeDir)
	if err != nil {
		return err
	}
	logger.Debug("loaded store %s", storeDir)

	p := tea.NewProgram(newModel(cfg, pass, storeDir, cache), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		logger.Error("program exited: %v", err)
		return fmt.Errorf("cpass: %w", err)
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
