package store

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/LFroesch/cpass/internal/logger"
)

// Result is what every store operation reports back. Failures are values,
// the text in Error is meant to be shown to the operator as is.
type Result struct {
	Succeeded bool
	Output    string
	Error     string
}

// GenerateOptions tune generated secrets.
type GenerateOptions struct {
	NoSymbols bool
}

// Store owns the secrets. Paths are logical item paths relative to the
// store root, without the file suffix.
type Store interface {
	Show(path string) Result
	Edit(path string) Result
	Insert(path, password string) Result
	Generate(path string, opts GenerateOptions) Result
	Delete(path string) Result
}

// Terminal is implemented by stores whose interactive operations need to
// be pointed at the terminal the caller released.
type Terminal interface {
	Attach(stdin io.Reader, stdout io.Writer)
}

// Pass drives the pass(1) command line tool.
type Pass struct {
	Dir    string // store root, exported to pass as PASSWORD_STORE_DIR
	Binary string // defaults to "pass"

	// Terminal used by interactive operations; default to the process's own.
	Stdin  io.Reader
	Stdout io.Writer
}

// NewPass returns a Pass rooted at dir.
func NewPass(dir string) *Pass {
	return &Pass{Dir: dir, Binary: "pass"}
}

// DefaultDir resolves the store root the same way pass does.
func DefaultDir() string {
	if dir := os.Getenv("PASSWORD_STORE_DIR"); dir != "" {
		return dir
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		logger.Error("Failed to get home directory: %v", err)
		homeDir = "."
	}
	return filepath.Join(homeDir, ".password-store")
}

// Attach sets the terminal used by Edit.
func (p *Pass) Attach(stdin io.Reader, stdout io.Writer) {
	if stdin != nil {
		p.Stdin = stdin
	}
	if stdout != nil {
		p.Stdout = stdout
	}
}

// Available reports whether the pass binary can be found.
func (p *Pass) Available() error {
	if _, err := exec.LookPath(p.binary()); err != nil {
		return fmt.Errorf("%s not found in PATH: %w", p.binary(), err)
	}
	return nil
}

func (p *Pass) Show(path string) Result {
	return p.run(nil, false, "show", path)
}

// Edit hands the terminal to pass, which starts the user's editor. Only
// stderr is captured.
func (p *Pass) Edit(path string) Result {
	return p.run(nil, true, "edit", path)
}

func (p *Pass) Insert(path, password string) Result {
	stdin := strings.NewReader(password + "\n" + password + "\n")
	return p.run(stdin, false, "insert", "-f", path)
}

func (p *Pass) Generate(path string, opts GenerateOptions) Result {
	args := []string{"generate", "-f", path}
	if opts.NoSymbols {
		args = append(args, "-n")
	}
	return p.run(nil, false, args...)
}

func (p *Pass) Delete(path string) Result {
	return p.run(nil, false, "rm", "-r", "-f", path)
}

func (p *Pass) run(stdin io.Reader, interactive bool, args ...string) Result {
	cmd := exec.Command(p.binary(), args...)
	cmd.Env = append(os.Environ(), "PASSWORD_STORE_DIR="+p.Dir)

	var stdout, stderr bytes.Buffer
	cmd.Stderr = &stderr
	switch {
	case interactive:
		cmd.Stdin = p.stdin()
		cmd.Stdout = p.stdout()
	default:
		cmd.Stdin = stdin
		cmd.Stdout = &stdout
	}

	logger.Debug("store: %s %s", p.binary(), strings.Join(args, " "))
	err := cmd.Run()
	res := Result{
		Succeeded: err == nil,
		Output:    stdout.String(),
		Error:     stderr.String(),
	}

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		// never started, so there is no stderr to show
		res.Error = err.Error()
	}
	if err != nil {
		logger.Warn("store: %s %s failed: %v", p.binary(), args[0], err)
	}
	return res
}

func (p *Pass) binary() string {
	if p.Binary == "" {
		return "pass"
	}
	return p.Binary
}

func (p *Pass) stdin() io.Reader {
	if p.Stdin != nil {
		return p.Stdin
	}
	return os.Stdin
}

func (p *Pass) stdout() io.Writer {
	if p.Stdout != nil {
		return p.Stdout
	}
	return os.Stdout
}
