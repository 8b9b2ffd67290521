package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "cpass.log")
	if err := Init(path); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	defer Close()

	SetDebug(false)
	Warn("warned %d", 1)
	Debug("hidden")
	SetDebug(true)
	Debug("shown %s", "now")
	Error("broke")
	SetDebug(false)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	out := string(data)

	for _, want := range []string{"WARN: warned 1", "DEBUG: shown now", "ERROR: broke"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
	for _, unwanted := range []string{"hidden"} {
		if strings.Contains(out, unwanted) {
			t.Errorf("log should not contain %q:\n%s", unwanted, out)
		}
	}
}

func TestRotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cpass.log")
	big := make([]byte, maxLogSize+1)
	if err := os.WriteFile(path, big, 0600); err != nil {
		t.Fatal(err)
	}

	if err := Init(path); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	defer Close()

	if _, err := os.Stat(path + ".old"); err != nil {
		t.Errorf("expected rotated log: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != 0 {
		t.Errorf("new log should start empty, got %d bytes", info.Size())
	}
}

func TestNoFileIsSilent(t *testing.T) {
	Close()
	// must not panic without a file
	Warn("nowhere")
	Debug("nowhere")
}
