package git

import (
	"os/exec"
	"strconv"
	"strings"
)

// Status is a summary of the store's repository.
type Status struct {
	Branch   string
	Modified int // paths with uncommitted changes
}

// String renders the status for the header, e.g. "main" or "main +2".
func (s Status) String() string {
	if s.Modified == 0 {
		return s.Branch
	}
	return s.Branch + " +" + strconv.Itoa(s.Modified)
}

// Inspect reports the repository dir belongs to. ok is false when dir is
// not in a git repository or git is missing.
func Inspect(dir string) (status Status, ok bool) {
	// Check if we're in a git repository
	cmd := exec.Command("git", "rev-parse", "--git-dir")
	cmd.Dir = dir
	if err := cmd.Run(); err != nil {
		return Status{}, false
	}

	status.Branch = GetBranch(dir)
	status.Modified = len(GetModifiedFiles(dir))
	return status, true
}

// GetModifiedFiles returns the paths git reports as changed, relative to
// the repository
func GetModifiedFiles(dir string) []string {
	cmd := exec.Command("git", "status", "--porcelain")
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return nil
	}

	var modified []string
	for _, line := range strings.Split(string(output), "\n") {
		if len(line) > 3 {
			// Status is in first two characters, filename starts at position 3
			if filename := strings.TrimSpace(line[3:]); filename != "" {
				modified = append(modified, filename)
			}
		}
	}
	return modified
}

// GetBranch returns the current git branch name
func GetBranch(dir string) string {
	cmd := exec.Command("git", "rev-parse", "--abbrev-ref", "HEAD")
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(output))
}
