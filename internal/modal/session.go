package modal

import "fmt"

// Mode is the step a multi-step prompt is at.
type Mode int

const (
	ModeNone Mode = iota
	ModeSearch
	ModeInsertName
	ModeInsertPassword
	ModeInsertPasswordConfirm
	ModeGenerateName
	ModeDeleteConfirm
)

func (m Mode) String() string {
	switch m {
	case ModeSearch:
		return "search"
	case ModeInsertName:
		return "insert-name"
	case ModeInsertPassword:
		return "insert-password"
	case ModeInsertPasswordConfirm:
		return "insert-password-confirm"
	case ModeGenerateName:
		return "generate-name"
	case ModeDeleteConfirm:
		return "delete-confirm"
	}
	return "none"
}

// Kind is what a finished step asks the caller to do.
type Kind int

const (
	// Continue means the session moved on and nothing else happens.
	Continue Kind = iota
	Insert
	Generate
	Delete
	// Notify means show Message and do nothing else.
	Notify
)

// Action is the result of feeding input to a Session.
type Action struct {
	Kind     Kind
	Name     string
	Password string
	Message  string
	Alert    bool
}

const (
	promptSearch          = "/"
	promptInsertName      = "Enter password filename: "
	promptInsertPassword  = "Enter password: "
	promptInsertPassword2 = "Enter password again: "
	promptGenerateName    = "Generate a password file: "

	MsgMismatch = "Password is not the same"
	MsgAbort    = "Abort."
	MsgInvalid  = "Invalid option."
)

// Session sequences the text prompts behind search, insert, generate and
// delete. The zero value is idle.
type Session struct {
	mode            Mode
	prompt          string
	pendingName     string
	pendingPassword string
}

// Mode returns the current step.
func (s *Session) Mode() Mode { return s.mode }

// Active reports whether input should go to the session.
func (s *Session) Active() bool { return s.mode != ModeNone }

// Prompt is the caption for the current step.
func (s *Session) Prompt() string { return s.prompt }

// Masked reports whether the current input must be hidden.
func (s *Session) Masked() bool {
	return s.mode == ModeInsertPassword || s.mode == ModeInsertPasswordConfirm
}

// ConsumesKey reports whether the next key press answers the session by
// itself instead of editing text.
func (s *Session) ConsumesKey() bool { return s.mode == ModeDeleteConfirm }

// StartSearch opens the search prompt. Searching does not filter anything
// yet; the prompt can only be confirmed or cancelled.
func (s *Session) StartSearch() { s.enter(ModeSearch, promptSearch) }

// StartInsert asks for the name of a new entry.
func (s *Session) StartInsert() { s.enter(ModeInsertName, promptInsertName) }

// StartGenerate asks for the name of an entry to generate.
func (s *Session) StartGenerate() { s.enter(ModeGenerateName, promptGenerateName) }

// StartDelete asks to confirm deleting name.
func (s *Session) StartDelete(name string, isDir bool) {
	what := "the file"
	if isDir {
		what = "the whole folder"
	}
	s.enter(ModeDeleteConfirm, fmt.Sprintf("Are you sure to delete %s %s? [Y/n]", what, name))
}

// Confirm submits input for the current step.
func (s *Session) Confirm(input string) Action {
	switch s.mode {
	case ModeSearch:
		s.reset()
	case ModeInsertName:
		s.pendingName = input
		s.mode, s.prompt = ModeInsertPassword, promptInsertPassword
	case ModeInsertPassword:
		s.pendingPassword = input
		s.mode, s.prompt = ModeInsertPasswordConfirm, promptInsertPassword2
	case ModeInsertPasswordConfirm:
		name, password := s.pendingName, s.pendingPassword
		s.reset()
		if input != password {
			return Action{Kind: Notify, Message: MsgMismatch, Alert: true}
		}
		return Action{Kind: Insert, Name: name, Password: password}
	case ModeGenerateName:
		s.reset()
		return Action{Kind: Generate, Name: input}
	case ModeDeleteConfirm:
		return s.Answer("enter")
	}
	return Action{}
}

// Answer handles the single key that replies to a delete confirmation.
// Any key ends the session.
func (s *Session) Answer(key string) Action {
	if s.mode != ModeDeleteConfirm {
		return Action{}
	}
	s.reset()
	switch key {
	case "y", "Y", "enter":
		return Action{Kind: Delete}
	case "n", "N":
		return Action{Kind: Notify, Message: MsgAbort}
	}
	return Action{Kind: Notify, Message: MsgInvalid, Alert: true}
}

// Cancel ends the session and forgets everything entered so far.
func (s *Session) Cancel() { s.reset() }

func (s *Session) enter(m Mode, prompt string) {
	s.reset()
	s.mode, s.prompt = m, prompt
}

func (s *Session) reset() {
	*s = Session{}
}
