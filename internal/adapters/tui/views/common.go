package views

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"studytrack/internal/application"
)

// ToastDuration is how long a notification stays on screen
const ToastDuration = 4 * time.Second

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and toast handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
	toastSeq   int
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view until the next one
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
	s.toastSeq++
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// ShowToast displays t and returns the command that hides it again
func (s *ViewState) ShowToast(t application.Toast) tea.Cmd {
	s.SetMessage(t.Text, t.Error)
	seq := s.toastSeq
	return tea.Tick(ToastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

// expire clears the message only if no newer toast replaced it
func (s *ViewState) expire(msg toastExpiredMsg) {
	if msg.seq == s.toastSeq {
		s.ClearMessage()
	}
}

type toastExpiredMsg struct {
	seq int
}

// Messages for view switching
type SwitchToHelpMsg struct{}

type SwitchToBrowserMsg struct{}

// ReloadMsg asks the application to read the folder again
type ReloadMsg struct{}
